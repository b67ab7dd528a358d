package prefabs

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long a file must stay quiet before its edit is reported.
const settleDelay = 100 * time.Millisecond

// Watcher reports edits to yaml prefabs and tengo scripts. A burst of writes
// to one file is reported once, settleDelay after the last write, so readers
// always see the final save of the burst.
type Watcher struct {
	Events chan string
	Errors chan error

	fs      *fsnotify.Watcher
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		fs:      fw,
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and closes Events and Errors. Edits still settling
// are dropped. Calling Close again is a no-op.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	// pending maps a file to the time it becomes quiet.
	pending := make(map[string]time.Time)
	timer := time.NewTimer(settleDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			pending[event.Name] = time.Now().Add(settleDelay)
			timer.Reset(time.Until(nextDue(pending)))

		case now := <-timer.C:
			for _, name := range settled(pending, now) {
				delete(pending, name)
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
			}
			if len(pending) > 0 {
				timer.Reset(time.Until(nextDue(pending)))
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}

		case <-w.closeCh:
			return
		}
	}
}

func nextDue(pending map[string]time.Time) time.Time {
	var next time.Time
	for _, due := range pending {
		if next.IsZero() || due.Before(next) {
			next = due
		}
	}
	return next
}

// settled returns the files quiet at now, sorted by name.
func settled(pending map[string]time.Time, now time.Time) []string {
	var names []string
	for name, due := range pending {
		if !due.After(now) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	switch strings.ToLower(filepath.Ext(event.Name)) {
	case ".yaml", ".yml", ".tengo":
		return true
	}
	return false
}
