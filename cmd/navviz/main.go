package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/groundnav/levels"
	"github.com/milk9111/groundnav/prefabs"
)

func main() {
	levelName := flag.String("level", "ledges", "level file or name in levels/ (.json optional)")
	moverName := flag.String("mover", "", "mover name in prefabs/movers.yaml (defaults to the level's npc)")
	colliderName := flag.String("collider", "grid", "collision backend: grid or space")
	mask := flag.String("mask", "", "png whose opaque pixels are added as solid ground (grid collider only)")
	debug := flag.Bool("debug", false, "draw graph edges and stats")
	watch := flag.Bool("watch", false, "reload prefabs when they change on disk")
	flag.Parse()

	lvl, err := loadLevel(*levelName)
	if err != nil {
		log.Fatal(err)
	}

	game, err := NewGame(lvl, Options{
		Mover:    *moverName,
		Collider: *colliderName,
		Mask:     *mask,
		Debug:    *debug,
	})
	if err != nil {
		log.Fatal(err)
	}

	if *watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			log.Fatalf("navviz: watch %s: %v", prefabs.Dir, err)
		}
		defer w.Close()
		game.watcher = w
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(game.width*2, game.height*2)
	ebiten.SetWindowTitle("navviz")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func loadLevel(name string) (*levels.Level, error) {
	if _, err := os.Stat(name); err == nil {
		return levels.LoadLevelFile(name)
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return levels.LoadLevelFromFS(name)
}
