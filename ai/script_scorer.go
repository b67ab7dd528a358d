package ai

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/groundnav/nav"
	"github.com/milk9111/groundnav/prefabs"
)

// ScriptScorer ranks hops with a tengo script. The script reads distance,
// rise (pixels next sits above prev), jump and penalty, and assigns score.
// It is not safe for concurrent use.
type ScriptScorer struct {
	name     string
	compiled *tengo.Compiled
	fallback nav.HeuristicScorer
	warned   bool
}

func NewScriptScorer(name string, src []byte, penalty float64) (*ScriptScorer, error) {
	script := tengo.NewScript(src)
	_ = script.Add("distance", 0.0)
	_ = script.Add("rise", 0.0)
	_ = script.Add("jump", false)
	_ = script.Add("penalty", penalty)
	_ = script.Add("score", 0.0)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ai: compile scorer %s: %w", name, err)
	}
	return &ScriptScorer{
		name:     name,
		compiled: compiled,
		fallback: nav.HeuristicScorer{Penalty: penalty},
	}, nil
}

// LoadScriptScorer compiles a scorer from the prefab scripts.
func LoadScriptScorer(name string, penalty float64) (*ScriptScorer, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("ai: load scorer %s: %w", name, err)
	}
	return NewScriptScorer(name, src, penalty)
}

// Score runs the script, falling back to the heuristic score when it fails.
func (s *ScriptScorer) Score(prev, next, dest nav.PathSegment, jump bool) float64 {
	distance := next.TopCenter().Distance(dest.TopCenter())
	rise := float64(prev.Rect.MinY - next.Rect.MinY)

	if err := s.run(distance, rise, jump); err != nil {
		if !s.warned {
			log.Printf("ai: scorer %s: %v, using heuristic", s.name, err)
			s.warned = true
		}
		return s.fallback.Score(prev, next, dest, jump)
	}
	return s.compiled.Get("score").Float()
}

func (s *ScriptScorer) run(distance, rise float64, jump bool) error {
	if err := s.compiled.Set("distance", distance); err != nil {
		return err
	}
	if err := s.compiled.Set("rise", rise); err != nil {
		return err
	}
	if err := s.compiled.Set("jump", jump); err != nil {
		return err
	}
	if err := s.compiled.Set("score", 0.0); err != nil {
		return err
	}
	return s.compiled.Run()
}

// ScorerFor returns the scorer a mover spec asks for. Movers without a
// script, or whose script fails to load, use the heuristic.
func ScorerFor(m prefabs.MoverSpec, penalty float64) nav.Scorer {
	if m.Scorer == "" {
		return nav.HeuristicScorer{Penalty: penalty}
	}
	s, err := LoadScriptScorer(m.Scorer, penalty)
	if err != nil {
		log.Printf("ai: mover %s: %v", m.Name, err)
		return nav.HeuristicScorer{Penalty: penalty}
	}
	return s
}
