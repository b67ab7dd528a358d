package nav

import (
	"cmp"
	"slices"
)

// Scorer ranks a candidate hop from prev to next; lower is tried first.
// jump reports whether a jump from prev to next is feasible: always true on
// jump edges, and on touching hops up onto higher ground whose arc the jump
// oracle approves.
type Scorer interface {
	Score(prev, next, dest PathSegment, jump bool) float64
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(prev, next, dest PathSegment, jump bool) float64

func (f ScorerFunc) Score(prev, next, dest PathSegment, jump bool) float64 {
	return f(prev, next, dest, jump)
}

// HeuristicScorer scores a hop by the straight distance from next to the
// destination, plus Penalty for jumping up onto next.
type HeuristicScorer struct {
	Penalty float64
}

func (h HeuristicScorer) Score(prev, next, dest PathSegment, jump bool) float64 {
	score := next.TopCenter().Distance(dest.TopCenter())
	if jump && next.Rect.MinY < prev.Rect.MinY {
		score += h.Penalty
	}
	return score
}

// FindPath searches from start to dest and returns the first complete route
// found, beginning with the start checkpoint. The route is not guaranteed to
// be the shortest. It returns nil when dest cannot be reached within the hop
// bound. start == dest yields the single start checkpoint. A nil scorer uses
// HeuristicScorer with the configured penalty.
func (g *Graph) FindPath(start, dest int, scorer Scorer) []CheckPoint {
	n := g.Len()
	if start < 0 || dest < 0 || start >= n || dest >= n {
		return nil
	}
	if scorer == nil {
		scorer = HeuristicScorer{Penalty: g.cfg.UpwardJumpPenalty}
	}

	s := &search{
		g:       g,
		scorer:  scorer,
		dest:    dest,
		maxHops: g.cfg.MaxHops,
		order:   make([][]int, n),
		onPath:  make([]bool, n),
		path:    make([]CheckPoint, 0, g.cfg.MaxHops+1),
	}
	s.push(CheckPoint{Segment: start})
	if start == dest {
		return slices.Clone(s.path)
	}

	path, ok := s.walk(start)
	if !ok {
		return nil
	}
	return slices.Clone(path)
}

type search struct {
	g       *Graph
	scorer  Scorer
	dest    int
	maxHops int

	// order[i] holds positions into g.edges[i] sorted by score, filled the
	// first time node i is expanded.
	order  [][]int
	onPath []bool
	path   []CheckPoint
}

func (s *search) push(c CheckPoint) {
	s.path = append(s.path, c)
	s.onPath[c.Segment] = true
}

func (s *search) pop() {
	last := s.path[len(s.path)-1]
	s.onPath[last.Segment] = false
	s.path = s.path[:len(s.path)-1]
}

func (s *search) hop(from int, e Edge) CheckPoint {
	a, b := s.g.segments[from], s.g.segments[e.To]
	return CheckPoint{
		Segment:   e.To,
		Direction: directionBetween(a, b),
		Jump:      a.Island != b.Island,
	}
}

// walk extends the current path from cur. On success the returned slice is
// the search buffer holding the full route.
func (s *search) walk(cur int) ([]CheckPoint, bool) {
	if len(s.path)-1 >= s.maxHops {
		return nil, false
	}

	edges := s.g.edges[cur]
	for _, e := range edges {
		if e.To == s.dest {
			s.push(s.hop(cur, e))
			return s.path, true
		}
	}

	for _, idx := range s.sorted(cur) {
		e := edges[idx]
		if s.onPath[e.To] {
			continue
		}
		s.push(s.hop(cur, e))
		if path, ok := s.walk(e.To); ok {
			return path, true
		}
		s.pop()
	}
	return nil, false
}

func (s *search) sorted(cur int) []int {
	if s.order[cur] != nil {
		return s.order[cur]
	}
	edges := s.g.edges[cur]
	prev := s.g.segments[cur]
	dest := s.g.segments[s.dest]

	scores := make([]float64, len(edges))
	idx := make([]int, len(edges))
	for i, e := range edges {
		idx[i] = i
		next := s.g.segments[e.To]
		jump := e.Jump
		if !jump && next.Rect.MinY < prev.Rect.MinY {
			jump = s.g.Feasible(cur, e.To)
		}
		scores[i] = s.scorer.Score(prev, next, dest, jump)
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(scores[a], scores[b])
	})
	s.order[cur] = idx
	return idx
}
