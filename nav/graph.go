package nav

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

var ErrIndexMismatch = errors.New("nav: node index does not match segment index")

// Edge is an outgoing link. Jump edges cross islands and were approved by
// the jump oracle.
type Edge struct {
	To   int
	Jump bool
}

// Graph is the per-mover navigation graph over radius filtered segments.
// Node i is segment i; edges[i] lists its outgoing links.
type Graph struct {
	cfg      Config
	npc      NpcMetadata
	oracle   JumpOracle
	physics  PhysicsConstants
	segments []PathSegment
	edges    [][]Edge
	source   []int
}

// BuildGraph links segments that touch, and segments on different islands
// when a jump between them is feasible. Each direction of a jump is checked
// on its own. segs must already be indexed 0..n-1.
func BuildGraph(segs []PathSegment, npc NpcMetadata, phys PhysicsConstants, oracle JumpOracle) *Graph {
	g := &Graph{
		cfg:      oracle.cfg,
		npc:      npc,
		oracle:   oracle,
		physics:  phys,
		segments: segs,
		edges:    make([][]Edge, len(segs)),
	}

	for i := 0; i < len(segs); i++ {
		for j := i + 1; j < len(segs); j++ {
			a, b := segs[i], segs[j]
			if a.Rect.Touches(b.Rect) {
				g.edges[i] = append(g.edges[i], Edge{To: j, Jump: a.Island != b.Island})
				g.edges[j] = append(g.edges[j], Edge{To: i, Jump: a.Island != b.Island})
				continue
			}
			if a.Island == b.Island {
				continue
			}
			if oracle.Feasible(a.Rect, b.Rect, npc, phys) {
				g.edges[i] = append(g.edges[i], Edge{To: j, Jump: true})
			}
			if oracle.Feasible(b.Rect, a.Rect, npc, phys) {
				g.edges[j] = append(g.edges[j], Edge{To: i, Jump: true})
			}
		}
	}
	return g
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.segments)
}

func (g *Graph) Segment(i int) PathSegment {
	return g.segments[i]
}

// Segments returns a copy of the graph nodes.
func (g *Graph) Segments() []PathSegment {
	if g == nil {
		return nil
	}
	return append([]PathSegment(nil), g.segments...)
}

func (g *Graph) Edges(i int) []Edge {
	return g.edges[i]
}

// SourceIndex maps a graph node back to its index in the PathData it was
// filtered from, or -1 when the graph was built directly.
func (g *Graph) SourceIndex(i int) int {
	if g.source == nil {
		return -1
	}
	return g.source[i]
}

// Mover returns the kinematics the graph was built for.
func (g *Graph) Mover() NpcMetadata {
	return g.npc
}

// Feasible runs the graph's jump oracle between two nodes.
func (g *Graph) Feasible(from, to int) bool {
	return g.oracle.Feasible(g.segments[from].Rect, g.segments[to].Rect, g.npc, g.physics)
}

// Nearest returns the node whose rect is closest to p, or -1 for an empty
// graph. Ties keep the lowest index.
func (g *Graph) Nearest(p cp.Vector) int {
	best := -1
	bestD := 0.0
	for i, s := range g.segments {
		d := s.Rect.DistanceSq(p.X, p.Y)
		if best < 0 || d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// Validate checks that every node carries its own position as index.
func (g *Graph) Validate() error {
	for i, s := range g.segments {
		if s.Index != i {
			return fmt.Errorf("%w: node %d holds segment %d", ErrIndexMismatch, i, s.Index)
		}
	}
	return nil
}
