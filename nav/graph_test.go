package nav

import (
	"errors"
	"iter"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/groundnav/common"
)

func hasEdge(g *Graph, from, to int) (Edge, bool) {
	for _, e := range g.Edges(from) {
		if e.To == to {
			return e, true
		}
	}
	return Edge{}, false
}

func TestBuildGraphEdges(t *testing.T) {
	segs := []PathSegment{
		{Rect: common.PointRect(0, 100), Index: 0, Island: 0},
		{Rect: common.Rect{MinX: 16, MinY: 100, MaxX: 20, MaxY: 100}, Index: 1, Island: 0},
		{Rect: common.PointRect(60, 80), Index: 2, Island: 1},
		{Rect: common.PointRect(-400, 100), Index: 3, Island: 0},
		{Rect: common.PointRect(1, 100), Index: 4, Island: 0},
		{Rect: common.PointRect(-2, 100), Index: 5, Island: 0},
	}

	g := BuildGraph(segs, testMover(3, 6, 0), testPhysics, NewJumpOracle(DefaultConfig(), nil))
	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected validate error: %v", err)
	}

	cases := []struct {
		name     string
		from, to int
		want     bool
		jump     bool
	}{
		{"same_island_far_apart_no_edge", 0, 1, false, false},
		{"jump_up_feasible", 0, 2, true, true},
		{"jump_back_rejected", 2, 0, false, false},
		{"touching_forward", 0, 4, true, false},
		{"touching_backward", 4, 0, true, false},
		{"one_pixel_gap_touches", 0, 5, true, false},
		{"two_pixel_gap_no_edge", 4, 5, false, false},
		{"same_island_not_touching", 3, 0, false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, ok := hasEdge(g, c.from, c.to)
			if ok != c.want {
				t.Fatalf("edge %d -> %d present = %v, want %v", c.from, c.to, ok, c.want)
			}
			if ok && e.Jump != c.jump {
				t.Fatalf("edge %d -> %d jump = %v, want %v", c.from, c.to, e.Jump, c.jump)
			}
		})
	}

	for i := 0; i < g.Len(); i++ {
		for _, e := range g.Edges(i) {
			if e.To == i {
				t.Fatalf("self edge on node %d", i)
			}
		}
	}
}

func TestGraphValidateMismatch(t *testing.T) {
	g := BuildGraph([]PathSegment{{Index: 0}, {Index: 7}}, NpcMetadata{}, PhysicsConstants{}, NewJumpOracle(DefaultConfig(), nil))
	if err := g.Validate(); !errors.Is(err, ErrIndexMismatch) {
		t.Fatalf("expected ErrIndexMismatch, got %v", err)
	}
}

func TestPathDataRadiusFilter(t *testing.T) {
	pd := NewPathData([]iter.Seq[SurfacePoint]{
		pointsSeq(SurfacePoint{0, 0}),
		pointsSeq(SurfacePoint{500, 0}),
		pointsSeq(SurfacePoint{600, 0}),
	}, nil, DefaultConfig())
	if len(pd.Segments()) != 3 || pd.Islands() != 3 {
		t.Fatalf("expected 3 segments on 3 islands, got %d on %d", len(pd.Segments()), pd.Islands())
	}

	g := pd.ForMover(testMover(3, 6, 0), testPhysics)
	if g.Len() != 2 {
		t.Fatalf("expected the 600px segment to be filtered out, graph has %d nodes", g.Len())
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected validate error: %v", err)
	}
	for i := 0; i < g.Len(); i++ {
		if g.Segment(i).Rect.MinX == 600 {
			t.Fatalf("segment at 600px should be excluded")
		}
		if g.SourceIndex(i) != i {
			t.Fatalf("node %d maps to source %d", i, g.SourceIndex(i))
		}
	}
}

func TestPathDataForMoverReindexes(t *testing.T) {
	pd := NewPathData([]iter.Seq[SurfacePoint]{
		pointsSeq(SurfacePoint{0, 0}),
		pointsSeq(SurfacePoint{1000, 0}),
		pointsSeq(SurfacePoint{1010, 0}),
	}, nil, DefaultConfig())

	npc := testMover(3, 6, 0)
	npc.Position = cp.Vector{X: 1005, Y: 0}
	g := pd.ForMover(npc, testPhysics)
	if g.Len() != 2 {
		t.Fatalf("expected two nodes near the mover, got %d", g.Len())
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected validate error: %v", err)
	}
	if g.SourceIndex(0) != 1 || g.SourceIndex(1) != 2 {
		t.Fatalf("unexpected source mapping %d, %d", g.SourceIndex(0), g.SourceIndex(1))
	}
	if got := g.Nearest(cp.Vector{X: 1009, Y: -3}); got != 1 {
		t.Fatalf("expected nearest node 1, got %d", got)
	}
}
