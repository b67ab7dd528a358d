package nav

import (
	"iter"
	"slices"
	"testing"

	"github.com/milk9111/groundnav/common"
)

func pointsSeq(points ...SurfacePoint) iter.Seq[SurfacePoint] {
	return func(yield func(SurfacePoint) bool) {
		for _, p := range points {
			if !yield(p) {
				return
			}
		}
	}
}

func runSeq(x0, x1, y int) iter.Seq[SurfacePoint] {
	return func(yield func(SurfacePoint) bool) {
		for x := x0; x <= x1; x++ {
			if !yield(SurfacePoint{X: x, Y: y}) {
				return
			}
		}
	}
}

// touchChain reports whether b is reachable from a through pairwise touching
// segments of the same island.
func touchChain(segs []PathSegment, a, b int) bool {
	seen := make([]bool, len(segs))
	queue := []int{a}
	seen[a] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == b {
			return true
		}
		for i, s := range segs {
			if seen[i] || s.Island != segs[cur].Island || !s.Rect.Touches(segs[cur].Rect) {
				continue
			}
			seen[i] = true
			queue = append(queue, i)
		}
	}
	return false
}

func assertClusterInvariants(t *testing.T, segs []PathSegment, cfg Config) {
	t.Helper()
	for i, s := range segs {
		if s.Index != i {
			t.Fatalf("segment %d has index %d", i, s.Index)
		}
		if s.Points > cfg.MaxSegmentPoints {
			t.Fatalf("segment %d holds %d points, cap is %d", i, s.Points, cfg.MaxSegmentPoints)
		}
	}
	for i := range segs {
		for j := i + 1; j < len(segs); j++ {
			if segs[i].Island != segs[j].Island {
				continue
			}
			if !touchChain(segs, i, j) {
				t.Fatalf("segments %d and %d share island %d without a touching chain", i, j, segs[i].Island)
			}
		}
	}
}

func TestMergeSurfaceTopmostPerColumn(t *testing.T) {
	got := MergeSurface([]iter.Seq[SurfacePoint]{
		pointsSeq(SurfacePoint{0, 5}, SurfacePoint{0, 3}, SurfacePoint{1, 4}, SurfacePoint{1, 4}),
		pointsSeq(SurfacePoint{0, 1}),
		nil,
		pointsSeq(SurfacePoint{1, 4}),
	})
	want := []SurfacePoint{{0, 1}, {0, 3}, {1, 4}}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestClusterContiguousRun(t *testing.T) {
	cfg := DefaultConfig()
	segs := Cluster([]iter.Seq[SurfacePoint]{runSeq(0, 20, 0)}, cfg)
	if len(segs) == 0 {
		t.Fatalf("expected segments")
	}
	assertClusterInvariants(t, segs, cfg)

	cover := segs[0].Rect
	for _, s := range segs {
		cover = cover.Union(s.Rect)
		if s.Island != segs[0].Island {
			t.Fatalf("segment %d on island %d, expected %d", s.Index, s.Island, segs[0].Island)
		}
	}
	if cover.MinX != 0 || cover.MaxX != 20 {
		t.Fatalf("segments cover x [%d, %d], expected [0, 20]", cover.MinX, cover.MaxX)
	}

	// 21 points with a cap of 16 split into two segments.
	want := []common.Rect{{MinX: 0, MaxX: 15}, {MinX: 16, MaxX: 20}}
	if len(segs) != len(want) {
		t.Fatalf("expected %d segments, got %d", len(want), len(segs))
	}
	for i, r := range want {
		if segs[i].Rect != r {
			t.Fatalf("segment %d: expected %v, got %v", i, r, segs[i].Rect)
		}
	}
}

func TestClusterIslands(t *testing.T) {
	cases := []struct {
		name    string
		sources []iter.Seq[SurfacePoint]
		islands int
	}{
		{"empty", nil, 0},
		{"gap_splits", []iter.Seq[SurfacePoint]{runSeq(0, 10, 0), runSeq(30, 40, 0)}, 2},
		{"step_up_joins", []iter.Seq[SurfacePoint]{runSeq(0, 10, 10), runSeq(11, 20, 9)}, 1},
		{"high_ledge_splits", []iter.Seq[SurfacePoint]{runSeq(0, 10, 10), runSeq(11, 20, 2)}, 2},
		{"three_platforms", []iter.Seq[SurfacePoint]{runSeq(0, 40, 100), runSeq(60, 90, 80), runSeq(120, 200, 100)}, 3},
	}

	cfg := DefaultConfig()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			segs := Cluster(c.sources, cfg)
			assertClusterInvariants(t, segs, cfg)
			if got := IslandCount(segs); got != c.islands {
				t.Fatalf("expected %d islands, got %d", c.islands, got)
			}
		})
	}
}

func TestClusterSharedPoint(t *testing.T) {
	// (1,2) is within join distance of both open segments' last points.
	segs := Cluster([]iter.Seq[SurfacePoint]{
		pointsSeq(SurfacePoint{0, 0}),
		pointsSeq(SurfacePoint{0, 5}),
		pointsSeq(SurfacePoint{1, 2}),
	}, DefaultConfig())
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	for _, s := range segs {
		if s.Points != 2 || !s.Rect.Contains(1, 2) {
			t.Fatalf("segment %d should hold the shared point: %+v", s.Index, s)
		}
	}
	if segs[0].Island != segs[1].Island {
		t.Fatalf("overlapping segments should end on one island")
	}
}

func TestClusterSegmentCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSegmentPoints = 4
	segs := Cluster([]iter.Seq[SurfacePoint]{runSeq(0, 30, 50), runSeq(31, 60, 48)}, cfg)
	assertClusterInvariants(t, segs, cfg)
	if len(segs) < 60/4 {
		t.Fatalf("expected at least %d segments, got %d", 60/4, len(segs))
	}
}

func TestClusterSparseRunStaysOneIsland(t *testing.T) {
	// Every other column, so the 17th point starts a segment one pixel away
	// from the full first one.
	var points []SurfacePoint
	for x := 0; x <= 32; x += 2 {
		points = append(points, SurfacePoint{X: x, Y: 50})
	}
	cfg := DefaultConfig()
	segs := Cluster([]iter.Seq[SurfacePoint]{pointsSeq(points...)}, cfg)
	assertClusterInvariants(t, segs, cfg)

	want := []common.Rect{{MinX: 0, MinY: 50, MaxX: 30, MaxY: 50}, {MinX: 32, MinY: 50, MaxX: 32, MaxY: 50}}
	if len(segs) != len(want) {
		t.Fatalf("expected %d segments, got %d", len(want), len(segs))
	}
	for i, r := range want {
		if segs[i].Rect != r {
			t.Fatalf("segment %d: expected %v, got %v", i, r, segs[i].Rect)
		}
	}
	if got := IslandCount(segs); got != 1 {
		t.Fatalf("expected one island, got %d", got)
	}
}
