package nav

import (
	"cmp"
	"iter"
	"math"
	"slices"

	"github.com/milk9111/groundnav/common"
)

// segmentBuilder accumulates points while clustering. It is never handed out;
// Cluster freezes builders into PathSegments.
type segmentBuilder struct {
	rect   common.Rect
	last   SurfacePoint
	points int
	island int
}

func (b *segmentBuilder) accepts(p SurfacePoint, cfg Config) bool {
	if b.points >= cfg.MaxSegmentPoints {
		return false
	}
	dx := float64(p.X - b.last.X)
	dy := float64(p.Y - b.last.Y)
	return math.Sqrt(dx*dx+dy*dy) < cfg.JoinDistance
}

func (b *segmentBuilder) add(p SurfacePoint) {
	b.rect = b.rect.Grow(p.X, p.Y)
	b.last = p
	b.points++
}

// MergeSurface reduces every source to its topmost point per x column, then
// merges all sources sorted by (x, y) without duplicates.
func MergeSurface(sources []iter.Seq[SurfacePoint]) []SurfacePoint {
	merged := make([]SurfacePoint, 0, 256)
	for _, src := range sources {
		if src == nil {
			continue
		}
		top := make(map[int]int)
		for p := range src {
			if y, ok := top[p.X]; !ok || p.Y < y {
				top[p.X] = p.Y
			}
		}
		for x, y := range top {
			merged = append(merged, SurfacePoint{X: x, Y: y})
		}
	}

	slices.SortFunc(merged, func(a, b SurfacePoint) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
	return slices.Compact(merged)
}

// Cluster groups surface points into segments and assigns islands. Segment
// indices follow creation order; island indices are dense and follow the
// order of the first segment of each island.
func Cluster(sources []iter.Seq[SurfacePoint], cfg Config) []PathSegment {
	cfg = cfg.WithDefaults()
	points := MergeSurface(sources)
	if len(points) == 0 {
		return nil
	}

	builders := make([]*segmentBuilder, 0, len(points)/cfg.MaxSegmentPoints+1)
	islands := 0
	for _, p := range points {
		accepted := false
		// A point may land in several open segments.
		for _, b := range builders {
			if b.accepts(p, cfg) {
				b.add(p)
				accepted = true
			}
		}
		if accepted {
			continue
		}

		nb := &segmentBuilder{rect: common.PointRect(p.X, p.Y), last: p, points: 1, island: -1}
		for _, b := range builders {
			if b.rect.Touches(nb.rect) && (nb.island < 0 || b.island < nb.island) {
				nb.island = b.island
			}
		}
		if nb.island < 0 {
			nb.island = islands
			islands++
		}
		builders = append(builders, nb)
	}

	return freeze(builders, islands)
}

// freeze unions islands whose final rects touch and renumbers them densely.
func freeze(builders []*segmentBuilder, islands int) []PathSegment {
	parent := make([]int, islands)
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	for i := 0; i < len(builders); i++ {
		for j := i + 1; j < len(builders); j++ {
			a, b := find(builders[i].island), find(builders[j].island)
			if a == b || !builders[i].rect.Touches(builders[j].rect) {
				continue
			}
			if a < b {
				parent[b] = a
			} else {
				parent[a] = b
			}
		}
	}

	renumber := make(map[int]int, islands)
	segments := make([]PathSegment, len(builders))
	for i, b := range builders {
		root := find(b.island)
		id, ok := renumber[root]
		if !ok {
			id = len(renumber)
			renumber[root] = id
		}
		segments[i] = PathSegment{Rect: b.rect, Index: i, Island: id, Points: b.points}
	}
	return segments
}

// IslandCount returns the number of distinct islands in segs.
func IslandCount(segs []PathSegment) int {
	n := 0
	for _, s := range segs {
		if s.Island+1 > n {
			n = s.Island + 1
		}
	}
	return n
}
