package nav

import (
	"iter"

	"github.com/jakecoffman/cp"
)

// PathData is the clustering result for one world state. It is read only
// after construction and can hand out graphs for any number of movers.
type PathData struct {
	cfg      Config
	collider Collider
	segments []PathSegment
	islands  int
}

// NewPathData clusters the surface of every source. This is the expensive
// pass; rerun it only when the collision world changes.
func NewPathData(sources []iter.Seq[SurfacePoint], collider Collider, cfg Config) *PathData {
	cfg = cfg.WithDefaults()
	segs := Cluster(sources, cfg)
	return &PathData{
		cfg:      cfg,
		collider: collider,
		segments: segs,
		islands:  IslandCount(segs),
	}
}

func (pd *PathData) Config() Config {
	return pd.cfg
}

// Segments returns a copy of all clustered segments.
func (pd *PathData) Segments() []PathSegment {
	return append([]PathSegment(nil), pd.segments...)
}

func (pd *PathData) Islands() int {
	return pd.islands
}

// ForMover builds the navigation graph for one mover from the segments whose
// rect centre lies within the query radius of the mover's foot.
func (pd *PathData) ForMover(npc NpcMetadata, phys PhysicsConstants) *Graph {
	foot := npc.Foot()
	r2 := pd.cfg.QueryRadius * pd.cfg.QueryRadius

	local := make([]PathSegment, 0, len(pd.segments))
	source := make([]int, 0, len(pd.segments))
	for _, s := range pd.segments {
		if s.Center().DistanceSq(foot) > r2 {
			continue
		}
		source = append(source, s.Index)
		s.Index = len(local)
		local = append(local, s)
	}

	g := BuildGraph(local, npc, phys, NewJumpOracle(pd.cfg, pd.collider))
	g.source = source
	return g
}

// PathTo routes the graph's mover from its nearest segment to the segment
// nearest dest. It returns nil when no route exists.
func (g *Graph) PathTo(dest cp.Vector, scorer Scorer) []CheckPoint {
	start := g.Nearest(g.npc.Foot())
	goal := g.Nearest(dest)
	if start < 0 || goal < 0 {
		return nil
	}
	return g.FindPath(start, goal, scorer)
}
