// Package nav finds ground routes for NPCs over terrain that only exists as
// collision silhouettes. Surface points are clustered into path segments,
// segments are linked by contact or by verified jump arcs, and a bounded
// heuristic search turns the graph into walk / jump checkpoints.
package nav

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/groundnav/common"
)

// SurfacePoint is the topmost collision pixel of one x column of an entity.
type SurfacePoint struct {
	X int
	Y int
}

// PathSegment is a frozen cluster of surface points.
type PathSegment struct {
	Rect   common.Rect
	Index  int
	Island int
	Points int
}

// TopCenter is the point a mover stands on when it is centred on the segment.
func (s PathSegment) TopCenter() cp.Vector {
	return cp.Vector{X: s.Rect.CenterX(), Y: float64(s.Rect.MinY)}
}

// Center is the centre of the segment rect.
func (s PathSegment) Center() cp.Vector {
	return cp.Vector{X: s.Rect.CenterX(), Y: s.Rect.CenterY()}
}

// BeingMetadata describes any body the navigator reasons about. Position is
// the top centre of the body; HeightOffset is the distance from there down to
// the logical foot point.
type BeingMetadata struct {
	Position     cp.Vector
	Velocity     cp.Vector
	HeightOffset float64
}

// Foot returns the point the being stands on.
func (b BeingMetadata) Foot() cp.Vector {
	return cp.Vector{X: b.Position.X, Y: b.Position.Y + b.HeightOffset}
}

// NpcMetadata adds walking and jumping kinematics in units/s.
type NpcMetadata struct {
	BeingMetadata
	MoveSpeed float64
	JumpSpeed float64
}

// PhysicsConstants holds the world scale. Gravity is the magnitude of the
// downward pull in units/s²; its sign is ignored.
type PhysicsConstants struct {
	Gravity       float64
	PixelsPerUnit float64
}

// Direction is the horizontal travel direction into a checkpoint.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	}
	return "none"
}

// CheckPoint is one hop of a route.
type CheckPoint struct {
	Segment   int
	Direction Direction
	Jump      bool
}

// Collider answers point samples against the world. Implementations must
// return false for coordinates outside the loaded world.
type Collider interface {
	Collides(x, y int) bool
}

// ColliderFunc adapts a function to Collider.
type ColliderFunc func(x, y int) bool

func (f ColliderFunc) Collides(x, y int) bool {
	if f == nil {
		return false
	}
	return f(x, y)
}

func directionBetween(from, to PathSegment) Direction {
	switch common.Sign(to.Rect.CenterX() - from.Rect.CenterX()) {
	case -1:
		return DirectionLeft
	case 1:
		return DirectionRight
	}
	return DirectionNone
}
