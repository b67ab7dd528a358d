package collision

import (
	"iter"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/groundnav/common"
	"github.com/milk9111/groundnav/nav"
)

const collisionTypeSolid cp.CollisionType = 1

// SpaceCollider answers point samples against static chipmunk boxes. Use it
// when the level geometry already lives in a physics space.
type SpaceCollider struct {
	space *cp.Space
	boxes []common.Rect
}

func NewSpaceCollider() *SpaceCollider {
	return &SpaceCollider{space: cp.NewSpace()}
}

// AddBox adds a static box covering the pixels of r.
func (sc *SpaceCollider) AddBox(r common.Rect) {
	bb := cp.BB{L: float64(r.MinX), B: float64(r.MinY), R: float64(r.MaxX + 1), T: float64(r.MaxY + 1)}
	shape := cp.NewBox2(sc.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	sc.space.AddShape(shape)
	sc.boxes = append(sc.boxes, r)
}

// Collides samples the centre of pixel (x, y).
func (sc *SpaceCollider) Collides(x, y int) bool {
	if sc == nil || sc.space == nil {
		return false
	}
	p := cp.Vector{X: float64(x) + 0.5, Y: float64(y) + 0.5}
	info := sc.space.PointQueryNearest(p, 0, cp.SHAPE_FILTER_ALL)
	return info != nil && info.Shape != nil && info.Distance < 0
}

// Silhouettes yields the top edge of every box as its own entity.
func (sc *SpaceCollider) Silhouettes() []iter.Seq[nav.SurfacePoint] {
	out := make([]iter.Seq[nav.SurfacePoint], 0, len(sc.boxes))
	for _, r := range sc.boxes {
		out = append(out, func(yield func(nav.SurfacePoint) bool) {
			for x := r.MinX; x <= r.MaxX; x++ {
				if !yield(nav.SurfacePoint{X: x, Y: r.MinY}) {
					return
				}
			}
		})
	}
	return out
}
