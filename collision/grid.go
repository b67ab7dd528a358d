// Package collision holds the point-sample collision stores the navigator
// queries, and the per-entity silhouettes it clusters.
package collision

import (
	"image"
	"iter"

	"github.com/milk9111/groundnav/common"
	"github.com/milk9111/groundnav/nav"
)

// Grid is a pixel collision mask with registered entity regions. It is built
// once per world state and passed to the navigator explicitly.
type Grid struct {
	width    int
	height   int
	bits     []uint64
	entities []common.Rect
}

func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		width:  width,
		height: height,
		bits:   make([]uint64, (width*height+63)/64),
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Bounds returns the pixel rect covered by the grid.
func (g *Grid) Bounds() common.Rect {
	return common.RectFromSize(0, 0, g.width, g.height)
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Collides reports whether (x, y) is solid. Coordinates outside the grid are
// never solid.
func (g *Grid) Collides(x, y int) bool {
	if g == nil || !g.inBounds(x, y) {
		return false
	}
	idx := y*g.width + x
	return g.bits[idx/64]&(1<<(idx%64)) != 0
}

func (g *Grid) Set(x, y int, solid bool) {
	if !g.inBounds(x, y) {
		return
	}
	idx := y*g.width + x
	if solid {
		g.bits[idx/64] |= 1 << (idx % 64)
	} else {
		g.bits[idx/64] &^= 1 << (idx % 64)
	}
}

// Fill marks every pixel of r that lies inside the grid as solid.
func (g *Grid) Fill(r common.Rect) {
	for y := max(r.MinY, 0); y <= min(r.MaxY, g.height-1); y++ {
		for x := max(r.MinX, 0); x <= min(r.MaxX, g.width-1); x++ {
			g.Set(x, y, true)
		}
	}
}

// AddEntity registers r as one entity's region, fills it and returns the
// entity id.
func (g *Grid) AddEntity(r common.Rect) int {
	g.Fill(r)
	return g.RegisterEntity(r)
}

// RegisterEntity records r as an entity region without touching the mask.
func (g *Grid) RegisterEntity(r common.Rect) int {
	g.entities = append(g.entities, r)
	return len(g.entities) - 1
}

// AddAlpha marks the opaque pixels of img as solid with its bounds moved to
// at, and registers the covered region as one entity.
func (g *Grid) AddAlpha(img image.Image, at image.Point) int {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0 {
				g.Set(x-b.Min.X+at.X, y-b.Min.Y+at.Y, true)
			}
		}
	}
	return g.RegisterEntity(common.RectFromSize(at.X, at.Y, b.Dx(), b.Dy()))
}

func (g *Grid) Entities() []common.Rect {
	return append([]common.Rect(nil), g.entities...)
}

// Silhouette yields the topmost solid pixel of every column of r. The
// sequence reads the grid lazily and can be ranged over repeatedly.
func (g *Grid) Silhouette(r common.Rect) iter.Seq[nav.SurfacePoint] {
	return func(yield func(nav.SurfacePoint) bool) {
		for x := max(r.MinX, 0); x <= min(r.MaxX, g.width-1); x++ {
			for y := max(r.MinY, 0); y <= min(r.MaxY, g.height-1); y++ {
				if !g.Collides(x, y) {
					continue
				}
				if !yield(nav.SurfacePoint{X: x, Y: y}) {
					return
				}
				break
			}
		}
	}
}

// Silhouettes returns one surface sequence per registered entity.
func (g *Grid) Silhouettes() []iter.Seq[nav.SurfacePoint] {
	out := make([]iter.Seq[nav.SurfacePoint], 0, len(g.entities))
	for _, r := range g.entities {
		out = append(out, g.Silhouette(r))
	}
	return out
}
