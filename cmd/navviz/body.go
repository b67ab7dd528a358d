package main

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/groundnav/ai"
	"github.com/milk9111/groundnav/common"
	"github.com/milk9111/groundnav/nav"
)

// maxStepUp is how far a walking body climbs onto a ledge without jumping.
const maxStepUp = 2

// body is the viewer's NPC: a vertical line from Position down to the foot
// moved with the same ballistics the jump oracle assumes.
type body struct {
	meta     nav.NpcMetadata
	phys     nav.PhysicsConstants
	grounded bool
}

func (b *body) foot() cp.Vector {
	return b.meta.Foot()
}

func (b *body) place(foot cp.Vector) {
	b.meta.Position = cp.Vector{X: foot.X, Y: foot.Y - b.meta.HeightOffset}
	b.meta.Velocity = cp.Vector{}
	b.grounded = false
}

func (b *body) step(in ai.Input, collider nav.Collider, dt float64) {
	ppu := b.phys.PixelsPerUnit
	g := b.phys.Gravity
	if g < 0 {
		g = -g
	}

	vel := b.meta.Velocity
	vel.X = float64(in.Move) * b.meta.MoveSpeed * ppu
	if in.Jump && b.grounded {
		vel.Y = -b.meta.JumpSpeed * ppu
		b.grounded = false
	}
	vel.Y += g * ppu * dt

	foot := b.foot()

	nx := foot.X + vel.X*dt
	fy := common.RoundInt(foot.Y)
	if blocked(collider, common.RoundInt(nx), fy-maxStepUp-1) {
		nx = foot.X
		vel.X = 0
	} else {
		// Walk up small steps.
		for up := 0; up <= maxStepUp && blocked(collider, common.RoundInt(nx), fy-1); up++ {
			fy--
			foot.Y = float64(fy)
		}
	}
	foot.X = nx

	ny := foot.Y + vel.Y*dt
	x := common.RoundInt(foot.X)
	switch {
	case vel.Y > 0 && landing(collider, x, foot.Y, ny) >= 0:
		ny = float64(landing(collider, x, foot.Y, ny))
		vel.Y = 0
		b.grounded = true
	case vel.Y < 0 && blocked(collider, x, common.RoundInt(ny-b.meta.HeightOffset)):
		ny = foot.Y
		vel.Y = 0
	default:
		b.grounded = false
	}

	b.meta.Velocity = vel
	b.meta.Position = cp.Vector{X: foot.X, Y: ny - b.meta.HeightOffset}
}

// landing returns the first solid row crossed falling from y0 to y1 at
// column x, or -1.
func landing(collider nav.Collider, x int, y0, y1 float64) int {
	for y := common.RoundInt(y0); y <= common.RoundInt(y1); y++ {
		if blocked(collider, x, y) {
			for y > 0 && blocked(collider, x, y-1) {
				y--
			}
			return y
		}
	}
	return -1
}

func blocked(collider nav.Collider, x, y int) bool {
	return collider != nil && collider.Collides(x, y)
}
