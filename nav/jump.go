package nav

import (
	"math"

	"github.com/milk9111/groundnav/common"
)

// JumpOracle decides whether a mover can jump from one segment onto another.
//
// The check is a tuned approximation rather than exact ballistics: the rise
// to the apex is sampled at a fixed number of steps, a single mid-air hit
// turns into a fall from the hit point, and the landing height at the
// target's centre column is compared against a speed dependent tolerance.
type JumpOracle struct {
	cfg      Config
	collider Collider
}

func NewJumpOracle(cfg Config, collider Collider) JumpOracle {
	return JumpOracle{cfg: cfg.WithDefaults(), collider: collider}
}

// Tolerance returns the allowed landing error in pixels for a horizontal
// speed in units/s. Faster movers get a tighter tolerance.
func (o JumpOracle) Tolerance(speed float64) float64 {
	speed = math.Abs(speed)
	if speed == 0 {
		return 0
	}
	c := o.cfg
	b := (c.WalkTolerance - c.RunTolerance) / (1/c.WalkSpeed - 1/c.RunSpeed)
	a := c.WalkTolerance - b/c.WalkSpeed
	return math.Max(a+b/speed, c.MinTolerance) * c.Epsilon
}

// Feasible reports whether a jump launched from the top centre of from lands
// on the top centre column of to.
func (o JumpOracle) Feasible(from, to common.Rect, npc NpcMetadata, phys PhysicsConstants) bool {
	x0, y0 := from.CenterX(), float64(from.MinY)
	x1, y1 := to.CenterX(), float64(to.MinY)
	dx := x1 - x0
	if math.Abs(dx) > o.cfg.MaxJumpReach {
		return false
	}

	vx := math.Abs(npc.MoveSpeed) * phys.PixelsPerUnit
	vy := npc.JumpSpeed * phys.PixelsPerUnit
	g := math.Abs(phys.Gravity) * phys.PixelsPerUnit
	if vx <= 0 || vy <= 0 || g <= 0 {
		return false
	}

	if rise := y0 - y1; rise > vy*vy/(2*g) {
		return false
	}

	dir := float64(common.Sign(dx))
	launchX, launchY, launchVY := x0, y0, vy
	stepT := vy / g / float64(o.cfg.TrajectorySteps)
	for i := 1; i <= o.cfg.TrajectorySteps; i++ {
		t := float64(i) * stepT
		px := x0 + dir*vx*t
		py := y0 - (vy*t - 0.5*g*t*t)
		if o.collides(common.RoundInt(px), common.RoundInt(py-npc.HeightOffset)) {
			// Re-launch from the hit with the vertical speed spent.
			launchX, launchY, launchVY = px, py, 0
			break
		}
	}

	t := math.Abs(x1-launchX) / vx
	y := launchY - (launchVY*t - 0.5*g*t*t)
	return math.Abs(y-y1) < o.Tolerance(npc.MoveSpeed)
}

func (o JumpOracle) collides(x, y int) bool {
	if o.collider == nil {
		return false
	}
	return o.collider.Collides(x, y)
}
