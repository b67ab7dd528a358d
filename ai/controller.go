// Package ai turns navigation routes into per-frame movement input.
package ai

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/groundnav/common"
	"github.com/milk9111/groundnav/nav"
)

const (
	defaultArriveDistance = 4.0
	defaultLandTolerance  = 6.0
)

// Input is the movement request for one frame.
type Input struct {
	Move int // -1 left, 0 idle, 1 right
	Jump bool
}

// Controller walks a mover along a route one checkpoint at a time and
// presses jump once at every checkpoint that needs it.
type Controller struct {
	ArriveDistance float64
	LandTolerance  float64

	graph    *nav.Graph
	path     []nav.CheckPoint
	next     int
	jumped   bool
	airborne bool
	stuck    bool
}

func NewController() *Controller {
	return &Controller{
		ArriveDistance: defaultArriveDistance,
		LandTolerance:  defaultLandTolerance,
	}
}

// Follow replaces the current route. The first checkpoint is the segment
// the mover starts on.
func (c *Controller) Follow(g *nav.Graph, path []nav.CheckPoint) {
	c.graph = g
	c.path = path
	c.next = 1
	c.jumped = false
	c.airborne = false
	c.stuck = false
}

// Done reports whether there is nothing left to follow.
func (c *Controller) Done() bool {
	return c.graph == nil || c.next >= len(c.path)
}

// Stuck reports a jump that landed somewhere other than its target; the
// caller should plan a new route.
func (c *Controller) Stuck() bool {
	return c.stuck
}

// Current returns the checkpoint being travelled to.
func (c *Controller) Current() (nav.CheckPoint, bool) {
	if c.Done() {
		return nav.CheckPoint{}, false
	}
	return c.path[c.next], true
}

// Step returns the input for the mover whose foot is at foot.
func (c *Controller) Step(foot cp.Vector, grounded bool) Input {
	if c.Done() || c.stuck {
		return Input{}
	}

	target := c.graph.Segment(c.path[c.next].Segment)
	if grounded && c.standingOn(foot, target) {
		c.next++
		c.jumped = false
		c.airborne = false
		if c.Done() {
			return Input{}
		}
		target = c.graph.Segment(c.path[c.next].Segment)
	}

	if c.jumped {
		if !grounded {
			c.airborne = true
		} else if c.airborne {
			c.stuck = true
			return Input{}
		}
		return Input{Move: c.toward(foot.X, target.Rect.CenterX())}
	}

	step := c.path[c.next]
	if !step.Jump {
		return Input{Move: c.toward(foot.X, target.Rect.CenterX())}
	}

	// Jumps are launched from the centre of the segment being left.
	from := c.graph.Segment(c.path[c.next-1].Segment)
	if move := c.toward(foot.X, from.Rect.CenterX()); move != 0 {
		return Input{Move: move}
	}
	if !grounded {
		return Input{}
	}
	c.jumped = true
	c.airborne = false
	return Input{Move: directionInput(step.Direction), Jump: true}
}

func (c *Controller) standingOn(foot cp.Vector, s nav.PathSegment) bool {
	if foot.X < float64(s.Rect.MinX)-c.ArriveDistance || foot.X > float64(s.Rect.MaxX)+c.ArriveDistance {
		return false
	}
	return math.Abs(foot.Y-float64(s.Rect.MinY)) <= c.LandTolerance
}

func (c *Controller) toward(x, targetX float64) int {
	d := targetX - x
	if math.Abs(d) <= c.ArriveDistance {
		return 0
	}
	return common.Sign(d)
}

func directionInput(d nav.Direction) int {
	switch d {
	case nav.DirectionLeft:
		return -1
	case nav.DirectionRight:
		return 1
	}
	return 0
}
