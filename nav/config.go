package nav

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("nav: invalid config")

// Config holds the bounds that decide how much work a path query does.
type Config struct {
	// MaxSegmentPoints caps how many surface points one segment absorbs.
	MaxSegmentPoints int
	// JoinDistance is the exclusive pixel distance from a segment's last
	// point within which a new point is appended.
	JoinDistance float64
	// QueryRadius filters segments by rect centre distance to the mover.
	QueryRadius float64
	// MaxJumpReach rejects jumps whose horizontal centre gap exceeds it.
	MaxJumpReach float64
	// TrajectorySteps is the number of collision samples taken on the rise.
	TrajectorySteps int
	// MaxHops bounds the length of a route.
	MaxHops int
	// UpwardJumpPenalty is added to the score of upward jump edges.
	UpwardJumpPenalty float64

	// Landing tolerance, in multiples of Epsilon pixels, is fitted through
	// (WalkSpeed, WalkTolerance) and (RunSpeed, RunTolerance) as a + b/speed.
	Epsilon       float64
	WalkSpeed     float64
	WalkTolerance float64
	RunSpeed      float64
	RunTolerance  float64
	MinTolerance  float64
}

func DefaultConfig() Config {
	return Config{
		MaxSegmentPoints:  16,
		JoinDistance:      4,
		QueryRadius:       512,
		MaxJumpReach:      256,
		TrajectorySteps:   8,
		MaxHops:           10,
		UpwardJumpPenalty: 256,
		Epsilon:           4,
		WalkSpeed:         3,
		WalkTolerance:     4,
		RunSpeed:          8,
		RunTolerance:      0.5,
		MinTolerance:      0.25,
	}
}

// WithDefaults fills zero fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.MaxSegmentPoints == 0 {
		c.MaxSegmentPoints = d.MaxSegmentPoints
	}
	if c.JoinDistance == 0 {
		c.JoinDistance = d.JoinDistance
	}
	if c.QueryRadius == 0 {
		c.QueryRadius = d.QueryRadius
	}
	if c.MaxJumpReach == 0 {
		c.MaxJumpReach = d.MaxJumpReach
	}
	if c.TrajectorySteps == 0 {
		c.TrajectorySteps = d.TrajectorySteps
	}
	if c.MaxHops == 0 {
		c.MaxHops = d.MaxHops
	}
	if c.UpwardJumpPenalty == 0 {
		c.UpwardJumpPenalty = d.UpwardJumpPenalty
	}
	if c.Epsilon == 0 {
		c.Epsilon = d.Epsilon
	}
	if c.WalkSpeed == 0 {
		c.WalkSpeed = d.WalkSpeed
	}
	if c.WalkTolerance == 0 {
		c.WalkTolerance = d.WalkTolerance
	}
	if c.RunSpeed == 0 {
		c.RunSpeed = d.RunSpeed
	}
	if c.RunTolerance == 0 {
		c.RunTolerance = d.RunTolerance
	}
	if c.MinTolerance == 0 {
		c.MinTolerance = d.MinTolerance
	}
	return c
}

func (c Config) Validate() error {
	switch {
	case c.MaxSegmentPoints <= 0:
		return fmt.Errorf("%w: max segment points %d", ErrInvalidConfig, c.MaxSegmentPoints)
	case c.JoinDistance <= 0:
		return fmt.Errorf("%w: join distance %v", ErrInvalidConfig, c.JoinDistance)
	case c.QueryRadius <= 0:
		return fmt.Errorf("%w: query radius %v", ErrInvalidConfig, c.QueryRadius)
	case c.MaxJumpReach <= 0:
		return fmt.Errorf("%w: max jump reach %v", ErrInvalidConfig, c.MaxJumpReach)
	case c.TrajectorySteps <= 0:
		return fmt.Errorf("%w: trajectory steps %d", ErrInvalidConfig, c.TrajectorySteps)
	case c.MaxHops <= 0:
		return fmt.Errorf("%w: max hops %d", ErrInvalidConfig, c.MaxHops)
	case c.UpwardJumpPenalty < 0:
		return fmt.Errorf("%w: upward jump penalty %v", ErrInvalidConfig, c.UpwardJumpPenalty)
	case c.Epsilon <= 0:
		return fmt.Errorf("%w: epsilon %v", ErrInvalidConfig, c.Epsilon)
	case c.WalkSpeed <= 0 || c.RunSpeed <= 0 || c.WalkSpeed == c.RunSpeed:
		return fmt.Errorf("%w: tolerance speeds %v and %v", ErrInvalidConfig, c.WalkSpeed, c.RunSpeed)
	case c.MinTolerance < 0:
		return fmt.Errorf("%w: min tolerance %v", ErrInvalidConfig, c.MinTolerance)
	}
	return nil
}
