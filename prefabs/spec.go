package prefabs

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/groundnav/nav"
	"gopkg.in/yaml.v3"
)

var ErrUnknownMover = errors.New("prefabs: unknown mover")

const (
	NavFile    = "nav.yaml"
	MoversFile = "movers.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type NavSpec struct {
	Name              string        `yaml:"name"`
	MaxSegmentPoints  int           `yaml:"max_segment_points"`
	JoinDistance      float64       `yaml:"join_distance"`
	QueryRadius       float64       `yaml:"query_radius"`
	MaxJumpReach      float64       `yaml:"max_jump_reach"`
	TrajectorySteps   int           `yaml:"trajectory_steps"`
	MaxHops           int           `yaml:"max_hops"`
	UpwardJumpPenalty float64       `yaml:"upward_jump_penalty"`
	Tolerance         ToleranceSpec `yaml:"tolerance"`
}

type ToleranceSpec struct {
	Epsilon   float64 `yaml:"epsilon"`
	WalkSpeed float64 `yaml:"walk_speed"`
	Walk      float64 `yaml:"walk"`
	RunSpeed  float64 `yaml:"run_speed"`
	Run       float64 `yaml:"run"`
	Min       float64 `yaml:"min"`
}

// Config converts the spec to a validated nav.Config; omitted fields take
// the nav defaults.
func (s NavSpec) Config() (nav.Config, error) {
	cfg := nav.Config{
		MaxSegmentPoints:  s.MaxSegmentPoints,
		JoinDistance:      s.JoinDistance,
		QueryRadius:       s.QueryRadius,
		MaxJumpReach:      s.MaxJumpReach,
		TrajectorySteps:   s.TrajectorySteps,
		MaxHops:           s.MaxHops,
		UpwardJumpPenalty: s.UpwardJumpPenalty,
		Epsilon:           s.Tolerance.Epsilon,
		WalkSpeed:         s.Tolerance.WalkSpeed,
		WalkTolerance:     s.Tolerance.Walk,
		RunSpeed:          s.Tolerance.RunSpeed,
		RunTolerance:      s.Tolerance.Run,
		MinTolerance:      s.Tolerance.Min,
	}.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nav.Config{}, fmt.Errorf("prefabs: nav spec %q: %w", s.Name, err)
	}
	return cfg, nil
}

func LoadNavConfig() (nav.Config, error) {
	spec, err := LoadSpec[NavSpec](NavFile)
	if err != nil {
		return nav.Config{}, err
	}
	return spec.Config()
}

type PhysicsSpec struct {
	Gravity       float64 `yaml:"gravity"`
	PixelsPerUnit float64 `yaml:"pixels_per_unit"`
}

func (s PhysicsSpec) Constants() nav.PhysicsConstants {
	return nav.PhysicsConstants{Gravity: s.Gravity, PixelsPerUnit: s.PixelsPerUnit}
}

type MoverSpec struct {
	Name         string  `yaml:"name"`
	MoveSpeed    float64 `yaml:"move_speed"`
	JumpSpeed    float64 `yaml:"jump_speed"`
	HeightOffset float64 `yaml:"height_offset"`
	Scorer       string  `yaml:"scorer"`
}

// Npc returns the mover's metadata with its body top centre at position.
func (s MoverSpec) Npc(position, velocity cp.Vector) nav.NpcMetadata {
	return nav.NpcMetadata{
		BeingMetadata: nav.BeingMetadata{
			Position:     position,
			Velocity:     velocity,
			HeightOffset: s.HeightOffset,
		},
		MoveSpeed: s.MoveSpeed,
		JumpSpeed: s.JumpSpeed,
	}
}

type MoversSpec struct {
	Physics PhysicsSpec `yaml:"physics"`
	Movers  []MoverSpec `yaml:"movers"`
}

func (s MoversSpec) Find(name string) (MoverSpec, error) {
	for _, m := range s.Movers {
		if m.Name == name {
			return m, nil
		}
	}
	return MoverSpec{}, fmt.Errorf("%w: %q", ErrUnknownMover, name)
}

func LoadMovers() (MoversSpec, error) {
	spec, err := LoadSpec[MoversSpec](MoversFile)
	if err != nil {
		return MoversSpec{}, err
	}
	if spec.Physics.PixelsPerUnit <= 0 {
		return MoversSpec{}, fmt.Errorf("prefabs: %s: pixels_per_unit must be positive", MoversFile)
	}
	return spec, nil
}
