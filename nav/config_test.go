package nav

import (
	"errors"
	"testing"
)

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{MaxHops: 4, QueryRadius: 128}.WithDefaults()
	if cfg.MaxHops != 4 || cfg.QueryRadius != 128 {
		t.Fatalf("explicit fields should be kept: %+v", cfg)
	}
	d := DefaultConfig()
	if cfg.MaxSegmentPoints != d.MaxSegmentPoints || cfg.TrajectorySteps != d.TrajectorySteps {
		t.Fatalf("zero fields should be defaulted: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"segment_points", func(c *Config) { c.MaxSegmentPoints = -1 }},
		{"join_distance", func(c *Config) { c.JoinDistance = 0 }},
		{"hops", func(c *Config) { c.MaxHops = 0 }},
		{"steps", func(c *Config) { c.TrajectorySteps = -8 }},
		{"penalty", func(c *Config) { c.UpwardJumpPenalty = -1 }},
		{"equal_speeds", func(c *Config) { c.RunSpeed = c.WalkSpeed }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
