package main

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/groundnav/ai"
	"github.com/milk9111/groundnav/collision"
	"github.com/milk9111/groundnav/common"
	"github.com/milk9111/groundnav/nav"
)

const testDT = 1.0 / 60

func testBody(foot cp.Vector) *body {
	b := &body{
		meta: nav.NpcMetadata{
			BeingMetadata: nav.BeingMetadata{HeightOffset: 10},
			MoveSpeed:     60,
			JumpSpeed:     300,
		},
		phys: nav.PhysicsConstants{Gravity: 600, PixelsPerUnit: 1},
	}
	b.place(foot)
	return b
}

func floor() *collision.Grid {
	g := collision.NewGrid(100, 100)
	g.Fill(common.Rect{MinX: 0, MinY: 50, MaxX: 99, MaxY: 99})
	return g
}

func TestBodyFallsOntoGround(t *testing.T) {
	grid := floor()
	b := testBody(cp.Vector{X: 10, Y: 20})
	for range 120 {
		b.step(ai.Input{}, grid, testDT)
	}
	if !b.grounded {
		t.Fatalf("expected grounded body")
	}
	if foot := b.foot(); foot.Y != 50 {
		t.Fatalf("expected foot on the floor top, got %v", foot)
	}
}

func TestBodyWalks(t *testing.T) {
	cases := []struct {
		name string
		move int
	}{
		{"right", 1},
		{"left", -1},
		{"idle", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grid := floor()
			b := testBody(cp.Vector{X: 30, Y: 50})
			b.step(ai.Input{}, grid, testDT)
			for range 30 {
				b.step(ai.Input{Move: tc.move}, grid, testDT)
				if !b.grounded {
					t.Fatalf("walking body left the ground at %v", b.foot())
				}
			}
			foot := b.foot()
			want := 30 + float64(tc.move)*30
			if math.Abs(foot.X-want) > 1e-6 || foot.Y != 50 {
				t.Fatalf("expected foot at (%v, 50), got %v", want, foot)
			}
		})
	}
}

func TestBodyJumps(t *testing.T) {
	grid := floor()
	b := testBody(cp.Vector{X: 30, Y: 50})
	b.step(ai.Input{}, grid, testDT)
	b.step(ai.Input{Jump: true}, grid, testDT)
	if b.grounded || b.foot().Y >= 50 {
		t.Fatalf("expected airborne body, got %v grounded=%v", b.foot(), b.grounded)
	}

	for range 120 {
		b.step(ai.Input{}, grid, testDT)
	}
	if !b.grounded || b.foot().Y != 50 {
		t.Fatalf("expected body back on the floor, got %v", b.foot())
	}
}

func TestBodyStopsAtWall(t *testing.T) {
	grid := floor()
	grid.Fill(common.Rect{MinX: 40, MinY: 0, MaxX: 99, MaxY: 99})
	b := testBody(cp.Vector{X: 30, Y: 50})
	for range 60 {
		b.step(ai.Input{Move: 1}, grid, testDT)
	}
	if foot := b.foot(); foot.X >= 40 {
		t.Fatalf("walked into the wall: %v", foot)
	}
}
