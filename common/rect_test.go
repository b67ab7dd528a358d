package common

import "testing"

func TestRectTouches(t *testing.T) {
	cases := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"same_pixel", PointRect(0, 0), PointRect(0, 0), true},
		{"horizontal_neighbour", PointRect(0, 0), PointRect(1, 0), true},
		{"diagonal_neighbour", PointRect(0, 0), PointRect(1, 1), true},
		{"one_pixel_gap", PointRect(0, 0), PointRect(2, 0), true},
		{"two_pixel_gap", PointRect(0, 0), PointRect(3, 0), false},
		{"overlap", Rect{0, 0, 10, 2}, Rect{5, 1, 20, 1}, true},
		{"stacked_one_row_gap", Rect{0, 0, 10, 0}, Rect{0, 2, 10, 2}, true},
		{"stacked_gap", Rect{0, 0, 10, 0}, Rect{0, 3, 10, 3}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Touches(c.b); got != c.want {
				t.Fatalf("Touches(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
			if got := c.b.Touches(c.a); got != c.want {
				t.Fatalf("Touches is not symmetric for %v, %v", c.a, c.b)
			}
		})
	}
}

func TestRectGrowAndCenter(t *testing.T) {
	r := PointRect(4, 10).Grow(0, 12).Grow(8, 11)
	want := Rect{MinX: 0, MinY: 10, MaxX: 8, MaxY: 12}
	if r != want {
		t.Fatalf("expected %v, got %v", want, r)
	}
	if r.Width() != 9 || r.Height() != 3 {
		t.Fatalf("unexpected size %dx%d", r.Width(), r.Height())
	}
	if r.CenterX() != 4 || r.CenterY() != 11 {
		t.Fatalf("unexpected centre (%v, %v)", r.CenterX(), r.CenterY())
	}
}

func TestRectDistanceSq(t *testing.T) {
	r := RectFromSize(0, 0, 10, 10)
	if d := r.DistanceSq(5, 5); d != 0 {
		t.Fatalf("inside point should be at distance 0, got %v", d)
	}
	if d := r.DistanceSq(12, 13); d != 2*2+4*4 {
		t.Fatalf("expected 20, got %v", d)
	}
}
