package common

// Rect is an integer pixel rectangle with inclusive bounds. A single pixel
// at (x, y) is Rect{MinX: x, MinY: y, MaxX: x, MaxY: y}.
type Rect struct {
	MinX, MinY int
	MaxX, MaxY int
}

// PointRect returns the one pixel rect at (x, y).
func PointRect(x, y int) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x, MaxY: y}
}

// RectFromSize builds a rect from a top-left corner and a size in pixels.
// Non-positive sizes produce the single pixel at (x, y).
func RectFromSize(x, y, w, h int) Rect {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return Rect{MinX: x, MinY: y, MaxX: x + w - 1, MaxY: y + h - 1}
}

func (r Rect) Width() int  { return r.MaxX - r.MinX + 1 }
func (r Rect) Height() int { return r.MaxY - r.MinY + 1 }

// CenterX returns the horizontal centre of the covered pixels.
func (r Rect) CenterX() float64 { return float64(r.MinX+r.MaxX) / 2 }

// CenterY returns the vertical centre of the covered pixels.
func (r Rect) CenterY() float64 { return float64(r.MinY+r.MaxY) / 2 }

// Grow returns the smallest rect covering r and the pixel (x, y).
func (r Rect) Grow(x, y int) Rect {
	if x < r.MinX {
		r.MinX = x
	}
	if x > r.MaxX {
		r.MaxX = x
	}
	if y < r.MinY {
		r.MinY = y
	}
	if y > r.MaxY {
		r.MaxY = y
	}
	return r
}

// Union returns the smallest rect covering both rects.
func (r Rect) Union(o Rect) Rect {
	return r.Grow(o.MinX, o.MinY).Grow(o.MaxX, o.MaxY)
}

// Expand grows every side by n pixels.
func (r Rect) Expand(n int) Rect {
	return Rect{MinX: r.MinX - n, MinY: r.MinY - n, MaxX: r.MaxX + n, MaxY: r.MaxY + n}
}

func (r Rect) Intersects(other Rect) bool {
	return r.MinX <= other.MaxX &&
		r.MaxX >= other.MinX &&
		r.MinY <= other.MaxY &&
		r.MaxY >= other.MinY
}

// Touches reports whether r and other overlap once both are expanded by one
// pixel, so rects separated by a single empty pixel still touch.
func (r Rect) Touches(other Rect) bool {
	return r.Expand(1).Intersects(other.Expand(1))
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// DistanceSq returns the squared distance from (x, y) to the closest point
// of the rect, zero when the point lies inside.
func (r Rect) DistanceSq(x, y float64) float64 {
	dx := 0.0
	if x < float64(r.MinX) {
		dx = float64(r.MinX) - x
	} else if x > float64(r.MaxX) {
		dx = x - float64(r.MaxX)
	}
	dy := 0.0
	if y < float64(r.MinY) {
		dy = float64(r.MinY) - y
	} else if y > float64(r.MaxY) {
		dy = y - float64(r.MaxY)
	}
	return dx*dx + dy*dy
}
