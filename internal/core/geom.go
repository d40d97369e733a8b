// Package core holds the terminal-independent types shared by games and the
// platform layer: the screen buffer, colors, input actions and runtime config.
// It does not import Bubble Tea.
package core

// Rect is an axis-aligned area of the screen.
type Rect struct {
	X, Y int
	W, H int
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Centered returns a w×h rect centered inside an area of outerW×outerH,
// offset vertically by top.
func Centered(outerW, outerH, w, h, top int) Rect {
	x := (outerW - w) / 2
	y := top + (outerH-top-h)/2
	return Rect{X: max(x, 0), Y: max(y, top), W: w, H: h}
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
