// Package region describes screen rectangles used as cursor confinement regions.
package region

import "fmt"

// Rect is a rectangle in screen coordinates. Right and Bottom are exclusive,
// matching the Win32 RECT convention.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Width returns the horizontal extent of r.
func (r Rect) Width() int {
	return r.Right - r.Left
}

// Height returns the vertical extent of r.
func (r Rect) Height() int {
	return r.Bottom - r.Top
}

// Area returns the rectangle area, or 0 for degenerate rectangles.
func (r Rect) Area() int64 {
	if !r.Valid() {
		return 0
	}
	return int64(r.Width()) * int64(r.Height())
}

// Valid reports whether right > left and bottom > top.
func (r Rect) Valid() bool {
	return r.Right > r.Left && r.Bottom > r.Top
}

// Center returns the geometric center of r.
func (r Rect) Center() (int, int) {
	return r.Left + r.Width()/2, r.Top + r.Height()/2
}

// Contains reports whether a point is inside r (right and bottom edges exclusive).
func (r Rect) Contains(x, y int) bool {
	if !r.Valid() {
		return false
	}
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// EdgesNear reports whether every edge of r is within tol of the matching edge of other.
func (r Rect) EdgesNear(other Rect, tol int) bool {
	return near(r.Left, other.Left, tol) &&
		near(r.Top, other.Top, tol) &&
		near(r.Right, other.Right, tol) &&
		near(r.Bottom, other.Bottom, tol)
}

// NearlyEqual is EdgesNear with a name that reads better at comparison sites.
func (r Rect) NearlyEqual(other Rect, tol int) bool {
	return r.EdgesNear(other, tol)
}

// Within reports whether r lies inside outer, allowing each edge to overshoot by slop.
func (r Rect) Within(outer Rect, slop int) bool {
	return r.Left >= outer.Left-slop &&
		r.Top >= outer.Top-slop &&
		r.Right <= outer.Right+slop &&
		r.Bottom <= outer.Bottom+slop
}

// Intersect returns the overlap of r and other; the result is invalid when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	return Rect{
		Left:   max(r.Left, other.Left),
		Top:    max(r.Top, other.Top),
		Right:  min(r.Right, other.Right),
		Bottom: min(r.Bottom, other.Bottom),
	}
}

// String formats r the way log lines print rectangles.
func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d) [%dx%d]", r.Left, r.Top, r.Right, r.Bottom, r.Width(), r.Height())
}

// near reports whether |a-b| <= tol.
func near(a, b, tol int) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}
