// Package geom provides the small geometry value types shared by the
// layout engines: sizes, rectangles, edge insets, and the optional
// coordinate used to model edges that have not been resolved yet.
package geom

import "fmt"

// Size is a width/height pair in pixels.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Rect is an axis-aligned rectangle described by its four edges.
// Right and Bottom are exclusive: Width() == Right - Left.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Size returns the rectangle's extent as a Size.
func (r Rect) Size() Size { return Size{W: r.Width(), H: r.Height()} }

// IsZero reports whether all four edges are zero.
func (r Rect) IsZero() bool { return r == Rect{} }

// Offset returns the rectangle translated by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Left:   min(r.Left, o.Left),
		Top:    min(r.Top, o.Top),
		Right:  max(r.Right, o.Right),
		Bottom: max(r.Bottom, o.Bottom),
	}
}

// String returns the rectangle as "(left,top)-(right,bottom)".
func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}

// Insets describes spacing on the four sides of a box (padding or margins).
type Insets struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Horizontal returns the combined left and right inset.
func (in Insets) Horizontal() int { return in.Left + in.Right }

// Vertical returns the combined top and bottom inset.
func (in Insets) Vertical() int { return in.Top + in.Bottom }

// Uniform returns an Insets with the same value on all four sides.
func Uniform(v int) Insets {
	return Insets{Left: v, Top: v, Right: v, Bottom: v}
}

// Coord is an optional pixel coordinate. The zero value is unset.
//
// Layout passes use Coord for edges that have not been resolved yet,
// instead of a numeric sentinel that would silently corrupt arithmetic
// downstream.
type Coord struct {
	value int
	ok    bool
}

// At returns a set Coord holding v.
func At(v int) Coord { return Coord{value: v, ok: true} }

// Unset returns the unset Coord. Equivalent to the zero value; it exists
// to make resets read explicitly at call sites.
func Unset() Coord { return Coord{} }

// IsSet reports whether the coordinate holds a value.
func (c Coord) IsSet() bool { return c.ok }

// Get returns the value and whether it is set.
func (c Coord) Get() (int, bool) { return c.value, c.ok }

// Or returns the value if set, otherwise fallback.
func (c Coord) Or(fallback int) int {
	if c.ok {
		return c.value
	}
	return fallback
}

// Must returns the value and panics if the coordinate is unset.
// Only call after the resolution pass has guaranteed the edge is set.
func (c Coord) Must() int {
	if !c.ok {
		panic("geom: Must on unset Coord")
	}
	return c.value
}

// String returns the value, or "unset".
func (c Coord) String() string {
	if !c.ok {
		return "unset"
	}
	return fmt.Sprintf("%d", c.value)
}
