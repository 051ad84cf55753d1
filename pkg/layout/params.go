package layout

import (
	"fmt"

	"github.com/buwaro/anchor/pkg/geom"
)

// SizePolicy declares how a child wants to be sized along one axis.
type SizePolicy uint8

const (
	// SizeWrapContent sizes the child to its intrinsic content. It is the
	// zero value, so an empty Params wraps on both axes.
	SizeWrapContent SizePolicy = iota
	// SizeFixed uses the declared pixel size.
	SizeFixed
	// SizeMatchParent fills the space the container offers.
	SizeMatchParent
)

// String returns the policy name used by blueprints.
func (p SizePolicy) String() string {
	switch p {
	case SizeFixed:
		return "fixed"
	case SizeMatchParent:
		return "match"
	default:
		return "wrap"
	}
}

// Visibility is the host-provided display state of a child.
type Visibility uint8

const (
	// Visible children are measured and positioned normally.
	Visible Visibility = iota
	// Invisible children occupy space but are not drawn by the host.
	Invisible
	// Gone children occupy no space and are skipped as anchor targets.
	Gone
)

// String returns the visibility name used by blueprints.
func (v Visibility) String() string {
	switch v {
	case Invisible:
		return "invisible"
	case Gone:
		return "gone"
	default:
		return "visible"
	}
}

// Direction is the ambient layout direction.
type Direction uint8

const (
	// LTR lays content out left to right.
	LTR Direction = iota
	// RTL lays content out right to left; resolved horizontal geometry is
	// the mirror image of the LTR result.
	RTL
)

// Gravity is a bitmask expressing alignment intent along one or both axes.
// Start/End bits are direction-aware and resolve to Left/Right once the
// layout direction is known.
type Gravity uint16

const (
	GravityLeft Gravity = 1 << iota
	GravityRight
	GravityCenterHorizontal
	GravityFillHorizontal
	GravityTop
	GravityBottom
	GravityCenterVertical
	GravityFillVertical
	GravityStart
	GravityEnd

	// GravityNone defers to the container default.
	GravityNone Gravity = 0
	// GravityCenter centers on both axes.
	GravityCenter = GravityCenterHorizontal | GravityCenterVertical
)

const (
	gravityHorizontalMask = GravityLeft | GravityRight | GravityCenterHorizontal | GravityFillHorizontal
	gravityVerticalMask   = GravityTop | GravityBottom | GravityCenterVertical | GravityFillVertical
)

// resolve maps direction-aware bits onto physical ones in logical space.
// Under RTL the physical horizontal bits swap, mirroring resolveRules.
func (g Gravity) resolve(rtl bool) Gravity {
	out := g &^ (GravityStart | GravityEnd)
	if rtl {
		swapped := out &^ (GravityLeft | GravityRight)
		if out&GravityLeft != 0 {
			swapped |= GravityRight
		}
		if out&GravityRight != 0 {
			swapped |= GravityLeft
		}
		out = swapped
	}
	if g&GravityStart != 0 {
		out |= GravityLeft
	}
	if g&GravityEnd != 0 {
		out |= GravityRight
	}
	return out
}

// hasHorizontal reports whether any horizontal alignment bit is set.
func (g Gravity) hasHorizontal() bool { return g&gravityHorizontalMask != 0 }

// hasVertical reports whether any vertical alignment bit is set.
func (g Gravity) hasVertical() bool { return g&gravityVerticalMask != 0 }

// offsetAlong computes the position of an extent inside the span
// [spanStart, spanEnd) according to the axis bits selected by mask.
func (g Gravity) offsetAlong(mask Gravity, spanStart, spanEnd, extent int) int {
	var first, second Gravity
	if mask == gravityHorizontalMask {
		first, second = GravityLeft, GravityRight
	} else {
		first, second = GravityTop, GravityBottom
	}
	switch {
	case g&mask == first|second, g&(GravityCenterHorizontal&mask) != 0, g&(GravityCenterVertical&mask) != 0:
		return spanStart + (spanEnd-spanStart-extent)/2
	case g&second != 0:
		return spanEnd - extent
	default:
		return spanStart
	}
}

// Params is the declarative layout state of one child. It is read-only
// during a pass; all mutable working state lives in pass-owned records.
type Params struct {
	// Tag identifies the child as an anchor target. When empty, the
	// container synthesizes a stable identifier from the child index.
	Tag string

	// WidthPolicy and HeightPolicy select how each axis is sized.
	WidthPolicy  SizePolicy
	HeightPolicy SizePolicy
	// Width and Height are the declared sizes used by SizeFixed.
	Width  int
	Height int

	// Margins are physical. MarginStart and MarginEnd, when set, override
	// the physical margin on the corresponding side for the ambient
	// direction.
	Margins     geom.Insets
	MarginStart geom.Coord
	MarginEnd   geom.Coord

	// Weight is the child's share of leftover space in a linear container.
	Weight float64

	// Gravity overrides the container's default child alignment.
	Gravity Gravity

	// Visibility is the host-provided display state.
	Visibility Visibility

	// AlignWithParent substitutes the equivalent parent-alignment rule
	// when a sibling anchor cannot be found.
	AlignWithParent bool

	rules ruleArray
}

// AddRule declares a sibling relation targeting the child tagged anchor.
// Declaring a rule that already has a target replaces it. AddRule panics
// when the rule does not take a sibling anchor; use SetRule for
// container-targeted relations.
func (p *Params) AddRule(r Rule, anchor string) {
	if !r.TakesAnchor() {
		panic(fmt.Sprintf("layout: rule %s does not take a sibling anchor", r))
	}
	p.rules[r] = anchor
}

// SetRule declares a container-targeted relation (align-parent, center).
func (p *Params) SetRule(r Rule) {
	if r.TakesAnchor() {
		panic(fmt.Sprintf("layout: rule %s requires a sibling anchor", r))
	}
	p.rules[r] = anchorParent
}

// ClearRule removes a declared relation.
func (p *Params) ClearRule(r Rule) { p.rules[r] = "" }

// HasRule reports whether the relation is declared.
func (p *Params) HasRule(r Rule) bool { return p.rules[r] != "" }

// Anchor returns the declared target tag for a sibling relation, or ""
// when the relation is undeclared or container-targeted.
func (p *Params) Anchor(r Rule) string {
	if p.rules[r] == anchorParent {
		return ""
	}
	return p.rules[r]
}

// resolveMargins returns the margins in logical space: relative margins
// override the leading/trailing physical side, and under RTL the
// horizontal sides swap so the final flip restores them.
func (p *Params) resolveMargins(rtl bool) geom.Insets {
	m := p.Margins
	if rtl {
		m.Left, m.Right = m.Right, m.Left
	}
	if v, ok := p.MarginStart.Get(); ok {
		m.Left = v
	}
	if v, ok := p.MarginEnd.Get(); ok {
		m.Right = v
	}
	return m
}
