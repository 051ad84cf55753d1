package layout

import (
	"fmt"

	"github.com/buwaro/anchor/pkg/geom"
)

// Widget is the host contract for anything a container can position.
// Both container kinds implement Widget themselves, so containers nest:
// a child's Measure may recurse into its own layout pass.
type Widget interface {
	// Measure answers the intrinsic-size query for the given constraints.
	// Measure must be repeatable within a pass: containers may measure a
	// child more than once while negotiating sizes.
	Measure(w, h Spec) geom.Size

	// Baseline reports the distance from the widget's top edge to its
	// text baseline, or a negative value when it has none.
	Baseline() int
}

// Child pairs a widget with its declarative layout parameters inside a
// container. The ordered child list is owned by the host.
type Child struct {
	Widget Widget
	Params Params
}

// ID returns the child's anchor identifier: the explicit tag, or a stable
// synthesized identifier derived from its position in the child list.
func (c *Child) ID(index int) string {
	if c.Params.Tag != "" {
		return c.Params.Tag
	}
	return fmt.Sprintf("#%d", index)
}

// PassInfo carries diagnostics from the most recent resolution pass.
// Malformed content never fails a pass; it engages defined fallbacks that
// are surfaced here so callers and tests can tell a clean resolution from
// a degraded one.
type PassInfo struct {
	// HorizontalCycleFallback and VerticalCycleFallback count children
	// that were appended in original order because the relation graph for
	// that axis contained a cycle. Zero means the axis sorted cleanly.
	HorizontalCycleFallback int
	VerticalCycleFallback   int
}

// Clean reports whether the pass resolved without engaging any fallback.
func (p PassInfo) Clean() bool {
	return p.HorizontalCycleFallback == 0 && p.VerticalCycleFallback == 0
}

// Container is the surface shared by both container kinds.
type Container interface {
	Widget

	// Children returns the ordered child list.
	Children() []*Child

	// Frames returns the per-child resolved frames from the most recent
	// Measure. Gone children have zero frames.
	Frames() []geom.Rect

	// Size returns the container's resolved size from the most recent
	// Measure.
	Size() geom.Size

	// Pass returns diagnostics for the most recent Measure.
	Pass() PassInfo
}

// Box is a plain fixed-content widget: it reports a given intrinsic size
// and optional baseline. Blueprints use it for leaf children, and tests
// use it as a predictable measurement target.
type Box struct {
	Size geom.Size
	// BaselineOffset is the distance from the top to the baseline, or
	// negative for no baseline.
	BaselineOffset int
}

// NewBox returns a Box with the given intrinsic size and no baseline.
func NewBox(w, h int) *Box {
	return &Box{Size: geom.Size{W: w, H: h}, BaselineOffset: -1}
}

// Measure resolves the box's intrinsic size against the constraints.
func (b *Box) Measure(w, h Spec) geom.Size {
	return geom.Size{
		W: ResolveSize(b.Size.W, w),
		H: ResolveSize(b.Size.H, h),
	}
}

// Baseline returns the configured baseline offset.
func (b *Box) Baseline() int { return b.BaselineOffset }
