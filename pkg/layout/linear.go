package layout

import (
	"fmt"

	"github.com/buwaro/anchor/pkg/geom"
)

// Orientation selects a linear container's major (distribution) axis.
type Orientation uint8

const (
	// Horizontal distributes children left to right.
	Horizontal Orientation = iota
	// Vertical distributes children top to bottom.
	Vertical
)

// String returns the orientation name used by blueprints.
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// DividerFlags selects where a linear container inserts dividers.
type DividerFlags uint8

const (
	// DividerBeginning draws a divider before the first visible child.
	DividerBeginning DividerFlags = 1 << iota
	// DividerMiddle draws a divider before every subsequent visible child.
	DividerMiddle
	// DividerEnd draws a divider after the last visible child.
	DividerEnd

	// DividerNone disables dividers.
	DividerNone DividerFlags = 0
)

// Baseline ascent/descent buckets, keyed by a child's minor-axis gravity.
const (
	bucketCenter = iota
	bucketTop
	bucketBottom
	bucketFill
	bucketCount
)

// Linear distributes children along one axis with optional weighting,
// dividers, and (horizontally) baseline alignment. Like [Relative], one
// Measure call runs the complete pass and Frames holds the result.
type Linear struct {
	// Orientation is the major axis.
	Orientation Orientation

	// Padding is the container's own content inset.
	Padding geom.Insets

	// Gravity packs the children along the major axis and is the default
	// minor-axis alignment for children without a gravity override.
	Gravity Gravity

	// Direction is the ambient layout direction. It mirrors the
	// horizontal axis, whichever role that axis plays.
	Direction Direction

	// WeightSum overrides the denominator of the weight distribution.
	// Zero derives the denominator from the children's weights.
	WeightSum float64

	// BaselineAligned enables baseline bucket tracking for horizontal
	// orientation. NewLinear enables it.
	BaselineAligned bool

	// BaselineAlignedChildIndex designates the child whose baseline the
	// container reports as its own. Negative disables it. An index
	// outside the child range, or one naming a baseline-less child
	// (other than child 0), is a caller bug: Baseline panics.
	BaselineAlignedChildIndex int

	// MeasureWithLargestChild sizes every weight-bearing child to the
	// largest intrinsic major extent instead of its computed share.
	MeasureWithLargestChild bool

	// DividerSize is the major-axis extent of one divider.
	DividerSize int

	// ShowDividers selects divider positions.
	ShowDividers DividerFlags

	children []*Child

	frames           []geom.Rect
	size             geom.Size
	baselineChildTop int
	pass             PassInfo
}

// NewLinear returns an empty linear container with the given orientation,
// baseline alignment enabled, and no designated baseline child.
func NewLinear(o Orientation) *Linear {
	return &Linear{
		Orientation:               o,
		BaselineAligned:           true,
		BaselineAlignedChildIndex: -1,
	}
}

// Add appends a child with its layout parameters and returns the container
// for chaining.
func (l *Linear) Add(w Widget, p Params) *Linear {
	l.children = append(l.children, &Child{Widget: w, Params: p})
	return l
}

// Children returns the ordered child list.
func (l *Linear) Children() []*Child { return l.children }

// Frames returns the per-child resolved frames from the most recent pass.
func (l *Linear) Frames() []geom.Rect { return l.frames }

// Size returns the container's own resolved size from the most recent pass.
func (l *Linear) Size() geom.Size { return l.size }

// Pass returns diagnostics for the most recent pass. Linear containers do
// not build a dependency graph, so the result is always clean.
func (l *Linear) Pass() PassInfo { return l.pass }

// Baseline reports the designated child's baseline offset from the
// container top, for ancestor baseline alignment. It panics when the
// configured index is outside the child range or names a child that
// cannot report a baseline: both indicate a caller bug, and failing loudly
// beats silently producing wrong geometry.
func (l *Linear) Baseline() int {
	idx := l.BaselineAlignedChildIndex
	if idx < 0 {
		return -1
	}
	if idx >= len(l.children) {
		panic(fmt.Sprintf("layout: baseline-aligned child index %d out of range (%d children)", idx, len(l.children)))
	}
	b := l.children[idx].Widget.Baseline()
	if b < 0 {
		if idx == 0 {
			return -1
		}
		panic(fmt.Sprintf("layout: baseline-aligned child %d does not have a baseline", idx))
	}
	return l.baselineChildTop + b
}

// distRecord is the per-child working state of one measurement pass,
// discarded when the pass ends.
type distRecord struct {
	w, h       int
	skipped    bool // measurement deferred to the weight phase
	matchMinor bool // needs re-measure once the minor extent is final
}

// Measure runs a full distribution pass against the incoming constraints
// and returns the container's resolved size.
func (l *Linear) Measure(ws, hs Spec) geom.Size {
	if l.Orientation == Vertical {
		return l.measureVertical(ws, hs)
	}
	return l.measureHorizontal(ws, hs)
}

// dividerBefore reports whether a divider precedes child i. Only called
// for non-gone children.
func (l *Linear) dividerBefore(i int) bool {
	if l.ShowDividers == DividerNone || l.DividerSize == 0 {
		return false
	}
	for j := i - 1; j >= 0; j-- {
		if l.children[j].Params.Visibility != Gone {
			return l.ShowDividers&DividerMiddle != 0
		}
	}
	return l.ShowDividers&DividerBeginning != 0
}

// dividerAfterLast reports whether a trailing divider applies.
func (l *Linear) dividerAfterLast() bool {
	if l.ShowDividers&DividerEnd == 0 || l.DividerSize == 0 {
		return false
	}
	for _, c := range l.children {
		if c.Params.Visibility != Gone {
			return true
		}
	}
	return false
}

func (l *Linear) measureVertical(ws, hs Spec) geom.Size {
	n := len(l.children)
	rec := make([]distRecord, n)
	margins := l.resolveAllMargins()

	totalLength := 0
	maxWidth := 0
	largest := 0
	totalWeight := 0.0
	skippedAny := false

	for i, c := range l.children {
		if c.Params.Visibility == Gone {
			continue
		}
		if l.dividerBefore(i) {
			totalLength += l.DividerSize
		}
		m := margins[i]
		weight := c.Params.Weight
		totalWeight += weight
		useExcess := c.Params.HeightPolicy == SizeFixed && c.Params.Height == 0 && weight > 0

		if hs.Mode == Exactly && useExcess {
			// The child will take its extent entirely from the excess;
			// measuring it now would be thrown away.
			totalLength += m.Top + m.Bottom
			rec[i].skipped = true
			skippedAny = true
		} else {
			hPolicy := c.Params.HeightPolicy
			if useExcess {
				// Inexact container: the content height matters after all.
				hPolicy = SizeWrapContent
			}
			chs := childSpec(hs, l.Padding.Vertical()+m.Top+m.Bottom+totalLength, c.Params.Height, hPolicy)
			cws := l.minorSpec(ws, m.Left, m.Right, c, &rec[i])
			size := c.Widget.Measure(cws, chs)
			rec[i].w, rec[i].h = size.W, size.H
			totalLength += size.H + m.Top + m.Bottom
			largest = max(largest, size.H)
		}
		maxWidth = max(maxWidth, rec[i].w+m.Left+m.Right)
	}
	if l.dividerAfterLast() {
		totalLength += l.DividerSize
	}

	totalLength += l.Padding.Vertical()
	heightSize := ResolveSize(totalLength, hs)

	delta := heightSize - totalLength
	if skippedAny || (delta != 0 && totalWeight > 0) {
		totalLength = l.distributeExcess(ws, rec, margins, delta, totalWeight, largest, &maxWidth, false)
		totalLength += l.Padding.Vertical()
	}

	maxWidth += l.Padding.Horizontal()
	widthSize := ResolveSize(maxWidth, ws)
	l.remeasureMatchMinor(rec, margins, widthSize, false)

	l.size = geom.Size{W: widthSize, H: heightSize}
	l.pass = PassInfo{}
	l.layoutVertical(rec, margins, widthSize, heightSize, totalLength)
	return l.size
}

func (l *Linear) measureHorizontal(ws, hs Spec) geom.Size {
	n := len(l.children)
	rec := make([]distRecord, n)
	margins := l.resolveAllMargins()

	var maxAscent, maxDescent [bucketCount]int
	for i := range maxAscent {
		maxAscent[i], maxDescent[i] = -1, -1
	}

	totalLength := 0
	maxHeight := 0
	largest := 0
	totalWeight := 0.0
	skippedAny := false

	for i, c := range l.children {
		if c.Params.Visibility == Gone {
			continue
		}
		if l.dividerBefore(i) {
			totalLength += l.DividerSize
		}
		m := margins[i]
		weight := c.Params.Weight
		totalWeight += weight
		useExcess := c.Params.WidthPolicy == SizeFixed && c.Params.Width == 0 && weight > 0

		if ws.Mode == Exactly && useExcess {
			totalLength += m.Left + m.Right
			rec[i].skipped = true
			skippedAny = true
		} else {
			wPolicy := c.Params.WidthPolicy
			if useExcess {
				wPolicy = SizeWrapContent
			}
			cws := childSpec(ws, l.Padding.Horizontal()+m.Left+m.Right+totalLength, c.Params.Width, wPolicy)
			chs := l.minorSpecVertical(hs, m.Top, m.Bottom, c, &rec[i])
			size := c.Widget.Measure(cws, chs)
			rec[i].w, rec[i].h = size.W, size.H
			totalLength += size.W + m.Left + m.Right
			largest = max(largest, size.W)
		}
		l.trackBaseline(c, &rec[i], &maxAscent, &maxDescent)
		maxHeight = max(maxHeight, rec[i].h+m.Top+m.Bottom)
	}
	if l.dividerAfterLast() {
		totalLength += l.DividerSize
	}

	totalLength += l.Padding.Horizontal()
	widthSize := ResolveSize(totalLength, ws)

	delta := widthSize - totalLength
	if skippedAny || (delta != 0 && totalWeight > 0) {
		totalLength = l.distributeExcess(hs, rec, margins, delta, totalWeight, largest, &maxHeight, true)
		totalLength += l.Padding.Horizontal()
		// Weighted children may have grown minor extents and baselines.
		for i := range maxAscent {
			maxAscent[i], maxDescent[i] = -1, -1
		}
		for i, c := range l.children {
			if c.Params.Visibility == Gone {
				continue
			}
			l.trackBaseline(c, &rec[i], &maxAscent, &maxDescent)
		}
	}

	// Mixed-font siblings must still fit: the tallest ascent/descent
	// combination bounds the minor extent from below.
	ascent := max(maxAscent[bucketFill], maxAscent[bucketCenter], maxAscent[bucketTop], maxAscent[bucketBottom])
	descent := max(maxDescent[bucketFill], maxDescent[bucketCenter], maxDescent[bucketTop], maxDescent[bucketBottom])
	if ascent >= 0 {
		maxHeight = max(maxHeight, ascent+descent)
	}

	maxHeight += l.Padding.Vertical()
	heightSize := ResolveSize(maxHeight, hs)
	l.remeasureMatchMinor(rec, margins, heightSize, true)

	l.size = geom.Size{W: widthSize, H: heightSize}
	l.pass = PassInfo{}
	l.layoutHorizontal(rec, margins, widthSize, heightSize, totalLength, maxAscent, maxDescent)
	return l.size
}

// minorSpec negotiates the horizontal (minor) constraint for a vertical
// container's child. A match-parent child under an inexact container is
// measured wrap-content now and re-measured once the minor size is final.
func (l *Linear) minorSpec(ws Spec, mLeft, mRight int, c *Child, r *distRecord) Spec {
	policy := c.Params.WidthPolicy
	if ws.Mode != Exactly && policy == SizeMatchParent {
		r.matchMinor = true
		policy = SizeWrapContent
	}
	return childSpec(ws, l.Padding.Horizontal()+mLeft+mRight, c.Params.Width, policy)
}

// minorSpecVertical is minorSpec for a horizontal container.
func (l *Linear) minorSpecVertical(hs Spec, mTop, mBottom int, c *Child, r *distRecord) Spec {
	policy := c.Params.HeightPolicy
	if hs.Mode != Exactly && policy == SizeMatchParent {
		r.matchMinor = true
		policy = SizeWrapContent
	}
	return childSpec(hs, l.Padding.Vertical()+mTop+mBottom, c.Params.Height, policy)
}

// distributeExcess runs the weight phase: excess (or deficit) space is
// handed out in child order, decrementing both the excess and the
// denominator so rounding residue accumulates onto later children rather
// than being discarded. Returns the recomputed content length, margins and
// dividers included, padding excluded.
func (l *Linear) distributeExcess(minor Spec, rec []distRecord, margins []geom.Insets,
	delta int, totalWeight float64, largest int, maxMinor *int, horizontal bool) int {

	denom := l.WeightSum
	if denom <= 0 {
		denom = totalWeight
	}
	remainingExcess := delta
	remainingDenom := denom

	totalLength := 0
	for i, c := range l.children {
		if c.Params.Visibility == Gone {
			continue
		}
		if l.dividerBefore(i) {
			totalLength += l.DividerSize
		}
		m := margins[i]
		weight := c.Params.Weight

		if weight > 0 {
			var share int
			if remainingDenom > 0 {
				share = int(float64(weight) * float64(remainingExcess) / remainingDenom)
			}
			remainingExcess -= share
			remainingDenom -= weight

			var extent int
			switch {
			case l.MeasureWithLargestChild:
				extent = largest
			case rec[i].skipped:
				extent = share
			default:
				if horizontal {
					extent = rec[i].w + share
				} else {
					extent = rec[i].h + share
				}
			}

			major := Spec{Size: max(0, extent), Mode: Exactly}
			var size geom.Size
			if horizontal {
				chs := l.minorSpecVertical(minor, m.Top, m.Bottom, c, &rec[i])
				size = c.Widget.Measure(major, chs)
			} else {
				cws := l.minorSpec(minor, m.Left, m.Right, c, &rec[i])
				size = c.Widget.Measure(cws, major)
			}
			rec[i].w, rec[i].h = size.W, size.H
			rec[i].skipped = false
		}

		if horizontal {
			totalLength += rec[i].w + m.Left + m.Right
			*maxMinor = max(*maxMinor, rec[i].h+m.Top+m.Bottom)
		} else {
			totalLength += rec[i].h + m.Top + m.Bottom
			*maxMinor = max(*maxMinor, rec[i].w+m.Left+m.Right)
		}
	}
	if l.dividerAfterLast() {
		totalLength += l.DividerSize
	}
	return totalLength
}

// remeasureMatchMinor gives match-parent minor-axis children their exact
// extent now that the container's minor size is final.
func (l *Linear) remeasureMatchMinor(rec []distRecord, margins []geom.Insets, minorSize int, horizontal bool) {
	for i, c := range l.children {
		if c.Params.Visibility == Gone || !rec[i].matchMinor {
			continue
		}
		m := margins[i]
		if horizontal {
			chs := Spec{Size: max(0, minorSize-l.Padding.Vertical()-m.Top-m.Bottom), Mode: Exactly}
			cws := Spec{Size: rec[i].w, Mode: Exactly}
			size := c.Widget.Measure(cws, chs)
			rec[i].h = size.H
		} else {
			cws := Spec{Size: max(0, minorSize-l.Padding.Horizontal()-m.Left-m.Right), Mode: Exactly}
			chs := Spec{Size: rec[i].h, Mode: Exactly}
			size := c.Widget.Measure(cws, chs)
			rec[i].w = size.W
		}
	}
}

// trackBaseline folds a child into the ascent/descent buckets for its
// minor-axis gravity.
func (l *Linear) trackBaseline(c *Child, r *distRecord, maxAscent, maxDescent *[bucketCount]int) {
	if !l.BaselineAligned || r.skipped {
		return
	}
	b := c.Widget.Baseline()
	if b < 0 {
		return
	}
	g := c.Params.Gravity
	if g == GravityNone {
		g = l.Gravity
	}
	// No vertical gravity behaves as top, matching the layout nudge.
	idx := bucketTop
	switch {
	case g&GravityFillVertical != 0:
		idx = bucketFill
	case g&GravityCenterVertical != 0:
		idx = bucketCenter
	case g&GravityBottom != 0:
		idx = bucketBottom
	case g&GravityTop != 0:
		idx = bucketTop
	}
	maxAscent[idx] = max(maxAscent[idx], b)
	maxDescent[idx] = max(maxDescent[idx], r.h-b)
}

// layoutVertical places children top to bottom, then mirrors the minor
// axis under RTL.
func (l *Linear) layoutVertical(rec []distRecord, margins []geom.Insets, width, height, totalLength int) {
	rtl := l.Direction == RTL
	g := l.Gravity.resolve(rtl)

	pos := l.Padding.Top
	switch {
	case g&gravityVerticalMask == GravityTop|GravityBottom, g&GravityCenterVertical != 0:
		pos += (height - totalLength) / 2
	case g&GravityBottom != 0:
		pos += height - totalLength
	}

	l.frames = make([]geom.Rect, len(l.children))
	for i, c := range l.children {
		if c.Params.Visibility == Gone {
			continue
		}
		if l.dividerBefore(i) {
			pos += l.DividerSize
		}
		m := margins[i]
		pos += m.Top

		cg := c.Params.Gravity
		if cg == GravityNone {
			cg = l.Gravity
		}
		cg = cg.resolve(rtl)
		left := cg.offsetAlong(gravityHorizontalMask, l.Padding.Left+m.Left, width-l.Padding.Right-m.Right, rec[i].w)

		l.frames[i] = geom.Rect{Left: left, Top: pos, Right: left + rec[i].w, Bottom: pos + rec[i].h}
		pos += rec[i].h + m.Bottom
	}

	if rtl {
		l.mirrorFrames(width)
	}
	l.trackBaselineChildTop()
}

// layoutHorizontal places children left to right in logical order; the
// RTL mirror afterwards is what reverses the visual order.
func (l *Linear) layoutHorizontal(rec []distRecord, margins []geom.Insets, width, height, totalLength int,
	maxAscent, maxDescent [bucketCount]int) {

	rtl := l.Direction == RTL
	g := l.Gravity.resolve(rtl)

	pos := l.Padding.Left
	switch {
	case g&gravityHorizontalMask == GravityLeft|GravityRight, g&GravityCenterHorizontal != 0:
		pos += (width - totalLength) / 2
	case g&GravityRight != 0:
		pos += width - totalLength
	}

	l.frames = make([]geom.Rect, len(l.children))
	for i, c := range l.children {
		if c.Params.Visibility == Gone {
			continue
		}
		if l.dividerBefore(i) {
			pos += l.DividerSize
		}
		m := margins[i]
		pos += m.Left

		cg := c.Params.Gravity
		if cg == GravityNone {
			cg = l.Gravity
		}
		cg = cg.resolve(rtl)
		top := cg.offsetAlong(gravityVerticalMask, l.Padding.Top+m.Top, height-l.Padding.Bottom-m.Bottom, rec[i].h)

		// Baseline-aligned rows nudge children so their baselines meet
		// within the shared ascent of their gravity bucket.
		if l.BaselineAligned {
			if b := c.Widget.Baseline(); b >= 0 {
				switch {
				case cg&GravityBottom != 0 && cg&GravityTop == 0:
					top -= maxDescent[bucketBottom] - (rec[i].h - b)
				case cg&gravityVerticalMask == 0 || cg&GravityTop != 0 && cg&GravityBottom == 0:
					top += maxAscent[bucketTop] - b
				}
			}
		}

		l.frames[i] = geom.Rect{Left: pos, Top: top, Right: pos + rec[i].w, Bottom: top + rec[i].h}
		pos += rec[i].w + m.Right
	}

	if rtl {
		l.mirrorFrames(width)
	}
	l.trackBaselineChildTop()
}

// mirrorFrames flips all resolved frames across the container's vertical
// midline: the right-to-left correction is a single coordinate flip, not
// a second resolution pass.
func (l *Linear) mirrorFrames(width int) {
	for i, c := range l.children {
		if c.Params.Visibility == Gone {
			continue
		}
		f := l.frames[i]
		l.frames[i].Left, l.frames[i].Right = width-f.Right, width-f.Left
	}
}

// trackBaselineChildTop records the resolved top of the designated
// baseline child for Baseline.
func (l *Linear) trackBaselineChildTop() {
	idx := l.BaselineAlignedChildIndex
	if idx < 0 || idx >= len(l.children) {
		return
	}
	l.baselineChildTop = l.frames[idx].Top
}

// resolveAllMargins resolves every child's margins into logical space.
func (l *Linear) resolveAllMargins() []geom.Insets {
	rtl := l.Direction == RTL
	out := make([]geom.Insets, len(l.children))
	for i, c := range l.children {
		out[i] = c.Params.resolveMargins(rtl)
	}
	return out
}
