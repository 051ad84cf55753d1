package layout

import (
	"github.com/buwaro/anchor/pkg/geom"
)

// Relative positions children by symbolic relations to siblings and to the
// container itself. One call to Measure runs the complete pass: dependency
// graph rebuild, two-axis topological resolution, gravity shift, and the
// right-to-left mirror. Frames holds the result.
//
// Relative implements [Widget], so relative containers nest inside other
// containers and answer intrinsic-size queries by running a full pass.
type Relative struct {
	// Padding is the container's own content inset.
	Padding geom.Insets

	// Gravity shifts the union of positioned children inside the content
	// box on each axis it specifies.
	Gravity Gravity

	// Direction is the ambient layout direction.
	Direction Direction

	// IgnoreGravity names the one child (by tag) excluded from the
	// gravity bounding box. The child still receives the gravity offset.
	IgnoreGravity string

	children []*Child

	frames   []geom.Rect
	size     geom.Size
	baseline int
	pass     PassInfo
}

// NewRelative returns an empty relative container with LTR direction.
func NewRelative() *Relative {
	return &Relative{baseline: -1}
}

// Add appends a child with its layout parameters and returns the container
// for chaining.
func (r *Relative) Add(w Widget, p Params) *Relative {
	r.children = append(r.children, &Child{Widget: w, Params: p})
	return r
}

// Children returns the ordered child list.
func (r *Relative) Children() []*Child { return r.children }

// Frames returns the per-child resolved frames from the most recent pass.
func (r *Relative) Frames() []geom.Rect { return r.frames }

// Size returns the container's own resolved size from the most recent pass.
func (r *Relative) Size() geom.Size { return r.size }

// Pass returns diagnostics for the most recent pass.
func (r *Relative) Pass() PassInfo { return r.pass }

// Baseline returns the container baseline: the baseline of the first child
// that reports one, offset by that child's resolved top edge. Negative
// when no child has a baseline.
func (r *Relative) Baseline() int { return r.baseline }

// relPass is the working state of one resolution pass. It is created at
// the top of Measure and discarded at the end; nothing on the long-lived
// children is mutated.
type relPass struct {
	g       *depGraph
	res     []resolution
	margins []geom.Insets
	rtl     bool
}

// resolution is the per-child working record: edges resolve from unset to
// concrete coordinates as rules apply.
type resolution struct {
	left, top, right, bottom geom.Coord
	w, h                     int
}

// Measure runs a full resolution pass against the incoming constraints and
// returns the container's resolved size.
func (r *Relative) Measure(ws, hs Spec) geom.Size {
	n := len(r.children)
	rtl := r.Direction == RTL

	p := &relPass{
		g:       buildGraph(r.children, rtl),
		res:     make([]resolution, n),
		margins: make([]geom.Insets, n),
		rtl:     rtl,
	}
	for i, c := range r.children {
		p.margins[i] = c.Params.resolveMargins(rtl)
	}

	myWidth := geom.Unset()
	if ws.Mode != Unspecified {
		myWidth = geom.At(ws.Size)
	}
	myHeight := geom.Unset()
	if hs.Mode != Unspecified {
		myHeight = geom.At(hs.Size)
	}
	wrapW := ws.Mode != Exactly
	wrapH := hs.Mode != Exactly

	sortedH, hFallback := p.g.sortedOrder(horizontalRules)
	sortedV, vFallback := p.g.sortedOrder(verticalRules)
	r.pass = PassInfo{HorizontalCycleFallback: hFallback, VerticalCycleFallback: vFallback}

	var offsetH, offsetV bool

	for _, node := range sortedH {
		if node.child.Params.Visibility == Gone {
			continue
		}
		r.applyHorizontalRules(p, node, myWidth)
		r.measureChildHorizontal(p, node, myWidth, myHeight)
		if r.positionChildHorizontal(p, node, myWidth, wrapW) {
			offsetH = true
		}
	}

	width, height := 0, 0
	for _, node := range sortedV {
		if node.child.Params.Visibility == Gone {
			continue
		}
		r.applyVerticalRules(p, node, myHeight)
		r.measureChild(p, node, myWidth, myHeight)
		r.applyBaselineRule(p, node)
		if r.positionChildVertical(p, node, myHeight, wrapH) {
			offsetV = true
		}

		res := &p.res[node.index]
		m := p.margins[node.index]
		width = max(width, res.right.Or(0)+m.Right)
		height = max(height, res.bottom.Or(0)+m.Bottom)
	}

	if wrapW {
		width += r.Padding.Right
		width = ResolveSize(width, ws)
	} else {
		width = ws.Size
	}
	if wrapH {
		height += r.Padding.Bottom
		height = ResolveSize(height, hs)
	} else {
		height = hs.Size
	}

	// Children whose placement depended on the container's own extent are
	// re-seated now that wrap-content inference is final.
	if wrapW && offsetH {
		r.offsetHorizontalAxis(p, width)
	}
	if wrapH && offsetV {
		r.offsetVerticalAxis(p, height)
	}

	r.applyGravity(p, width, height)

	if rtl {
		for i := range p.res {
			if r.children[i].Params.Visibility == Gone {
				continue
			}
			res := &p.res[i]
			l, rr := res.left.Must(), res.right.Must()
			res.left, res.right = geom.At(width-rr), geom.At(width-l)
		}
	}

	r.frames = make([]geom.Rect, n)
	r.baseline = -1
	for i, c := range r.children {
		if c.Params.Visibility == Gone {
			continue
		}
		res := &p.res[i]
		r.frames[i] = geom.Rect{
			Left:   res.left.Must(),
			Top:    res.top.Must(),
			Right:  res.right.Must(),
			Bottom: res.bottom.Must(),
		}
		if r.baseline < 0 {
			if b := c.Widget.Baseline(); b >= 0 {
				r.baseline = r.frames[i].Top + b
			}
		}
	}

	r.size = geom.Size{W: width, H: height}
	return r.size
}

// applyHorizontalRules resets the horizontal edges and applies the
// horizontal relations in fixed precedence order. A later rule overrides
// an edge set by an earlier one; this ordering is load-bearing and defines
// conflict behavior, so it must not be reordered.
func (r *Relative) applyHorizontalRules(p *relPass, node *graphNode, myWidth geom.Coord) {
	res := &p.res[node.index]
	res.left, res.right = geom.Unset(), geom.Unset()
	m := p.margins[node.index]
	alignWithParent := node.child.Params.AlignWithParent
	mw, widthKnown := myWidth.Get()

	if anchor, ok := p.g.relatedNode(node, LeftOf); ok {
		if v, set := p.res[anchor.index].left.Get(); set {
			res.right = geom.At(v - (p.margins[anchor.index].Left + m.Right))
		}
	} else if alignWithParent && node.rules[LeftOf] != "" && widthKnown {
		res.right = geom.At(mw - r.Padding.Right - m.Right)
	}

	if anchor, ok := p.g.relatedNode(node, RightOf); ok {
		if v, set := p.res[anchor.index].right.Get(); set {
			res.left = geom.At(v + p.margins[anchor.index].Right + m.Left)
		}
	} else if alignWithParent && node.rules[RightOf] != "" {
		res.left = geom.At(r.Padding.Left + m.Left)
	}

	if anchor, ok := p.g.relatedNode(node, AlignLeft); ok {
		if v, set := p.res[anchor.index].left.Get(); set {
			res.left = geom.At(v + m.Left)
		}
	} else if alignWithParent && node.rules[AlignLeft] != "" {
		res.left = geom.At(r.Padding.Left + m.Left)
	}

	if anchor, ok := p.g.relatedNode(node, AlignRight); ok {
		if v, set := p.res[anchor.index].right.Get(); set {
			res.right = geom.At(v - m.Right)
		}
	} else if alignWithParent && node.rules[AlignRight] != "" && widthKnown {
		res.right = geom.At(mw - r.Padding.Right - m.Right)
	}

	if node.rules[AlignParentLeft] != "" {
		res.left = geom.At(r.Padding.Left + m.Left)
	}
	if node.rules[AlignParentRight] != "" && widthKnown {
		res.right = geom.At(mw - r.Padding.Right - m.Right)
	}
}

// applyVerticalRules is the vertical counterpart of applyHorizontalRules.
// The baseline relation is applied separately after measurement, since it
// needs the child's own baseline.
func (r *Relative) applyVerticalRules(p *relPass, node *graphNode, myHeight geom.Coord) {
	res := &p.res[node.index]
	res.top, res.bottom = geom.Unset(), geom.Unset()
	m := p.margins[node.index]
	alignWithParent := node.child.Params.AlignWithParent
	mh, heightKnown := myHeight.Get()

	if anchor, ok := p.g.relatedNode(node, Above); ok {
		if v, set := p.res[anchor.index].top.Get(); set {
			res.bottom = geom.At(v - (p.margins[anchor.index].Top + m.Bottom))
		}
	} else if alignWithParent && node.rules[Above] != "" && heightKnown {
		res.bottom = geom.At(mh - r.Padding.Bottom - m.Bottom)
	}

	if anchor, ok := p.g.relatedNode(node, Below); ok {
		if v, set := p.res[anchor.index].bottom.Get(); set {
			res.top = geom.At(v + p.margins[anchor.index].Bottom + m.Top)
		}
	} else if alignWithParent && node.rules[Below] != "" {
		res.top = geom.At(r.Padding.Top + m.Top)
	}

	if anchor, ok := p.g.relatedNode(node, AlignTop); ok {
		if v, set := p.res[anchor.index].top.Get(); set {
			res.top = geom.At(v + m.Top)
		}
	} else if alignWithParent && node.rules[AlignTop] != "" {
		res.top = geom.At(r.Padding.Top + m.Top)
	}

	if anchor, ok := p.g.relatedNode(node, AlignBottom); ok {
		if v, set := p.res[anchor.index].bottom.Get(); set {
			res.bottom = geom.At(v - m.Bottom)
		}
	} else if alignWithParent && node.rules[AlignBottom] != "" && heightKnown {
		res.bottom = geom.At(mh - r.Padding.Bottom - m.Bottom)
	}

	if node.rules[AlignParentTop] != "" {
		res.top = geom.At(r.Padding.Top + m.Top)
	}
	if node.rules[AlignParentBottom] != "" && heightKnown {
		res.bottom = geom.At(mh - r.Padding.Bottom - m.Bottom)
	}
}

// applyBaselineRule aligns the child's baseline with its anchor's. When
// the anchor reports a valid baseline this overrides both vertical edges:
// the bottom is rederived from the measured height.
func (r *Relative) applyBaselineRule(p *relPass, node *graphNode) {
	anchor, ok := p.g.relatedNode(node, AlignBaseline)
	if !ok {
		return
	}
	ares := &p.res[anchor.index]
	anchorTop, set := ares.top.Get()
	if !set {
		return
	}
	ab := anchor.child.Widget.Baseline()
	if ab < 0 {
		return
	}
	cb := max(0, node.child.Widget.Baseline())
	res := &p.res[node.index]
	res.top = geom.At(anchorTop + ab - cb)
	res.bottom = geom.Unset()
}

// measureChildHorizontal measures a child during the horizontal pass,
// before its vertical edges exist. The vertical constraint is a coarse
// ceiling; the vertical pass re-measures with the real negotiation.
func (r *Relative) measureChildHorizontal(p *relPass, node *graphNode, myWidth, myHeight geom.Coord) {
	res := &p.res[node.index]
	params := &node.child.Params
	m := p.margins[node.index]

	ws := Negotiate(res.left, res.right, params.Width, params.WidthPolicy,
		m.Left, m.Right, r.Padding.Left, r.Padding.Right, myWidth)

	var hs Spec
	if mh, ok := myHeight.Get(); ok {
		maxH := max(0, mh-r.Padding.Vertical()-m.Top-m.Bottom)
		if params.HeightPolicy == SizeMatchParent {
			hs = Spec{Size: maxH, Mode: Exactly}
		} else {
			hs = Spec{Size: maxH, Mode: AtMost}
		}
	}

	size := node.child.Widget.Measure(ws, hs)
	res.w, res.h = size.W, size.H
}

// measureChild measures a child with both axes fully negotiated.
func (r *Relative) measureChild(p *relPass, node *graphNode, myWidth, myHeight geom.Coord) {
	res := &p.res[node.index]
	params := &node.child.Params
	m := p.margins[node.index]

	ws := Negotiate(res.left, res.right, params.Width, params.WidthPolicy,
		m.Left, m.Right, r.Padding.Left, r.Padding.Right, myWidth)
	hs := Negotiate(res.top, res.bottom, params.Height, params.HeightPolicy,
		m.Top, m.Bottom, r.Padding.Top, r.Padding.Bottom, myHeight)

	size := node.child.Widget.Measure(ws, hs)
	res.w, res.h = size.W, size.H
}

// positionChildHorizontal completes the horizontal edges: one set edge
// derives the other from the measured width; neither set seats the child
// at the axis start or defers centering until the container size is final.
// The return value reports whether the child must be re-seated once a
// wrap-content width is known.
func (r *Relative) positionChildHorizontal(p *relPass, node *graphNode, myWidth geom.Coord, wrap bool) bool {
	res := &p.res[node.index]
	m := p.margins[node.index]

	switch {
	case !res.left.IsSet() && res.right.IsSet():
		res.left = geom.At(res.right.Must() - res.w)
	case res.left.IsSet() && !res.right.IsSet():
		res.right = geom.At(res.left.Must() + res.w)
	case !res.left.IsSet() && !res.right.IsSet():
		if node.rules[CenterInParent] != "" || node.rules[CenterHorizontal] != "" {
			if mw, ok := myWidth.Get(); ok && !wrap {
				left := (mw - res.w) / 2
				res.left, res.right = geom.At(left), geom.At(left+res.w)
			} else {
				res.left = geom.At(r.Padding.Left + m.Left)
				res.right = geom.At(res.left.Must() + res.w)
			}
			return true
		}
		res.left = geom.At(r.Padding.Left + m.Left)
		res.right = geom.At(res.left.Must() + res.w)
	}
	return wrap && node.rules[AlignParentRight] != ""
}

// positionChildVertical is the vertical counterpart of
// positionChildHorizontal.
func (r *Relative) positionChildVertical(p *relPass, node *graphNode, myHeight geom.Coord, wrap bool) bool {
	res := &p.res[node.index]
	m := p.margins[node.index]

	switch {
	case !res.top.IsSet() && res.bottom.IsSet():
		res.top = geom.At(res.bottom.Must() - res.h)
	case res.top.IsSet() && !res.bottom.IsSet():
		res.bottom = geom.At(res.top.Must() + res.h)
	case !res.top.IsSet() && !res.bottom.IsSet():
		if node.rules[CenterInParent] != "" || node.rules[CenterVertical] != "" {
			if mh, ok := myHeight.Get(); ok && !wrap {
				top := (mh - res.h) / 2
				res.top, res.bottom = geom.At(top), geom.At(top+res.h)
			} else {
				res.top = geom.At(r.Padding.Top + m.Top)
				res.bottom = geom.At(res.top.Must() + res.h)
			}
			return true
		}
		res.top = geom.At(r.Padding.Top + m.Top)
		res.bottom = geom.At(res.top.Must() + res.h)
	}
	return wrap && node.rules[AlignParentBottom] != ""
}

// offsetHorizontalAxis re-seats children that were waiting on the final
// width: centered children move to the true center, parent-right-aligned
// children move against the final right edge.
func (r *Relative) offsetHorizontalAxis(p *relPass, width int) {
	for _, node := range p.g.nodes {
		if node.child.Params.Visibility == Gone {
			continue
		}
		res := &p.res[node.index]
		m := p.margins[node.index]
		switch {
		case node.rules[CenterInParent] != "" || node.rules[CenterHorizontal] != "":
			left := (width - res.w) / 2
			res.left, res.right = geom.At(left), geom.At(left+res.w)
		case node.rules[AlignParentRight] != "":
			right := width - r.Padding.Right - m.Right
			res.left, res.right = geom.At(right-res.w), geom.At(right)
		}
	}
}

// offsetVerticalAxis is the vertical counterpart of offsetHorizontalAxis.
func (r *Relative) offsetVerticalAxis(p *relPass, height int) {
	for _, node := range p.g.nodes {
		if node.child.Params.Visibility == Gone {
			continue
		}
		res := &p.res[node.index]
		m := p.margins[node.index]
		switch {
		case node.rules[CenterInParent] != "" || node.rules[CenterVertical] != "":
			top := (height - res.h) / 2
			res.top, res.bottom = geom.At(top), geom.At(top+res.h)
		case node.rules[AlignParentBottom] != "":
			bottom := height - r.Padding.Bottom - m.Bottom
			res.top, res.bottom = geom.At(bottom-res.h), geom.At(bottom)
		}
	}
}

// applyGravity shifts positioned children to satisfy the container's
// alignment intent. The bounding box spans every non-gone child except the
// designated ignore-gravity child, which is excluded from the box so it
// does not distort group alignment but still receives the offset.
func (r *Relative) applyGravity(p *relPass, width, height int) {
	g := r.Gravity.resolve(p.rtl)
	if !g.hasHorizontal() && !g.hasVertical() {
		return
	}

	var bbox geom.Rect
	found := false
	for i, c := range r.children {
		if c.Params.Visibility == Gone {
			continue
		}
		if r.IgnoreGravity != "" && c.ID(i) == r.IgnoreGravity {
			continue
		}
		res := &p.res[i]
		box := geom.Rect{
			Left:   res.left.Must(),
			Top:    res.top.Must(),
			Right:  res.right.Must(),
			Bottom: res.bottom.Must(),
		}
		if !found {
			bbox, found = box, true
		} else {
			bbox = bbox.Union(box)
		}
	}
	if !found {
		return
	}

	dx, dy := 0, 0
	if g.hasHorizontal() {
		dx = g.offsetAlong(gravityHorizontalMask, r.Padding.Left, width-r.Padding.Right, bbox.Width()) - bbox.Left
	}
	if g.hasVertical() {
		dy = g.offsetAlong(gravityVerticalMask, r.Padding.Top, height-r.Padding.Bottom, bbox.Height()) - bbox.Top
	}
	if dx == 0 && dy == 0 {
		return
	}

	for i, c := range r.children {
		if c.Params.Visibility == Gone {
			continue
		}
		res := &p.res[i]
		res.left = geom.At(res.left.Must() + dx)
		res.right = geom.At(res.right.Must() + dx)
		res.top = geom.At(res.top.Must() + dy)
		res.bottom = geom.At(res.bottom.Must() + dy)
	}
}
