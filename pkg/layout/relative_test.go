package layout

import (
	"testing"

	"github.com/buwaro/anchor/pkg/geom"
)

func exactly(v int) Spec  { return MakeSpec(v, Exactly) }
func unconstrained() Spec { return MakeSpec(0, Unspecified) }

func TestRelativeChainedSiblings(t *testing.T) {
	// b sits to the right of a with a leading margin; the anchor's width
	// plus the margin fixes b's left edge.
	r := NewRelative()
	r.Add(NewBox(40, 20), Params{Tag: "a"})

	var pb Params
	pb.AddRule(RightOf, "a")
	pb.Margins.Left = 10
	r.Add(NewBox(30, 20), pb)

	size := r.Measure(exactly(100), exactly(40))
	if size != (geom.Size{W: 100, H: 40}) {
		t.Fatalf("size = %v, want {100 40}", size)
	}

	frames := r.Frames()
	if want := (geom.Rect{Left: 0, Top: 0, Right: 40, Bottom: 20}); frames[0] != want {
		t.Errorf("a = %v, want %v", frames[0], want)
	}
	if want := (geom.Rect{Left: 50, Top: 0, Right: 80, Bottom: 20}); frames[1] != want {
		t.Errorf("b = %v, want %v", frames[1], want)
	}
	if !r.Pass().Clean() {
		t.Errorf("pass not clean: %+v", r.Pass())
	}
}

func TestRelativeRowWrapsBothAxes(t *testing.T) {
	// An icon-and-label row under wrap-content on both axes: the label
	// seats flush against the icon and shares its top edge, and the
	// container grows to the union of the two.
	r := NewRelative()
	r.Add(NewBox(50, 20), Params{Tag: "a"})

	var pb Params
	pb.AddRule(RightOf, "a")
	pb.AddRule(AlignTop, "a")
	r.Add(NewBox(50, 30), pb)

	size := r.Measure(unconstrained(), unconstrained())
	if size != (geom.Size{W: 100, H: 30}) {
		t.Fatalf("size = %v, want {100 30}", size)
	}

	frames := r.Frames()
	if want := (geom.Rect{Left: 0, Top: 0, Right: 50, Bottom: 20}); frames[0] != want {
		t.Errorf("a = %v, want %v", frames[0], want)
	}
	if want := (geom.Rect{Left: 50, Top: 0, Right: 100, Bottom: 30}); frames[1] != want {
		t.Errorf("b = %v, want %v", frames[1], want)
	}
	if frames[1].Left != frames[0].Right {
		t.Errorf("b.Left = %d, want flush against a.Right %d", frames[1].Left, frames[0].Right)
	}
}

func TestRelativeAlignEdgeRules(t *testing.T) {
	// Each align-edge relation copies one edge of the anchor; the other
	// edge derives from the child's measured size. The anchor is centered
	// so every copied edge differs from the content-box default.
	r := NewRelative()

	var pa Params
	pa.Tag = "a"
	pa.SetRule(CenterInParent)
	r.Add(NewBox(40, 30), pa) // resolves to (30,35)-(70,65)

	var px Params
	px.AddRule(AlignLeft, "a")
	px.AddRule(AlignBottom, "a")
	r.Add(NewBox(20, 10), px)

	var py Params
	py.AddRule(AlignRight, "a")
	py.AddRule(AlignTop, "a")
	r.Add(NewBox(20, 10), py)

	var pz Params
	pz.AddRule(Above, "a")
	pz.Margins.Bottom = 5
	r.Add(NewBox(20, 10), pz)

	r.Measure(exactly(100), exactly(100))
	frames := r.Frames()

	if want := (geom.Rect{Left: 30, Top: 35, Right: 70, Bottom: 65}); frames[0] != want {
		t.Fatalf("a = %v, want %v", frames[0], want)
	}
	if want := (geom.Rect{Left: 30, Top: 55, Right: 50, Bottom: 65}); frames[1] != want {
		t.Errorf("align-left/bottom = %v, want %v", frames[1], want)
	}
	if want := (geom.Rect{Left: 50, Top: 35, Right: 70, Bottom: 45}); frames[2] != want {
		t.Errorf("align-right/top = %v, want %v", frames[2], want)
	}
	// above: bottom = a.Top minus the child's bottom margin.
	if want := (geom.Rect{Left: 0, Top: 20, Right: 20, Bottom: 30}); frames[3] != want {
		t.Errorf("above = %v, want %v", frames[3], want)
	}
}

func TestRelativeParentAlignment(t *testing.T) {
	r := NewRelative()

	var p Params
	p.SetRule(AlignParentRight)
	p.SetRule(AlignParentBottom)
	r.Add(NewBox(30, 20), p)

	r.Measure(exactly(100), exactly(80))
	got := r.Frames()[0]
	want := geom.Rect{Left: 70, Top: 60, Right: 100, Bottom: 80}
	if got != want {
		t.Errorf("frame = %v, want %v", got, want)
	}
}

func TestRelativeBothEdgesPinned(t *testing.T) {
	// Pinning both edges overrides the child's intrinsic width entirely.
	r := NewRelative()

	var p Params
	p.SetRule(AlignParentLeft)
	p.SetRule(AlignParentRight)
	r.Add(NewBox(30, 20), p)

	r.Measure(exactly(100), exactly(40))
	got := r.Frames()[0]
	if got.Left != 0 || got.Right != 100 {
		t.Errorf("frame = %v, want left 0 right 100", got)
	}
}

func TestRelativeRulePrecedence(t *testing.T) {
	// align-parent-left is applied after right-of, so it wins the left
	// edge; the conflict resolves by fixed precedence, not declaration
	// order.
	r := NewRelative()
	r.Add(NewBox(40, 20), Params{Tag: "a"})

	var p Params
	p.AddRule(RightOf, "a")
	p.SetRule(AlignParentLeft)
	r.Add(NewBox(30, 20), p)

	r.Measure(exactly(100), exactly(40))
	got := r.Frames()[1]
	if got.Left != 0 || got.Right != 30 {
		t.Errorf("frame = %v, want left 0 right 30", got)
	}
}

func TestRelativeCenterInParent(t *testing.T) {
	r := NewRelative()

	var p Params
	p.SetRule(CenterInParent)
	r.Add(NewBox(30, 20), p)

	r.Measure(exactly(100), exactly(80))
	got := r.Frames()[0]
	want := geom.Rect{Left: 35, Top: 30, Right: 65, Bottom: 50}
	if got != want {
		t.Errorf("frame = %v, want %v", got, want)
	}
}

func TestRelativeCenterInWrapContainer(t *testing.T) {
	// Centering against a wrap-content container defers until the final
	// size is known; with one child the center offset lands at the origin
	// of the content box.
	r := NewRelative()
	r.Add(NewBox(40, 20), Params{Tag: "a"})

	var p Params
	p.SetRule(CenterHorizontal)
	r.Add(NewBox(20, 20), p)

	r.Measure(unconstrained(), unconstrained())
	if got := r.Size(); got != (geom.Size{W: 40, H: 20}) {
		t.Fatalf("size = %v, want {40 20}", got)
	}
	got := r.Frames()[1]
	if got.Left != 10 || got.Right != 30 {
		t.Errorf("centered frame = %v, want left 10 right 30", got)
	}
}

func TestRelativeMissingAnchorDefaultsToOrigin(t *testing.T) {
	r := NewRelative()

	var p Params
	p.AddRule(RightOf, "ghost")
	r.Add(NewBox(30, 20), p)

	r.Measure(exactly(100), exactly(40))
	got := r.Frames()[0]
	if got.Left != 0 || got.Right != 30 {
		t.Errorf("frame = %v, want left 0 right 30", got)
	}
	if !r.Pass().Clean() {
		t.Errorf("missing anchor must not count as a cycle: %+v", r.Pass())
	}
}

func TestRelativeAlignWithParentSubstitution(t *testing.T) {
	// With align-with-parent, a dangling left-of behaves as
	// align-parent-right instead of being dropped.
	r := NewRelative()

	var p Params
	p.AddRule(LeftOf, "ghost")
	p.AlignWithParent = true
	r.Add(NewBox(30, 20), p)

	r.Measure(exactly(100), exactly(40))
	got := r.Frames()[0]
	if got.Left != 70 || got.Right != 100 {
		t.Errorf("frame = %v, want left 70 right 100", got)
	}
}

func TestRelativeCycleFallback(t *testing.T) {
	r := NewRelative()

	var pa Params
	pa.Tag = "a"
	pa.AddRule(RightOf, "b")
	r.Add(NewBox(10, 10), pa)

	var pb Params
	pb.Tag = "b"
	pb.AddRule(RightOf, "a")
	r.Add(NewBox(10, 10), pb)

	r.Measure(exactly(100), exactly(40))

	info := r.Pass()
	if info.HorizontalCycleFallback != 2 {
		t.Errorf("HorizontalCycleFallback = %d, want 2", info.HorizontalCycleFallback)
	}
	if info.VerticalCycleFallback != 0 {
		t.Errorf("VerticalCycleFallback = %d, want 0", info.VerticalCycleFallback)
	}

	// Fallback order is original order: a seats first at the origin, b
	// then resolves against a's now-known edge.
	frames := r.Frames()
	if frames[0].Left != 0 {
		t.Errorf("a.Left = %d, want 0", frames[0].Left)
	}
	if frames[1].Left != 10 {
		t.Errorf("b.Left = %d, want 10", frames[1].Left)
	}
}

func TestRelativeGoneChildren(t *testing.T) {
	r := NewRelative()

	gone := Params{Tag: "g"}
	gone.Visibility = Gone
	r.Add(NewBox(50, 50), gone)

	var p Params
	p.AddRule(RightOf, "g")
	r.Add(NewBox(30, 20), p)

	size := r.Measure(unconstrained(), unconstrained())

	// The gone child contributes nothing and its frame is zero.
	if size != (geom.Size{W: 30, H: 20}) {
		t.Errorf("size = %v, want {30 20}", size)
	}
	if !r.Frames()[0].IsZero() {
		t.Errorf("gone frame = %v, want zero", r.Frames()[0])
	}
	// Its dependent anchors to nothing and seats at the origin.
	if got := r.Frames()[1]; got.Left != 0 {
		t.Errorf("dependent.Left = %d, want 0", got.Left)
	}
}

func TestRelativeInvisibleOccupiesSpace(t *testing.T) {
	r := NewRelative()

	inv := Params{Tag: "inv"}
	inv.Visibility = Invisible
	r.Add(NewBox(40, 30), inv)

	var p Params
	p.AddRule(Below, "inv")
	r.Add(NewBox(20, 10), p)

	r.Measure(unconstrained(), unconstrained())
	if got := r.Frames()[1].Top; got != 30 {
		t.Errorf("dependent.Top = %d, want 30", got)
	}
}

func TestRelativeWrapContent(t *testing.T) {
	r := NewRelative()
	r.Padding = geom.Insets{Left: 3, Top: 2, Right: 4, Bottom: 5}

	var p Params
	p.Margins.Right = 6
	r.Add(NewBox(40, 20), p)

	size := r.Measure(unconstrained(), unconstrained())
	// width: left 3, right 43, +marginRight 6 +paddingRight 4
	// height: top 2, bottom 22, +paddingBottom 5
	want := geom.Size{W: 53, H: 27}
	if size != want {
		t.Errorf("size = %v, want %v", size, want)
	}
}

func TestRelativeBaselineRule(t *testing.T) {
	r := NewRelative()

	anchor := &Box{Size: geom.Size{W: 30, H: 20}, BaselineOffset: 15}
	r.Add(anchor, Params{Tag: "a"})

	var p Params
	p.AddRule(AlignBaseline, "a")
	p.AddRule(RightOf, "a")
	child := &Box{Size: geom.Size{W: 20, H: 10}, BaselineOffset: 5}
	r.Add(child, p)

	r.Measure(exactly(100), exactly(40))
	got := r.Frames()[1]
	// anchorTop(0) + anchorBaseline(15) - childBaseline(5)
	if got.Top != 10 || got.Bottom != 20 {
		t.Errorf("frame = %v, want top 10 bottom 20", got)
	}

	// Container baseline: first child with one, offset by its top.
	if got := r.Baseline(); got != 15 {
		t.Errorf("Baseline() = %d, want 15", got)
	}
}

func TestRelativeGravity(t *testing.T) {
	r := NewRelative()
	r.Gravity = GravityRight | GravityBottom
	r.Add(NewBox(20, 20), Params{})

	r.Measure(exactly(100), exactly(100))
	got := r.Frames()[0]
	want := geom.Rect{Left: 80, Top: 80, Right: 100, Bottom: 100}
	if got != want {
		t.Errorf("frame = %v, want %v", got, want)
	}
}

func TestRelativeIgnoreGravity(t *testing.T) {
	r := NewRelative()
	r.Gravity = GravityRight
	r.IgnoreGravity = "free"

	r.Add(NewBox(10, 10), Params{Tag: "free"})
	r.Add(NewBox(20, 20), Params{Tag: "pin"})

	r.Measure(exactly(100), exactly(100))
	frames := r.Frames()

	// The bounding box spans only "pin", so the shift is 80; "free" is
	// excluded from the box but still moves with the group.
	if got := frames[1]; got.Left != 80 || got.Right != 100 {
		t.Errorf("pin = %v, want left 80 right 100", got)
	}
	if got := frames[0]; got.Left != 80 || got.Right != 90 {
		t.Errorf("free = %v, want left 80 right 90", got)
	}
}

func TestRelativeRTLMirrorsRelativeRules(t *testing.T) {
	build := func(dir Direction) *Relative {
		r := NewRelative()
		r.Direction = dir
		r.Add(NewBox(40, 20), Params{Tag: "a"})

		var p Params
		p.AddRule(EndOf, "a")
		p.MarginStart = geom.At(10)
		r.Add(NewBox(30, 20), p)
		return r
	}

	ltr := build(LTR)
	ltr.Measure(exactly(100), exactly(40))
	rtl := build(RTL)
	rtl.Measure(exactly(100), exactly(40))

	const w = 100
	for i := range ltr.Frames() {
		lf, rf := ltr.Frames()[i], rtl.Frames()[i]
		if rf.Left != w-lf.Right || rf.Right != w-lf.Left {
			t.Errorf("child %d: rtl %v is not the mirror of ltr %v", i, rf, lf)
		}
		if rf.Top != lf.Top || rf.Bottom != lf.Bottom {
			t.Errorf("child %d: vertical geometry changed under rtl", i)
		}
	}
}

func TestRelativeMeasureIsIdempotent(t *testing.T) {
	r := NewRelative()
	r.Add(NewBox(40, 20), Params{Tag: "a"})

	var p Params
	p.AddRule(Below, "a")
	p.SetRule(CenterHorizontal)
	r.Add(NewBox(20, 10), p)

	first := r.Measure(exactly(100), exactly(80))
	firstFrames := append([]geom.Rect(nil), r.Frames()...)

	second := r.Measure(exactly(100), exactly(80))
	if first != second {
		t.Fatalf("size changed between passes: %v then %v", first, second)
	}
	for i, f := range r.Frames() {
		if f != firstFrames[i] {
			t.Errorf("frame %d changed between passes: %v then %v", i, firstFrames[i], f)
		}
	}
}

func TestRelativeNested(t *testing.T) {
	inner := NewRelative()
	inner.Add(NewBox(30, 10), Params{})

	outer := NewRelative()
	outer.Add(inner, Params{Tag: "inner"})

	var p Params
	p.AddRule(Below, "inner")
	outer.Add(NewBox(20, 10), p)

	outer.Measure(unconstrained(), unconstrained())
	if got := outer.Frames()[1].Top; got != 10 {
		t.Errorf("sibling below nested container: Top = %d, want 10", got)
	}
	if got := outer.Size(); got != (geom.Size{W: 30, H: 20}) {
		t.Errorf("outer size = %v, want {30 20}", got)
	}
}
