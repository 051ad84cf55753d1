package layout

import (
	"reflect"
	"testing"
)

// tagged builds a child with the given tag and declared relations.
func tagged(tag string, rules ...func(*Params)) *Child {
	p := Params{Tag: tag}
	for _, r := range rules {
		r(&p)
	}
	return &Child{Widget: NewBox(10, 10), Params: p}
}

func rightOf(anchor string) func(*Params) {
	return func(p *Params) { p.AddRule(RightOf, anchor) }
}

func below(anchor string) func(*Params) {
	return func(p *Params) { p.AddRule(Below, anchor) }
}

func ids(nodes []*graphNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.id
	}
	return out
}

func TestSortedOrderAnchorsFirst(t *testing.T) {
	// c depends on b depends on a, declared in reverse order.
	children := []*Child{
		tagged("c", rightOf("b")),
		tagged("b", rightOf("a")),
		tagged("a"),
	}
	g := buildGraph(children, false)

	order, fallback := g.sortedOrder(horizontalRules)
	if fallback != 0 {
		t.Fatalf("fallback = %d, want 0", fallback)
	}
	if got, want := ids(order), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSortedOrderIsAxisScoped(t *testing.T) {
	// A horizontal relation must not constrain the vertical order.
	children := []*Child{
		tagged("b", rightOf("a")),
		tagged("a"),
	}
	g := buildGraph(children, false)

	order, fallback := g.sortedOrder(verticalRules)
	if fallback != 0 {
		t.Fatalf("fallback = %d, want 0", fallback)
	}
	// No vertical constraints: original order.
	if got, want := ids(order), []string{"b", "a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("vertical order = %v, want %v", got, want)
	}
}

func TestSortedOrderTieBreaksByIndex(t *testing.T) {
	// Two independent roots and one dependent each; ready nodes must be
	// emitted lowest original index first, so the order is reproducible.
	children := []*Child{
		tagged("x"),
		tagged("y"),
		tagged("xd", rightOf("x")),
		tagged("yd", rightOf("y")),
	}
	g := buildGraph(children, false)

	order, _ := g.sortedOrder(horizontalRules)
	if got, want := ids(order), []string{"x", "y", "xd", "yd"}; !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSortedOrderCycleFallback(t *testing.T) {
	children := []*Child{
		tagged("a", rightOf("b")),
		tagged("b", rightOf("a")),
		tagged("c"),
	}
	g := buildGraph(children, false)

	order, fallback := g.sortedOrder(horizontalRules)
	if fallback != 2 {
		t.Errorf("fallback = %d, want 2", fallback)
	}
	if len(order) != 3 {
		t.Fatalf("order has %d nodes, want all 3", len(order))
	}
	// Leftovers are appended in original index order after the clean part.
	if got, want := ids(order), []string{"c", "a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSortedOrderSelfReference(t *testing.T) {
	// A rule targeting the child itself adds no edge.
	children := []*Child{
		tagged("a", rightOf("a")),
	}
	g := buildGraph(children, false)

	order, fallback := g.sortedOrder(horizontalRules)
	if fallback != 0 || len(order) != 1 {
		t.Errorf("order = %v, fallback = %d; want 1 node, 0 fallback", ids(order), fallback)
	}
}

func TestDuplicateTagFirstWins(t *testing.T) {
	children := []*Child{
		tagged("dup"),
		tagged("dup"),
		tagged("ref", rightOf("dup")),
	}
	g := buildGraph(children, false)

	anchor, ok := g.lookup("dup")
	if !ok {
		t.Fatal("lookup(dup) failed")
	}
	if anchor.index != 0 {
		t.Errorf("anchor index = %d, want 0 (first declaration wins)", anchor.index)
	}
}

func TestRelatedNodeSkipsGoneChain(t *testing.T) {
	// ref targets g2, which is gone and itself targets g1 (also gone),
	// which targets a. The chain walk must land on a.
	g1 := tagged("g1", rightOf("a"))
	g1.Params.Visibility = Gone
	g2 := tagged("g2", rightOf("g1"))
	g2.Params.Visibility = Gone
	children := []*Child{
		tagged("a"),
		g1,
		g2,
		tagged("ref", rightOf("g2")),
	}
	g := buildGraph(children, false)

	anchor, ok := g.relatedNode(g.nodes[3], RightOf)
	if !ok {
		t.Fatal("relatedNode found no anchor")
	}
	if anchor.id != "a" {
		t.Errorf("anchor = %s, want a", anchor.id)
	}
}

func TestRelatedNodeGoneLoopTerminates(t *testing.T) {
	// Two gone children referencing each other must not hang the walk.
	g1 := tagged("g1", rightOf("g2"))
	g1.Params.Visibility = Gone
	g2 := tagged("g2", rightOf("g1"))
	g2.Params.Visibility = Gone
	children := []*Child{
		g1,
		g2,
		tagged("ref", rightOf("g1")),
	}
	g := buildGraph(children, false)

	if _, ok := g.relatedNode(g.nodes[2], RightOf); ok {
		t.Error("relatedNode resolved an anchor from an all-gone loop")
	}
}

func TestRelatedNodeUnknownAnchor(t *testing.T) {
	children := []*Child{
		tagged("ref", rightOf("nobody")),
	}
	g := buildGraph(children, false)

	if _, ok := g.relatedNode(g.nodes[0], RightOf); ok {
		t.Error("relatedNode resolved an unknown tag")
	}
}

func TestDependencyEdges(t *testing.T) {
	children := []*Child{
		tagged("a"),
		tagged("b", rightOf("a"), below("a")),
	}

	got := DependencyEdges(children, LTR)
	want := []DependencyEdge{
		{From: "a", To: "b", Rule: RightOf},
		{From: "a", To: "b", Rule: Below},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DependencyEdges = %v, want %v", got, want)
	}
}

func TestDependencyEdgesRTLSwapsHorizontal(t *testing.T) {
	children := []*Child{
		tagged("a"),
		tagged("b", rightOf("a")),
	}

	got := DependencyEdges(children, RTL)
	if len(got) != 1 || got[0].Rule != LeftOf {
		t.Errorf("DependencyEdges under RTL = %v, want single left-of edge", got)
	}
}

func TestSynthesizedIDs(t *testing.T) {
	c := &Child{Widget: NewBox(1, 1)}
	if got := c.ID(3); got != "#3" {
		t.Errorf("ID(3) = %q, want %q", got, "#3")
	}
	c.Params.Tag = "named"
	if got := c.ID(3); got != "named" {
		t.Errorf("ID(3) with tag = %q, want %q", got, "named")
	}
}
