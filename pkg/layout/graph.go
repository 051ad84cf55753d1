package layout

// The dependency graph makes relative rules resolvable in a single pass:
// anchors must be positioned before their dependents. It is rebuilt from
// scratch on every pass — child counts are small, and correctness from a
// fresh build is simpler to reason about than incremental repair.

// graphNode is one child in the per-pass dependency graph.
type graphNode struct {
	index int    // original child order, the deterministic tie-breaker
	id    string // explicit tag or synthesized identifier
	child *Child
	rules ruleArray // direction-resolved relations
}

// depGraph indexes the children of one pass by anchor identifier.
type depGraph struct {
	nodes []*graphNode
	byID  map[string]*graphNode
}

// buildGraph constructs the pass graph with direction-resolved rules.
func buildGraph(children []*Child, rtl bool) *depGraph {
	g := &depGraph{
		nodes: make([]*graphNode, len(children)),
		byID:  make(map[string]*graphNode, len(children)),
	}
	for i, c := range children {
		n := &graphNode{
			index: i,
			id:    c.ID(i),
			child: c,
			rules: resolveRules(c.Params.rules, rtl),
		}
		g.nodes[i] = n
		// First declaration of a duplicate tag wins as anchor target;
		// later children keep their own node but cannot be referenced.
		if _, exists := g.byID[n.id]; !exists {
			g.byID[n.id] = n
		}
	}
	return g
}

// lookup returns the node for an anchor identifier.
func (g *depGraph) lookup(id string) (*graphNode, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// sortedOrder returns a total, deterministic ordering of all nodes that
// honors the relations in filter: every reachable anchor precedes its
// dependents. Kahn's algorithm with ties broken by original child index.
//
// A cycle leaves nodes with nonzero in-degree; those are appended in
// original index order so every child appears exactly once even for
// malformed configurations. The count of such leftovers is returned so
// callers can distinguish a clean sort from the fallback.
func (g *depGraph) sortedOrder(filter [RuleCount]bool) (order []*graphNode, cycleFallback int) {
	n := len(g.nodes)
	inDegree := make([]int, n)
	dependents := make([][]int, n)

	for _, node := range g.nodes {
		for r := Rule(0); r < RuleCount; r++ {
			if !filter[r] {
				continue
			}
			target := node.rules[r]
			if target == "" || target == anchorParent {
				continue
			}
			anchor, ok := g.byID[target]
			if !ok || anchor == node {
				continue
			}
			dependents[anchor.index] = append(dependents[anchor.index], node.index)
			inDegree[node.index]++
		}
	}

	order = make([]*graphNode, 0, n)
	emitted := make([]bool, n)

	// Repeatedly emit the lowest-index ready node. Child counts are small
	// enough that the quadratic scan beats maintaining an ordered queue.
	for len(order) < n {
		next := -1
		for i := 0; i < n; i++ {
			if !emitted[i] && inDegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			break // cycle: no ready node remains
		}
		emitted[next] = true
		order = append(order, g.nodes[next])
		for _, d := range dependents[next] {
			inDegree[d]--
		}
	}

	for i := 0; i < n; i++ {
		if !emitted[i] {
			order = append(order, g.nodes[i])
			cycleFallback++
		}
	}
	return order, cycleFallback
}

// relatedNode resolves the anchor of a sibling relation, recursing through
// chains of gone anchors: a relation targeting a hidden child follows that
// child's own same-relation target until a visible anchor is found or the
// chain is exhausted. The walk is bounded by the child count, so malformed
// chains (including loops) terminate as "no anchor found".
func (g *depGraph) relatedNode(node *graphNode, r Rule) (*graphNode, bool) {
	target := node.rules[r]
	for hops := 0; hops <= len(g.nodes); hops++ {
		if target == "" || target == anchorParent {
			return nil, false
		}
		anchor, ok := g.byID[target]
		if !ok {
			return nil, false
		}
		if anchor.child.Params.Visibility != Gone {
			return anchor, true
		}
		target = anchor.rules[r]
	}
	return nil, false
}

// DependencyEdge is one symbolic relation between two children, exposed
// for graph export and diagnostics.
type DependencyEdge struct {
	From string // anchor identifier
	To   string // dependent identifier
	Rule Rule
}

// DependencyEdges lists the relation edges a relative pass would build for
// the given children under the given direction: one edge per declared
// sibling relation whose anchor tag resolves to another child. The order
// is deterministic (child order, then rule order).
func DependencyEdges(children []*Child, dir Direction) []DependencyEdge {
	g := buildGraph(children, dir == RTL)
	var edges []DependencyEdge
	for _, node := range g.nodes {
		for r := Rule(0); r < RuleCount; r++ {
			if !horizontalRules[r] && !verticalRules[r] {
				continue
			}
			target := node.rules[r]
			if target == "" || target == anchorParent {
				continue
			}
			if anchor, ok := g.byID[target]; ok && anchor != node {
				edges = append(edges, DependencyEdge{From: anchor.id, To: node.id, Rule: r})
			}
		}
	}
	return edges
}
