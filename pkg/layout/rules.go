package layout

// Rule is one of the fixed relation kinds a child of a relative container
// may declare. A rule either references a sibling anchor by tag (LeftOf,
// AlignTop, ...) or the container itself (AlignParentLeft, CenterInParent, ...).
type Rule uint8

const (
	// LeftOf places the child's right edge against the anchor's left edge.
	LeftOf Rule = iota
	// RightOf places the child's left edge against the anchor's right edge.
	RightOf
	// Above places the child's bottom edge against the anchor's top edge.
	Above
	// Below places the child's top edge against the anchor's bottom edge.
	Below
	// AlignBaseline aligns the child's baseline with the anchor's baseline.
	AlignBaseline
	// AlignLeft aligns the child's left edge with the anchor's left edge.
	AlignLeft
	// AlignTop aligns the child's top edge with the anchor's top edge.
	AlignTop
	// AlignRight aligns the child's right edge with the anchor's right edge.
	AlignRight
	// AlignBottom aligns the child's bottom edge with the anchor's bottom edge.
	AlignBottom
	// AlignParentLeft pins the child's left edge to the container's content box.
	AlignParentLeft
	// AlignParentTop pins the child's top edge to the container's content box.
	AlignParentTop
	// AlignParentRight pins the child's right edge to the container's content box.
	AlignParentRight
	// AlignParentBottom pins the child's bottom edge to the container's content box.
	AlignParentBottom
	// CenterInParent centers the child on both axes.
	CenterInParent
	// CenterHorizontal centers the child horizontally.
	CenterHorizontal
	// CenterVertical centers the child vertically.
	CenterVertical
	// StartOf is the direction-aware equivalent of LeftOf.
	StartOf
	// EndOf is the direction-aware equivalent of RightOf.
	EndOf
	// AlignStart is the direction-aware equivalent of AlignLeft.
	AlignStart
	// AlignEnd is the direction-aware equivalent of AlignRight.
	AlignEnd
	// AlignParentStart is the direction-aware equivalent of AlignParentLeft.
	AlignParentStart
	// AlignParentEnd is the direction-aware equivalent of AlignParentRight.
	AlignParentEnd

	// RuleCount is the number of relation slots on each child.
	RuleCount
)

var ruleNames = [RuleCount]string{
	LeftOf:            "left-of",
	RightOf:           "right-of",
	Above:             "above",
	Below:             "below",
	AlignBaseline:     "align-baseline",
	AlignLeft:         "align-left",
	AlignTop:          "align-top",
	AlignRight:        "align-right",
	AlignBottom:       "align-bottom",
	AlignParentLeft:   "align-parent-left",
	AlignParentTop:    "align-parent-top",
	AlignParentRight:  "align-parent-right",
	AlignParentBottom: "align-parent-bottom",
	CenterInParent:    "center-in-parent",
	CenterHorizontal:  "center-horizontal",
	CenterVertical:    "center-vertical",
	StartOf:           "start-of",
	EndOf:             "end-of",
	AlignStart:        "align-start",
	AlignEnd:          "align-end",
	AlignParentStart:  "align-parent-start",
	AlignParentEnd:    "align-parent-end",
}

// String returns the kebab-case rule name used by blueprints and DOT labels.
func (r Rule) String() string {
	if int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return "unknown"
}

// RuleByName resolves a kebab-case rule name. The second return is false
// for unknown names.
func RuleByName(name string) (Rule, bool) {
	for r, n := range ruleNames {
		if n == name {
			return Rule(r), true
		}
	}
	return 0, false
}

// horizontalRules are the relations that constitute horizontal dependency
// edges in the graph. Center, parent-alignment, and baseline relations are
// resolved during rule application, not via graph edges.
var horizontalRules = ruleSet(LeftOf, RightOf, AlignLeft, AlignRight, StartOf, EndOf, AlignStart, AlignEnd)

// verticalRules are the relations that constitute vertical dependency edges.
var verticalRules = ruleSet(Above, Below, AlignTop, AlignBottom, AlignBaseline)

func ruleSet(rules ...Rule) [RuleCount]bool {
	var set [RuleCount]bool
	for _, r := range rules {
		set[r] = true
	}
	return set
}

// TakesAnchor reports whether the rule references a sibling by tag.
// Rules that target the container (align-parent, center) do not.
func (r Rule) TakesAnchor() bool {
	return horizontalRules[r] || verticalRules[r]
}

// ruleArray is the per-child slot array: one target per relation kind.
// Sibling relations hold the anchor's tag; container relations hold the
// anchorParent marker; empty means undeclared.
type ruleArray [RuleCount]string

// anchorParent marks a container-targeted rule slot as enabled.
const anchorParent = "\x00parent"

// resolveRules translates a declared rule array into the logical coordinate
// space of one pass. Direction-aware relations map onto their physical
// slots; under right-to-left layout, physical left/right relations swap
// sides so that the final coordinate flip restores their intent. Relative
// margins are resolved the same way by resolveMargins.
func resolveRules(declared ruleArray, rtl bool) ruleArray {
	resolved := declared

	type mapping struct{ from, to Rule }
	relational := []mapping{
		{StartOf, LeftOf}, {EndOf, RightOf},
		{AlignStart, AlignLeft}, {AlignEnd, AlignRight},
		{AlignParentStart, AlignParentLeft}, {AlignParentEnd, AlignParentRight},
	}
	if rtl {
		// Physical relations trade places first, then relative relations
		// land on the slots the flip will mirror back.
		resolved[LeftOf], resolved[RightOf] = resolved[RightOf], resolved[LeftOf]
		resolved[AlignLeft], resolved[AlignRight] = resolved[AlignRight], resolved[AlignLeft]
		resolved[AlignParentLeft], resolved[AlignParentRight] = resolved[AlignParentRight], resolved[AlignParentLeft]
	}
	for _, m := range relational {
		if resolved[m.from] != "" {
			resolved[m.to] = resolved[m.from]
			resolved[m.from] = ""
		}
	}
	return resolved
}
