package blueprint

import (
	"github.com/buwaro/anchor/pkg/errors"
	"github.com/buwaro/anchor/pkg/geom"
	"github.com/buwaro/anchor/pkg/layout"
)

// buildContainer builds a container node and, recursively, its subtree.
func buildContainer(n *Node) (layout.Container, error) {
	switch n.Kind {
	case "relative":
		return buildRelative(n)
	case "linear":
		return buildLinear(n)
	case "":
		return nil, errors.New(errors.ErrCodeInvalidBlueprint, "container is missing a kind")
	default:
		return nil, errors.New(errors.ErrCodeInvalidBlueprint, "unknown container kind %q", n.Kind)
	}
}

func buildRelative(n *Node) (*layout.Relative, error) {
	c := layout.NewRelative()

	var err error
	if c.Padding, err = parseInsets(n.Padding); err != nil {
		return nil, err
	}
	if c.Gravity, err = parseGravity(n.Gravity); err != nil {
		return nil, err
	}
	if c.Direction, err = parseDirection(n.Direction); err != nil {
		return nil, err
	}
	c.IgnoreGravity = n.IgnoreGravity

	for i := range n.Children {
		w, p, err := buildChild(&n.Children[i])
		if err != nil {
			return nil, err
		}
		c.Add(w, p)
	}
	return c, nil
}

func buildLinear(n *Node) (*layout.Linear, error) {
	orientation, err := parseOrientation(n.Orientation)
	if err != nil {
		return nil, err
	}
	c := layout.NewLinear(orientation)

	if c.Padding, err = parseInsets(n.Padding); err != nil {
		return nil, err
	}
	if c.Gravity, err = parseGravity(n.Gravity); err != nil {
		return nil, err
	}
	if c.Direction, err = parseDirection(n.Direction); err != nil {
		return nil, err
	}
	if c.ShowDividers, err = parseDividers(n.ShowDividers); err != nil {
		return nil, err
	}
	c.WeightSum = n.WeightSum
	c.DividerSize = n.DividerSize
	c.MeasureWithLargestChild = n.MeasureWithLargestChild
	if n.BaselineAligned != nil {
		c.BaselineAligned = *n.BaselineAligned
	}
	if n.BaselineAlignedChild != nil {
		c.BaselineAlignedChildIndex = *n.BaselineAlignedChild
	}

	for i := range n.Children {
		w, p, err := buildChild(&n.Children[i])
		if err != nil {
			return nil, err
		}
		c.Add(w, p)
	}
	return c, nil
}

// buildChild builds one child node: its widget (box or nested container)
// and the layout parameters the parent will read.
func buildChild(n *Node) (layout.Widget, layout.Params, error) {
	var p layout.Params

	var w layout.Widget
	switch n.Kind {
	case "", "box":
		b := layout.NewBox(0, 0)
		if len(n.Content) == 2 {
			b.Size = geom.Size{W: n.Content[0], H: n.Content[1]}
		} else if len(n.Content) != 0 {
			return nil, p, errors.New(errors.ErrCodeInvalidBlueprint,
				"content must be [width, height], got %d values", len(n.Content))
		}
		if n.Baseline != nil {
			b.BaselineOffset = *n.Baseline
		}
		w = b
	default:
		nested, err := buildContainer(n)
		if err != nil {
			return nil, p, err
		}
		w = nested
	}

	p.Tag = n.Tag
	p.WidthPolicy = n.Width.policy()
	p.Width = n.Width.Value
	p.HeightPolicy = n.Height.policy()
	p.Height = n.Height.Value
	p.Weight = n.Weight
	p.AlignWithParent = n.AlignWithParent

	var err error
	if p.Margins, err = parseInsets(n.Margins); err != nil {
		return nil, p, err
	}
	if n.MarginStart != nil {
		p.MarginStart = geom.At(*n.MarginStart)
	}
	if n.MarginEnd != nil {
		p.MarginEnd = geom.At(*n.MarginEnd)
	}
	if p.Gravity, err = parseGravity(n.LayoutGravity); err != nil {
		return nil, p, err
	}
	if p.Visibility, err = parseVisibility(n.Visibility); err != nil {
		return nil, p, err
	}
	if err := applyRules(&p, n.Rules); err != nil {
		return nil, p, err
	}

	return w, p, nil
}

// applyRules validates and declares the node's relation table. Sibling
// relations need a string anchor tag; container relations need true.
func applyRules(p *layout.Params, rules map[string]any) error {
	for name, target := range rules {
		r, ok := layout.RuleByName(name)
		if !ok {
			return errors.New(errors.ErrCodeInvalidRule, "unknown rule %q", name)
		}
		switch t := target.(type) {
		case string:
			if !r.TakesAnchor() {
				return errors.New(errors.ErrCodeInvalidRule,
					"rule %q targets the container; use true, not a tag", name)
			}
			p.AddRule(r, t)
		case bool:
			if r.TakesAnchor() {
				return errors.New(errors.ErrCodeInvalidRule,
					"rule %q requires a sibling anchor tag", name)
			}
			if t {
				p.SetRule(r)
			}
		default:
			return errors.New(errors.ErrCodeInvalidRule,
				"rule %q target must be a tag or true", name)
		}
	}
	return nil
}
