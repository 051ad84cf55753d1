package blueprint

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/buwaro/anchor/pkg/errors"
	"github.com/buwaro/anchor/pkg/layout"
)

// Dimension is one axis declaration: a pixel count, "wrap", or "match".
// The zero Dimension means the key was omitted and defaults to "wrap".
type Dimension struct {
	Policy layout.SizePolicy
	Value  int

	declared bool
}

// UnmarshalTOML implements toml.Unmarshaler.
func (d *Dimension) UnmarshalTOML(v any) error {
	d.declared = true
	switch t := v.(type) {
	case int64:
		if t < 0 {
			return errors.New(errors.ErrCodeInvalidDimension, "negative size %d", t)
		}
		d.Policy, d.Value = layout.SizeFixed, int(t)
		return nil
	case string:
		switch t {
		case "wrap":
			d.Policy = layout.SizeWrapContent
		case "match":
			d.Policy = layout.SizeMatchParent
		default:
			return errors.New(errors.ErrCodeInvalidDimension, "unknown dimension %q", t)
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidDimension, "dimension must be an integer, \"wrap\", or \"match\"")
	}
}

// policy returns the declared policy, defaulting omitted keys to wrap.
func (d Dimension) policy() layout.SizePolicy {
	if !d.declared {
		return layout.SizeWrapContent
	}
	return d.Policy
}

// Root is the top-level blueprint document.
type Root struct {
	Container Node `toml:"container"`
}

// Node is one element of the blueprint tree. The root container and every
// descendant use the same shape; which keys are meaningful depends on the
// node's kind. Box nodes ignore container keys and containers ignore the
// content key.
type Node struct {
	// Kind selects the node type: "relative", "linear", or "box".
	// Children default to "box"; the root container must name a
	// container kind.
	Kind string `toml:"kind"`

	// Tag names the node as an anchor target for sibling rules.
	Tag string `toml:"tag"`

	// Width and Height declare the size request toward the parent. On
	// the root container, which has no parent, they declare the default
	// constraints the layout resolves against instead.
	Width  Dimension `toml:"width"`
	Height Dimension `toml:"height"`

	// Content is the intrinsic size of a box node: [width, height].
	Content []int `toml:"content"`

	// Baseline is a box node's baseline offset from its top edge.
	Baseline *int `toml:"baseline"`

	// Margins are [left, top, right, bottom], or a single uniform value.
	Margins     []int `toml:"margins"`
	MarginStart *int  `toml:"margin-start"`
	MarginEnd   *int  `toml:"margin-end"`

	// Weight is the node's share of leftover space in a linear parent.
	Weight float64 `toml:"weight"`

	// LayoutGravity aligns the node inside the space its parent offers.
	LayoutGravity string `toml:"layout-gravity"`

	// Visibility is "visible", "invisible", or "gone".
	Visibility string `toml:"visibility"`

	// AlignWithParent falls back to parent alignment when a sibling
	// anchor cannot be found.
	AlignWithParent bool `toml:"align-with-parent"`

	// Rules maps rule names to anchor tags (sibling relations) or true
	// (container relations).
	Rules map[string]any `toml:"rules"`

	// Container keys.
	Padding       []int   `toml:"padding"`
	Gravity       string  `toml:"gravity"`
	Direction     string  `toml:"direction"`
	IgnoreGravity string  `toml:"ignore-gravity"`
	Orientation   string  `toml:"orientation"`
	WeightSum     float64 `toml:"weight-sum"`

	BaselineAligned         *bool  `toml:"baseline-aligned"`
	BaselineAlignedChild    *int   `toml:"baseline-aligned-child"`
	MeasureWithLargestChild bool   `toml:"measure-with-largest-child"`
	DividerSize             int    `toml:"divider-size"`
	ShowDividers            string `toml:"show-dividers"`

	Children []Node `toml:"child"`
}

// Blueprint is a parsed document: the built container tree plus the
// constraints the root container declared for itself. A fixed root size
// becomes an exact constraint on that axis; "wrap" or an omitted key
// leaves the axis unconstrained (the zero Spec). Callers that have no
// external constraint of their own resolve against Width and Height.
type Blueprint struct {
	Container layout.Container
	Width     layout.Spec
	Height    layout.Spec
}

// Load reads and builds the blueprint at path.
func Load(path string) (*Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "blueprint %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidBlueprint, err, "read blueprint %s", path)
	}
	return Parse(data)
}

// Parse decodes a blueprint document and builds its container tree.
func Parse(data []byte) (*Blueprint, error) {
	var root Root
	if err := toml.Unmarshal(data, &root); err != nil {
		if code := errors.GetCode(err); code != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidBlueprint, err, "parse blueprint")
	}
	c, err := buildContainer(&root.Container)
	if err != nil {
		return nil, err
	}
	w, err := rootConstraint(root.Container.Width)
	if err != nil {
		return nil, err
	}
	h, err := rootConstraint(root.Container.Height)
	if err != nil {
		return nil, err
	}
	return &Blueprint{Container: c, Width: w, Height: h}, nil
}

// rootConstraint maps the root container's declared size onto the default
// measurement constraint for that axis.
func rootConstraint(d Dimension) (layout.Spec, error) {
	if d.declared && d.Policy == layout.SizeMatchParent {
		return layout.Spec{}, errors.New(errors.ErrCodeInvalidDimension,
			"the root container has no parent to match")
	}
	if d.declared && d.Policy == layout.SizeFixed {
		return layout.MakeSpec(d.Value, layout.Exactly), nil
	}
	return layout.Spec{}, nil
}
