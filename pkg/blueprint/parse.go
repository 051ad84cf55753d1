package blueprint

import (
	"strings"

	"github.com/buwaro/anchor/pkg/errors"
	"github.com/buwaro/anchor/pkg/geom"
	"github.com/buwaro/anchor/pkg/layout"
)

var gravityNames = map[string]layout.Gravity{
	"left":              layout.GravityLeft,
	"right":             layout.GravityRight,
	"top":               layout.GravityTop,
	"bottom":            layout.GravityBottom,
	"start":             layout.GravityStart,
	"end":               layout.GravityEnd,
	"center":            layout.GravityCenter,
	"center-horizontal": layout.GravityCenterHorizontal,
	"center-vertical":   layout.GravityCenterVertical,
	"fill-horizontal":   layout.GravityFillHorizontal,
	"fill-vertical":     layout.GravityFillVertical,
	"fill":              layout.GravityFillHorizontal | layout.GravityFillVertical,
}

// parseGravity parses a pipe-separated gravity expression such as
// "bottom|center-horizontal". Empty means no gravity.
func parseGravity(s string) (layout.Gravity, error) {
	if s == "" {
		return layout.GravityNone, nil
	}
	var g layout.Gravity
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		bit, ok := gravityNames[part]
		if !ok {
			return layout.GravityNone, errors.New(errors.ErrCodeInvalidGravity, "unknown gravity %q", part)
		}
		g |= bit
	}
	return g, nil
}

func parseVisibility(s string) (layout.Visibility, error) {
	switch s {
	case "", "visible":
		return layout.Visible, nil
	case "invisible":
		return layout.Invisible, nil
	case "gone":
		return layout.Gone, nil
	default:
		return layout.Visible, errors.New(errors.ErrCodeInvalidVisibility, "unknown visibility %q", s)
	}
}

func parseDirection(s string) (layout.Direction, error) {
	switch s {
	case "", "ltr":
		return layout.LTR, nil
	case "rtl":
		return layout.RTL, nil
	default:
		return layout.LTR, errors.New(errors.ErrCodeInvalidDirection, "unknown direction %q", s)
	}
}

func parseOrientation(s string) (layout.Orientation, error) {
	switch s {
	case "", "horizontal":
		return layout.Horizontal, nil
	case "vertical":
		return layout.Vertical, nil
	default:
		return layout.Horizontal, errors.New(errors.ErrCodeInvalidBlueprint, "unknown orientation %q", s)
	}
}

// parseDividers parses a pipe-separated divider position expression such
// as "beginning|middle".
func parseDividers(s string) (layout.DividerFlags, error) {
	if s == "" || s == "none" {
		return layout.DividerNone, nil
	}
	var f layout.DividerFlags
	for _, part := range strings.Split(s, "|") {
		switch strings.TrimSpace(part) {
		case "beginning":
			f |= layout.DividerBeginning
		case "middle":
			f |= layout.DividerMiddle
		case "end":
			f |= layout.DividerEnd
		default:
			return layout.DividerNone, errors.New(errors.ErrCodeInvalidBlueprint, "unknown divider position %q", part)
		}
	}
	return f, nil
}

// parseInsets accepts [left, top, right, bottom], a single uniform value,
// or nothing.
func parseInsets(v []int) (geom.Insets, error) {
	switch len(v) {
	case 0:
		return geom.Insets{}, nil
	case 1:
		return geom.Uniform(v[0]), nil
	case 4:
		return geom.Insets{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}, nil
	default:
		return geom.Insets{}, errors.New(errors.ErrCodeInvalidBlueprint,
			"insets must be one value or [left, top, right, bottom], got %d values", len(v))
	}
}
