// Package pipeline provides the core load → resolve → render pipeline.
//
// This package implements the complete blueprint pipeline shared by the
// CLI commands. Centralizing it keeps command behavior consistent and
// gives caching and observability one place to live.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Parse the blueprint and build the container tree
//  2. Resolve: Run the layout pass against the requested constraints
//  3. Render: Generate output in the requested formats (SVG, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(nil, logger)
//	opts := pipeline.Options{
//	    Blueprint: "layout.toml",
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/buwaro/anchor/pkg/errors"
)

// Default values shared by all pipeline entry points.
const (
	// DefaultScale is the coordinate multiplier for SVG output.
	DefaultScale = 1.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// Options contains all configuration for the blueprint pipeline.
// This struct supports JSON serialization for tooling integration.
type Options struct {
	// Load options
	Blueprint string `json:"blueprint,omitempty"` // blueprint file path
	Direction string `json:"direction,omitempty"` // "ltr" or "rtl" override; empty keeps the blueprint's

	// Resolve options; zero defers to the size the blueprint's root
	// container declares, or leaves the axis unconstrained.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Labels  bool     `json:"labels,omitempty"`

	// Source is raw blueprint TOML; when set it takes precedence over
	// Blueprint. Not serialized.
	Source []byte `json:"-"`

	// Logger overrides the runner's logger for this execution.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults validates the options and fills in defaults.
// Execute calls it automatically; call it directly when inspecting
// options before running.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Blueprint == "" && len(o.Source) == 0 {
		return errors.New(errors.ErrCodeInvalidBlueprint, "no blueprint given")
	}
	switch o.Direction {
	case "", "ltr", "rtl":
	default:
		return errors.New(errors.ErrCodeInvalidDirection, "unknown direction %q", o.Direction)
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidDimension, "negative constraint %dx%d", o.Width, o.Height)
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
		}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "negative scale %v", o.Scale)
	}

	o.validated = true
	return nil
}
