// Package pkg provides the core libraries for anchor layout resolution.
//
// # Overview
//
// Anchor resolves declarative child-positioning blueprints — relative
// rules, linear distribution, gravity — into concrete frames. The pkg
// directory is organized into four main areas:
//
//  1. [layout] - The geometry engine (size negotiation, relation graphs, containers)
//  2. [blueprint] - TOML blueprint parsing and container construction
//  3. [render], [io] - Output generation (SVG diagrams, DOT graphs, JSON documents)
//  4. [pipeline] - Orchestration (load → resolve → render) with caching
//
// # Architecture
//
// The typical data flow through anchor:
//
//	Blueprint (TOML)
//	         ↓
//	    [blueprint] package (parse + build container tree)
//	         ↓
//	    [layout] package (measure pass: negotiate, sort, position)
//	         ↓
//	    [render] / [io] packages (SVG, DOT, JSON output)
//
// # Quick Start
//
// Build a container programmatically and resolve it:
//
//	import (
//	    "github.com/buwaro/anchor/pkg/layout"
//	)
//
//	// 1. Declare the tree
//	r := layout.NewRelative()
//	r.Add(layout.NewBox(40, 20), layout.Params{Tag: "icon"})
//
//	var title layout.Params
//	title.AddRule(layout.RightOf, "icon")
//	r.Add(layout.NewBox(120, 20), title)
//
//	// 2. Resolve against constraints
//	size := r.Measure(layout.MakeSpec(320, layout.Exactly), layout.MakeSpec(0, layout.Unspecified))
//
//	// 3. Read the frames
//	frames := r.Frames()
//
// Or run the full pipeline from a blueprint file:
//
//	runner := pipeline.NewRunner(nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Blueprint: "panel.toml",
//	    Formats:   []string{"svg", "json"},
//	})
//
// # Main Packages
//
//   - [geom]: primitive types (Size, Rect, Insets, optional Coord)
//   - [layout]: measurement specs, relative and linear containers
//   - [blueprint]: TOML decoding into container trees
//   - [io]: JSON export/import of resolved layouts
//   - [render]: SVG frame diagrams and Graphviz relation graphs
//   - [cache]: artifact caching for the CLI
//   - [pipeline]: the load → resolve → render orchestration
//   - [errors]: structured error codes shared by the surfaces
//   - [observability]: hooks around resolution and rendering
package pkg
