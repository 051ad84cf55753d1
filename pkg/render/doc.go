// Package render produces visual artifacts from resolved layouts.
//
// # Overview
//
// Two artifact families are supported:
//
//   - Frame diagrams: an SVG drawing of the container and its resolved
//     child frames, produced by [RenderSVG]. This is the primary way to
//     eyeball a blueprint.
//   - Relation graphs: the dependency edges between tagged children,
//     emitted as Graphviz DOT by [ToDOT] and rendered to SVG by
//     [RenderGraphSVG]. Useful for understanding why a child landed
//     where it did, and for spotting relation cycles.
//
// # Frame diagrams
//
// RenderSVG draws one rectangle per visible child, labeled with the
// child's identifier. Invisible children are drawn with a dashed outline;
// gone children are omitted. Options scale the drawing and toggle labels:
//
//	svg := render.RenderSVG(root, render.WithScale(4), render.WithLabels())
//
// # Relation graphs
//
// ToDOT emits one node per child and one labeled edge per declared
// sibling relation. Children that fell back to original-order placement
// because of a relation cycle still appear; the cycle is visible in the
// graph itself.
package render
