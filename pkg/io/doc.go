// Package io provides JSON export and import for resolved layouts.
//
// # Overview
//
// This package serializes the result of a resolution pass — the frames the
// container assigned to its children — to a simple JSON format. The format
// is designed for:
//
//   - Handing resolved geometry to external drawing or inspection tools
//   - Golden-file testing of blueprints
//   - Round-trip preservation: export, inspect, and re-import identically
//
// # JSON Format
//
// The document has a container header and a "frames" array:
//
//	{
//	  "container": "relative",
//	  "direction": "ltr",
//	  "width": 100,
//	  "height": 60,
//	  "frames": [
//	    {"id": "a", "left": 0, "top": 0, "right": 40, "bottom": 20},
//	    {"id": "b", "left": 50, "top": 0, "right": 80, "bottom": 20}
//	  ]
//	}
//
// Frame coordinates are physical: under right-to-left layout they are the
// mirrored values, exactly as the container resolved them. An optional
// "edges" array carries the dependency relations between tagged children
// for tooling that wants the graph alongside the geometry.
//
// # Export
//
// Use [Snapshot] to capture a resolved container, then [ExportJSON] to
// write it to a file or [WriteJSON] to write to any io.Writer:
//
//	doc := io.Snapshot(root)
//	err := io.ExportJSON(doc, "frames.json")
//
// Snapshot reads the container's most recent resolution; call it only
// after Measure.
//
// # Import
//
// Use [ImportJSON] to read a document from a file path, or [ReadJSON] to
// read from any io.Reader. Both validate that frame identifiers are
// unique and that every edge references a known frame.
//
// # Concurrency
//
// Documents are plain data and safe for concurrent reads. Snapshot must
// not run concurrently with a resolution pass on the same container.
package io
