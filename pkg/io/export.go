package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/buwaro/anchor/pkg/layout"
)

// Document is the serialized form of one resolved layout.
type Document struct {
	Container string  `json:"container"`
	Direction string  `json:"direction"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Baseline  *int    `json:"baseline,omitempty"`
	Pass      *Pass   `json:"pass,omitempty"`
	Frames    []Frame `json:"frames"`
	Edges     []Edge  `json:"edges,omitempty"`
}

// Pass carries the diagnostics of the resolution pass that produced the
// frames. It is present only when a fallback fired.
type Pass struct {
	HorizontalCycleFallback int `json:"horizontal_cycle_fallback,omitempty"`
	VerticalCycleFallback   int `json:"vertical_cycle_fallback,omitempty"`
}

// Frame is the resolved rectangle of one child.
type Frame struct {
	ID         string `json:"id"`
	Left       int    `json:"left"`
	Top        int    `json:"top"`
	Right      int    `json:"right"`
	Bottom     int    `json:"bottom"`
	Visibility string `json:"visibility,omitempty"`
}

// Edge is one dependency relation between tagged children.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Rule string `json:"rule"`
}

// Snapshot captures a container's most recent resolution as a Document.
// The container must have been measured; Snapshot reads frames as-is and
// performs no resolution itself.
func Snapshot(c layout.Container) *Document {
	doc := &Document{
		Container: containerKind(c),
		Direction: "ltr",
	}

	size := c.Size()
	doc.Width, doc.Height = size.W, size.H

	if b := c.Baseline(); b >= 0 {
		doc.Baseline = &b
	}

	var dir layout.Direction
	switch cc := c.(type) {
	case *layout.Relative:
		dir = cc.Direction
	case *layout.Linear:
		dir = cc.Direction
	}
	if dir == layout.RTL {
		doc.Direction = "rtl"
	}

	if info := c.Pass(); !info.Clean() {
		doc.Pass = &Pass{
			HorizontalCycleFallback: info.HorizontalCycleFallback,
			VerticalCycleFallback:   info.VerticalCycleFallback,
		}
	}

	children := c.Children()
	frames := c.Frames()
	doc.Frames = make([]Frame, len(children))
	for i, child := range children {
		f := Frame{
			ID:     child.ID(i),
			Left:   frames[i].Left,
			Top:    frames[i].Top,
			Right:  frames[i].Right,
			Bottom: frames[i].Bottom,
		}
		if v := child.Params.Visibility; v != layout.Visible {
			f.Visibility = v.String()
		}
		doc.Frames[i] = f
	}

	for _, e := range layout.DependencyEdges(children, dir) {
		doc.Edges = append(doc.Edges, Edge{From: e.From, To: e.To, Rule: e.Rule.String()})
	}

	return doc
}

func containerKind(c layout.Container) string {
	switch c.(type) {
	case *layout.Relative:
		return "relative"
	case *layout.Linear:
		return "linear"
	default:
		return "container"
	}
}

// WriteJSON encodes a document as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a document to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(doc, f)
}
