package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadJSON decodes a document from r.
//
// The input must be a JSON object with a "frames" array; each frame must
// have an "id" field. ReadJSON returns an error if:
//   - The JSON is malformed
//   - A frame has a duplicate identifier
//   - An edge references an unknown frame identifier
//
// The returned document is independent of r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	seen := make(map[string]bool, len(doc.Frames))
	for _, f := range doc.Frames {
		if f.ID == "" {
			return nil, fmt.Errorf("frame %d: missing id", len(seen))
		}
		if seen[f.ID] {
			return nil, fmt.Errorf("frame %s: duplicate id", f.ID)
		}
		seen[f.ID] = true
	}
	for _, e := range doc.Edges {
		if !seen[e.From] {
			return nil, fmt.Errorf("edge %s->%s: unknown frame %s", e.From, e.To, e.From)
		}
		if !seen[e.To] {
			return nil, fmt.Errorf("edge %s->%s: unknown frame %s", e.From, e.To, e.To)
		}
	}

	return &doc, nil
}

// ImportJSON reads a JSON file at path and returns the decoded document.
// It returns the same validation errors as [ReadJSON].
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
