package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/buwaro/anchor/pkg/layout"
)

func resolvedRelative(t *testing.T) *layout.Relative {
	t.Helper()
	r := layout.NewRelative()
	r.Add(layout.NewBox(40, 20), layout.Params{Tag: "a"})

	var p layout.Params
	p.Tag = "b"
	p.AddRule(layout.RightOf, "a")
	r.Add(layout.NewBox(30, 20), p)

	gone := layout.Params{Tag: "g"}
	gone.Visibility = layout.Gone
	r.Add(layout.NewBox(10, 10), gone)

	r.Measure(layout.MakeSpec(100, layout.Exactly), layout.MakeSpec(20, layout.Exactly))
	return r
}

func TestSnapshot(t *testing.T) {
	doc := Snapshot(resolvedRelative(t))

	if doc.Container != "relative" {
		t.Errorf("Container = %q, want relative", doc.Container)
	}
	if doc.Direction != "ltr" {
		t.Errorf("Direction = %q, want ltr", doc.Direction)
	}
	if doc.Width != 100 || doc.Height != 20 {
		t.Errorf("size = %dx%d, want 100x20", doc.Width, doc.Height)
	}
	if doc.Baseline != nil {
		t.Errorf("Baseline = %v, want nil for baseline-less children", *doc.Baseline)
	}
	if doc.Pass != nil {
		t.Errorf("Pass = %+v, want nil for a clean pass", doc.Pass)
	}

	if len(doc.Frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(doc.Frames))
	}
	b := doc.Frames[1]
	if b.ID != "b" || b.Left != 40 || b.Right != 70 {
		t.Errorf("frame b = %+v", b)
	}
	if doc.Frames[0].Visibility != "" {
		t.Errorf("visible frame carries visibility %q", doc.Frames[0].Visibility)
	}
	if doc.Frames[2].Visibility != "gone" {
		t.Errorf("gone frame visibility = %q, want gone", doc.Frames[2].Visibility)
	}

	if len(doc.Edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(doc.Edges))
	}
	if e := doc.Edges[0]; e.From != "a" || e.To != "b" || e.Rule != "right-of" {
		t.Errorf("edge = %+v", e)
	}
}

func TestSnapshotCyclePass(t *testing.T) {
	r := layout.NewRelative()

	var pa layout.Params
	pa.Tag = "a"
	pa.AddRule(layout.RightOf, "b")
	r.Add(layout.NewBox(10, 10), pa)

	var pb layout.Params
	pb.Tag = "b"
	pb.AddRule(layout.RightOf, "a")
	r.Add(layout.NewBox(10, 10), pb)

	r.Measure(layout.MakeSpec(100, layout.Exactly), layout.MakeSpec(10, layout.Exactly))
	doc := Snapshot(r)

	if doc.Pass == nil {
		t.Fatal("Pass = nil, want cycle fallback diagnostics")
	}
	if doc.Pass.HorizontalCycleFallback != 2 {
		t.Errorf("HorizontalCycleFallback = %d, want 2", doc.Pass.HorizontalCycleFallback)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	doc := Snapshot(resolvedRelative(t))

	var buf bytes.Buffer
	if err := WriteJSON(doc, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got.Container != doc.Container || got.Width != doc.Width || got.Height != doc.Height {
		t.Errorf("header changed: %+v vs %+v", got, doc)
	}
	if len(got.Frames) != len(doc.Frames) {
		t.Fatalf("got %d frames, want %d", len(got.Frames), len(doc.Frames))
	}
	for i := range got.Frames {
		if got.Frames[i] != doc.Frames[i] {
			t.Errorf("frame %d changed: %+v vs %+v", i, got.Frames[i], doc.Frames[i])
		}
	}
}

func TestExportImportFiles(t *testing.T) {
	doc := Snapshot(resolvedRelative(t))
	path := filepath.Join(t.TempDir(), "layout.json")

	if err := ExportJSON(doc, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if got.Width != doc.Width || len(got.Edges) != len(doc.Edges) {
		t.Errorf("imported document differs: %+v", got)
	}
}

func TestReadJSONValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			"malformed",
			`{"frames": [`,
			"decode",
		},
		{
			"missing id",
			`{"frames": [{"left": 0}]}`,
			"missing id",
		},
		{
			"duplicate id",
			`{"frames": [{"id": "a"}, {"id": "a"}]}`,
			"duplicate id",
		},
		{
			"unknown edge source",
			`{"frames": [{"id": "a"}], "edges": [{"from": "x", "to": "a", "rule": "right-of"}]}`,
			"unknown frame x",
		},
		{
			"unknown edge target",
			`{"frames": [{"id": "a"}], "edges": [{"from": "a", "to": "x", "rule": "right-of"}]}`,
			"unknown frame x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("ReadJSON succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestSnapshotLinearDirection(t *testing.T) {
	l := layout.NewLinear(layout.Horizontal)
	l.Direction = layout.RTL
	l.Add(layout.NewBox(30, 10), layout.Params{Tag: "lead"})
	l.Measure(layout.MakeSpec(100, layout.Exactly), layout.MakeSpec(10, layout.Exactly))

	doc := Snapshot(l)
	if doc.Container != "linear" {
		t.Errorf("Container = %q, want linear", doc.Container)
	}
	if doc.Direction != "rtl" {
		t.Errorf("Direction = %q, want rtl", doc.Direction)
	}
	if got := doc.Frames[0]; got.Right != 100 {
		t.Errorf("frame = %+v, want mirrored against the right edge", got)
	}
}
