package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// ExportDocument serializes the full state tree. The exported file is the
// same shape the report generator and the old web UI consume.
func ExportDocument(doc *Document) ([]byte, error) {
	out := Document{
		Nodes:   doc.Nodes,
		Edges:   doc.Edges,
		Strokes: doc.Strokes,
		Labels:  doc.Labels,
	}
	if out.Nodes == nil {
		out.Nodes = []Node{}
	}
	if out.Edges == nil {
		out.Edges = []json.RawMessage{}
	}
	if out.Strokes == nil {
		out.Strokes = []Stroke{}
	}
	if out.Labels == nil {
		out.Labels = []TextLabel{}
	}
	return json.MarshalIndent(out, "", "  ")
}

// ImportDocument parses an exported file. Missing collections default to
// empty; a file that does not parse is rejected outright so the caller
// can leave current state untouched.
func ImportDocument(data []byte) (*Document, error) {
	var in Document
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("invalid file: %w", err)
	}
	doc := NewDocument()
	if in.Nodes != nil {
		doc.Nodes = in.Nodes
	}
	if in.Edges != nil {
		doc.Edges = in.Edges
	}
	if in.Strokes != nil {
		doc.Strokes = in.Strokes
	}
	if in.Labels != nil {
		doc.Labels = in.Labels
	}
	return doc, nil
}

func ExportToFile(doc *Document, path string) error {
	data, err := ExportDocument(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func ImportFromFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ImportDocument(data)
}
