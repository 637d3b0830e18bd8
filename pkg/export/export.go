// Package export defines the node-link JSON document written by the graph
// builder and a read handle for querying a previously exported document.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Node is one exported graph node. Identity lives in ID; the remaining
// fields are type-specific attributes and are omitted when empty.
type Node struct {
	ID       string `json:"id"`
	NodeType string `json:"node_type"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`

	Title    string `json:"title,omitempty"`
	Abstract string `json:"abstract,omitempty"`
	Field    string `json:"field,omitempty"`

	ConceptType string `json:"concept_type,omitempty"`
	Description string `json:"description,omitempty"`
}

// Link is one exported graph edge. Source and Target reference node IDs.
// Evidence lists are flattened to paper titles plus a count.
type Link struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	EdgeType string `json:"edge_type"`
	Relation string `json:"relation"`

	Order       int      `json:"order,omitempty"`
	Weight      float64  `json:"weight,omitempty"`
	Papers      []string `json:"papers,omitempty"`
	NumPapers   int      `json:"num_papers,omitempty"`
	Description string   `json:"description,omitempty"`
	Strength    float64  `json:"strength,omitempty"`
}

// Document is the top-level node-link structure.
type Document struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// WriteFile writes the document as indented JSON, creating parent
// directories as needed.
func (d *Document) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal graph document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write graph document: %w", err)
	}
	return nil
}

// ReadFile loads a previously exported document.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse graph document: %w", err)
	}
	return &doc, nil
}
