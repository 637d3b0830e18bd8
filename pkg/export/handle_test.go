package export

import (
	"path/filepath"
	"testing"
)

func testDocument() *Document {
	return &Document{
		Nodes: []Node{
			{ID: "author:Alice", NodeType: "Author", Name: "Alice"},
			{ID: "author:Bob", NodeType: "Author", Name: "Bob"},
			{ID: "paper:On Things", NodeType: "Paper", Title: "On Things"},
			{ID: "concept:abc123", NodeType: "Concept", Name: "THING"},
		},
		Links: []Link{
			{Source: "author:Alice", Target: "paper:On Things", EdgeType: "AuthorPaper", Relation: "writes", Order: 1, Weight: 0.6667},
			{Source: "author:Bob", Target: "paper:On Things", EdgeType: "AuthorPaper", Relation: "writes", Order: 2, Weight: 0.3333},
			{Source: "author:Alice", Target: "author:Bob", EdgeType: "Coauthor", Relation: "coauthor_of", Papers: []string{"On Things"}, NumPapers: 1},
			{Source: "paper:On Things", Target: "concept:abc123", EdgeType: "PaperConcept", Relation: "discusses", Weight: 1.0},
		},
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	doc := testDocument()

	if err := doc.WriteFile(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(loaded.Nodes) != len(doc.Nodes) {
		t.Errorf("got %d nodes, want %d", len(loaded.Nodes), len(doc.Nodes))
	}
	if len(loaded.Links) != len(doc.Links) {
		t.Errorf("got %d links, want %d", len(loaded.Links), len(doc.Links))
	}
}

func TestHandleQueries(t *testing.T) {
	h := NewHandle(testDocument())

	if h.NumNodes() != 4 || h.NumLinks() != 4 {
		t.Errorf("got %d nodes and %d links, want 4 and 4", h.NumNodes(), h.NumLinks())
	}

	if got := len(h.NodesByType("Author")); got != 2 {
		t.Errorf("got %d authors, want 2", got)
	}
	if got := len(h.LinksByType("AuthorPaper")); got != 2 {
		t.Errorf("got %d authorship links, want 2", got)
	}

	node := h.FindNode("concept:abc123")
	if node == nil || node.Name != "THING" {
		t.Errorf("FindNode returned %+v", node)
	}
	if h.FindNode("missing") != nil {
		t.Error("FindNode returned a node for an unknown ID")
	}

	all := h.LinksForNode("author:Alice", "")
	if len(all) != 2 {
		t.Errorf("got %d links for Alice, want 2", len(all))
	}
	coauthor := h.LinksForNode("author:Alice", "Coauthor")
	if len(coauthor) != 1 || coauthor[0].Target != "author:Bob" {
		t.Errorf("got coauthor links %+v", coauthor)
	}
}
