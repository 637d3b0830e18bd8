package graph

import (
	"testing"

	"github.com/papergraph/papergraph/pkg/common"
)

func TestNormalizeConceptName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase", input: "Graph Neural Network", want: "graph neural network"},
		{name: "punctuation stripped", input: "B+-Tree (index)", want: "btree index"},
		{name: "whitespace collapsed", input: "  deep \t learning  ", want: "deep learning"},
		{name: "only punctuation", input: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeConceptName(tt.input); got != tt.want {
				t.Errorf("normalizeConceptName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "identical", a: "model", b: "model", want: 0},
		{name: "empty left", a: "", b: "abc", want: 3},
		{name: "empty right", a: "abc", b: "", want: 3},
		{name: "substitution", a: "graph", b: "grape", want: 1},
		{name: "insertion", a: "network", b: "networks", want: 1},
		{name: "unrelated", a: "cat", b: "dog", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := levenshtein(tt.a, tt.b); got != tt.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestFindSimilarConceptGroups(t *testing.T) {
	b := NewBuilder()
	for _, name := range []string{
		"Neural Networks",
		"neural network",
		"NEURAL-NETWORKS",
		"Decision Tree",
	} {
		if _, err := b.GetOrCreateConcept(name, "METHOD", ""); err != nil {
			t.Fatal(err)
		}
	}

	groups := b.FindSimilarConceptGroups(DefaultResolveThreshold)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if len(groups[0]) != 3 {
		t.Errorf("got group of %d, want 3", len(groups[0]))
	}
	// Shortest name wins the canonical slot.
	if groups[0][0].Name != "neural network" {
		t.Errorf("canonical is %q, want %q", groups[0][0].Name, "neural network")
	}
}

func TestShortNamesOnlyMatchExactly(t *testing.T) {
	b := NewBuilder()
	for _, name := range []string{"GAN", "GNN", "RNN"} {
		if _, err := b.GetOrCreateConcept(name, "METHOD", ""); err != nil {
			t.Fatal(err)
		}
	}

	if groups := b.FindSimilarConceptGroups(DefaultResolveThreshold); len(groups) != 0 {
		t.Errorf("short acronyms grouped together: %d groups", len(groups))
	}
}

func TestResolveConceptsPreservesEdges(t *testing.T) {
	b := NewBuilder()

	first := &common.Paper{Title: "First"}
	second := &common.Paper{Title: "Second"}

	if err := b.IngestPaperConcepts(first, []common.ConceptRecord{
		{Name: "Neural Networks", Type: "METHOD"},
	}, nil, 1.0); err != nil {
		t.Fatal(err)
	}
	if err := b.IngestPaperConcepts(second, []common.ConceptRecord{
		{Name: "neural network", Type: "METHOD"},
	}, nil, 1.0); err != nil {
		t.Fatal(err)
	}

	before := b.Statistics()
	merged := b.ResolveConcepts(DefaultResolveThreshold)
	after := b.Statistics()

	if merged != 1 {
		t.Fatalf("merged %d concepts, want 1", merged)
	}
	if after.NodeTypes[common.NodeConcept] != 1 {
		t.Errorf("got %d concepts after resolve, want 1", after.NodeTypes[common.NodeConcept])
	}
	if after.TotalEdges != before.TotalEdges {
		t.Errorf("edge count changed during merge: %d -> %d", before.TotalEdges, after.TotalEdges)
	}

	// Both PaperConcept edges must now point at the surviving concept.
	canonical := b.conceptsByName["neural network"]
	if canonical == nil {
		t.Fatal("canonical concept not found by name")
	}
	for _, edge := range b.Edges() {
		if edge.EdgeType != common.EdgePaperConcept {
			continue
		}
		if edge.Target.Key() != canonical.Key() {
			t.Errorf("edge from %s still points at merged concept", edge.Source.Key())
		}
	}

	// Name lookups for the duplicate resolve to the canonical concept.
	if b.conceptsByName["Neural Networks"] != canonical {
		t.Error("duplicate name does not resolve to canonical concept")
	}
}

func TestResolveConceptsFillsAttributes(t *testing.T) {
	b := NewBuilder()

	if _, err := b.GetOrCreateConcept("transformer", "", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := b.GetOrCreateConcept("Transformers", "METHOD", "attention model"); err != nil {
		t.Fatal(err)
	}

	if merged := b.ResolveConcepts(DefaultResolveThreshold); merged != 1 {
		t.Fatalf("merged %d concepts, want 1", merged)
	}

	canonical := b.conceptsByName["transformer"]
	if canonical.ConceptType != "METHOD" || canonical.Description != "attention model" {
		t.Errorf("attributes not filled from duplicate: type=%q description=%q",
			canonical.ConceptType, canonical.Description)
	}
}
