package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/papergraph/papergraph/pkg/common"
	"github.com/papergraph/papergraph/pkg/export"
	"github.com/papergraph/papergraph/pkg/extract"
	"github.com/papergraph/papergraph/pkg/graph"
)

type stubAuthorExtractor struct {
	failTitles map[string]bool
}

func (s *stubAuthorExtractor) ExtractAuthors(_ context.Context, title, _ string) ([]common.AuthorRecord, error) {
	if s.failTitles[title] {
		return nil, errors.New("model unavailable")
	}
	return []common.AuthorRecord{
		{Name: "Alice " + title, Order: 1},
		{Name: "Bob", Order: 2},
	}, nil
}

type stubConceptExtractor struct{}

func (stubConceptExtractor) ExtractConcepts(_ context.Context, paper *common.Paper) (*extract.ConceptExtraction, error) {
	return &extract.ConceptExtraction{
		Concepts: []common.ConceptRecord{
			{Name: "THING", Type: "CONCEPT", Description: paper.Title},
		},
	}, nil
}

func newTestProcessor(failTitles map[string]bool) *Processor {
	return NewProcessor(NewProcessorParams{
		Builder:          graph.NewBuilder(),
		AuthorExtractor:  &stubAuthorExtractor{failTitles: failTitles},
		ConceptExtractor: stubConceptExtractor{},
	})
}

func TestProcessPapers(t *testing.T) {
	p := newTestProcessor(nil)
	papers := []PaperSource{
		{Title: "First", Abstract: "a"},
		{Title: "Second", Abstract: "b"},
	}

	summary, err := p.ProcessPapers(context.Background(), papers)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Succeeded != 2 || summary.Failed != 0 {
		t.Errorf("got summary %+v", summary)
	}

	stats := p.Statistics()
	if stats.NodeTypes[common.NodePaper] != 2 {
		t.Errorf("got %d papers in graph, want 2", stats.NodeTypes[common.NodePaper])
	}
	// Bob appears on both papers, THING is shared.
	if stats.NodeTypes[common.NodeAuthor] != 3 {
		t.Errorf("got %d authors, want 3", stats.NodeTypes[common.NodeAuthor])
	}
	if stats.NodeTypes[common.NodeConcept] != 1 {
		t.Errorf("got %d concepts, want 1", stats.NodeTypes[common.NodeConcept])
	}
}

func TestProcessPapersFailureIsolation(t *testing.T) {
	p := newTestProcessor(map[string]bool{"Broken": true})
	papers := []PaperSource{
		{Title: "First"},
		{Title: "Broken"},
		{Title: "Second"},
	}

	summary, err := p.ProcessPapers(context.Background(), papers)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Succeeded != 2 || summary.Failed != 1 {
		t.Errorf("got summary %+v", summary)
	}

	// The failed paper leaves no node behind.
	stats := p.Statistics()
	if stats.NodeTypes[common.NodePaper] != 2 {
		t.Errorf("got %d papers in graph, want 2", stats.NodeTypes[common.NodePaper])
	}
}

func TestProcessPapersParallel(t *testing.T) {
	p := NewProcessor(NewProcessorParams{
		Builder:          graph.NewBuilder(),
		AuthorExtractor:  &stubAuthorExtractor{},
		ConceptExtractor: stubConceptExtractor{},
		ParallelPapers:   4,
	})

	papers := make([]PaperSource, 20)
	for i := range papers {
		papers[i] = PaperSource{Title: "Paper " + string(rune('A'+i))}
	}

	summary, err := p.ProcessPapers(context.Background(), papers)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Succeeded != 20 {
		t.Errorf("got %d succeeded, want 20", summary.Succeeded)
	}
	if stats := p.Statistics(); stats.NodeTypes[common.NodePaper] != 20 {
		t.Errorf("got %d papers, want 20", stats.NodeTypes[common.NodePaper])
	}
}

func TestConsolidateAndExport(t *testing.T) {
	builder := graph.NewBuilder()
	p := NewProcessor(NewProcessorParams{
		Builder:          builder,
		AuthorExtractor:  &stubAuthorExtractor{},
		ConceptExtractor: stubConceptExtractor{},
	})

	if _, err := p.ProcessPapers(context.Background(), []PaperSource{
		{Title: "First"},
	}); err != nil {
		t.Fatal(err)
	}
	p.Consolidate(graph.DefaultResolveThreshold)

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := p.Export(path); err != nil {
		t.Fatal(err)
	}

	h, err := export.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	stats := p.Statistics()
	if h.NumNodes() != stats.TotalNodes {
		t.Errorf("exported %d nodes, graph has %d", h.NumNodes(), stats.TotalNodes)
	}
	if h.NumLinks() != stats.TotalEdges {
		t.Errorf("exported %d links, graph has %d", h.NumLinks(), stats.TotalEdges)
	}
}
