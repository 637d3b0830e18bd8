// Package pipeline orchestrates paper processing: extraction (through the
// cache), graph ingestion, concept consolidation and export.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/papergraph/papergraph/internal/util"
	"github.com/papergraph/papergraph/pkg/common"
	"github.com/papergraph/papergraph/pkg/extract"
	"github.com/papergraph/papergraph/pkg/graph"
	"github.com/papergraph/papergraph/pkg/logger"
)

// PaperSource is one paper of the input corpus. MetaText is the raw text
// between the title and the abstract, fed to author extraction.
type PaperSource struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	Field    string `json:"field,omitempty"`
	MetaText string `json:"meta_text,omitempty"`
}

// RunSummary reports the outcome of one processing run.
type RunSummary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Processor drives papers through extraction and into the graph builder.
// Extraction may run in parallel; all graph mutation is serialized behind
// a single lock, so the builder itself never sees concurrent calls.
type Processor struct {
	builder *graph.Builder

	authorExtractor  extract.AuthorExtractor
	conceptExtractor extract.ConceptExtractor

	parallelPapers int
	maxRetries     int

	mu sync.Mutex // guards builder mutation
}

// NewProcessorParams configures a Processor.
type NewProcessorParams struct {
	Builder          *graph.Builder
	AuthorExtractor  extract.AuthorExtractor
	ConceptExtractor extract.ConceptExtractor

	// ParallelPapers bounds concurrent paper extraction. Values <= 1
	// process papers sequentially.
	ParallelPapers int
	// MaxRetries is the number of attempts per extraction call.
	MaxRetries int
}

// NewProcessor creates a processor over the given builder and extractors.
func NewProcessor(params NewProcessorParams) *Processor {
	parallel := params.ParallelPapers
	if parallel <= 0 {
		parallel = 1
	}
	retries := params.MaxRetries
	if retries <= 0 {
		retries = 1
	}
	return &Processor{
		builder:          params.Builder,
		authorExtractor:  params.AuthorExtractor,
		conceptExtractor: params.ConceptExtractor,
		parallelPapers:   parallel,
		maxRetries:       retries,
	}
}

// ProcessPapers runs every paper through extraction and ingestion. A paper
// that fails is logged and counted but does not abort the run; its cache
// entry stays incomplete so the next run retries it. Only context
// cancellation stops the run early.
func (p *Processor) ProcessPapers(ctx context.Context, papers []PaperSource) (RunSummary, error) {
	summary := RunSummary{Total: len(papers)}
	if len(papers) == 0 {
		return summary, nil
	}

	var summaryMu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.parallelPapers)

	for _, source := range papers {
		g.Go(func() error {
			err := p.processPaper(gctx, source)

			summaryMu.Lock()
			defer summaryMu.Unlock()
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				summary.Failed++
				logger.Error("Failed to process paper", "paper", source.Title, "error", err)
				return nil
			}
			summary.Succeeded++
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}

	logger.Info("Processing run complete",
		"total", summary.Total, "succeeded", summary.Succeeded, "failed", summary.Failed)
	return summary, nil
}

func (p *Processor) processPaper(ctx context.Context, source PaperSource) error {
	if source.Title == "" {
		return fmt.Errorf("paper has no title")
	}

	paper := &common.Paper{
		Title:    source.Title,
		Abstract: source.Abstract,
		Field:    source.Field,
	}

	authors, err := util.RetryWithContext(ctx, p.maxRetries, func(ctx context.Context) ([]common.AuthorRecord, error) {
		return p.authorExtractor.ExtractAuthors(ctx, source.Title, source.MetaText)
	})
	if err != nil {
		return fmt.Errorf("author extraction: %w", err)
	}

	extraction, err := util.RetryWithContext(ctx, p.maxRetries, func(ctx context.Context) (*extract.ConceptExtraction, error) {
		return p.conceptExtractor.ExtractConcepts(ctx, paper)
	})
	if err != nil {
		return fmt.Errorf("concept extraction: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.builder.IngestPaperAuthors(paper, authors); err != nil {
		return fmt.Errorf("author ingestion: %w", err)
	}
	if err := p.builder.IngestPaperConcepts(paper, extraction.Concepts, extraction.Relations, 1.0); err != nil {
		return fmt.Errorf("concept ingestion: %w", err)
	}
	return nil
}

// Consolidate merges near-duplicate concepts in the graph and returns the
// number of concepts merged away.
func (p *Processor) Consolidate(threshold int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.builder.ResolveConcepts(threshold)
}

// Export writes the graph as a node-link JSON document to path.
func (p *Processor) Export(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc := p.builder.Export()
	if err := doc.WriteFile(path); err != nil {
		return err
	}
	logger.Info("Graph exported", "path", path, "nodes", len(doc.Nodes), "links", len(doc.Links))
	return nil
}

// Statistics returns the builder's current statistics.
func (p *Processor) Statistics() graph.Statistics {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.builder.Statistics()
}
