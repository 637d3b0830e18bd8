package cache

import (
	"context"

	"github.com/papergraph/papergraph/pkg/common"
	"github.com/papergraph/papergraph/pkg/extract"
	"github.com/papergraph/papergraph/pkg/logger"
)

// CachedAuthorExtractor is a read-through cache around an AuthorExtractor.
// Empty extraction results are returned but not persisted, so they are
// retried on the next run.
type CachedAuthorExtractor struct {
	inner extract.AuthorExtractor
	cache *PaperCache
}

// NewCachedAuthorExtractor wraps inner with the given cache.
func NewCachedAuthorExtractor(inner extract.AuthorExtractor, cache *PaperCache) *CachedAuthorExtractor {
	return &CachedAuthorExtractor{inner: inner, cache: cache}
}

func (e *CachedAuthorExtractor) ExtractAuthors(
	ctx context.Context,
	title, content string,
) ([]common.AuthorRecord, error) {
	if e.cache.HasAuthorMetadata(title) {
		record, _ := e.cache.GetPaperData(title)
		logger.Debug("Author metadata cache hit", "paper", title)
		return record.AuthorMetadata, nil
	}

	authors, err := e.inner.ExtractAuthors(ctx, title, content)
	if err != nil {
		return nil, err
	}
	if len(authors) == 0 {
		logger.Warn("No authors extracted, will retry next run", "paper", title)
		return authors, nil
	}

	if err := e.cache.UpdatePaperData(ctx, title, PaperUpdate{AuthorMetadata: authors}); err != nil {
		return nil, err
	}
	return authors, nil
}

// CachedConceptExtractor is a read-through cache around a ConceptExtractor.
// A successful extraction also persists the paper's abstract and field, so
// the cache alone can rebuild the graph.
type CachedConceptExtractor struct {
	inner extract.ConceptExtractor
	cache *PaperCache
}

// NewCachedConceptExtractor wraps inner with the given cache.
func NewCachedConceptExtractor(inner extract.ConceptExtractor, cache *PaperCache) *CachedConceptExtractor {
	return &CachedConceptExtractor{inner: inner, cache: cache}
}

func (e *CachedConceptExtractor) ExtractConcepts(
	ctx context.Context,
	paper *common.Paper,
) (*extract.ConceptExtraction, error) {
	if e.cache.HasEntities(paper.Title) {
		record, _ := e.cache.GetPaperData(paper.Title)
		logger.Debug("Concept cache hit", "paper", paper.Title)
		return &extract.ConceptExtraction{
			Concepts:  record.Entities,
			Relations: record.Relations,
		}, nil
	}

	extraction, err := e.inner.ExtractConcepts(ctx, paper)
	if err != nil {
		return nil, err
	}
	if len(extraction.Concepts) == 0 {
		logger.Warn("No concepts extracted, will retry next run", "paper", paper.Title)
		return extraction, nil
	}

	err = e.cache.UpdatePaperData(ctx, paper.Title, PaperUpdate{
		Abstract:  paper.Abstract,
		Field:     paper.Field,
		Entities:  extraction.Concepts,
		Relations: extraction.Relations,
	})
	if err != nil {
		return nil, err
	}
	return extraction, nil
}
