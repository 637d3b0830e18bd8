// Package cache persists per-paper extraction results between builder runs,
// keyed by a stable hash of the paper title. The cache is loaded once at
// startup and written back whole after every update, so a crashed run loses
// at most the paper being processed.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/papergraph/papergraph/pkg/common"
	"github.com/papergraph/papergraph/pkg/logger"
)

// PaperID derives the stable cache key for a paper title.
func PaperID(title string) string {
	sum := md5.Sum([]byte(title))
	return hex.EncodeToString(sum[:])
}

// PaperRecord is the cached extraction state of one paper. The *ExtractedAt
// timestamps double as completion markers: a nil timestamp means that
// extraction stage has not produced a usable result yet and will be retried
// on the next run.
type PaperRecord struct {
	PaperID  string `json:"paper_id"`
	Title    string `json:"title"`
	Abstract string `json:"abstract,omitempty"`
	Field    string `json:"field,omitempty"`

	AuthorMetadata     []common.AuthorRecord `json:"author_metadata,omitempty"`
	AuthorsExtractedAt *time.Time            `json:"authors_extracted_at,omitempty"`

	Entities            []common.ConceptRecord         `json:"entities,omitempty"`
	Relations           []common.ConceptRelationRecord `json:"relationships,omitempty"`
	EntitiesExtractedAt *time.Time                     `json:"entities_extracted_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaperUpdate carries the fields to merge into a paper's cache record.
// Nil slices and empty strings leave the existing values untouched.
type PaperUpdate struct {
	Abstract string
	Field    string

	AuthorMetadata []common.AuthorRecord
	Entities       []common.ConceptRecord
	Relations      []common.ConceptRelationRecord
}

// Statistics summarizes the cache contents.
type Statistics struct {
	TotalPapers  int `json:"total_papers"`
	WithAuthors  int `json:"with_authors"`
	WithEntities int `json:"with_entities"`
	Complete     int `json:"complete"`
}

// PaperCache is the in-memory view of the extraction cache backed by a
// Store. All methods are safe for concurrent use; every mutation is
// persisted synchronously before it returns.
type PaperCache struct {
	mu     sync.Mutex
	store  Store
	papers map[string]*PaperRecord
}

// NewPaperCache loads the cache from the store. A missing cache starts
// empty; a corrupt cache is discarded with a warning rather than aborting
// the run, since every entry can be re-extracted.
func NewPaperCache(ctx context.Context, store Store) (*PaperCache, error) {
	c := &PaperCache{
		store:  store,
		papers: make(map[string]*PaperRecord),
	}

	data, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load paper cache: %w", err)
	}
	if len(data) == 0 {
		return c, nil
	}

	if err := json.Unmarshal(data, &c.papers); err != nil {
		logger.Warn("Discarding corrupt paper cache", "error", err)
		c.papers = make(map[string]*PaperRecord)
		return c, nil
	}

	logger.Debug("Loaded paper cache", "papers", len(c.papers))
	return c, nil
}

// HasPaper reports whether any record exists for the title.
func (c *PaperCache) HasPaper(title string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.papers[PaperID(title)]
	return ok
}

// HasAuthorMetadata reports whether author extraction has completed for
// the title.
func (c *PaperCache) HasAuthorMetadata(title string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	record, ok := c.papers[PaperID(title)]
	return ok && record.AuthorsExtractedAt != nil
}

// HasEntities reports whether concept extraction has completed for the
// title.
func (c *PaperCache) HasEntities(title string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	record, ok := c.papers[PaperID(title)]
	return ok && record.EntitiesExtractedAt != nil
}

// GetPaperData returns a copy of the record for the title, or false.
func (c *PaperCache) GetPaperData(title string) (PaperRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	record, ok := c.papers[PaperID(title)]
	if !ok {
		return PaperRecord{}, false
	}
	return *record, true
}

// UpdatePaperData merges the update into the paper's record, creating it
// if needed, and persists the whole cache before returning. Supplying
// author metadata or entities marks the corresponding extraction stage
// complete.
func (c *PaperCache) UpdatePaperData(ctx context.Context, title string, update PaperUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UTC()
	id := PaperID(title)
	record, ok := c.papers[id]
	if !ok {
		record = &PaperRecord{
			PaperID:   id,
			Title:     title,
			CreatedAt: now,
		}
		c.papers[id] = record
	}
	record.UpdatedAt = now

	if update.Abstract != "" {
		record.Abstract = update.Abstract
	}
	if update.Field != "" {
		record.Field = update.Field
	}
	if update.AuthorMetadata != nil {
		record.AuthorMetadata = update.AuthorMetadata
		record.AuthorsExtractedAt = &now
	}
	if update.Entities != nil {
		record.Entities = update.Entities
		record.Relations = update.Relations
		record.EntitiesExtractedAt = &now
	}

	return c.persist(ctx)
}

// persist writes the whole cache through the store. Callers must hold mu.
func (c *PaperCache) persist(ctx context.Context) error {
	data, err := json.MarshalIndent(c.papers, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal paper cache: %w", err)
	}
	if err := c.store.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to persist paper cache: %w", err)
	}
	return nil
}

// Statistics returns aggregate completion counts.
func (c *PaperCache) Statistics() Statistics {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := Statistics{TotalPapers: len(c.papers)}
	for _, record := range c.papers {
		authors := record.AuthorsExtractedAt != nil
		entities := record.EntitiesExtractedAt != nil
		if authors {
			stats.WithAuthors++
		}
		if entities {
			stats.WithEntities++
		}
		if authors && entities {
			stats.Complete++
		}
	}
	return stats
}

// Clear drops every record and persists the now-empty cache. The confirm
// flag guards against accidental calls; Clear is a no-op without it.
func (c *PaperCache) Clear(ctx context.Context, confirm bool) error {
	if !confirm {
		logger.Warn("Cache clear requested without confirmation, skipping")
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.papers = make(map[string]*PaperRecord)
	return c.persist(ctx)
}

// ExportSeparateFiles writes each paper's record to its own JSON file in
// dir, named by paper ID. Useful for inspecting individual extractions.
func (c *PaperCache) ExportSeparateFiles(dir string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	for id, record := range c.papers {
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal record %s: %w", id, err)
		}
		path := filepath.Join(dir, id+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write record %s: %w", id, err)
		}
	}
	return nil
}
