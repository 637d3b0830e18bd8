// Package extract turns raw paper text into structured records: ordered
// author lists and concept/relation sets. Implementations are backed by a
// model client; the cache layer wraps them transparently.
package extract

import (
	"context"

	"github.com/papergraph/papergraph/pkg/common"
)

// DefaultConceptTypes is the concept type vocabulary offered to the
// extraction model when the caller supplies none.
var DefaultConceptTypes = []string{
	"CONCEPT", "METHOD", "DATASET", "METRIC", "APPLICATION",
	"TOOL", "PROBLEM", "RESULT", "FRAMEWORK",
}

// AuthorExtractor produces the ordered author list of a paper from the
// text block between the title and the abstract.
type AuthorExtractor interface {
	ExtractAuthors(ctx context.Context, title, content string) ([]common.AuthorRecord, error)
}

// ConceptExtraction is the result of one concept extraction pass.
type ConceptExtraction struct {
	Concepts  []common.ConceptRecord
	Relations []common.ConceptRelationRecord
}

// ConceptExtractor produces concepts and concept-concept relations from a
// paper's abstract. Relation strengths are normalized to [0,1].
type ConceptExtractor interface {
	ExtractConcepts(ctx context.Context, paper *common.Paper) (*ConceptExtraction, error)
}
