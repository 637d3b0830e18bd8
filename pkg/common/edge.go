package common

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// EdgeType identifies the kind of a graph edge.
type EdgeType string

const (
	EdgeAuthorPaper              EdgeType = "AuthorPaper"
	EdgeAuthorAffiliation        EdgeType = "AuthorAffiliation"
	EdgeCoauthor                 EdgeType = "Coauthor"
	EdgePaperAffiliation         EdgeType = "PaperAffiliation"
	EdgeAffiliationCollaboration EdgeType = "AffiliationCollaboration"
	EdgePaperConcept             EdgeType = "PaperConcept"
	EdgePaperCitation            EdgeType = "PaperCitation"
	EdgeConceptConcept           EdgeType = "ConceptConcept"
)

// Relation returns the relation label carried by edges of this type.
func (t EdgeType) Relation() string {
	switch t {
	case EdgeAuthorPaper:
		return "writes"
	case EdgeAuthorAffiliation:
		return "is_affiliated_with"
	case EdgeCoauthor:
		return "coauthor_of"
	case EdgePaperAffiliation:
		return "produced_at"
	case EdgeAffiliationCollaboration:
		return "collaborates_with"
	case EdgePaperConcept:
		return "discusses"
	case EdgePaperCitation:
		return "cites"
	case EdgeConceptConcept:
		return "related_to"
	}
	return string(t)
}

// Deduplicated reports whether at most one edge of this type may exist per
// (source,target) pair. ConceptConcept edges are intentionally parallel:
// each paper's mention is independent evidence.
func (t EdgeType) Deduplicated() bool {
	return t != EdgeConceptConcept
}

// Symmetric reports whether edges of this type represent an unordered pair
// and must have their endpoints canonically ordered before storage.
func (t EdgeType) Symmetric() bool {
	return t == EdgeCoauthor || t == EdgeAffiliationCollaboration
}

// Edge is a directed, typed edge between two graph nodes. Only the attribute
// fields relevant to the edge type are populated.
type Edge struct {
	ID       string
	EdgeType EdgeType
	Relation string
	Source   Node
	Target   Node

	Order       int      // AuthorPaper: 1-based author position
	Weight      float64  // AuthorPaper credit, PaperConcept importance, evidence count for symmetric types
	Rank        int      // AuthorAffiliation
	Papers      []*Paper // Coauthor / AffiliationCollaboration evidence list
	Description string   // ConceptConcept
	Strength    float64  // ConceptConcept, in [0,1]
}

// NewEdge creates an edge of the given type between source and target.
// For symmetric edge types the endpoints are swapped into canonical order
// (ascending identity key) so the same unordered pair always maps to the
// same directed edge.
func NewEdge(edgeType EdgeType, source, target Node) (*Edge, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}
	if edgeType.Symmetric() && source.Key() > target.Key() {
		source, target = target, source
	}
	return &Edge{
		ID:       id,
		EdgeType: edgeType,
		Relation: edgeType.Relation(),
		Source:   source,
		Target:   target,
	}, nil
}

// AddEvidence appends paper to the evidence list if it is not already
// present. Equality is by paper identity (title). Reports whether the
// list changed.
func (e *Edge) AddEvidence(paper *Paper) bool {
	for _, p := range e.Papers {
		if p.Title == paper.Title {
			return false
		}
	}
	e.Papers = append(e.Papers, paper)
	e.Weight = float64(len(e.Papers))
	return true
}
