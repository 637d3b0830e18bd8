package graph

import (
	"fmt"
	"sort"

	"github.com/papergraph/papergraph/pkg/common"
	"github.com/papergraph/papergraph/pkg/logger"
)

// IngestPaperAuthors processes one paper's ordered author list: it creates
// or reuses the paper, author and affiliation nodes, attaches AuthorPaper
// edges weighted by the Harmonic Credit Model, and creates or updates the
// Coauthor, PaperAffiliation and AffiliationCollaboration edges. Re-ingesting
// the same paper is idempotent: authorship order and weight are overwritten,
// evidence lists gain no duplicate entries, and create-once edges are skipped.
func (b *Builder) IngestPaperAuthors(paper *common.Paper, authors []common.AuthorRecord) error {
	paperNode := b.AddPaper(paper)

	orders := make([]int, len(authors))
	for i, record := range authors {
		orders[i] = record.Order
	}
	weights := HarmonicCredit(orders)

	authorNodes := make([]*common.Author, 0, len(authors))
	paperAffiliations := make(map[string]*common.Affiliation)

	for i, record := range authors {
		authorNode := b.GetOrCreateAuthor(record.Name, record.Email)
		authorNodes = append(authorNodes, authorNode)

		order := record.Order
		if order <= 0 {
			order = 1
		}

		if edge := b.findEdge(authorNode, paperNode, common.EdgeAuthorPaper); edge != nil {
			edge.Order = order
			edge.Weight = weights[i]
		} else {
			edge, err := common.NewEdge(common.EdgeAuthorPaper, authorNode, paperNode)
			if err != nil {
				return fmt.Errorf("failed to create authorship edge: %w", err)
			}
			edge.Order = order
			edge.Weight = weights[i]
			b.addEdge(edge)
		}

		if record.Affiliation != "" {
			affiliationNode := b.GetOrCreateAffiliation(record.Affiliation)
			paperAffiliations[affiliationNode.Name] = affiliationNode

			if b.findEdge(authorNode, affiliationNode, common.EdgeAuthorAffiliation) == nil {
				edge, err := common.NewEdge(common.EdgeAuthorAffiliation, authorNode, affiliationNode)
				if err != nil {
					return fmt.Errorf("failed to create affiliation edge: %w", err)
				}
				b.addEdge(edge)
			}
		}
	}

	for i := 0; i < len(authorNodes); i++ {
		for j := i + 1; j < len(authorNodes); j++ {
			if authorNodes[i] == authorNodes[j] {
				continue
			}
			if err := b.upsertEvidenceEdge(common.EdgeCoauthor, authorNodes[i], authorNodes[j], paperNode); err != nil {
				return err
			}
		}
	}

	affiliationList := make([]*common.Affiliation, 0, len(paperAffiliations))
	for _, affiliation := range paperAffiliations {
		affiliationList = append(affiliationList, affiliation)
	}
	sort.Slice(affiliationList, func(i, j int) bool {
		return affiliationList[i].Name < affiliationList[j].Name
	})

	for _, affiliationNode := range affiliationList {
		if b.findEdge(paperNode, affiliationNode, common.EdgePaperAffiliation) == nil {
			edge, err := common.NewEdge(common.EdgePaperAffiliation, paperNode, affiliationNode)
			if err != nil {
				return fmt.Errorf("failed to create paper affiliation edge: %w", err)
			}
			b.addEdge(edge)
		}
	}

	for i := 0; i < len(affiliationList); i++ {
		for j := i + 1; j < len(affiliationList); j++ {
			if err := b.upsertEvidenceEdge(common.EdgeAffiliationCollaboration, affiliationList[i], affiliationList[j], paperNode); err != nil {
				return err
			}
		}
	}

	return nil
}

// upsertEvidenceEdge creates a canonically ordered symmetric edge carrying
// the paper as initial evidence, or appends the paper to an existing edge's
// evidence list if it is not already present.
func (b *Builder) upsertEvidenceEdge(edgeType common.EdgeType, a, c common.Node, paper *common.Paper) error {
	source, target := a, c
	if source.Key() > target.Key() {
		source, target = target, source
	}

	if edge := b.findEdge(source, target, edgeType); edge != nil {
		edge.AddEvidence(paper)
		return nil
	}

	edge, err := common.NewEdge(edgeType, source, target)
	if err != nil {
		return fmt.Errorf("failed to create %s edge: %w", edgeType, err)
	}
	edge.AddEvidence(paper)
	b.addEdge(edge)
	return nil
}

// IngestPaperConcepts attaches extracted concepts to a paper with the given
// importance weight and records concept-concept relations. PaperConcept
// edges are deduplicated per pair with an updatable weight; ConceptConcept
// edges are appended without deduplication, since each paper's mention is
// independent evidence. Empty inputs are a no-op.
func (b *Builder) IngestPaperConcepts(
	paper *common.Paper,
	concepts []common.ConceptRecord,
	relations []common.ConceptRelationRecord,
	weight float64,
) error {
	if len(concepts) == 0 && len(relations) == 0 {
		return nil
	}

	paperNode := b.AddPaper(paper)

	for _, record := range concepts {
		conceptNode, err := b.GetOrCreateConcept(record.Name, record.Type, record.Description)
		if err != nil {
			return fmt.Errorf("failed to create concept node: %w", err)
		}
		if record.Field != "" && conceptNode.Field == "" {
			conceptNode.Field = record.Field
		}

		if edge := b.findEdge(paperNode, conceptNode, common.EdgePaperConcept); edge != nil {
			edge.Weight = weight
		} else {
			edge, err := common.NewEdge(common.EdgePaperConcept, paperNode, conceptNode)
			if err != nil {
				return fmt.Errorf("failed to create paper concept edge: %w", err)
			}
			edge.Weight = weight
			b.addEdge(edge)
		}
	}

	for _, record := range relations {
		source, okS := b.conceptsByName[record.SourceName]
		target, okT := b.conceptsByName[record.TargetName]
		if !okS || !okT {
			logger.Warn("Concept relation references unknown concept",
				"source", record.SourceName, "target", record.TargetName)
			continue
		}

		edge, err := common.NewEdge(common.EdgeConceptConcept, source, target)
		if err != nil {
			return fmt.Errorf("failed to create concept relation edge: %w", err)
		}
		edge.Description = record.Description
		edge.Strength = record.Strength
		b.addEdge(edge)
	}

	return nil
}

// AddPaperCitation records that citing cites cited. Both papers are added
// to the graph if absent; at most one citation edge exists per pair.
func (b *Builder) AddPaperCitation(citing, cited *common.Paper) error {
	citingNode := b.AddPaper(citing)
	citedNode := b.AddPaper(cited)

	if b.findEdge(citingNode, citedNode, common.EdgePaperCitation) != nil {
		return nil
	}

	edge, err := common.NewEdge(common.EdgePaperCitation, citingNode, citedNode)
	if err != nil {
		return fmt.Errorf("failed to create citation edge: %w", err)
	}
	b.addEdge(edge)
	return nil
}
