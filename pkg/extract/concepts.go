package extract

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/invopop/jsonschema"

	"github.com/papergraph/papergraph/pkg/ai"
	"github.com/papergraph/papergraph/pkg/common"
	"github.com/papergraph/papergraph/pkg/logger"
)

type conceptEntity struct {
	EntityName        string `json:"entity_name" jsonschema_description:"Name of the concept, all letters capitalized"`
	EntityType        string `json:"entity_type" jsonschema_description:"One of the provided concept types"`
	EntityDescription string `json:"entity_description" jsonschema_description:"Comprehensive description of the concept based on the paper"`
}

type conceptRelationship struct {
	SourceEntity            string  `json:"source_entity" jsonschema_description:"Name of the source concept, as identified in step 1"`
	TargetEntity            string  `json:"target_entity" jsonschema_description:"Name of the target concept, as identified in step 1"`
	RelationshipDescription string  `json:"relationship_description" jsonschema_description:"Explanation as to why the source and target concepts are related"`
	RelationshipStrength    float64 `json:"relationship_strength" jsonschema_description:"Integer score from 1 to 10 indicating strength of the relationship"`
}

type conceptResponse struct {
	Entities      []conceptEntity       `json:"entities" jsonschema_description:"Concepts identified in the paper"`
	Relationships []conceptRelationship `json:"relationships" jsonschema_description:"Relationships identified between the concepts"`
}

// AIConceptExtractor extracts concepts and relations with a model client.
type AIConceptExtractor struct {
	client       ai.GraphAIClient
	conceptTypes []string
	opts         []ai.GenerateOption
}

// NewAIConceptExtractor creates a concept extractor on top of the given
// client. An empty conceptTypes falls back to DefaultConceptTypes.
func NewAIConceptExtractor(
	client ai.GraphAIClient,
	conceptTypes []string,
	opts ...ai.GenerateOption,
) *AIConceptExtractor {
	if len(conceptTypes) == 0 {
		conceptTypes = DefaultConceptTypes
	}
	return &AIConceptExtractor{client: client, conceptTypes: conceptTypes, opts: opts}
}

func (e *AIConceptExtractor) ExtractConcepts(
	ctx context.Context,
	paper *common.Paper,
) (*ConceptExtraction, error) {
	if strings.TrimSpace(paper.Abstract) == "" {
		return &ConceptExtraction{}, nil
	}

	systemPrompt := fmt.Sprintf(ConceptExtractPrompt, strings.Join(e.conceptTypes, ", "))
	prompt := fmt.Sprintf("Title: %s\n\nAbstract:\n%s", paper.Title, paper.Abstract)

	var res conceptResponse
	opts := append([]ai.GenerateOption{
		ai.WithSystemPrompts(systemPrompt),
	}, e.opts...)

	err := e.client.GenerateCompletionWithFormat(
		ctx,
		"extract_concepts_and_relationships",
		"Extract concepts and relationships from a paper abstract.",
		prompt,
		&res,
		opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("concept extraction failed: %w", err)
	}

	extraction := &ConceptExtraction{
		Concepts:  make([]common.ConceptRecord, 0, len(res.Entities)),
		Relations: make([]common.ConceptRelationRecord, 0, len(res.Relationships)),
	}

	known := make(map[string]bool, len(res.Entities))
	for _, entity := range res.Entities {
		if entity.EntityName == "" {
			continue
		}
		known[entity.EntityName] = true
		extraction.Concepts = append(extraction.Concepts, common.ConceptRecord{
			Name:        entity.EntityName,
			Type:        entity.EntityType,
			Description: entity.EntityDescription,
			Field:       paper.Field,
		})
	}

	for _, rel := range res.Relationships {
		if !known[rel.SourceEntity] || !known[rel.TargetEntity] {
			logger.Warn("Dropping relationship with unknown concept",
				"paper", paper.Title, "source", rel.SourceEntity, "target", rel.TargetEntity)
			continue
		}
		strength := rel.RelationshipStrength / 10.0
		if strength < 0 {
			strength = 0
		}
		if strength > 1 {
			strength = 1
		}
		extraction.Relations = append(extraction.Relations, common.ConceptRelationRecord{
			SourceName:  rel.SourceEntity,
			TargetName:  rel.TargetEntity,
			Description: rel.RelationshipDescription,
			Strength:    strength,
		})
	}

	return extraction, nil
}
