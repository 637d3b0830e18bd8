package extract

import (
	"context"
	"fmt"

	_ "github.com/invopop/jsonschema"

	"github.com/papergraph/papergraph/pkg/ai"
	"github.com/papergraph/papergraph/pkg/common"
)

type authorEntry struct {
	Name        string `json:"name" jsonschema_description:"Full name of the author exactly as printed"`
	Affiliation string `json:"affiliation" jsonschema_description:"Institution the author's markers point at, empty if none is given"`
	Email       string `json:"email" jsonschema_description:"Email address of the author, empty if none is given"`
	Order       int    `json:"order" jsonschema_description:"1-based position of the author in the paper's author list"`
}

type authorResponse struct {
	Authors []authorEntry `json:"authors" jsonschema_description:"Authors of the paper in paper order"`
}

// AIAuthorExtractor extracts ordered author metadata with a model client.
type AIAuthorExtractor struct {
	client ai.GraphAIClient
	opts   []ai.GenerateOption
}

// NewAIAuthorExtractor creates an author extractor on top of the given
// client. Extra generate options are passed through on every call.
func NewAIAuthorExtractor(client ai.GraphAIClient, opts ...ai.GenerateOption) *AIAuthorExtractor {
	return &AIAuthorExtractor{client: client, opts: opts}
}

func (e *AIAuthorExtractor) ExtractAuthors(
	ctx context.Context,
	title, content string,
) ([]common.AuthorRecord, error) {
	var res authorResponse
	opts := append([]ai.GenerateOption{
		ai.WithSystemPrompts(AuthorExtractPrompt),
		ai.WithTemperature(0),
	}, e.opts...)

	prompt := fmt.Sprintf("Paper title: %s\n\n%s", title, content)
	err := e.client.GenerateCompletionWithFormat(
		ctx,
		"extract_authors",
		"Extract the ordered author list from a paper's header block.",
		prompt,
		&res,
		opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("author extraction failed: %w", err)
	}

	records := make([]common.AuthorRecord, 0, len(res.Authors))
	for i, author := range res.Authors {
		if author.Name == "" {
			continue
		}
		order := author.Order
		if order <= 0 {
			order = i + 1
		}
		records = append(records, common.AuthorRecord{
			Name:        author.Name,
			Affiliation: author.Affiliation,
			Email:       author.Email,
			Order:       order,
		})
	}
	return records, nil
}
