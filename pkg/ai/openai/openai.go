// Package openai implements ai.GraphAIClient against any OpenAI-compatible
// chat completions endpoint.
package openai

import (
	"sync"

	"github.com/papergraph/papergraph/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// GraphOpenAIClient is an ai.GraphAIClient backed by an OpenAI-compatible
// API. It uses one model for lightweight metadata prompts and another for
// structured extraction.
type GraphOpenAIClient struct {
	metadataModel   string
	extractionModel string

	chatURL string
	chatKey string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewGraphOpenAIClientParams configures a GraphOpenAIClient. ChatURL may
// be left empty to use the default OpenAI endpoint.
type NewGraphOpenAIClientParams struct {
	MetadataModel   string
	ExtractionModel string

	ChatURL string
	ChatKey string
}

// NewGraphOpenAIClient creates a client configured with the provided
// parameters.
func NewGraphOpenAIClient(
	params NewGraphOpenAIClientParams,
) *GraphOpenAIClient {
	return &GraphOpenAIClient{
		metadataModel:   params.MetadataModel,
		extractionModel: params.ExtractionModel,

		chatURL: params.ChatURL,
		chatKey: params.ChatKey,

		ChatClient: newOpenaiClient(params.ChatURL, params.ChatKey),
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}
