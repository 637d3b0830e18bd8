// Package ollama implements ai.GraphAIClient against an Ollama server,
// for locally-hosted extraction models.
package ollama

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/papergraph/papergraph/pkg/ai"

	"github.com/ollama/ollama/api"
	"golang.org/x/sync/semaphore"
)

// GraphOllamaClient is an ai.GraphAIClient backed by an Ollama server.
// A weighted semaphore bounds the number of in-flight requests, since a
// single Ollama host quickly saturates under parallel extraction.
type GraphOllamaClient struct {
	metadataModel   string
	extractionModel string

	reqLock *semaphore.Weighted

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client

	Client *api.Client
}

// NewGraphOllamaClientParams configures a GraphOllamaClient.
type NewGraphOllamaClientParams struct {
	MetadataModel   string
	ExtractionModel string

	BaseURL string
	ApiKey  string

	MaxConcurrentRequests int64
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so original request isn't modified
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		// don't overwrite if already set
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewGraphOllamaClient creates a client connected to the Ollama server at
// BaseURL, or the default local server if empty.
func NewGraphOllamaClient(
	params NewGraphOllamaClientParams,
) (*GraphOllamaClient, error) {
	var (
		u   *url.URL
		err error
	)

	if params.BaseURL != "" {
		u, err = url.Parse(params.BaseURL)
		if err != nil {
			return nil, err
		}
	}

	httpClient := &http.Client{
		Transport: &headerTransport{
			headers: map[string]string{
				"Authorization": "Bearer " + params.ApiKey,
			},
			rt: http.DefaultTransport,
		},
	}

	maxRequests := params.MaxConcurrentRequests
	if maxRequests <= 0 {
		maxRequests = 1
	}

	return &GraphOllamaClient{
		metadataModel:   params.MetadataModel,
		extractionModel: params.ExtractionModel,

		reqLock: semaphore.NewWeighted(maxRequests),

		baseURL:    u,
		apiKey:     params.ApiKey,
		httpClient: httpClient,

		Client: api.NewClient(u, httpClient),
	}, nil
}
