package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/papergraph/papergraph/internal/util"

	"github.com/papergraph/papergraph/pkg/ai"
	oai "github.com/papergraph/papergraph/pkg/ai/ollama"
	gai "github.com/papergraph/papergraph/pkg/ai/openai"
	"github.com/papergraph/papergraph/pkg/cache"
	"github.com/papergraph/papergraph/pkg/extract"
	"github.com/papergraph/papergraph/pkg/graph"
	"github.com/papergraph/papergraph/pkg/logger"
	"github.com/papergraph/papergraph/pkg/logger/console"
	"github.com/papergraph/papergraph/pkg/pipeline"
)

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	// GraphAiClient
	adapter := util.GetEnv("AI_ADAPTER")
	var aiClient ai.GraphAIClient

	switch adapter {
	case "ollama":
		client, err := oai.NewGraphOllamaClient(oai.NewGraphOllamaClientParams{
			MetadataModel:   util.GetEnv("AI_CHAT_METADATA_MODEL"),
			ExtractionModel: util.GetEnv("AI_CHAT_EXTRACT_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_MAX_CONCURRENT_REQUESTS", 1)),
		})
		if err != nil {
			logger.Fatal("Could not create Ollama client", "err", err)
		}
		aiClient = client
	default:
		aiClient = gai.NewGraphOpenAIClient(gai.NewGraphOpenAIClientParams{
			MetadataModel:   util.GetEnv("AI_CHAT_METADATA_MODEL"),
			ExtractionModel: util.GetEnv("AI_CHAT_EXTRACT_MODEL"),

			ChatURL: util.GetEnv("AI_CHAT_URL"),
			ChatKey: util.GetEnv("AI_CHAT_KEY"),
		})
	}

	// Extraction cache
	var store cache.Store
	switch util.GetEnvString("CACHE_BACKEND", "file") {
	case "s3":
		s3Store, err := cache.NewS3StoreFromEnv(ctx)
		if err != nil {
			logger.Fatal("Could not create S3 cache store", "err", err)
		}
		store = s3Store
	default:
		store = cache.NewFileStore(util.GetEnvString("CACHE_PATH", "paper_cache.json"))
	}

	paperCache, err := cache.NewPaperCache(ctx, store)
	if err != nil {
		logger.Fatal("Could not load paper cache", "err", err)
	}

	// Input corpus
	inputPath := util.GetEnvString("PAPERS_PATH", "papers.json")
	papers, err := loadPapers(inputPath)
	if err != nil {
		logger.Fatal("Could not load papers", "path", inputPath, "err", err)
	}
	logger.Info("Loaded papers", "path", inputPath, "count", len(papers))

	processor := pipeline.NewProcessor(pipeline.NewProcessorParams{
		Builder: graph.NewBuilder(),
		AuthorExtractor: cache.NewCachedAuthorExtractor(
			extract.NewAIAuthorExtractor(aiClient), paperCache),
		ConceptExtractor: cache.NewCachedConceptExtractor(
			extract.NewAIConceptExtractor(aiClient, nil), paperCache),
		ParallelPapers: int(util.GetEnvNumeric("PARALLEL_PAPERS", 1)),
		MaxRetries:     int(util.GetEnvNumeric("MAX_RETRIES", 3)),
	})

	if _, err := processor.ProcessPapers(ctx, papers); err != nil {
		logger.Fatal("Processing aborted", "err", err)
	}

	cacheStats := paperCache.Statistics()
	logger.Info("Cache state",
		"papers", cacheStats.TotalPapers,
		"with_authors", cacheStats.WithAuthors,
		"with_entities", cacheStats.WithEntities,
		"complete", cacheStats.Complete)

	threshold := int(util.GetEnvNumeric("RESOLVE_THRESHOLD", graph.DefaultResolveThreshold))
	merged := processor.Consolidate(threshold)
	logger.Info("Consolidation complete", "merged", merged)

	stats := processor.Statistics()
	logger.Info("Graph built",
		"nodes", stats.TotalNodes,
		"edges", stats.TotalEdges,
		"components", stats.Components)

	outputPath := util.GetEnvString("GRAPH_PATH", "paper_graph.json")
	if err := processor.Export(outputPath); err != nil {
		logger.Fatal("Could not export graph", "err", err)
	}

	metrics := aiClient.GetMetrics()
	logger.Info("Model usage",
		"input_tokens", metrics.InputTokens,
		"output_tokens", metrics.OutputTokens,
		"duration_ms", metrics.DurationMs)
}

func loadPapers(path string) ([]pipeline.PaperSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var papers []pipeline.PaperSource
	if err := json.Unmarshal(data, &papers); err != nil {
		return nil, err
	}
	return papers, nil
}
