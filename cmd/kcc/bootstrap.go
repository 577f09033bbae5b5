package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/kcc-assistant/internal/adapters/driven/ai"
	"github.com/custodia-labs/kcc-assistant/internal/adapters/driven/cache/redis"
	"github.com/custodia-labs/kcc-assistant/internal/adapters/driven/config/file"
	"github.com/custodia-labs/kcc-assistant/internal/adapters/driven/corpus"
	"github.com/custodia-labs/kcc-assistant/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/kcc-assistant/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/kcc-assistant/internal/adapters/driven/vectorindex"
	"github.com/custodia-labs/kcc-assistant/internal/adapters/driven/websearch"
	"github.com/custodia-labs/kcc-assistant/internal/adapters/driving/cli"
	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
	"github.com/custodia-labs/kcc-assistant/internal/core/services"
)

// Environment variables that override stored settings.
const (
	envSerpAPIKey   = "SERPAPI_API_KEY"
	envGoogleAPIKey = "GOOGLE_API_KEY"
	envGoogleCX     = "GOOGLE_CSE_ID"
	envOllamaHost   = "OLLAMA_HOST"
)

// bootstrap wires adapters into the core services for one CLI invocation.
func bootstrap(ctx context.Context, configDir string) (*cli.Services, func(), error) {
	if configDir == "" {
		dir, err := file.DefaultConfigDir()
		if err != nil {
			return nil, nil, err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("loading settings: %w", err)
	}
	applyEnv(settings, os.Getenv)

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	dataDir := settings.Storage.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}

	docStore, closeStore, err := openDocumentStore(settings.Storage.Backend, dataDir)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, closeStore)

	indexPath := filepath.Join(dataDir, vectorindex.FileName)
	indexStore := vectorindex.NewArtifactStore(indexPath)

	aiServices := ai.Initialise(*settings)
	closers = append(closers, aiServices.Close)

	promptStore, err := file.NewPromptStore(filepath.Join(configDir, "prompts"))
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("opening prompts: %w", err)
	}

	normalizer := services.NewNormalizerService(corpus.NewCSVReader(settings.Storage.CorpusPath), docStore)
	indexer := services.NewIndexService(docStore, indexStore, aiServices.EmbeddingService, vectorindex.NewBuildID)
	indexer.SetBatchSize(settings.Embedding.BatchSize)
	retrieval := services.NewRetrievalService(indexStore, docStore, aiServices.EmbeddingService)
	retrieval.SetFilterPassages(settings.Retrieval.FilterPassages)
	indexer.OnRebuild(retrieval)

	synthesizer := services.NewSynthesizerService(aiServices.Generator)
	synthesizer.SetPromptStore(promptStore)

	providers := websearch.NewProviders(ctx, settings.WebSearch)
	warnings := aiServices.Warnings

	var cache driven.SearchCache
	if settings.WebSearch.RedisAddr != "" && settings.WebSearch.CacheTTLSeconds > 0 {
		searchCache, closeCache, err := openSearchCache(ctx, settings.WebSearch)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("web result cache disabled: %v", err))
		} else {
			cache = searchCache
			closers = append(closers, closeCache)
		}
	}
	fallback := services.NewFallbackService(cache)

	router := services.NewRouterService(retrieval, synthesizer, fallback, providers, settings.Retrieval)
	router.SetMaintenance(normalizer, indexer)

	status := services.NewStatusService(docStore, indexStore, aiServices.EmbeddingService, providers)

	return &cli.Services{
		Router:    router,
		Status:    status,
		Settings:  settingsService,
		Reloader:  retrieval,
		IndexPath: indexPath,
		Warnings:  warnings,
	}, cleanup, nil
}

// applyEnv lets environment variables override stored credentials and hosts.
func applyEnv(settings *domain.AppSettings, getenv func(string) string) {
	if v := getenv(envSerpAPIKey); v != "" {
		settings.WebSearch.SerpAPIKey = v
	}
	if v := getenv(envGoogleAPIKey); v != "" {
		settings.WebSearch.GoogleAPIKey = v
	}
	if v := getenv(envGoogleCX); v != "" {
		settings.WebSearch.GoogleCX = v
	}
	if v := getenv(envOllamaHost); v != "" {
		if settings.Embedding.Provider == domain.AIProviderOllama {
			settings.Embedding.BaseURL = v
		}
		settings.LLM.BaseURL = v
	}
}

func openDocumentStore(backend domain.StorageBackend, dataDir string) (driven.DocumentStore, func(), error) {
	switch backend {
	case domain.StorageJSON:
		store, err := jsonfile.NewDocumentStore(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening document store: %w", err)
		}
		return store, func() {}, nil
	case domain.StorageSQLite, "":
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening document store: %w", err)
		}
		return store.DocumentStore(), func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown storage backend %q", domain.ErrInvalidInput, backend)
	}
}

func openSearchCache(ctx context.Context, settings domain.WebSearchSettings) (*redis.SearchCache, func(), error) {
	ttl := time.Duration(settings.CacheTTLSeconds) * time.Second
	cache, err := redis.NewSearchCache(redis.Config{Addr: settings.RedisAddr, TTL: ttl})
	if err != nil {
		return nil, nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx); err != nil {
		_ = cache.Close()
		return nil, nil, err
	}
	return cache, func() { _ = cache.Close() }, nil
}
