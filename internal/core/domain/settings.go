package domain

import "fmt"

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI or an OpenAI-compatible API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// SearchProviderName identifies a web search provider.
type SearchProviderName string

// Supported web search providers.
const (
	// ProviderSerpAPI is SerpAPI's Google engine. Requires an API key.
	ProviderSerpAPI SearchProviderName = "serpapi"

	// ProviderGoogle is Google Programmable Search. Requires an API key and cx.
	ProviderGoogle SearchProviderName = "google"

	// ProviderDuckDuckGo is the keyless DuckDuckGo Instant Answer API.
	ProviderDuckDuckGo SearchProviderName = "duckduckgo"
)

// IsValid returns true if the provider is recognised.
func (n SearchProviderName) IsValid() bool {
	switch n {
	case ProviderSerpAPI, ProviderGoogle, ProviderDuckDuckGo:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (n SearchProviderName) String() string {
	return string(n)
}

// StorageBackend selects where normalised documents are persisted.
type StorageBackend string

// Available storage backends.
const (
	StorageSQLite StorageBackend = "sqlite"
	StorageJSON   StorageBackend = "json"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageSQLite || b == StorageJSON
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint.
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// BatchSize is the number of documents embedded per request during an index rebuild.
	BatchSize int
}

// DefaultEmbedBatchSize is the number of documents embedded per request.
const DefaultEmbedBatchSize = 64

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds local text generator configuration.
type LLMSettings struct {
	// Model is the generation model name.
	Model string

	// BaseURL is the Ollama endpoint.
	BaseURL string

	// MaxConcurrent bounds simultaneous generation calls.
	MaxConcurrent int
}

// RetrievalSettings holds local retrieval policy.
type RetrievalSettings struct {
	// Threshold is the maximum accepted best distance.
	Threshold float64

	// TopK is the number of passages retrieved per query.
	TopK int

	// FilterPassages joins only passages within the threshold when true.
	// When false every top-k passage is joined once the best one passes.
	FilterPassages bool
}

// Validate checks the retrieval settings are within range.
func (r RetrievalSettings) Validate() error {
	if err := ValidateThreshold(r.Threshold); err != nil {
		return err
	}
	if r.TopK < 1 {
		return fmt.Errorf("%w: top_k must be at least 1", ErrInvalidInput)
	}
	return nil
}

// ValidateThreshold checks a threshold is within the adjustable range.
func ValidateThreshold(threshold float64) error {
	if threshold < MinThreshold || threshold > MaxThreshold {
		return fmt.Errorf("%w: threshold %.2f outside [%.1f, %.1f]",
			ErrInvalidInput, threshold, MinThreshold, MaxThreshold)
	}
	return nil
}

// WebSearchSettings holds fallback search configuration.
type WebSearchSettings struct {
	// Providers is the priority order of providers to try.
	Providers []SearchProviderName

	// SerpAPIKey enables the serpapi provider.
	SerpAPIKey string

	// GoogleAPIKey and GoogleCX enable the google provider.
	GoogleAPIKey string
	GoogleCX     string

	// CacheTTLSeconds enables result caching when positive.
	CacheTTLSeconds int

	// RedisAddr is the cache server address. Empty disables caching.
	RedisAddr string
}

// IsProviderConfigured reports whether the provider has the credentials it needs.
func (w WebSearchSettings) IsProviderConfigured(name SearchProviderName) bool {
	switch name {
	case ProviderSerpAPI:
		return w.SerpAPIKey != ""
	case ProviderGoogle:
		return w.GoogleAPIKey != "" && w.GoogleCX != ""
	case ProviderDuckDuckGo:
		return true
	default:
		return false
	}
}

// ConfiguredProviders returns the providers in priority order that can be used.
func (w WebSearchSettings) ConfiguredProviders() []SearchProviderName {
	result := make([]SearchProviderName, 0, len(w.Providers))
	for _, name := range w.Providers {
		if w.IsProviderConfigured(name) {
			result = append(result, name)
		}
	}
	return result
}

// StorageSettings holds persistence configuration.
type StorageSettings struct {
	// Backend is where normalised documents are stored.
	Backend StorageBackend

	// DataDir holds the document store and the index artifact.
	DataDir string

	// CorpusPath is the CSV corpus file.
	CorpusPath string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Embedding EmbeddingSettings
	LLM       LLMSettings
	Retrieval RetrievalSettings
	WebSearch WebSearchSettings
	Storage   StorageSettings
}

// DefaultAppSettings returns settings that work against a local Ollama
// with the keyless web provider as the only fallback.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider:  AIProviderOllama,
			Model:     "all-minilm",
			BatchSize: DefaultEmbedBatchSize,
		},
		LLM: LLMSettings{
			Model:         "gemma:2b",
			MaxConcurrent: 2,
		},
		Retrieval: RetrievalSettings{
			Threshold: DefaultThreshold,
			TopK:      DefaultTopK,
		},
		WebSearch: WebSearchSettings{
			Providers: DefaultProviderOrder(),
		},
		Storage: StorageSettings{
			Backend:    StorageSQLite,
			CorpusPath: "KCC-DataSet.csv",
		},
	}
}

// DefaultProviderOrder returns credentialed providers first, keyless last.
func DefaultProviderOrder() []SearchProviderName {
	return []SearchProviderName{ProviderSerpAPI, ProviderGoogle, ProviderDuckDuckGo}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "all-minilm",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
