package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrData indicates the corpus or the normalised document store is
	// missing or malformed. Operators fix it by supplying the corpus file
	// and running the normalise step.
	ErrData = errors.New("corpus data error")

	// ErrIndexNotFound indicates a query was attempted before the vector
	// index was built.
	ErrIndexNotFound = errors.New("vector index not found")

	// ErrIndexModelMismatch indicates the index was built with a different
	// embedding model than the one configured for queries.
	ErrIndexModelMismatch = errors.New("vector index embedding model mismatch")

	// ErrIndexStale indicates the documents changed after the index was built,
	// so index entries would resolve to the wrong passages.
	ErrIndexStale = errors.New("vector index is out of date with the documents")

	// ErrRebuildInProgress indicates an index rebuild is already running.
	ErrRebuildInProgress = errors.New("index rebuild in progress")

	// ErrGeneration indicates the local text generator failed or was unreachable.
	ErrGeneration = errors.New("answer generation failed")

	// ErrProvider indicates a single web search provider failed.
	// It is recovered by falling through to the next provider.
	ErrProvider = errors.New("search provider failed")

	// ErrProviderNotConfigured indicates a provider is missing credentials.
	ErrProviderNotConfigured = errors.New("search provider not configured")

	// ErrAllProvidersFailed indicates every configured web provider failed.
	ErrAllProvidersFailed = errors.New("all search providers failed")

	// ErrLLMUnavailable indicates the text generation service is not reachable.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured
	// or not reachable. Local retrieval is impossible without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
