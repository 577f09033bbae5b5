// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CorpusReader: Reads advisory rows from the corpus file
//   - DocumentStore: Normalised document persistence
//   - IndexStore: Vector index artifact persistence (atomic replace)
//   - EmbeddingService: Generates vector embeddings for documents and queries
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TextGenerator: Local answer generation. Without it, accepted local
//     context is returned for manual reading.
//   - SearchProvider: Web search fallback. With none configured the
//     fallback reports itself unavailable.
//   - SearchCache: Caches fallback results between identical queries.
//   - PromptStore: User-editable prompt templates.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
