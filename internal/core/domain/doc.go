// Package domain defines the core business entities for the KCC assistant.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawRecord: One advisory row read from the corpus file
//   - NormalizedDocument: The fixed-template text form of a RawRecord
//   - IndexMeta: Identity of a persisted vector index build
//   - RetrievalOutcome: The accept/reject decision for a query
//   - FallbackOutcome: Web search results or an explicit unavailability
//   - RouterResult: The single result handed back to front-ends
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
