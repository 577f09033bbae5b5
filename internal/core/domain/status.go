package domain

// Status reports whether the assistant is ready to answer locally.
type Status struct {
	// DocumentsReady is true when normalised documents are persisted.
	DocumentsReady bool

	// DocumentCount is the number of persisted documents.
	DocumentCount int

	// IndexReady is true when a vector index artifact exists.
	IndexReady bool

	// Index describes the current index build. Nil when IndexReady is false.
	Index *IndexMeta

	// EmbeddingModel is the currently configured embedding model.
	EmbeddingModel string

	// ModelMatches is false when the index was built with another model.
	ModelMatches bool

	// Providers lists the configured web search providers in priority order.
	Providers []string
}
