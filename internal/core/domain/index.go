package domain

import "time"

// IndexMeta identifies a persisted vector index build.
// The embedding model is stored with the index so queries can refuse to
// run against vectors produced by a different model.
type IndexMeta struct {
	// BuildID uniquely identifies this build.
	BuildID string

	// EmbeddingModel is the model name used to embed every document.
	EmbeddingModel string

	// Dimensions is the vector size.
	Dimensions int

	// DocumentCount is the number of indexed documents.
	DocumentCount int

	// DocumentsDigest is DocumentsDigest of the collection the index was
	// built from. Empty for artifacts that predate it.
	DocumentsDigest string

	// BuiltAt is when the build finished.
	BuiltAt time.Time
}
