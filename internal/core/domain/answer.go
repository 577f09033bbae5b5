package domain

// ResultKind tags the variant held by a RouterResult.
type ResultKind string

// Router result variants.
const (
	// KindLocalAnswer: local context was accepted and an answer generated.
	KindLocalAnswer ResultKind = "local_answer"

	// KindLocalRetrievalFailed: local context was accepted but generation failed.
	KindLocalRetrievalFailed ResultKind = "local_retrieval_failed"

	// KindFallbackAnswer: local context was rejected and a web provider answered.
	KindFallbackAnswer ResultKind = "fallback_answer"

	// KindFallbackUnavailable: local context was rejected and every provider failed.
	KindFallbackUnavailable ResultKind = "fallback_unavailable"
)

// String returns the string representation.
func (k ResultKind) String() string {
	return string(k)
}

// IsLocal returns true for the variants produced from the local corpus.
func (k ResultKind) IsLocal() bool {
	return k == KindLocalAnswer || k == KindLocalRetrievalFailed
}

// RouterResult is the single structured result of answering a query.
// Fields not belonging to Kind are left at their zero value.
type RouterResult struct {
	// Kind selects the variant.
	Kind ResultKind

	// Query is the question as asked.
	Query string

	// BestDistance is reported for every variant.
	BestDistance float64

	// Quality is the display band of BestDistance.
	Quality QualityBand

	// AnswerText is set for KindLocalAnswer.
	AnswerText string

	// ContextText is set for both local variants.
	ContextText string

	// Err is the generation failure for KindLocalRetrievalFailed and wraps
	// ErrAllProvidersFailed for KindFallbackUnavailable.
	Err error

	// LocalUnavailable is set on fallback results when local retrieval was
	// skipped because the embedding service could not be reached.
	LocalUnavailable bool

	// Provider and Items are set for KindFallbackAnswer.
	Provider string
	Items    []SearchResultItem

	// Reason is set for KindFallbackUnavailable.
	Reason string
}

// AskOptions configures a QueryRouter call.
type AskOptions struct {
	// Threshold overrides the configured threshold when non-zero.
	Threshold float64

	// TopK overrides the configured top-k when non-zero.
	TopK int

	// Providers restricts the fallback chain to these provider names, in order.
	// Nil means the configured chain.
	Providers []string
}

// SampleQueries are example questions covered by the corpus.
func SampleQueries() []string {
	return []string{
		"How to manage drought stress in groundnut cultivation?",
		"What issues do sugarcane farmers in Maharashtra commonly face?",
		"Best fertilizers for wheat crop in Punjab",
		"How to prevent fungal diseases in tomato plants?",
		"Organic farming techniques for cotton",
		"Water management for rice cultivation",
		"Soil preparation for potato farming",
		"How to control aphids in mustard crop?",
		"Post-harvest storage techniques for grains",
	}
}
