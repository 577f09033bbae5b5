package domain

// MaxFallbackResults caps the normalised web results returned to callers.
const MaxFallbackResults = 3

// FeaturedAnswerTitle is the title given to a provider's direct answer.
const FeaturedAnswerTitle = "Featured Answer"

// SearchResultItem is the provider-independent shape of a web result.
type SearchResultItem struct {
	Title     string `json:"title"`
	Snippet   string `json:"snippet"`
	SourceURL string `json:"source_url"`
}

// ProviderResponse is what a single provider call returns before normalisation.
type ProviderResponse struct {
	// Items are the organic results in provider order.
	Items []SearchResultItem

	// DirectAnswer is the provider's featured result, if any.
	DirectAnswer *SearchResultItem
}

// FallbackOutcome holds up to MaxFallbackResults items from the provider
// that answered, or Unavailable with a reason when every provider failed.
type FallbackOutcome struct {
	// Provider names the provider that produced Items.
	Provider string `json:"provider,omitempty"`

	// Items are the normalised results, direct answer first.
	Items []SearchResultItem `json:"items,omitempty"`

	// Unavailable is set when no provider produced usable results.
	Unavailable bool `json:"unavailable"`

	// Reason is an aggregate, actionable explanation when Unavailable.
	Reason string `json:"reason,omitempty"`
}
