package domain

// Default retrieval parameters.
const (
	DefaultTopK      = 3
	DefaultThreshold = 1.0

	// MinThreshold and MaxThreshold bound the user-adjustable threshold.
	MinThreshold = 0.5
	MaxThreshold = 2.0
)

// QualityBand is a display label for a retrieval distance.
type QualityBand string

// Quality bands, from closest to furthest.
const (
	QualityHigh   QualityBand = "high"
	QualityMedium QualityBand = "medium"
	QualityLow    QualityBand = "low"
)

// BandFor returns the quality band for a distance.
// It is for display only and never drives a retrieval decision.
func BandFor(distance float64) QualityBand {
	switch {
	case distance < 0.7:
		return QualityHigh
	case distance < 1.2:
		return QualityMedium
	default:
		return QualityLow
	}
}

// String returns the string representation.
func (b QualityBand) String() string {
	return string(b)
}

// ScoredPassage is a document's content paired with its distance from a query.
type ScoredPassage struct {
	DocumentID string
	Content    string
	// Distance is non-negative; lower is more similar.
	Distance float64
}

// RetrievalOptions configures a single retrieval.
type RetrievalOptions struct {
	// TopK is the number of neighbours to fetch. Zero means DefaultTopK.
	TopK int

	// Threshold is the maximum accepted best distance.
	Threshold float64
}

// RetrievalOutcome is either accepted (ContextText set) or rejected.
// BestDistance is always defined; it is 0 when the index returned nothing.
type RetrievalOutcome struct {
	// Accepted is true when the nearest passage met the threshold.
	Accepted bool

	// ContextText is the joined passage content. Empty when rejected.
	ContextText string

	// BestDistance is the smallest distance among the candidates.
	BestDistance float64

	// Passages are the candidates in ascending distance order.
	Passages []ScoredPassage
}

// Rejected builds a rejected outcome.
func Rejected(bestDistance float64, passages []ScoredPassage) *RetrievalOutcome {
	return &RetrievalOutcome{BestDistance: bestDistance, Passages: passages}
}

// Quality returns the display band for the best distance.
func (o *RetrievalOutcome) Quality() QualityBand {
	return BandFor(o.BestDistance)
}
