package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandFor(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		expected QualityBand
	}{
		{name: "zero is high", distance: 0, expected: QualityHigh},
		{name: "just under 0.7 is high", distance: 0.699, expected: QualityHigh},
		{name: "0.7 is medium", distance: 0.7, expected: QualityMedium},
		{name: "just under 1.2 is medium", distance: 1.19, expected: QualityMedium},
		{name: "1.2 is low", distance: 1.2, expected: QualityLow},
		{name: "far is low", distance: 3.5, expected: QualityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BandFor(tt.distance))
		})
	}
}

func TestRejected(t *testing.T) {
	outcome := Rejected(1.8, nil)

	assert.False(t, outcome.Accepted)
	assert.Empty(t, outcome.ContextText)
	assert.InDelta(t, 1.8, outcome.BestDistance, 1e-9)
	assert.Equal(t, QualityLow, outcome.Quality())
}

func TestResultKind_IsLocal(t *testing.T) {
	assert.True(t, KindLocalAnswer.IsLocal())
	assert.True(t, KindLocalRetrievalFailed.IsLocal())
	assert.False(t, KindFallbackAnswer.IsLocal())
	assert.False(t, KindFallbackUnavailable.IsLocal())
	assert.Equal(t, "local_answer", KindLocalAnswer.String())
}

func TestSampleQueries(t *testing.T) {
	samples := SampleQueries()

	assert.Len(t, samples, 9)
	assert.Contains(t, samples, "How to control aphids in mustard crop?")
}
