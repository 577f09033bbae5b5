package vectorindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
)

func testEntries() []driven.IndexEntry {
	return []driven.IndexEntry{
		{DocumentID: "a", Embedding: []float32{3, 4}},
		{DocumentID: "b", Embedding: []float32{1, 0}},
		{DocumentID: "c", Embedding: []float32{0, 1}},
		{DocumentID: "d", Embedding: []float32{0, 0}},
	}
}

func TestL2(t *testing.T) {
	assert.InDelta(t, 5.0, L2([]float32{0, 0}, []float32{3, 4}), 1e-9)
	assert.Zero(t, L2([]float32{1, 2}, []float32{1, 2}))
}

func TestFlatIndex_Search(t *testing.T) {
	idx, err := NewFlatIndex(domain.IndexMeta{Dimensions: 2}, testEntries())
	require.NoError(t, err)

	hits, err := idx.Search(context.Background(), []float32{0, 0}, 3)

	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "d", hits[0].DocumentID)
	assert.Zero(t, hits[0].Distance)
	// b and c tie at distance 1 and keep insertion order.
	assert.Equal(t, "b", hits[1].DocumentID)
	assert.Equal(t, "c", hits[2].DocumentID)
	assert.InDelta(t, 1.0, hits[1].Distance, 1e-9)
}

func TestFlatIndex_SearchKLargerThanIndex(t *testing.T) {
	idx, err := NewFlatIndex(domain.IndexMeta{Dimensions: 2}, testEntries())
	require.NoError(t, err)

	hits, err := idx.Search(context.Background(), []float32{3, 4}, 10)

	require.NoError(t, err)
	require.Len(t, hits, 4)
	assert.Equal(t, "a", hits[0].DocumentID)
	assert.InDelta(t, 5.0, hits[3].Distance, 1e-9)
}

func TestFlatIndex_Empty(t *testing.T) {
	idx, err := NewFlatIndex(domain.IndexMeta{}, nil)
	require.NoError(t, err)

	hits, err := idx.Search(context.Background(), []float32{1}, 3)

	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Zero(t, idx.Len())
}

func TestFlatIndex_DimensionMismatch(t *testing.T) {
	_, err := NewFlatIndex(domain.IndexMeta{Dimensions: 3}, testEntries())
	assert.ErrorIs(t, err, domain.ErrData)

	idx, err := NewFlatIndex(domain.IndexMeta{Dimensions: 2}, testEntries())
	require.NoError(t, err)
	_, err = idx.Search(context.Background(), []float32{1, 2, 3}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFlatIndex_CancelledContext(t *testing.T) {
	idx, err := NewFlatIndex(domain.IndexMeta{Dimensions: 2}, testEntries())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = idx.Search(ctx, []float32{0, 0}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
