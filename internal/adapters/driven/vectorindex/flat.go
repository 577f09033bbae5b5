package vectorindex

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
)

// Ensure FlatIndex implements the interface.
var _ driven.VectorIndex = (*FlatIndex)(nil)

// FlatIndex is an immutable in-memory index searched exhaustively.
type FlatIndex struct {
	meta    domain.IndexMeta
	ids     []string
	vectors [][]float32
}

// NewFlatIndex builds an index over entries. Every embedding must have
// meta.Dimensions components when Dimensions is set.
func NewFlatIndex(meta domain.IndexMeta, entries []driven.IndexEntry) (*FlatIndex, error) {
	idx := &FlatIndex{
		meta:    meta,
		ids:     make([]string, len(entries)),
		vectors: make([][]float32, len(entries)),
	}
	for i, e := range entries {
		if meta.Dimensions > 0 && len(e.Embedding) != meta.Dimensions {
			return nil, fmt.Errorf("%w: vector for document %s has %d dimensions, index has %d",
				domain.ErrData, e.DocumentID, len(e.Embedding), meta.Dimensions)
		}
		idx.ids[i] = e.DocumentID
		idx.vectors[i] = e.Embedding
	}
	return idx, nil
}

// Search returns the k nearest vectors by L2 distance, closest first.
// Equal distances keep insertion order.
func (f *FlatIndex) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if k <= 0 || len(f.vectors) == 0 {
		return nil, nil
	}
	if f.meta.Dimensions > 0 && len(query) != f.meta.Dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d",
			domain.ErrInvalidInput, len(query), f.meta.Dimensions)
	}

	hits := make([]driven.VectorHit, len(f.vectors))
	for i, vec := range f.vectors {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		hits[i] = driven.VectorHit{DocumentID: f.ids[i], Distance: L2(query, vec)}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Meta describes the build.
func (f *FlatIndex) Meta() domain.IndexMeta { return f.meta }

// Len returns the number of vectors.
func (f *FlatIndex) Len() int { return len(f.vectors) }

// Close is a no-op; the index holds no external resources.
func (f *FlatIndex) Close() error { return nil }

// L2 returns the Euclidean distance between a and b, accumulated in float64.
func L2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
