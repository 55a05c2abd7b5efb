// Package memory provides a brute-force in-memory vector index with
// metadata filtering. Snapshots are built once, then served read-only,
// so Search is safe for concurrent use.
package memory

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/verita-labs/verita-cli/internal/core/domain"
	"github.com/verita-labs/verita-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index stores evidence chunks with their embeddings and answers
// filtered cosine-similarity queries.
type Index struct {
	mu        sync.RWMutex
	dimension int
	chunks    []domain.EvidenceChunk
	vectors   [][]float32
}

// New creates an empty index for vectors of the given dimension.
func New(dimension int) *Index {
	return &Index{dimension: dimension}
}

// Dimension returns the configured vector size.
func (idx *Index) Dimension() int {
	return idx.dimension
}

// Add inserts a chunk with its embedding.
func (idx *Index) Add(_ context.Context, chunk domain.EvidenceChunk, embedding []float32) error {
	if len(embedding) == 0 {
		return domain.ErrInvalidInput
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.dimension == 0 {
		idx.dimension = len(embedding)
	}
	if len(embedding) != idx.dimension {
		return domain.ErrInvalidInput
	}

	idx.chunks = append(idx.chunks, chunk)
	idx.vectors = append(idx.vectors, embedding)
	return nil
}

// Search returns up to k chunks ranked by descending cosine
// similarity. The metadata filter is applied before the ranking is
// truncated to k. An empty result is returned, not an error, when
// nothing matches.
func (idx *Index) Search(
	_ context.Context, query []float32, k int, filter driven.MetadataFilter,
) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if k < 1 || len(idx.chunks) == 0 {
		return []driven.VectorHit{}, nil
	}

	hits := make([]driven.VectorHit, 0, len(idx.chunks))
	for i, chunk := range idx.chunks {
		if !matches(chunk, filter) {
			continue
		}
		hits = append(hits, driven.VectorHit{
			Chunk:      chunk,
			Similarity: cosine(idx.vectors[i], query),
		})
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Similarity > hits[b].Similarity
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Len reports the number of indexed chunks.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.chunks)
}

// Close releases resources. A no-op for the in-memory index.
func (idx *Index) Close() error {
	return nil
}

// All returns the indexed chunks with their embeddings, for
// persistence. The returned slices must not be mutated.
func (idx *Index) All() ([]domain.EvidenceChunk, [][]float32) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.chunks, idx.vectors
}

// matches applies the conjunctive metadata filter to one chunk.
func matches(chunk domain.EvidenceChunk, filter driven.MetadataFilter) bool {
	if len(filter) == 0 {
		return true
	}

	if types, ok := filter[driven.FilterDocumentType]; ok && len(types) > 0 {
		if !contains(types, chunk.DocumentType.String()) {
			return false
		}
	}

	if sections, ok := filter[driven.FilterSection]; ok && len(sections) > 0 {
		if !contains(sections, sectionLabel(chunk.Location)) {
			return false
		}
	}

	return true
}

// sectionLabel maps a location to the section value the filter matches
// against.
func sectionLabel(loc domain.Location) string {
	switch loc.Kind {
	case domain.LocationSection, domain.LocationSheet:
		return loc.Label
	default:
		return ""
	}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

// cosine computes cosine similarity between two vectors.
func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
