package driven

import (
	"context"

	"github.com/verita-labs/verita-cli/internal/core/domain"
)

// MetadataFilter restricts a search to chunks whose metadata field
// value is a member of the accepted set. Multiple fields combine
// conjunctively (AND). An absent or empty field means no restriction
// on that field.
//
// Recognised fields: "document_type", "section".
type MetadataFilter map[string][]string

// Filter field names.
const (
	FilterDocumentType = "document_type"
	FilterSection      = "section"
)

// VectorIndex provides nearest-neighbour search over evidence chunks
// with metadata filtering. An index snapshot is immutable once built;
// Search is safe for concurrent use.
type VectorIndex interface {
	// Add inserts a chunk with its embedding. Only valid while the
	// index is being built, before it is published.
	Add(ctx context.Context, chunk domain.EvidenceChunk, embedding []float32) error

	// Search returns up to k chunks ranked by descending similarity.
	// The filter is applied before truncation to k. Returns an empty
	// slice, never an error, when nothing matches.
	Search(ctx context.Context, query []float32, k int, filter MetadataFilter) ([]VectorHit, error)

	// Len reports the number of indexed chunks.
	Len() int

	// Close releases resources.
	Close() error
}

// VectorHit is a similarity search result.
type VectorHit struct {
	// Chunk is the matched evidence chunk.
	Chunk domain.EvidenceChunk

	// Similarity is the cosine similarity score (0-1).
	Similarity float64
}

// IndexPersister saves and restores index snapshots.
type IndexPersister interface {
	// Persist writes the index snapshot to the given path.
	Persist(ctx context.Context, index VectorIndex, path string) error

	// Load reads a previously persisted snapshot.
	Load(ctx context.Context, path string) (VectorIndex, error)
}
