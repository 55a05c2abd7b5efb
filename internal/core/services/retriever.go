package services

import (
	"context"
	"fmt"

	"github.com/verita-labs/verita-cli/internal/core/domain"
	"github.com/verita-labs/verita-cli/internal/core/ports/driven"
	"github.com/verita-labs/verita-cli/internal/logger"
)

// DefaultTopK bounds retrieval when the caller does not.
const DefaultTopK = 5

// Retriever performs filtered similarity search against the current
// index snapshot. Filters on document type and section combine
// conjunctively; an empty filter dimension means no restriction.
type Retriever struct {
	snapshots *SnapshotHolder
	embedding driven.EmbeddingService
}

// NewRetriever creates an evidence retriever.
func NewRetriever(snapshots *SnapshotHolder, embedding driven.EmbeddingService) *Retriever {
	return &Retriever{snapshots: snapshots, embedding: embedding}
}

// Retrieve returns up to topK evidence chunks ranked by descending
// similarity. topK is applied after filtering, so a narrow filter is
// never starved by out-of-filter neighbours. An empty result is a
// first-class outcome, not an error.
func (r *Retriever) Retrieve(
	ctx context.Context,
	query string,
	topK int,
	allowedDocTypes []domain.DocumentType,
	allowedSections []string,
) ([]domain.EvidenceChunk, error) {
	if r.embedding == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	index, err := r.snapshots.Current()
	if err != nil {
		return nil, err
	}

	if topK < 1 {
		topK = DefaultTopK
	}

	embedding, err := r.embedding.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	filter := driven.MetadataFilter{}
	if len(allowedDocTypes) > 0 {
		types := make([]string, len(allowedDocTypes))
		for i, t := range allowedDocTypes {
			types[i] = t.String()
		}
		filter[driven.FilterDocumentType] = types
	}
	if len(allowedSections) > 0 {
		filter[driven.FilterSection] = allowedSections
	}

	hits, err := index.Search(ctx, embedding, topK, filter)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	logger.Debug("Retrieved %d chunks (top_k=%d, filter=%v)", len(hits), topK, filter)

	chunks := make([]domain.EvidenceChunk, len(hits))
	for i, hit := range hits {
		chunks[i] = hit.Chunk
	}
	return chunks, nil
}
