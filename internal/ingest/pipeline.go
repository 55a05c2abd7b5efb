// Package ingest builds the evidence index from a corpus directory
// partitioned by document type and publishes it as an atomic snapshot.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	vectormemory "github.com/verita-labs/verita-cli/internal/adapters/driven/vectorindex/memory"
	"github.com/verita-labs/verita-cli/internal/core/domain"
	"github.com/verita-labs/verita-cli/internal/core/ports/driven"
	"github.com/verita-labs/verita-cli/internal/core/ports/driving"
	"github.com/verita-labs/verita-cli/internal/core/services"
	"github.com/verita-labs/verita-cli/internal/ingest/chunker"
	"github.com/verita-labs/verita-cli/internal/logger"
)

// embedBatchSize caps the number of texts sent per embedding request.
const embedBatchSize = 64

// Ensure Service implements the interface.
var _ driving.IngestService = (*Service)(nil)

// Service runs the full ingestion pipeline: extract records per type,
// chunk, embed, index, persist and publish. Queries keep serving the
// previous snapshot until the new index is published.
type Service struct {
	ingestors []driven.Ingestor
	chunker   *chunker.Chunker
	embedder  driven.EmbeddingService
	snapshots *services.SnapshotHolder
	persister driven.IndexPersister
	dataDir   string
	indexPath string
}

// NewService creates the ingestion pipeline. The persister is optional;
// without one, snapshots live only in memory.
func NewService(
	ingestors []driven.Ingestor,
	chunk *chunker.Chunker,
	embedder driven.EmbeddingService,
	snapshots *services.SnapshotHolder,
	persister driven.IndexPersister,
	dataDir string,
	indexPath string,
) *Service {
	return &Service{
		ingestors: ingestors,
		chunker:   chunk,
		embedder:  embedder,
		snapshots: snapshots,
		persister: persister,
		dataDir:   dataDir,
		indexPath: indexPath,
	}
}

// Rebuild ingests the corpus and swaps in a fresh index. Only one
// rebuild runs at a time; a concurrent call fails with
// domain.ErrRebuildInProgress.
func (s *Service) Rebuild(ctx context.Context) (*driving.IngestStats, error) {
	release, err := s.snapshots.BeginRebuild()
	if err != nil {
		return nil, err
	}
	defer release()

	logger.Section("Ingest")

	stats := &driving.IngestStats{Records: make(map[string]int)}
	var records []domain.EvidenceChunk

	for _, ingestor := range s.ingestors {
		docType := ingestor.DocumentType()
		dir := filepath.Join(s.dataDir, docType.String())

		recs, err := ingestor.Ingest(ctx, dir)
		if err != nil {
			return nil, fmt.Errorf("ingest %s: %w", docType, err)
		}

		logger.Info("%s: %d records from %s", docType, len(recs), dir)
		stats.Records[docType.String()] = len(recs)
		records = append(records, recs...)
	}

	if len(records) == 0 {
		return nil, domain.ErrNoDocumentsIndexed
	}

	chunks := s.chunker.SplitAll(records)
	logger.Info("split %d records into %d chunks", len(records), len(chunks))

	index, err := s.buildIndex(ctx, chunks)
	if err != nil {
		return nil, err
	}

	if s.persister != nil && s.indexPath != "" {
		if err := s.persister.Persist(ctx, index, s.indexPath); err != nil {
			logger.Warn("persist index to %s: %v", s.indexPath, err)
		}
	}

	s.snapshots.Publish(index)
	stats.Chunks = len(chunks)
	return stats, nil
}

// Restore loads the last persisted index and publishes it, so queries
// can run without a rebuild. Missing snapshots are not an error.
func (s *Service) Restore(ctx context.Context) error {
	if s.persister == nil || s.indexPath == "" {
		return nil
	}

	index, err := s.persister.Load(ctx, s.indexPath)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("restore index: %w", err)
	}

	logger.Info("restored %d chunks from %s", index.Len(), s.indexPath)
	s.snapshots.Publish(index)
	return nil
}

// buildIndex embeds all chunks in batches and fills a fresh index.
func (s *Service) buildIndex(ctx context.Context, chunks []domain.EvidenceChunk) (driven.VectorIndex, error) {
	index := vectormemory.New(s.embedder.Dimensions())

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Content
		}

		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed batch: %w", err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embed batch: got %d vectors for %d texts", len(vectors), len(batch))
		}

		for i, chunk := range batch {
			if err := index.Add(ctx, chunk, vectors[i]); err != nil {
				return nil, fmt.Errorf("index chunk %s: %w", chunk.ID, err)
			}
		}
	}

	return index, nil
}
