package driven

import (
	"context"

	"github.com/verita-labs/verita-cli/internal/core/domain"
)

// Ingestor extracts evidence records from one document type.
// Each ingestor scans its own directory under the corpus root and
// applies a type-specific minimum-content filter so near-empty
// extracts never pollute the index.
type Ingestor interface {
	// DocumentType returns the type this ingestor handles.
	DocumentType() domain.DocumentType

	// Ingest scans dir and returns one record per retrievable unit
	// (whole document, page, slide or sheet depending on the type).
	// A missing directory yields zero records, not an error.
	Ingest(ctx context.Context, dir string) ([]domain.EvidenceChunk, error)
}
