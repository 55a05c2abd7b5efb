package driving

import "context"

// IngestStats summarises one ingestion run.
type IngestStats struct {
	// Records is the number of evidence records extracted, per type.
	Records map[string]int

	// Chunks is the total number of indexed chunks after splitting.
	Chunks int
}

// IngestService builds the vector index from the corpus directory and
// publishes it atomically. Rebuilds are exclusive: a second concurrent
// call fails with domain.ErrRebuildInProgress while queries keep
// serving the last published snapshot.
type IngestService interface {
	// Rebuild ingests all documents, builds a fresh index offline and
	// swaps it in. Fails with domain.ErrNoDocumentsIndexed when the
	// corpus is empty.
	Rebuild(ctx context.Context) (*IngestStats, error)
}
