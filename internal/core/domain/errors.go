package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoDocumentsIndexed indicates ingestion found zero source
	// documents across all ingestors. A hard stop at build time: an
	// empty index would make every query insufficient-evidence.
	ErrNoDocumentsIndexed = errors.New("no documents indexed")

	// ErrRebuildInProgress indicates an index rebuild is already
	// running. Rebuilds are exclusive; queries keep serving the last
	// published snapshot meanwhile.
	ErrRebuildInProgress = errors.New("index rebuild in progress")

	// ErrIndexUnavailable indicates no index snapshot has been
	// published yet. Retrieval is impossible until ingestion runs.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrCompletionUnavailable indicates the completion service is not
	// configured. Classification, reconciliation and composition all
	// require it.
	ErrCompletionUnavailable = errors.New("completion service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Retrieval is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
