package driving

import (
	"context"

	"github.com/verita-labs/verita-cli/internal/core/domain"
)

// Pipeline answers natural-language queries against the indexed corpus.
// This is the only externally invoked operation of the core.
type Pipeline interface {
	// Run executes the five-stage pipeline and returns the final
	// answer. Infrastructure failures in any stage propagate as
	// errors; content gaps (no evidence, contradictions) surface
	// inside the answer text instead.
	Run(ctx context.Context, query string) (string, error)

	// RunDetailed is Run with the full accumulated context returned,
	// so every intermediate stage result can be inspected.
	RunDetailed(ctx context.Context, query string) (*domain.PipelineContext, error)
}
