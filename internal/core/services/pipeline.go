package services

import (
	"context"
	"fmt"

	"github.com/verita-labs/verita-cli/internal/core/domain"
	"github.com/verita-labs/verita-cli/internal/core/ports/driving"
	"github.com/verita-labs/verita-cli/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.Pipeline = (*PipelineService)(nil)

// PipelineService chains the five answer stages:
// classify, route, retrieve, reconcile, compose. The sequence is fixed;
// there is no branching and no retry loop here. Retries, if any, belong
// to the completion and index adapters.
//
// Each query gets its own PipelineContext; nothing is shared between
// concurrent runs, so the service is safe for concurrent use as long
// as its collaborators are.
type PipelineService struct {
	classifier *Classifier
	router     *Router
	retriever  *Retriever
	reconciler *Reconciler
	composer   *Composer
	topK       int
}

// NewPipelineService wires the five stages together.
func NewPipelineService(
	classifier *Classifier,
	router *Router,
	retriever *Retriever,
	reconciler *Reconciler,
	composer *Composer,
	topK int,
) *PipelineService {
	if topK < 1 {
		topK = DefaultTopK
	}
	return &PipelineService{
		classifier: classifier,
		router:     router,
		retriever:  retriever,
		reconciler: reconciler,
		composer:   composer,
		topK:       topK,
	}
}

// Run executes the pipeline and returns the final answer.
func (p *PipelineService) Run(ctx context.Context, query string) (string, error) {
	pctx, err := p.RunDetailed(ctx, query)
	if err != nil {
		return "", err
	}
	return pctx.Answer, nil
}

// RunDetailed executes the pipeline and returns the accumulated
// context. Every stage appends one field; a failing stage aborts the
// run and propagates its error, never substituting data.
func (p *PipelineService) RunDetailed(ctx context.Context, query string) (*domain.PipelineContext, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}

	logger.Section("Answer Pipeline")
	logger.Debug("Query: %q", query)

	pctx := &domain.PipelineContext{Query: query}

	// Stage 1: classify. The raw label may be anything; normalisation
	// to the known category set happens here, at the integration
	// boundary, so a misbehaving model widens routing instead of
	// failing the query.
	label, err := p.classifier.Classify(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("classify stage: %w", err)
	}
	pctx.Category = domain.NormalizeCategory(label)
	if string(pctx.Category) != label {
		logger.Info("Unrecognised category %q, treating as %s", label, pctx.Category)
	}

	// Stage 2: route.
	pctx.AllowedTypes = p.router.Route(string(pctx.Category))
	logger.Debug("Allowed types: %v", pctx.AllowedTypes)

	// Stage 3: retrieve.
	evidence, err := p.retriever.Retrieve(ctx, query, p.topK, pctx.AllowedTypes, nil)
	if err != nil {
		return nil, fmt.Errorf("retrieve stage: %w", err)
	}
	pctx.Evidence = evidence

	// Stage 4: reconcile. Empty evidence is handled inside Check.
	reconciliation, err := p.reconciler.Check(ctx, query, evidence)
	if err != nil {
		return nil, fmt.Errorf("reconcile stage: %w", err)
	}
	pctx.Reconciliation = reconciliation

	// Stage 5: compose.
	answer, err := p.composer.Compose(ctx, query, evidence, reconciliation)
	if err != nil {
		return nil, fmt.Errorf("compose stage: %w", err)
	}
	pctx.Answer = answer

	logger.Info("Pipeline done: category=%s evidence=%d verdict=%s",
		pctx.Category, len(pctx.Evidence), pctx.Reconciliation.Verdict)

	return pctx, nil
}
