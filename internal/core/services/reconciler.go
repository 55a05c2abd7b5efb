package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/verita-labs/verita-cli/internal/core/domain"
	"github.com/verita-labs/verita-cli/internal/core/ports/driven"
	"github.com/verita-labs/verita-cli/internal/logger"
)

// insufficientEvidenceJustification is returned for empty evidence sets.
const insufficientEvidenceJustification = "No documents were retrieved for validation."

// defaultFactCheckSystemPrompt is the fallback system prompt.
const defaultFactCheckSystemPrompt = `You are an academic research validation agent. Your task is to fact-check claims using provided evidence. Detect contradictions, inconsistencies, or support. Be precise and conservative. Do not hallucinate.`

// defaultFactCheckPrompt is the fallback user prompt template.
const defaultFactCheckPrompt = `Claim / Question:
%s

Retrieved Evidence:
%s

Instructions:
1. Compare numeric values if present.
2. Detect contradictions across documents.
3. Decide one verdict:
   - SUPPORTED
   - CONTRADICTED
   - PARTIALLY_SUPPORTED
4. Provide a short justification.
5. List key evidence sources.`

// Reconciler cross-verifies a claim against retrieved evidence and
// produces a verdict with justification and cited sources.
type Reconciler struct {
	completion  driven.CompletionService
	promptStore driven.PromptStore
}

// NewReconciler creates a fact-check reconciler.
func NewReconciler(completion driven.CompletionService) *Reconciler {
	return &Reconciler{completion: completion}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (r *Reconciler) SetPromptStore(store driven.PromptStore) {
	r.promptStore = store
}

// Check fact-checks a query against the evidence set.
//
// Zero evidence short-circuits to INSUFFICIENT_EVIDENCE with no model
// call: an ungrounded completion over empty evidence risks hallucination
// and wastes a request. Cited sources always come from the evidence
// metadata, never from model output.
func (r *Reconciler) Check(
	ctx context.Context, query string, evidence []domain.EvidenceChunk,
) (*domain.ReconciliationResult, error) {
	if len(evidence) == 0 {
		logger.Debug("No evidence retrieved, skipping fact-check call")
		return &domain.ReconciliationResult{
			Verdict:       domain.VerdictInsufficientEvidence,
			Justification: insufficientEvidenceJustification,
			CitedSources:  []domain.SourceRef{},
		}, nil
	}

	if r.completion == nil {
		return nil, domain.ErrCompletionUnavailable
	}

	system := loadPrompt(r.promptStore, driven.PromptFactCheckSystem, defaultFactCheckSystemPrompt)
	template := loadPrompt(r.promptStore, driven.PromptFactCheck, defaultFactCheckPrompt)
	user := fmt.Sprintf(template, query, formatEvidence(evidence))

	analysis, err := r.completion.Complete(ctx, system, user, driven.CompleteOptions{
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("fact-check: %w", err)
	}

	verdict := domain.ParseVerdict(analysis)
	logger.Debug("Reconciliation verdict: %s", verdict)

	result := &domain.ReconciliationResult{
		Verdict:      verdict,
		Analysis:     analysis,
		CitedSources: domain.RefsOf(evidence),
	}

	// Unstructured analyses pass through verbatim rather than failing.
	if verdict == domain.VerdictUnstructured {
		result.Justification = analysis
	} else {
		result.Justification = extractJustification(analysis)
	}

	return result, nil
}

// formatEvidence renders chunks as numbered, attributed blocks.
func formatEvidence(evidence []domain.EvidenceChunk) string {
	blocks := make([]string, len(evidence))
	for i, chunk := range evidence {
		blocks[i] = fmt.Sprintf("[Evidence %d] (%s | %s)\n%s",
			i+1, chunk.DocumentType, chunk.SourceName, chunk.Content)
	}
	return strings.Join(blocks, "\n\n")
}

// extractJustification pulls a short justification out of structured
// analysis text, falling back to the whole analysis.
func extractJustification(analysis string) string {
	for _, line := range strings.Split(analysis, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		if strings.HasPrefix(lower, "justification:") {
			just := strings.TrimSpace(trimmed[len("justification:"):])
			if just != "" {
				return just
			}
		}
	}
	return strings.TrimSpace(analysis)
}
