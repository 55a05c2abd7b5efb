package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/verita-labs/verita-cli/internal/core/domain"
	"github.com/verita-labs/verita-cli/internal/core/ports/driven"
	"github.com/verita-labs/verita-cli/internal/logger"
)

// noSourcesLine is rendered when the evidence set is empty.
const noSourcesLine = "No sources available."

// defaultComposeSystemPrompt is the fallback system prompt. It carries
// the hard grounding constraint: the answer may only restate the
// analysis and may only cite the provided sources.
const defaultComposeSystemPrompt = `You are a knowledgeable and careful academic assistant.

Rules you MUST follow:
- Use ONLY the provided analysis and retrieved sources.
- Do NOT add external knowledge or assumptions.
- Do NOT invent facts, evidence, or citations.
- If the documents do not clearly support an answer, say so honestly.
- Write naturally, like a human expert explaining to another human.`

// defaultComposePrompt is the fallback user prompt template.
const defaultComposePrompt = `User Question:
%s

Document-Based Analysis:
%s

Retrieved Evidence:
%s

Response Guidelines:
- Start with a clear, direct answer in natural language.
- Explain the answer briefly using the document-based analysis.
- If there are limitations or uncertainty, mention them transparently.
- End with a short Sources section using the evidence provided.`

// uncertaintyGuideline is appended when the verdict requires an
// explicit caveat in the answer.
const uncertaintyGuideline = `- The evidence was insufficient or only partially supportive: state this uncertainty explicitly in the answer.`

// Composer turns a reconciliation result and its evidence into a
// grounded, citation-safe natural-language answer.
type Composer struct {
	completion  driven.CompletionService
	promptStore driven.PromptStore
	temperature float64
}

// NewComposer creates an answer composer.
// The temperature applies to the composition call only; 0.3 matches a
// conversational register without drifting from the analysis.
func NewComposer(completion driven.CompletionService, temperature float64) *Composer {
	return &Composer{completion: completion, temperature: temperature}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (c *Composer) SetPromptStore(store driven.PromptStore) {
	c.promptStore = store
}

// Compose generates the final answer text. The source list handed to
// the model is rendered from the evidence chunks themselves, so the
// model cannot cite anything that was not retrieved.
func (c *Composer) Compose(
	ctx context.Context,
	query string,
	evidence []domain.EvidenceChunk,
	reconciliation *domain.ReconciliationResult,
) (string, error) {
	if c.completion == nil {
		return "", domain.ErrCompletionUnavailable
	}
	if reconciliation == nil {
		return "", domain.ErrInvalidInput
	}

	analysis := reconciliation.Analysis
	if analysis == "" {
		analysis = reconciliation.Justification
	}

	system := loadPrompt(c.promptStore, driven.PromptComposeSystem, defaultComposeSystemPrompt)
	template := loadPrompt(c.promptStore, driven.PromptCompose, defaultComposePrompt)
	user := fmt.Sprintf(template, query, analysis, RenderSources(evidence))

	if reconciliation.Verdict.Uncertain() {
		user += "\n" + uncertaintyGuideline
	}

	answer, err := c.completion.Complete(ctx, system, user, driven.CompleteOptions{
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("compose answer: %w", err)
	}

	logger.Debug("Composed answer (%d chars)", len(answer))
	return strings.TrimSpace(answer), nil
}

// RenderSources renders the citation list for an evidence set.
// One line per distinct (type, source, location) triple, first-seen
// order, location precedence page over section over unknown.
func RenderSources(evidence []domain.EvidenceChunk) string {
	if len(evidence) == 0 {
		return noSourcesLine
	}

	refs := domain.RefsOf(evidence)
	lines := make([]string, len(refs))
	for i, ref := range refs {
		lines[i] = fmt.Sprintf("- %s | %s | %s", ref.DocumentType, ref.SourceName, ref.Location)
	}
	return strings.Join(lines, "\n")
}
