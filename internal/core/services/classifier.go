package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/verita-labs/verita-cli/internal/core/domain"
	"github.com/verita-labs/verita-cli/internal/core/ports/driven"
	"github.com/verita-labs/verita-cli/internal/logger"
)

// defaultClassifyPrompt is the fallback prompt when no PromptStore is configured.
const defaultClassifyPrompt = `You are an AI agent responsible for classifying academic research queries.

Classify the following query into exactly ONE of these categories:
- conceptual
- evidence
- numeric
- contradiction

Query:
%s

Respond with ONLY the category name.`

// Classifier labels queries with an intent category by delegating to
// the completion service. Output is not guaranteed deterministic; the
// pipeline normalises anything outside the known set to "general".
type Classifier struct {
	completion  driven.CompletionService
	promptStore driven.PromptStore
	temperature float64
}

// NewClassifier creates a query classifier.
func NewClassifier(completion driven.CompletionService) *Classifier {
	return &Classifier{completion: completion}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (c *Classifier) SetPromptStore(store driven.PromptStore) {
	c.promptStore = store
}

// Classify returns the raw category label for a query, trimmed and
// lowercased. The label may still be outside the known category set;
// callers must defend with domain.NormalizeCategory.
func (c *Classifier) Classify(ctx context.Context, query string) (string, error) {
	if c.completion == nil {
		return "", domain.ErrCompletionUnavailable
	}

	template := loadPrompt(c.promptStore, driven.PromptClassify, defaultClassifyPrompt)
	prompt := fmt.Sprintf(template, query)

	raw, err := c.completion.Complete(ctx, "", prompt, driven.CompleteOptions{
		MaxTokens:   10,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("classify query: %w", err)
	}

	label := strings.ToLower(strings.TrimSpace(raw))
	logger.Debug("Classifier label: %q", label)
	return label, nil
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func loadPrompt(store driven.PromptStore, name, fallback string) string {
	if store == nil {
		return fallback
	}
	prompt, err := store.Load(name)
	if err != nil || prompt == "" {
		return fallback
	}
	return prompt
}
