package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verita-labs/verita-cli/internal/core/domain"
)

func TestClassifyTrimsAndLowercases(t *testing.T) {
	completion := &mockCompletion{responses: []string{"  Numeric \n"}}
	classifier := NewClassifier(completion)

	label, err := classifier.Classify(context.Background(), "What accuracy was reported?")
	require.NoError(t, err)
	assert.Equal(t, "numeric", label)
}

func TestClassifySendsQueryInPrompt(t *testing.T) {
	completion := &mockCompletion{responses: []string{"conceptual"}}
	classifier := NewClassifier(completion)

	_, err := classifier.Classify(context.Background(), "What is transfer learning?")
	require.NoError(t, err)
	assert.Contains(t, completion.lastUser(), "What is transfer learning?")
}

func TestClassifyMayReturnUnknownLabel(t *testing.T) {
	// The classifier itself does not defend against out-of-set labels;
	// normalisation happens at the pipeline boundary.
	completion := &mockCompletion{responses: []string{"weather"}}
	classifier := NewClassifier(completion)

	label, err := classifier.Classify(context.Background(), "Will it rain?")
	require.NoError(t, err)
	assert.Equal(t, "weather", label)
	assert.Equal(t, domain.CategoryGeneral, domain.NormalizeCategory(label))
}

func TestClassifyPropagatesCompletionFailure(t *testing.T) {
	completion := &mockCompletion{err: errors.New("connection refused")}
	classifier := NewClassifier(completion)

	_, err := classifier.Classify(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "classify query")
}

func TestClassifyWithoutCompletionService(t *testing.T) {
	classifier := NewClassifier(nil)

	_, err := classifier.Classify(context.Background(), "anything")
	assert.ErrorIs(t, err, domain.ErrCompletionUnavailable)
}
