package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want QueryCategory
	}{
		{
			name: "known category",
			raw:  "numeric",
			want: CategoryNumeric,
		},
		{
			name: "mixed case with whitespace",
			raw:  "  Conceptual \n",
			want: CategoryConceptual,
		},
		{
			name: "unknown label falls back to general",
			raw:  "weather",
			want: CategoryGeneral,
		},
		{
			name: "empty string falls back to general",
			raw:  "",
			want: CategoryGeneral,
		},
		{
			name: "free-form model output falls back to general",
			raw:  "The category is: evidence-based reasoning",
			want: CategoryGeneral,
		},
		{
			name: "contradiction",
			raw:  "CONTRADICTION",
			want: CategoryContradiction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategory(tt.raw))
		})
	}
}

func TestQueryCategoryIsValid(t *testing.T) {
	assert.True(t, CategoryEvidence.IsValid())
	assert.True(t, CategoryGeneral.IsValid())
	assert.False(t, QueryCategory("research").IsValid())
	assert.False(t, QueryCategory("").IsValid())
}
