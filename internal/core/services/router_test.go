package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verita-labs/verita-cli/internal/core/domain"
)

func TestRouterKnownCategories(t *testing.T) {
	router := NewRouter()

	tests := []struct {
		category string
		want     []domain.DocumentType
	}{
		{
			category: "research",
			want:     []domain.DocumentType{domain.DocTypePDF, domain.DocTypeDOCX, domain.DocTypePPTX},
		},
		{
			category: "conceptual",
			want:     []domain.DocumentType{domain.DocTypePDF, domain.DocTypeDOCX, domain.DocTypeTXT, domain.DocTypePPTX},
		},
		{
			category: "profile",
			want:     []domain.DocumentType{domain.DocTypeDOCX, domain.DocTypePDF},
		},
		{
			category: "data",
			want:     []domain.DocumentType{domain.DocTypeXLSX, domain.DocTypeCSV},
		},
		{
			category: "presentation",
			want:     []domain.DocumentType{domain.DocTypePPTX, domain.DocTypePDF},
		},
		{
			category: "general",
			want:     []domain.DocumentType{domain.DocTypePDF, domain.DocTypeDOCX, domain.DocTypePPTX, domain.DocTypeXLSX, domain.DocTypeTXT},
		},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, router.Route(tt.category))
		})
	}
}

func TestRouterUnknownCategoryFallsBackToFullSet(t *testing.T) {
	router := NewRouter()

	for _, category := range []string{"weather", "unknown", "evidence", "numeric", "contradiction", "42"} {
		t.Run(category, func(t *testing.T) {
			got := router.Route(category)
			assert.ElementsMatch(t, domain.AllDocumentTypes(), got)
			assert.NotEmpty(t, got)
		})
	}
}

func TestRouterNormalisesInput(t *testing.T) {
	router := NewRouter()

	assert.ElementsMatch(t, router.Route("research"), router.Route("  RESEARCH \t"))
	assert.ElementsMatch(t, router.Route("data"), router.Route("Data"))
}

func TestRouterEmptyCategoryReturnsFullSet(t *testing.T) {
	router := NewRouter()

	got := router.Route("")
	assert.ElementsMatch(t, domain.AllDocumentTypes(), got)
}

func TestRouterNeverReturnsEmptySet(t *testing.T) {
	router := NewRouter()

	for _, category := range []string{"", " ", "nonsense", "general", "data"} {
		assert.NotEmpty(t, router.Route(category))
	}
}

func TestRouterResultIsACopy(t *testing.T) {
	router := NewRouter()

	first := router.Route("profile")
	first[0] = domain.DocTypeTXT

	second := router.Route("profile")
	assert.Equal(t, domain.DocTypeDOCX, second[0])
}
