package services

import (
	"strings"

	"github.com/verita-labs/verita-cli/internal/core/domain"
)

// Router narrows the candidate document types for a classified query.
// It is rule-first and fully deterministic: a static table, no model
// calls, no side effects.
type Router struct {
	rules map[string][]domain.DocumentType
}

// routingRules maps category keys to allowed document types.
// These keys are a distinct vocabulary from the classifier's output
// labels; any key not present here routes to the full type set.
var routingRules = map[string][]domain.DocumentType{
	// Academic / research questions
	"research": {domain.DocTypePDF, domain.DocTypeDOCX, domain.DocTypePPTX},

	// Conceptual explanations, theory
	"conceptual": {domain.DocTypePDF, domain.DocTypeDOCX, domain.DocTypeTXT, domain.DocTypePPTX},

	// Resume / profile / skills queries
	"profile": {domain.DocTypeDOCX, domain.DocTypePDF},

	// Numerical / tabular questions
	"data": {domain.DocTypeXLSX, domain.DocTypeCSV},

	// Presentation-style summaries
	"presentation": {domain.DocTypePPTX, domain.DocTypePDF},

	// General QA fallback
	"general": {domain.DocTypePDF, domain.DocTypeDOCX, domain.DocTypePPTX, domain.DocTypeXLSX, domain.DocTypeTXT},
}

// NewRouter creates a router over the static rule table.
func NewRouter() *Router {
	return &Router{rules: routingRules}
}

// Route returns the allowed document types for a category key.
// Input is trimmed and lowercased. Unknown or empty categories return
// the full type set: routing may narrow retrieval, it must never
// empty it.
func (r *Router) Route(category string) []domain.DocumentType {
	key := strings.ToLower(strings.TrimSpace(category))
	if key == "" {
		return domain.AllDocumentTypes()
	}

	allowed, ok := r.rules[key]
	if !ok || len(allowed) == 0 {
		return domain.AllDocumentTypes()
	}

	// Hand out a copy so callers cannot mutate the table.
	out := make([]domain.DocumentType, len(allowed))
	copy(out, allowed)
	return out
}
