package domain

import "strings"

// QueryCategory is the classifier's output label for a query.
//
// Note: this is a separate vocabulary from the routing table's keys.
// The classifier emits {conceptual, evidence, numeric, contradiction};
// the routing table maps {research, conceptual, profile, data,
// presentation, general}. The only shared label is "conceptual", so in
// practice every other classifier output routes through the table's
// full-set fallback. The two vocabularies are kept distinct on purpose;
// unifying them would silently change retrieval behaviour.
type QueryCategory string

// Categories the classifier is instructed to choose from.
const (
	CategoryConceptual    QueryCategory = "conceptual"
	CategoryEvidence      QueryCategory = "evidence"
	CategoryNumeric       QueryCategory = "numeric"
	CategoryContradiction QueryCategory = "contradiction"

	// CategoryGeneral is the defensive fallback for any label outside
	// the known set, including completion failures and free-form model
	// output. It routes to the full document-type set.
	CategoryGeneral QueryCategory = "general"
)

// IsValid returns true if the category is one the classifier may emit.
func (c QueryCategory) IsValid() bool {
	switch c {
	case CategoryConceptual, CategoryEvidence, CategoryNumeric, CategoryContradiction, CategoryGeneral:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c QueryCategory) String() string {
	return string(c)
}

// NormalizeCategory maps arbitrary classifier output onto the known
// category set. Unrecognised labels, however malformed, become
// CategoryGeneral: a misclassified query widens retrieval, it never
// fails the pipeline.
func NormalizeCategory(raw string) QueryCategory {
	c := QueryCategory(strings.ToLower(strings.TrimSpace(raw)))
	if c.IsValid() {
		return c
	}
	return CategoryGeneral
}

// PipelineContext accumulates the intermediate results of one query
// execution. Each pipeline stage appends exactly one field and never
// rewrites an earlier one, so every intermediate result stays
// independently inspectable. A context is created per query and
// discarded after the answer is returned; it is never shared between
// concurrent queries.
type PipelineContext struct {
	// Query is the original user question.
	Query string

	// Category is the classified intent (stage 1).
	Category QueryCategory

	// AllowedTypes is the routed document-type set (stage 2).
	AllowedTypes []DocumentType

	// Evidence is the retrieved chunk set, best match first (stage 3).
	Evidence []EvidenceChunk

	// Reconciliation is the fact-check outcome (stage 4).
	Reconciliation *ReconciliationResult

	// Answer is the composed final response (stage 5).
	Answer string
}
