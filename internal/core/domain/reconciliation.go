package domain

import "strings"

// Verdict is the outcome of cross-checking a query against evidence.
type Verdict string

// Verdicts the reconciler can produce.
const (
	// VerdictSupported means the evidence consistently backs the claim.
	VerdictSupported Verdict = "SUPPORTED"

	// VerdictContradicted means documents disagree with the claim or
	// with each other.
	VerdictContradicted Verdict = "CONTRADICTED"

	// VerdictPartiallySupported means the evidence backs part of the
	// claim or the documents only partially agree.
	VerdictPartiallySupported Verdict = "PARTIALLY_SUPPORTED"

	// VerdictInsufficientEvidence means no evidence was available to
	// check the claim. Produced without any model call.
	VerdictInsufficientEvidence Verdict = "INSUFFICIENT_EVIDENCE"

	// VerdictUnstructured is the opaque marker used when the model's
	// analysis did not contain a recognisable verdict token. The raw
	// analysis text is carried through verbatim instead of failing.
	VerdictUnstructured Verdict = "UNSTRUCTURED"
)

// IsValid returns true if the verdict is recognised.
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictSupported, VerdictContradicted, VerdictPartiallySupported,
		VerdictInsufficientEvidence, VerdictUnstructured:
		return true
	default:
		return false
	}
}

// Uncertain returns true if the verdict requires the composed answer
// to carry an explicit uncertainty caveat.
func (v Verdict) Uncertain() bool {
	return v == VerdictInsufficientEvidence || v == VerdictPartiallySupported
}

// String returns the string representation.
func (v Verdict) String() string {
	return string(v)
}

// ParseVerdict scans analysis text for a verdict token. Longer tokens
// are matched first so PARTIALLY_SUPPORTED never registers as
// SUPPORTED. Returns VerdictUnstructured when no token is present.
func ParseVerdict(analysis string) Verdict {
	upper := strings.ToUpper(analysis)
	ordered := []Verdict{
		VerdictPartiallySupported,
		VerdictInsufficientEvidence,
		VerdictContradicted,
		VerdictSupported,
	}
	for _, v := range ordered {
		if strings.Contains(upper, string(v)) {
			return v
		}
	}
	return VerdictUnstructured
}

// ReconciliationResult is the fact-check outcome for one query.
// Created once by the reconciler, consumed once by the composer,
// never persisted.
type ReconciliationResult struct {
	// Verdict is the consistency outcome.
	Verdict Verdict

	// Justification is a short explanation of the verdict. When the
	// model output was unstructured this carries the raw analysis.
	Justification string

	// Analysis is the model's full analysis text, verbatim.
	Analysis string

	// CitedSources lists the deduplicated provenance of the evidence
	// that was actually checked. Built from retrieval metadata, never
	// parsed back out of model output, so citations cannot be invented.
	CitedSources []SourceRef
}
