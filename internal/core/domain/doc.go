// Package domain defines the core business entities for Verita.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - EvidenceChunk: A retrievable unit of document text with provenance
//   - SourceRef: A citation-safe reference to an evidence origin
//   - ReconciliationResult: A fact-check verdict with justification
//   - PipelineContext: The accumulating state of one query execution
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
