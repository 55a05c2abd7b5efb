package domain

import "fmt"

// DocumentType identifies the source format of an evidence chunk.
type DocumentType string

// Canonical document types used across the system.
const (
	DocTypePDF  DocumentType = "pdf"
	DocTypeDOCX DocumentType = "docx"
	DocTypePPTX DocumentType = "pptx"
	DocTypeXLSX DocumentType = "xlsx"
	DocTypeTXT  DocumentType = "txt"
	DocTypeCSV  DocumentType = "csv"
)

// AllDocumentTypes returns the full set of indexable document types.
// Routing falls back to this set whenever a category is unknown.
func AllDocumentTypes() []DocumentType {
	return []DocumentType{DocTypePDF, DocTypeDOCX, DocTypePPTX, DocTypeXLSX, DocTypeTXT}
}

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// LocationKind discriminates the location variants of an evidence chunk.
type LocationKind int

// Location variants, in citation precedence order.
const (
	// LocationNone means the chunk carries no usable location metadata.
	LocationNone LocationKind = iota

	// LocationPage is a page number (PDF).
	LocationPage

	// LocationSection is a named section or slide label (DOCX, PPTX, TXT).
	LocationSection

	// LocationSheet is a spreadsheet sheet name (XLSX).
	LocationSheet
)

// Location pinpoints where inside a document a chunk originated.
// It is a closed discriminated union rather than an open metadata bag
// so that citation rendering is total over all variants.
type Location struct {
	// Kind selects which variant is populated.
	Kind LocationKind

	// Page is valid when Kind == LocationPage.
	Page int

	// Label is valid when Kind is LocationSection or LocationSheet.
	Label string
}

// PageLocation returns a page location.
func PageLocation(page int) Location {
	return Location{Kind: LocationPage, Page: page}
}

// SectionLocation returns a named section location.
func SectionLocation(label string) Location {
	return Location{Kind: LocationSection, Label: label}
}

// SheetLocation returns a spreadsheet sheet location.
func SheetLocation(name string) Location {
	return Location{Kind: LocationSheet, Label: name}
}

// String renders the location for citation lists.
// Precedence: page, then section, then sheet, then "location: unknown".
func (l Location) String() string {
	switch l.Kind {
	case LocationPage:
		return fmt.Sprintf("page %d", l.Page)
	case LocationSection:
		return "section: " + l.Label
	case LocationSheet:
		return "sheet: " + l.Label
	default:
		return "location: unknown"
	}
}

// EvidenceChunk is one retrievable unit of document text plus its
// provenance metadata. Chunks are immutable once retrieved; later
// pipeline stages reference them, never copy or rewrite them.
type EvidenceChunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Content is the text content of this chunk.
	Content string

	// DocumentType is the source format (pdf, docx, ...).
	DocumentType DocumentType

	// SourceName is the originating file name.
	SourceName string

	// Location pinpoints the chunk within its document.
	Location Location

	// Position is the ordinal position within the source record.
	Position int
}

// Ref returns the citation-safe reference for this chunk.
func (c EvidenceChunk) Ref() SourceRef {
	return SourceRef{
		DocumentType: c.DocumentType,
		SourceName:   c.SourceName,
		Location:     c.Location,
	}
}

// SourceRef identifies the origin of an evidence chunk for citation.
// Two refs are the same citation when all three fields match exactly.
type SourceRef struct {
	// DocumentType is the source format.
	DocumentType DocumentType

	// SourceName is the originating file name.
	SourceName string

	// Location pinpoints the cited region.
	Location Location
}

// String renders the reference as a single citation line.
func (r SourceRef) String() string {
	return fmt.Sprintf("%s | %s | %s", r.DocumentType, r.SourceName, r.Location)
}

// DedupeRefs collapses duplicate references preserving first-seen order.
func DedupeRefs(refs []SourceRef) []SourceRef {
	seen := make(map[SourceRef]struct{}, len(refs))
	out := make([]SourceRef, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}

// RefsOf extracts the deduplicated references of a set of evidence chunks.
// The result is exactly the provenance of the chunks passed in, so a
// citation list built from it can never name an uninvolved source.
func RefsOf(evidence []EvidenceChunk) []SourceRef {
	refs := make([]SourceRef, len(evidence))
	for i, chunk := range evidence {
		refs[i] = chunk.Ref()
	}
	return DedupeRefs(refs)
}
