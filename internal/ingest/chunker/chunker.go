// Package chunker splits evidence records into fixed-size overlapping
// chunks ready for embedding.
package chunker

import (
	"github.com/google/uuid"

	"github.com/verita-labs/verita-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 800

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 150

// Chunker splits record content into fixed-size chunks. Provenance
// metadata of the record carries over to every chunk it produces.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Split cuts one evidence record into chunks. An empty record produces
// no chunks. Each chunk keeps the record's document type, source name
// and location, gets a fresh ID and its ordinal position.
func (c *Chunker) Split(record domain.EvidenceChunk) []domain.EvidenceChunk {
	if record.Content == "" {
		return nil
	}

	content := record.Content
	contentLen := len(content)

	estimated := (contentLen / (c.chunkSize - c.overlap)) + 1
	chunks := make([]domain.EvidenceChunk, 0, estimated)

	position := 0
	start := 0

	for start < contentLen {
		end := start + c.chunkSize
		if end > contentLen {
			end = contentLen
		}

		chunks = append(chunks, domain.EvidenceChunk{
			ID:           uuid.New().String(),
			Content:      content[start:end],
			DocumentType: record.DocumentType,
			SourceName:   record.SourceName,
			Location:     record.Location,
			Position:     position,
		})
		position++

		start += c.chunkSize - c.overlap

		// Avoid infinite loop for edge cases
		if c.chunkSize <= c.overlap {
			break
		}
	}

	return chunks
}

// SplitAll chunks a batch of records in order.
func (c *Chunker) SplitAll(records []domain.EvidenceChunk) []domain.EvidenceChunk {
	var out []domain.EvidenceChunk
	for _, record := range records {
		out = append(out, c.Split(record)...)
	}
	return out
}
