// Package text ingests plain text files as whole-document evidence
// records.
package text

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/verita-labs/verita-cli/internal/core/domain"
	"github.com/verita-labs/verita-cli/internal/core/ports/driven"
	"github.com/verita-labs/verita-cli/internal/logger"
)

// Ensure Ingestor implements the interface.
var _ driven.Ingestor = (*Ingestor)(nil)

// Ingestor reads plain .txt files.
type Ingestor struct{}

// New creates a text ingestor.
func New() *Ingestor {
	return &Ingestor{}
}

// DocumentType returns the type this ingestor handles.
func (i *Ingestor) DocumentType() domain.DocumentType {
	return domain.DocTypeTXT
}

// Ingest scans dir for .txt files and returns one record per non-empty
// file.
func (i *Ingestor) Ingest(_ context.Context, dir string) ([]domain.EvidenceChunk, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var records []domain.EvidenceChunk
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		content := strings.TrimSpace(string(raw))
		if content == "" {
			logger.Debug("skipping empty text file %s", entry.Name())
			continue
		}

		records = append(records, domain.EvidenceChunk{
			Content:      content,
			DocumentType: domain.DocTypeTXT,
			SourceName:   entry.Name(),
		})
	}

	return records, nil
}
