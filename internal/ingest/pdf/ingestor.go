// Package pdf ingests PDF files as one evidence record per page,
// extracting text through the external pdftotext tool.
package pdf

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/verita-labs/verita-cli/internal/core/domain"
	"github.com/verita-labs/verita-cli/internal/core/ports/driven"
	"github.com/verita-labs/verita-cli/internal/logger"
)

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// CommandRunner executes external commands. It exists so tests can
// substitute pdftotext output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands through os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Ensure Ingestor implements the interface.
var _ driven.Ingestor = (*Ingestor)(nil)

// Ingestor extracts per-page text from PDF files.
type Ingestor struct {
	runner CommandRunner
}

// New creates a PDF ingestor using the real pdftotext binary.
func New() *Ingestor {
	return &Ingestor{runner: execRunner{}}
}

// NewWithRunner creates a PDF ingestor with a custom command runner.
func NewWithRunner(runner CommandRunner) *Ingestor {
	return &Ingestor{runner: runner}
}

// DocumentType returns the type this ingestor handles.
func (i *Ingestor) DocumentType() domain.DocumentType {
	return domain.DocTypePDF
}

// Ingest scans dir for .pdf files and returns one record per non-empty
// page. pdftotext separates pages with form feeds, which map onto
// 1-based page numbers.
func (i *Ingestor) Ingest(ctx context.Context, dir string) ([]domain.EvidenceChunk, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var records []domain.EvidenceChunk
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		output, err := i.runner.Run(ctx, "pdftotext",
			"-layout", "-enc", "UTF-8", filepath.Join(dir, entry.Name()), "-")
		if err != nil {
			if errors.Is(err, exec.ErrNotFound) {
				return nil, ErrPDFToolNotFound
			}
			logger.Warn("skipping unreadable pdf %s: %v", entry.Name(), err)
			continue
		}

		for _, page := range splitPages(string(output)) {
			records = append(records, domain.EvidenceChunk{
				Content:      page.text,
				DocumentType: domain.DocTypePDF,
				SourceName:   entry.Name(),
				Location:     domain.PageLocation(page.number),
			})
		}
	}

	return records, nil
}

type pageText struct {
	number int
	text   string
}

// splitPages returns the non-blank pages with 1-based page numbers.
func splitPages(output string) []pageText {
	var pages []pageText
	for i, raw := range strings.Split(output, "\f") {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		pages = append(pages, pageText{number: i + 1, text: text})
	}
	return pages
}

// CheckAvailable reports whether pdftotext is installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform hints for installing pdftotext.
func InstallInstructions() string {
	return strings.Join([]string{
		"pdftotext is required for PDF ingestion (part of poppler):",
		"  macOS:  brew install poppler",
		"  Debian: apt install poppler-utils",
	}, "\n")
}
