// Package docx ingests Word documents as whole-document evidence
// records.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/verita-labs/verita-cli/internal/core/domain"
	"github.com/verita-labs/verita-cli/internal/core/ports/driven"
	"github.com/verita-labs/verita-cli/internal/logger"
)

// minContentLength filters out near-empty extracts.
const minContentLength = 200

// Ensure Ingestor implements the interface.
var _ driven.Ingestor = (*Ingestor)(nil)

// Ingestor extracts text from DOCX files.
type Ingestor struct{}

// New creates a DOCX ingestor.
func New() *Ingestor {
	return &Ingestor{}
}

// DocumentType returns the type this ingestor handles.
func (i *Ingestor) DocumentType() domain.DocumentType {
	return domain.DocTypeDOCX
}

// Ingest scans dir for .docx files and returns one record per document.
// Documents whose extracted text is shorter than minContentLength are
// dropped.
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
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".docx") {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		content, err := extractDocumentText(raw)
		if err != nil {
			logger.Warn("skipping unreadable docx %s: %v", entry.Name(), err)
			continue
		}
		if len(content) < minContentLength {
			logger.Debug("skipping %s: content below %d characters", entry.Name(), minContentLength)
			continue
		}

		records = append(records, domain.EvidenceChunk{
			Content:      content,
			DocumentType: domain.DocTypeDOCX,
			SourceName:   entry.Name(),
		})
	}

	return records, nil
}

// extractDocumentText extracts text from word/document.xml.
func extractDocumentText(raw []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", domain.ErrInvalidInput
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", domain.ErrInvalidInput
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", domain.ErrInvalidInput
		}

		return parseDocumentXML(content), nil
	}
	return "", nil
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
		Tables     []table     `xml:"tbl"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

type table struct {
	Rows []tableRow `xml:"tr"`
}

type tableRow struct {
	Cells []tableCell `xml:"tc"`
}

type tableCell struct {
	Paragraphs []paragraph `xml:"p"`
}

// parseDocumentXML extracts paragraph and table text from the document
// XML. Body paragraphs come first, table rows after, one line each.
func parseDocumentXML(content []byte) string {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return ""
	}

	var lines []string
	for _, para := range doc.Body.Paragraphs {
		if text := paragraphText(para); text != "" {
			lines = append(lines, text)
		}
	}
	for _, tbl := range doc.Body.Tables {
		for _, row := range tbl.Rows {
			cells := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				var parts []string
				for _, para := range cell.Paragraphs {
					if text := paragraphText(para); text != "" {
						parts = append(parts, text)
					}
				}
				cells = append(cells, strings.Join(parts, " "))
			}
			lines = append(lines, strings.Join(cells, " | "))
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func paragraphText(para paragraph) string {
	var b strings.Builder
	for _, r := range para.Runs {
		for _, text := range r.Text {
			b.WriteString(text.Content)
		}
	}
	return strings.TrimSpace(b.String())
}
