// Package pptx ingests PowerPoint decks as one evidence record per
// slide.
package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/verita-labs/verita-cli/internal/core/domain"
	"github.com/verita-labs/verita-cli/internal/core/ports/driven"
	"github.com/verita-labs/verita-cli/internal/logger"
)

// minSlideWords filters out title-only and decorative slides.
const minSlideWords = 30

var slideFilePattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// Ensure Ingestor implements the interface.
var _ driven.Ingestor = (*Ingestor)(nil)

// Ingestor extracts text from PPTX files.
type Ingestor struct{}

// New creates a PPTX ingestor.
func New() *Ingestor {
	return &Ingestor{}
}

// DocumentType returns the type this ingestor handles.
func (i *Ingestor) DocumentType() domain.DocumentType {
	return domain.DocTypePPTX
}

// Ingest scans dir for .pptx files and returns one record per slide,
// labelled slide_N in deck order. Slides with fewer than minSlideWords
// words are dropped.
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
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pptx") {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		slides, err := extractSlides(raw)
		if err != nil {
			logger.Warn("skipping unreadable pptx %s: %v", entry.Name(), err)
			continue
		}

		for _, slide := range slides {
			if len(strings.Fields(slide.text)) < minSlideWords {
				logger.Debug("skipping %s slide %d: fewer than %d words",
					entry.Name(), slide.number, minSlideWords)
				continue
			}
			records = append(records, domain.EvidenceChunk{
				Content:      slide.text,
				DocumentType: domain.DocTypePPTX,
				SourceName:   entry.Name(),
				Location:     domain.SectionLocation(fmt.Sprintf("slide_%d", slide.number)),
			})
		}
	}

	return records, nil
}

type slideContent struct {
	number int
	text   string
}

// extractSlides pulls the text of every slide, in deck order.
func extractSlides(raw []byte) ([]slideContent, error) {
	reader, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	var slides []slideContent
	for _, file := range reader.File {
		match := slideFilePattern.FindStringSubmatch(file.Name)
		if match == nil {
			continue
		}
		number, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, domain.ErrInvalidInput
		}

		slides = append(slides, slideContent{
			number: number,
			text:   extractSlideText(content),
		})
	}

	sort.Slice(slides, func(a, b int) bool {
		return slides[a].number < slides[b].number
	})
	return slides, nil
}

// extractSlideText walks the slide XML and collects the text runs.
// Each a:p paragraph becomes one line. Drawing markup nests shapes
// arbitrarily, so this reads tokens rather than a fixed structure.
func extractSlideText(content []byte) string {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var (
		lines  []string
		line   strings.Builder
		inText bool
	)
	flush := func() {
		if text := strings.TrimSpace(line.String()); text != "" {
			lines = append(lines, text)
		}
		line.Reset()
	}

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch el := token.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				flush()
			}
		case xml.CharData:
			if inText {
				line.Write(el)
			}
		}
	}
	flush()

	return strings.Join(lines, "\n")
}
