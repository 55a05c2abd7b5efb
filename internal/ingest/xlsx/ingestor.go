// Package xlsx ingests Excel workbooks as one evidence record per
// sheet.
package xlsx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/verita-labs/verita-cli/internal/core/domain"
	"github.com/verita-labs/verita-cli/internal/core/ports/driven"
	"github.com/verita-labs/verita-cli/internal/logger"
)

// Ensure Ingestor implements the interface.
var _ driven.Ingestor = (*Ingestor)(nil)

// Ingestor extracts cell text from XLSX files.
type Ingestor struct{}

// New creates an XLSX ingestor.
func New() *Ingestor {
	return &Ingestor{}
}

// DocumentType returns the type this ingestor handles.
func (i *Ingestor) DocumentType() domain.DocumentType {
	return domain.DocTypeXLSX
}

// Ingest scans dir for .xlsx files and returns one record per
// non-empty sheet, labelled with the sheet name.
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
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".xlsx") {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		sheets, err := extractSheets(raw)
		if err != nil {
			logger.Warn("skipping unreadable xlsx %s: %v", entry.Name(), err)
			continue
		}

		for _, sheet := range sheets {
			if sheet.text == "" {
				continue
			}
			records = append(records, domain.EvidenceChunk{
				Content:      sheet.text,
				DocumentType: domain.DocTypeXLSX,
				SourceName:   entry.Name(),
				Location:     domain.SheetLocation(sheet.name),
			})
		}
	}

	return records, nil
}

type sheetContent struct {
	name string
	text string
}

// extractSheets renders every worksheet as rows of pipe-separated cell
// values, resolving shared strings. Sheets come back in workbook order.
func extractSheets(raw []byte) ([]sheetContent, error) {
	reader, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	shared := readSharedStrings(reader)
	names := readSheetNames(reader)

	var sheets []sheetContent
	for index, name := range names {
		content := readZipFile(reader, fmt.Sprintf("xl/worksheets/sheet%d.xml", index+1))
		if content == nil {
			continue
		}
		sheets = append(sheets, sheetContent{
			name: name,
			text: renderWorksheet(content, shared),
		})
	}
	return sheets, nil
}

// workbookXML represents xl/workbook.xml.
type workbookXML struct {
	Sheets struct {
		Sheets []struct {
			Name string `xml:"name,attr"`
		} `xml:"sheet"`
	} `xml:"sheets"`
}

// readSheetNames returns the sheet names in workbook order.
func readSheetNames(reader *zip.Reader) []string {
	content := readZipFile(reader, "xl/workbook.xml")
	if content == nil {
		return nil
	}

	var workbook workbookXML
	if err := xml.Unmarshal(content, &workbook); err != nil {
		return nil
	}

	names := make([]string, 0, len(workbook.Sheets.Sheets))
	for _, sheet := range workbook.Sheets.Sheets {
		names = append(names, sheet.Name)
	}
	return names
}

// sharedStringsXML represents xl/sharedStrings.xml. Each string item is
// either a plain <t> or a series of rich-text runs.
type sharedStringsXML struct {
	Items []struct {
		Text string `xml:"t"`
		Runs []struct {
			Text string `xml:"t"`
		} `xml:"r"`
	} `xml:"si"`
}

// readSharedStrings returns the shared string table, if present.
func readSharedStrings(reader *zip.Reader) []string {
	content := readZipFile(reader, "xl/sharedStrings.xml")
	if content == nil {
		return nil
	}

	var sst sharedStringsXML
	if err := xml.Unmarshal(content, &sst); err != nil {
		return nil
	}

	strs := make([]string, 0, len(sst.Items))
	for _, item := range sst.Items {
		if len(item.Runs) > 0 {
			var b strings.Builder
			for _, run := range item.Runs {
				b.WriteString(run.Text)
			}
			strs = append(strs, b.String())
			continue
		}
		strs = append(strs, item.Text)
	}
	return strs
}

// worksheetXML represents xl/worksheets/sheetN.xml.
type worksheetXML struct {
	SheetData struct {
		Rows []struct {
			Cells []struct {
				Type   string `xml:"t,attr"`
				Value  string `xml:"v"`
				Inline string `xml:"is>t"`
			} `xml:"c"`
		} `xml:"row"`
	} `xml:"sheetData"`
}

// renderWorksheet renders one worksheet, one line per row with cells
// joined by " | ". Shared-string cells (t="s") resolve through the
// shared table.
func renderWorksheet(content []byte, shared []string) string {
	var sheet worksheetXML
	if err := xml.Unmarshal(content, &sheet); err != nil {
		return ""
	}

	var lines []string
	for _, row := range sheet.SheetData.Rows {
		cells := make([]string, 0, len(row.Cells))
		empty := true
		for _, cell := range row.Cells {
			value := cell.Value
			switch cell.Type {
			case "s":
				if idx, err := strconv.Atoi(cell.Value); err == nil && idx >= 0 && idx < len(shared) {
					value = shared[idx]
				}
			case "inlineStr":
				value = cell.Inline
			}
			if strings.TrimSpace(value) != "" {
				empty = false
			}
			cells = append(cells, value)
		}
		if !empty {
			lines = append(lines, strings.Join(cells, " | "))
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// readZipFile returns the contents of one archive entry, or nil when
// the entry is absent or unreadable.
func readZipFile(reader *zip.Reader, name string) []byte {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil
		}
		return content
	}
	return nil
}
