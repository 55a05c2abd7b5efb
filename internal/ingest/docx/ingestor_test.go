package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verita-labs/verita-cli/internal/core/domain"
)

// writeTestDOCX creates a minimal DOCX file with the given paragraphs.
func writeTestDOCX(t *testing.T, path string, paragraphs ...string) {
	t.Helper()

	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(body.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))
}

func TestIngestExtractsParagraphs(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("Institutional review findings. ", 10)
	writeTestDOCX(t, filepath.Join(dir, "report.docx"), "Summary", long)

	records, err := New().Ingest(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, domain.DocTypeDOCX, records[0].DocumentType)
	assert.Equal(t, "report.docx", records[0].SourceName)
	assert.Contains(t, records[0].Content, "Summary\n")
	assert.Contains(t, records[0].Content, "Institutional review findings.")
	assert.Equal(t, domain.LocationNone, records[0].Location.Kind)
}

func TestIngestDropsShortDocuments(t *testing.T) {
	dir := t.TempDir()
	writeTestDOCX(t, filepath.Join(dir, "stub.docx"), "too short")

	records, err := New().Ingest(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestIngestSkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.docx"), []byte("not a zip"), 0600))
	long := strings.Repeat("Valid paragraph content here. ", 10)
	writeTestDOCX(t, filepath.Join(dir, "good.docx"), long)

	records, err := New().Ingest(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "good.docx", records[0].SourceName)
}

func TestIngestMissingDirectory(t *testing.T) {
	records, err := New().Ingest(context.Background(), filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseDocumentXMLWithTable(t *testing.T) {
	content := []byte(`<?xml version="1.0"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>Heading</w:t></w:r></w:p>` +
		`<w:tbl><w:tr>` +
		`<w:tc><w:p><w:r><w:t>Metric</w:t></w:r></w:p></w:tc>` +
		`<w:tc><w:p><w:r><w:t>Value</w:t></w:r></w:p></w:tc>` +
		`</w:tr></w:tbl>` +
		`</w:body></w:document>`)

	text := parseDocumentXML(content)
	assert.Equal(t, "Heading\nMetric | Value", text)
}
