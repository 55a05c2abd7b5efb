package text

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verita-labs/verita-cli/internal/core/domain"
)

func TestIngestWholeFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("plain notes\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.txt"), []byte("   \n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("ignored"), 0600))

	records, err := New().Ingest(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, domain.DocTypeTXT, records[0].DocumentType)
	assert.Equal(t, "notes.txt", records[0].SourceName)
	assert.Equal(t, "plain notes", records[0].Content)
	assert.Equal(t, domain.LocationNone, records[0].Location.Kind)
}

func TestIngestMissingDirectory(t *testing.T) {
	records, err := New().Ingest(context.Background(), filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, records)
}
