package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStorePath(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestConfigStoreTypedAccessors(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyCompletionProvider, "anthropic"))
	require.NoError(t, store.Set(KeyTopK, 7))
	require.NoError(t, store.Set(KeyCompletionTemperature, 0.3))
	require.NoError(t, store.Set("verbose", true))

	assert.Equal(t, "anthropic", store.GetString(KeyCompletionProvider))
	assert.Equal(t, 7, store.GetInt(KeyTopK))
	assert.InDelta(t, 0.3, store.GetFloat(KeyCompletionTemperature), 1e-9)
	assert.True(t, store.GetBool("verbose"))

	// Absent and mistyped keys fall back to zero values.
	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt(KeyCompletionProvider))
	assert.Equal(t, 0.0, store.GetFloat(KeyCompletionProvider))
	assert.False(t, store.GetBool(KeyCompletionProvider))
}

func TestConfigStorePersistence(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyDataDir, "/srv/corpus"))
	require.NoError(t, store.Set(KeyTopK, 5))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "/srv/corpus", reloaded.GetString(KeyDataDir))
	assert.Equal(t, 5, reloaded.GetInt(KeyTopK))
}

func TestConfigStoreFlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[completion]\nprovider = \"ollama\"\nmodel = \"llama3\"\n\n[retrieval]\ntop_k = 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "ollama", store.GetString(KeyCompletionProvider))
	assert.Equal(t, "llama3", store.GetString(KeyCompletionModel))
	assert.Equal(t, 3, store.GetInt(KeyTopK))
}

func TestConfigStoreGetFloatFromInteger(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[completion]\ntemperature = 1\n"), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 1.0, store.GetFloat(KeyCompletionTemperature))
}

func TestConfigStoreMissingFileStartsEmpty(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get(KeyIndexPath)
	assert.False(t, ok)
}

func TestConfigStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("not toml {{{["), 0600))

	store, err := NewConfigStore(dir)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStoreFilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
