package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verita-labs/verita-cli/internal/core/ports/driven"
)

func TestPromptStoreLoadCreatesDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	// Load triggers lazy init
	prompt, err := store.Load(driven.PromptClassify)
	require.NoError(t, err)
	assert.Contains(t, prompt, "classifying academic research queries")

	files := []string{
		"classify.txt",
		"fact_check_system.txt",
		"fact_check.txt",
		"compose_system.txt",
		"compose.txt",
		"README.md",
	}
	for _, f := range files {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, "expected file %s to exist", f)
	}
}

func TestPromptStoreLoadCustomisedPrompt(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "compose_system.txt"),
		[]byte("Custom grounding rules.\n"), 0600))

	prompt, err := store.Load(driven.PromptComposeSystem)
	require.NoError(t, err)
	assert.Equal(t, "Custom grounding rules.", prompt)
}

func TestPromptStoreReloadPicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	first, err := store.Load(driven.PromptFactCheckSystem)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "fact_check_system.txt"),
		[]byte("Edited persona."), 0600))

	// Cached value survives until Reload.
	cached, err := store.Load(driven.PromptFactCheckSystem)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	store.Reload()
	fresh, err := store.Load(driven.PromptFactCheckSystem)
	require.NoError(t, err)
	assert.Equal(t, "Edited persona.", fresh)
}

func TestPromptStoreUnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("no_such_prompt")
	assert.Error(t, err)
}

func TestPromptStoreDefaultsCoverAllNames(t *testing.T) {
	names := []string{
		driven.PromptClassify,
		driven.PromptFactCheckSystem,
		driven.PromptFactCheck,
		driven.PromptComposeSystem,
		driven.PromptCompose,
	}
	for _, name := range names {
		assert.NotEmpty(t, defaultPrompts[name], "missing default for %s", name)
	}
}
