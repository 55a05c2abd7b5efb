package filewatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForTrigger(t *testing.T, triggers <-chan struct{}) bool {
	t.Helper()
	select {
	case _, ok := <-triggers:
		return ok
	case <-time.After(3 * time.Second):
		return false
	}
}

func TestWatchTriggersOnDocumentWrite(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "txt"), 0700))

	w, err := New(100 * time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	triggers, err := w.Watch(ctx, root)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "txt", "new.txt"), []byte("content"), 0600))

	assert.True(t, waitForTrigger(t, triggers), "expected a trigger after document write")
}

func TestWatchIgnoresUnrelatedFiles(t *testing.T) {
	root := t.TempDir()

	w, err := New(100 * time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	triggers, err := w.Watch(ctx, root)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "scratch.tmp"), []byte("x"), 0600))

	select {
	case <-triggers:
		t.Fatal("unexpected trigger for non-corpus file")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatchDebouncesBursts(t *testing.T) {
	root := t.TempDir()

	w, err := New(200 * time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	triggers, err := w.Watch(ctx, root)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		name := filepath.Join(root, "doc"+string(rune('a'+i))+".txt")
		require.NoError(t, os.WriteFile(name, []byte("content"), 0600))
		time.Sleep(20 * time.Millisecond)
	}

	require.True(t, waitForTrigger(t, triggers))

	select {
	case <-triggers:
		t.Fatal("burst produced more than one trigger")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	root := t.TempDir()

	w, err := New(100 * time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	triggers, err := w.Watch(ctx, root)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-triggers:
		assert.False(t, ok, "channel should close after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("trigger channel did not close")
	}
}
