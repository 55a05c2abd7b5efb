package services

import (
	"sync"
	"sync/atomic"

	"github.com/verita-labs/verita-cli/internal/core/domain"
	"github.com/verita-labs/verita-cli/internal/core/ports/driven"
)

// SnapshotHolder publishes immutable vector index snapshots with
// swap-pointer semantics. Readers always see either the last published
// snapshot or the next one, never a partially built index.
//
// Rebuilds are exclusive: BeginRebuild fails while another rebuild
// holds the slot. Queries are never blocked by a rebuild; they keep
// reading the current snapshot until Publish swaps the pointer.
type SnapshotHolder struct {
	current    atomic.Pointer[snapshot]
	rebuildMu  sync.Mutex
	rebuilding bool
}

type snapshot struct {
	index driven.VectorIndex
}

// NewSnapshotHolder creates an empty holder. Current fails with
// domain.ErrIndexUnavailable until the first Publish.
func NewSnapshotHolder() *SnapshotHolder {
	return &SnapshotHolder{}
}

// Current returns the last published index snapshot.
func (h *SnapshotHolder) Current() (driven.VectorIndex, error) {
	snap := h.current.Load()
	if snap == nil || snap.index == nil {
		return nil, domain.ErrIndexUnavailable
	}
	return snap.index, nil
}

// BeginRebuild claims the exclusive rebuild slot. The returned release
// function must be called when the rebuild finishes, published or not.
func (h *SnapshotHolder) BeginRebuild() (release func(), err error) {
	h.rebuildMu.Lock()
	defer h.rebuildMu.Unlock()

	if h.rebuilding {
		return nil, domain.ErrRebuildInProgress
	}
	h.rebuilding = true

	return func() {
		h.rebuildMu.Lock()
		h.rebuilding = false
		h.rebuildMu.Unlock()
	}, nil
}

// Publish atomically swaps in a freshly built index. The previous
// snapshot is closed once replaced.
func (h *SnapshotHolder) Publish(index driven.VectorIndex) {
	old := h.current.Swap(&snapshot{index: index})
	if old != nil && old.index != nil {
		_ = old.index.Close()
	}
}
