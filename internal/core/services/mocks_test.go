package services

import (
	"context"
	"sync"

	"github.com/verita-labs/verita-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockCompletion implements driven.CompletionService for testing.
// Responses are consumed in order; the last one repeats.
type mockCompletion struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     int
	systems   []string
	users     []string
}

func (m *mockCompletion) Complete(_ context.Context, system, user string, _ driven.CompleteOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.systems = append(m.systems, system)
	m.users = append(m.users, user)

	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", nil
	}
	if m.calls <= len(m.responses) {
		return m.responses[m.calls-1], nil
	}
	return m.responses[len(m.responses)-1], nil
}

func (m *mockCompletion) ModelName() string { return "mock-model" }

func (m *mockCompletion) Ping(_ context.Context) error { return nil }

func (m *mockCompletion) Close() error { return nil }

func (m *mockCompletion) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockCompletion) lastUser() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.users) == 0 {
		return ""
	}
	return m.users[len(m.users)-1]
}

// mockEmbedding implements driven.EmbeddingService for testing.
// Vectors come from a fixed table keyed by text; unknown texts get the
// fallback vector.
type mockEmbedding struct {
	vectors  map[string][]float32
	fallback []float32
	err      error
}

func newMockEmbedding() *mockEmbedding {
	return &mockEmbedding{
		vectors:  make(map[string][]float32),
		fallback: []float32{1, 0, 0},
	}
}

func (m *mockEmbedding) Embed(_ context.Context, text string) ([]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	if vec, ok := m.vectors[text]; ok {
		return vec, nil
	}
	return m.fallback, nil
}

func (m *mockEmbedding) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (m *mockEmbedding) Dimensions() int { return 3 }

func (m *mockEmbedding) ModelName() string { return "mock-embedding" }

func (m *mockEmbedding) Ping(_ context.Context) error { return nil }

func (m *mockEmbedding) Close() error { return nil }
