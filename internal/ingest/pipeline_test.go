package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vectormemory "github.com/verita-labs/verita-cli/internal/adapters/driven/vectorindex/memory"
	"github.com/verita-labs/verita-cli/internal/core/domain"
	"github.com/verita-labs/verita-cli/internal/core/ports/driven"
	"github.com/verita-labs/verita-cli/internal/core/services"
	"github.com/verita-labs/verita-cli/internal/ingest/chunker"
)

// stubIngestor returns scripted records and remembers the directory it
// was pointed at.
type stubIngestor struct {
	docType domain.DocumentType
	records []domain.EvidenceChunk
	err     error
	lastDir string
}

func (s *stubIngestor) DocumentType() domain.DocumentType { return s.docType }

func (s *stubIngestor) Ingest(_ context.Context, dir string) ([]domain.EvidenceChunk, error) {
	s.lastDir = dir
	return s.records, s.err
}

type mockEmbedding struct {
	batches int
	err     error
}

func (m *mockEmbedding) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0, 0}, m.err
}

func (m *mockEmbedding) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.batches++
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (m *mockEmbedding) Dimensions() int              { return 3 }
func (m *mockEmbedding) ModelName() string            { return "mock-embed" }
func (m *mockEmbedding) Ping(_ context.Context) error { return nil }
func (m *mockEmbedding) Close() error                 { return nil }

type mockPersister struct {
	persisted  driven.VectorIndex
	loadIndex  driven.VectorIndex
	persistErr error
	loadErr    error
}

func (m *mockPersister) Persist(_ context.Context, index driven.VectorIndex, _ string) error {
	if m.persistErr != nil {
		return m.persistErr
	}
	m.persisted = index
	return nil
}

func (m *mockPersister) Load(_ context.Context, _ string) (driven.VectorIndex, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.loadIndex, nil
}

func record(docType domain.DocumentType, source, content string) domain.EvidenceChunk {
	return domain.EvidenceChunk{
		Content:      content,
		DocumentType: docType,
		SourceName:   source,
	}
}

func newService(ingestors []driven.Ingestor, persister driven.IndexPersister) (*Service, *services.SnapshotHolder) {
	snapshots := services.NewSnapshotHolder()
	svc := NewService(
		ingestors,
		chunker.New(),
		&mockEmbedding{},
		snapshots,
		persister,
		"/data",
		"/data/index.db",
	)
	return svc, snapshots
}

func TestRebuildPublishesIndex(t *testing.T) {
	txtIngestor := &stubIngestor{
		docType: domain.DocTypeTXT,
		records: []domain.EvidenceChunk{record(domain.DocTypeTXT, "a.txt", "alpha content")},
	}
	pdfIngestor := &stubIngestor{
		docType: domain.DocTypePDF,
		records: []domain.EvidenceChunk{
			record(domain.DocTypePDF, "p.pdf", "page one"),
			record(domain.DocTypePDF, "p.pdf", "page two"),
		},
	}
	persister := &mockPersister{}
	svc, snapshots := newService([]driven.Ingestor{txtIngestor, pdfIngestor}, persister)

	stats, err := svc.Rebuild(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Records["txt"])
	assert.Equal(t, 2, stats.Records["pdf"])
	assert.Equal(t, 3, stats.Chunks)

	assert.Equal(t, "/data/txt", txtIngestor.lastDir)
	assert.Equal(t, "/data/pdf", pdfIngestor.lastDir)

	index, err := snapshots.Current()
	require.NoError(t, err)
	assert.Equal(t, 3, index.Len())
	assert.NotNil(t, persister.persisted)
}

func TestRebuildEmptyCorpus(t *testing.T) {
	svc, snapshots := newService([]driven.Ingestor{
		&stubIngestor{docType: domain.DocTypeTXT},
	}, nil)

	_, err := svc.Rebuild(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoDocumentsIndexed)

	_, err = snapshots.Current()
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}

func TestRebuildExclusive(t *testing.T) {
	svc, snapshots := newService([]driven.Ingestor{
		&stubIngestor{docType: domain.DocTypeTXT},
	}, nil)

	release, err := snapshots.BeginRebuild()
	require.NoError(t, err)
	defer release()

	_, err = svc.Rebuild(context.Background())
	assert.ErrorIs(t, err, domain.ErrRebuildInProgress)
}

func TestRebuildIngestError(t *testing.T) {
	svc, _ := newService([]driven.Ingestor{
		&stubIngestor{docType: domain.DocTypeDOCX, err: errors.New("disk gone")},
	}, nil)

	_, err := svc.Rebuild(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest docx")
}

func TestRebuildSurvivesPersistFailure(t *testing.T) {
	svc, snapshots := newService([]driven.Ingestor{
		&stubIngestor{
			docType: domain.DocTypeTXT,
			records: []domain.EvidenceChunk{record(domain.DocTypeTXT, "a.txt", "content")},
		},
	}, &mockPersister{persistErr: errors.New("read-only filesystem")})

	stats, err := svc.Rebuild(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Chunks)

	_, err = snapshots.Current()
	assert.NoError(t, err)
}

func TestRebuildChunksLongRecords(t *testing.T) {
	long := strings.Repeat("r", 2000)
	svc, _ := newService([]driven.Ingestor{
		&stubIngestor{
			docType: domain.DocTypeTXT,
			records: []domain.EvidenceChunk{record(domain.DocTypeTXT, "big.txt", long)},
		},
	}, nil)

	stats, err := svc.Rebuild(context.Background())
	require.NoError(t, err)
	assert.Greater(t, stats.Chunks, 1)
}

func TestRestorePublishesPersistedIndex(t *testing.T) {
	restored := vectormemory.New(3)
	require.NoError(t, restored.Add(context.Background(),
		record(domain.DocTypeTXT, "a.txt", "content"), []float32{1, 0, 0}))

	svc, snapshots := newService(nil, &mockPersister{loadIndex: restored})

	require.NoError(t, svc.Restore(context.Background()))

	index, err := snapshots.Current()
	require.NoError(t, err)
	assert.Equal(t, 1, index.Len())
}

func TestRestoreMissingSnapshotIsNotAnError(t *testing.T) {
	svc, snapshots := newService(nil, &mockPersister{loadErr: domain.ErrNotFound})

	require.NoError(t, svc.Restore(context.Background()))

	_, err := snapshots.Current()
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}
