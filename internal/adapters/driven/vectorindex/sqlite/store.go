// Package sqlite persists vector index snapshots to a SQLite file.
// Each snapshot is written whole: persisting replaces the previous
// contents, loading rebuilds a ready in-memory index.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	vectormemory "github.com/verita-labs/verita-cli/internal/adapters/driven/vectorindex/memory"
	"github.com/verita-labs/verita-cli/internal/core/domain"
	"github.com/verita-labs/verita-cli/internal/core/ports/driven"
)

// Ensure Persister implements the interface.
var _ driven.IndexPersister = (*Persister)(nil)

// schema holds the snapshot tables.
const schema = `
CREATE TABLE IF NOT EXISTS index_meta (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	dimension INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS chunks (
	id TEXT PRIMARY KEY,
	content TEXT NOT NULL,
	document_type TEXT NOT NULL,
	source_name TEXT NOT NULL,
	location_kind INTEGER NOT NULL,
	location_page INTEGER NOT NULL,
	location_label TEXT NOT NULL,
	position INTEGER NOT NULL,
	embedding BLOB NOT NULL
);
`

// Persister saves and restores index snapshots via SQLite.
type Persister struct{}

// New creates a snapshot persister.
func New() *Persister {
	return &Persister{}
}

// Persist writes the index snapshot to the given path, replacing any
// previous snapshot stored there.
func (p *Persister) Persist(ctx context.Context, index driven.VectorIndex, path string) error {
	mem, ok := index.(*vectormemory.Index)
	if !ok {
		return fmt.Errorf("persist index: unsupported index type %T", index)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create snapshot directory: %w", err)
		}
	}

	db, err := openDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks`); err != nil {
		return fmt.Errorf("clear chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO index_meta (id, dimension) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET dimension = excluded.dimension`,
		mem.Dimension(),
	); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks
			(id, content, document_type, source_name, location_kind, location_page, location_label, position, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	chunks, vectors := mem.All()
	for i, chunk := range chunks {
		if _, err := stmt.ExecContext(ctx,
			chunk.ID,
			chunk.Content,
			chunk.DocumentType.String(),
			chunk.SourceName,
			int(chunk.Location.Kind),
			chunk.Location.Page,
			chunk.Location.Label,
			chunk.Position,
			encodeVector(vectors[i]),
		); err != nil {
			return fmt.Errorf("insert chunk %s: %w", chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Load reads a previously persisted snapshot into a memory index.
func (p *Persister) Load(ctx context.Context, path string) (driven.VectorIndex, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, domain.ErrNotFound)
	}

	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var dimension int
	err = db.QueryRowContext(ctx, `SELECT dimension FROM index_meta WHERE id = 1`).Scan(&dimension)
	if err != nil {
		return nil, fmt.Errorf("read meta: %w", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, content, document_type, source_name, location_kind, location_page, location_label, position, embedding
		FROM chunks ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("read chunks: %w", err)
	}
	defer rows.Close()

	index := vectormemory.New(dimension)
	for rows.Next() {
		var (
			chunk    domain.EvidenceChunk
			docType  string
			locKind  int
			blob     []byte
			location domain.Location
		)
		if err := rows.Scan(
			&chunk.ID,
			&chunk.Content,
			&docType,
			&chunk.SourceName,
			&locKind,
			&location.Page,
			&location.Label,
			&chunk.Position,
			&blob,
		); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}

		location.Kind = domain.LocationKind(locKind)
		chunk.DocumentType = domain.DocumentType(docType)
		chunk.Location = location

		if err := index.Add(ctx, chunk, decodeVector(blob)); err != nil {
			return nil, fmt.Errorf("restore chunk %s: %w", chunk.ID, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chunks: %w", err)
	}

	return index, nil
}

// openDB opens the snapshot database and ensures the schema exists.
func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// encodeVector serialises an embedding as little-endian float32 bits.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// decodeVector deserialises an embedding from little-endian float32 bits.
func decodeVector(buf []byte) []float32 {
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec
}
