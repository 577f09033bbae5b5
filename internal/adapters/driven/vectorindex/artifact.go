package vectorindex

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/kcc-assistant/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
)

// FileName is the default artifact name inside the data directory.
const FileName = "index.kcc"

const schema = `
CREATE TABLE meta (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
CREATE TABLE vectors (
    position    INTEGER PRIMARY KEY,
    document_id TEXT NOT NULL,
    embedding   BLOB NOT NULL
);
`

// Metadata keys.
const (
	keyBuildID    = "build_id"
	keyModel      = "embedding_model"
	keyDimensions = "dimensions"
	keyCount      = "document_count"
	keyBuiltAt    = "built_at"
	keyDigest     = "documents_digest"
)

// Ensure ArtifactStore implements the interface.
var _ driven.IndexStore = (*ArtifactStore)(nil)

// ArtifactStore persists index builds as a single SQLite file.
type ArtifactStore struct {
	// mu serialises writers; readers rely on the atomic rename.
	mu   sync.Mutex
	path string
}

// NewArtifactStore creates a store for the artifact at path.
func NewArtifactStore(path string) *ArtifactStore {
	return &ArtifactStore{path: path}
}

// NewBuildID returns a random build identifier.
func NewBuildID() string {
	return uuid.NewString()
}

// Path returns the artifact path.
func (s *ArtifactStore) Path() string {
	return s.path
}

// Replace writes a complete artifact to a temporary file and renames it over the current one.
func (s *ArtifactStore) Replace(ctx context.Context, meta domain.IndexMeta, entries []driven.IndexEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing stale %s: %w", tmp, err)
	}

	if err := writeArtifact(ctx, tmp, meta, entries); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("installing index: %w", err)
	}
	return nil
}

func writeArtifact(ctx context.Context, path string, meta domain.IndexMeta, entries []driven.IndexEntry) error {
	db, err := sql.Open(sqlite.DriverName, path)
	if err != nil {
		return fmt.Errorf("creating index file: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating index schema: %w", err)
	}

	pairs := map[string]string{
		keyBuildID:    meta.BuildID,
		keyModel:      meta.EmbeddingModel,
		keyDimensions: strconv.Itoa(meta.Dimensions),
		keyCount:      strconv.Itoa(meta.DocumentCount),
		keyBuiltAt:    meta.BuiltAt.UTC().Format(time.RFC3339Nano),
		keyDigest:     meta.DocumentsDigest,
	}
	for k, v := range pairs {
		if _, err := tx.ExecContext(ctx, "INSERT INTO meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return fmt.Errorf("writing index metadata: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO vectors (position, document_id, embedding) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, i, e.DocumentID, sqlite.EncodeVector(e.Embedding)); err != nil {
			return fmt.Errorf("writing vector %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index: %w", err)
	}
	return nil
}

// Load reads the current build into a FlatIndex.
func (s *ArtifactStore) Load(ctx context.Context) (driven.VectorIndex, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	meta, err := readMeta(ctx, db)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, "SELECT document_id, embedding FROM vectors ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("%w: reading vectors: %w", domain.ErrData, err)
	}
	defer rows.Close()

	entries := make([]driven.IndexEntry, 0, meta.DocumentCount)
	for rows.Next() {
		var (
			id   string
			blob []byte
		)
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, fmt.Errorf("%w: scanning vector: %w", domain.ErrData, err)
		}
		entries = append(entries, driven.IndexEntry{DocumentID: id, Embedding: sqlite.DecodeVector(blob)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading vectors: %w", domain.ErrData, err)
	}

	return NewFlatIndex(*meta, entries)
}

// Meta reads only the build metadata.
func (s *ArtifactStore) Meta(ctx context.Context) (*domain.IndexMeta, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return readMeta(ctx, db)
}

// open opens the artifact, reporting a missing file as domain.ErrIndexNotFound.
// sql.Open would otherwise create an empty database.
func (s *ArtifactStore) open() (*sql.DB, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrIndexNotFound, s.path)
		}
		return nil, fmt.Errorf("checking index: %w", err)
	}

	db, err := sql.Open(sqlite.DriverName, s.path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	return db, nil
}

func readMeta(ctx context.Context, db *sql.DB) (*domain.IndexMeta, error) {
	rows, err := db.QueryContext(ctx, "SELECT key, value FROM meta")
	if err != nil {
		return nil, fmt.Errorf("%w: reading index metadata: %w", domain.ErrData, err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("%w: scanning index metadata: %w", domain.ErrData, err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading index metadata: %w", domain.ErrData, err)
	}

	meta := &domain.IndexMeta{
		BuildID:         values[keyBuildID],
		EmbeddingModel:  values[keyModel],
		DocumentsDigest: values[keyDigest],
	}
	if meta.BuildID == "" || meta.EmbeddingModel == "" {
		return nil, fmt.Errorf("%w: index metadata incomplete", domain.ErrData)
	}
	if meta.Dimensions, err = strconv.Atoi(values[keyDimensions]); err != nil {
		return nil, fmt.Errorf("%w: index dimensions: %w", domain.ErrData, err)
	}
	if meta.DocumentCount, err = strconv.Atoi(values[keyCount]); err != nil {
		return nil, fmt.Errorf("%w: index document count: %w", domain.ErrData, err)
	}
	if meta.BuiltAt, err = time.Parse(time.RFC3339Nano, values[keyBuiltAt]); err != nil {
		return nil, fmt.Errorf("%w: index build time: %w", domain.ErrData, err)
	}
	return meta, nil
}
