/*
Package sqlite provides the SQLite-backed record store for the reference
backend.

PURPOSE:
  Persists HR records (employees, claims, payslips, ...) for the reference
  REST backend. Records are opaque field maps, mirroring the client's
  ListItem shape: the store enforces identity, archival state, and
  timestamps, never a per-entity schema. In production the same patterns
  apply to PostgreSQL - only minor SQL dialect differences.

SOFT DELETE:
  Delete requests archive records (archived = 1). Archived records stay
  listable for the archive views, restorable, and only a separate permanent
  delete removes the row.

KEY TABLE:
  records: (resource, id) -> fields JSON + archived flag + timestamps

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency.

USAGE:
  store, err := sqlite.New("./data/hrview.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - api/handlers.go: The only consumer
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when no record matches (resource, id).
var ErrNotFound = errors.New("record not found")

// Record is one stored row. Fields always contains the "id" key so clients
// receive the identifier inline.
type Record struct {
	Resource  string
	ID        string
	Fields    map[string]any
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store persists records in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a store at the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		resource    TEXT NOT NULL,
		id          TEXT NOT NULL,
		fields_json TEXT NOT NULL,
		archived    INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		PRIMARY KEY (resource, id)
	);

	CREATE INDEX IF NOT EXISTS idx_records_resource_archived
		ON records(resource, archived, created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// QUERIES
// =============================================================================

// List returns all records of a resource in insertion order, filtered by
// archival state.
func (s *Store) List(ctx context.Context, resource string, archived bool) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, fields_json, archived, created_at, updated_at
		FROM records
		WHERE resource = ? AND archived = ?
		ORDER BY created_at, id`,
		resource, boolToInt(archived))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(resource, rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Get returns one record regardless of archival state.
func (s *Store) Get(ctx context.Context, resource, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, fields_json, archived, created_at, updated_at
		FROM records
		WHERE resource = ? AND id = ?`,
		resource, id)

	rec, err := scanRecord(resource, row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// =============================================================================
// MUTATIONS
// =============================================================================

// Insert stores a new record. When fields carries no "id", one is generated.
func (s *Store) Insert(ctx context.Context, resource string, fields map[string]any) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, _ := fields["id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	fields = withID(fields, id)

	buf, err := json.Marshal(fields)
	if err != nil {
		return Record{}, err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (resource, id, fields_json, archived, created_at, updated_at)
		VALUES (?, ?, ?, 0, ?, ?)`,
		resource, id, string(buf), now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if err != nil {
		return Record{}, err
	}

	return Record{Resource: resource, ID: id, Fields: fields, CreatedAt: now, UpdatedAt: now}, nil
}

// Update replaces the record's fields wholesale, preserving the identifier.
func (s *Store) Update(ctx context.Context, resource, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, err := json.Marshal(withID(fields, id))
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE records SET fields_json = ?, updated_at = ?
		WHERE resource = ? AND id = ?`,
		string(buf), time.Now().UTC().Format(time.RFC3339Nano), resource, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetArchived flips the soft-delete flag.
func (s *Store) SetArchived(ctx context.Context, resource, id string, archived bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE records SET archived = ?, updated_at = ?
		WHERE resource = ? AND id = ?`,
		boolToInt(archived), time.Now().UTC().Format(time.RFC3339Nano), resource, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes the row permanently. Irreversible.
func (s *Store) Delete(ctx context.Context, resource, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM records WHERE resource = ? AND id = ?`,
		resource, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Reset clears all records.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM records`)
	return err
}

// =============================================================================
// HELPERS
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(resource string, row rowScanner) (Record, error) {
	var (
		rec                  Record
		fieldsJSON           string
		archived             int
		createdAt, updatedAt string
	)
	if err := row.Scan(&rec.ID, &fieldsJSON, &archived, &createdAt, &updatedAt); err != nil {
		return Record{}, err
	}
	rec.Resource = resource
	rec.Archived = archived != 0
	if err := json.Unmarshal([]byte(fieldsJSON), &rec.Fields); err != nil {
		return Record{}, fmt.Errorf("corrupt fields for %s/%s: %w", resource, rec.ID, err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return rec, nil
}

func withID(fields map[string]any, id string) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["id"] = id
	return out
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
