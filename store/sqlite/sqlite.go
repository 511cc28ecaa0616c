/*
Package sqlite provides a SQLite-backed implementation of history.Store.

PURPOSE:
  Persists calculation records so they survive restarts. The input snapshot
  and summary are stored as JSON documents; the columns next to them exist
  for listing and pruning.

KEY TABLES:
  calculations: One row per saved calculation (never updated)

INDEXES:
  - idx_calculations_created_at: Listing newest first, retention pruning
  - idx_calculations_award:      Lookups by award version

MIGRATIONS:
  Versioned goose migrations are embedded from migrations/*.sql and applied
  on New(). Adding a column means adding a new numbered file, never editing
  an applied one.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of SQLite's own locking.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time

USAGE:
  store, err := sqlite.New("./data/award.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - history/history.go: Store interface and Record
  - history/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/warp/award-engine/history"
)

//go:embed migrations/*.sql
var migrations embed.FS

// timeFormat sorts lexically in the same order as the instants it encodes.
const timeFormat = "2006-01-02T15:04:05.000000000Z"

// Store implements history.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ history.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate applies the embedded goose migrations.
func (s *Store) migrate(ctx context.Context) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db, fsys)
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}

// =============================================================================
// CALCULATION STORE (history.Store interface)
// =============================================================================

// Save inserts a record.
func (s *Store) Save(ctx context.Context, r history.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inputJSON, err := json.Marshal(r.Input)
	if err != nil {
		return fmt.Errorf("failed to encode input: %w", err)
	}
	summaryJSON, err := json.Marshal(r.Summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	query := `
		INSERT INTO calculations
		(id, created_at, label, award_code, award_version, schedule, total, input_json, summary_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		r.ID,
		r.CreatedAt.UTC().Format(timeFormat),
		nullString(r.Label),
		r.AwardCode,
		r.AwardVersion,
		nullString(r.Schedule),
		r.Summary.Total.String(),
		string(inputJSON),
		string(summaryJSON),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return history.ErrDuplicateID
		}
		return fmt.Errorf("failed to save calculation: %w", err)
	}
	return nil
}

// Get loads a record by ID.
func (s *Store) Get(ctx context.Context, id string) (history.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, selectColumns+` WHERE id = ?`, id)
	if err != nil {
		return history.Record{}, fmt.Errorf("failed to query calculation: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return history.Record{}, err
		}
		return history.Record{}, &history.NotFoundError{ID: id}
	}
	return scanRecord(rows)
}

// List returns records newest first.
func (s *Store) List(ctx context.Context, opts history.ListOptions) ([]history.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := opts.Limit
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx,
		selectColumns+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer rows.Close()

	records := []history.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Delete removes a record.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM calculations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &history.NotFoundError{ID: id}
	}
	return nil
}

// DeleteBefore removes records created before cutoff.
func (s *Store) DeleteBefore(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM calculations WHERE created_at < ?`,
		cutoff.UTC().Format(timeFormat))
	if err != nil {
		return 0, fmt.Errorf("failed to prune calculations: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM calculations`).Scan(&n)
	return n, err
}

const selectColumns = `
	SELECT id, created_at, label, award_code, award_version, schedule, input_json, summary_json
	FROM calculations`

func scanRecord(rows *sql.Rows) (history.Record, error) {
	var (
		r           history.Record
		createdAt   string
		label       sql.NullString
		schedule    sql.NullString
		inputJSON   string
		summaryJSON string
	)
	err := rows.Scan(&r.ID, &createdAt, &label, &r.AwardCode, &r.AwardVersion, &schedule, &inputJSON, &summaryJSON)
	if err != nil {
		return r, fmt.Errorf("failed to scan calculation: %w", err)
	}

	r.CreatedAt, err = time.Parse(timeFormat, createdAt)
	if err != nil {
		return r, fmt.Errorf("calculation %s: bad created_at: %w", r.ID, err)
	}
	r.Label = label.String
	r.Schedule = schedule.String
	if err := json.Unmarshal([]byte(inputJSON), &r.Input); err != nil {
		return r, fmt.Errorf("calculation %s: bad input: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(summaryJSON), &r.Summary); err != nil {
		return r, fmt.Errorf("calculation %s: bad summary: %w", r.ID, err)
	}
	return r, nil
}

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
