// Package history keeps a SQLite log of completed search runs.
//
// Only run summaries are stored (root, counts, status, filters). Nothing recorded here
// is read back by the scanner, so every search starts from a clean slate.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/syn-chromatic/filesearch/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// RunRecord is one row of the runs table
type RunRecord struct {
	ID                string
	Root              string
	StartedAt         time.Time
	Duration          time.Duration
	Status            string
	FileCount         int
	InaccessibleCount int
	VisitedDirs       int
	Filters           models.SearchFilters
}

// Store manages the SQLite history database
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the history database at dbPath.
// ":memory:" opens a private in-memory database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Each new connection would get its own empty in-memory database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA busy_timeout=5000", // Must be first
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := execWithRetry(db, schemaSQL, 5, 10*time.Millisecond); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// execWithRetry executes a statement, backing off exponentially on "database is locked".
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Path returns the database path the store was opened with
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores the summary of a completed search
func (s *Store) RecordRun(ctx context.Context, run *models.SearchRun) error {
	if run == nil {
		return fmt.Errorf("record run: nil run")
	}
	if run.ID == "" {
		return fmt.Errorf("record run: missing run id")
	}

	filters, err := json.Marshal(run.Filters)
	if err != nil {
		return fmt.Errorf("marshal filters: %w", err)
	}

	const query = `INSERT INTO runs
		(id, root, started_at, duration_ms, status, file_count, inaccessible_count, visited_dirs, filters)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		run.ID,
		run.Root,
		run.StartedAt.UTC(),
		run.Duration.Milliseconds(),
		run.Status(),
		run.FileCount(),
		run.InaccessibleCount(),
		run.VisitedDirs,
		string(filters),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*RunRecord, error) {
	query := `SELECT id, root, started_at, duration_ms, status, file_count, inaccessible_count, visited_dirs, filters
		FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []*RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return records, nil
}

// GetRun returns a single run by id, or sql.ErrNoRows wrapped if it does not exist
func (s *Store) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, root, started_at, duration_ms, status, file_count, inaccessible_count, visited_dirs, filters
		FROM runs WHERE id = ?`, id)
	rec, err := scanRun(row)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return rec, nil
}

// DeleteRunsBefore removes runs that started before cutoff and returns how many were removed
func (s *Store) DeleteRunsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete runs: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*RunRecord, error) {
	var (
		rec        RunRecord
		durationMS int64
		filters    string
	)
	if err := row.Scan(
		&rec.ID,
		&rec.Root,
		&rec.StartedAt,
		&durationMS,
		&rec.Status,
		&rec.FileCount,
		&rec.InaccessibleCount,
		&rec.VisitedDirs,
		&filters,
	); err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	rec.Duration = time.Duration(durationMS) * time.Millisecond
	if filters != "" {
		if err := json.Unmarshal([]byte(filters), &rec.Filters); err != nil {
			return nil, fmt.Errorf("unmarshal filters for run %s: %w", rec.ID, err)
		}
	}
	return &rec, nil
}
