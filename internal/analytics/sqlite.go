package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS searches (
	query        TEXT PRIMARY KEY,
	count        INTEGER NOT NULL DEFAULT 0,
	last_results INTEGER NOT NULL DEFAULT 0,
	last_session TEXT NOT NULL DEFAULT '',
	last_seen    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS filters (
	kind         TEXT NOT NULL,
	value        TEXT NOT NULL,
	count        INTEGER NOT NULL DEFAULT 0,
	last_session TEXT NOT NULL DEFAULT '',
	last_seen    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (kind, value)
);
`

// SQLiteStore persists analytics counters across restarts.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the analytics database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create analytics directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open analytics database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize analytics schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// RecordSearch upserts the counter for one query. Blank queries are ignored.
func (s *SQLiteStore) RecordSearch(ctx context.Context, session, query string, results int) error {
	query = normalize(query)
	if query == "" {
		return nil
	}
	if session == "" {
		session = AnonymousSession
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO searches (query, count, last_results, last_session)
		VALUES (?, 1, ?, ?)
		ON CONFLICT(query) DO UPDATE SET
			count        = count + 1,
			last_results = excluded.last_results,
			last_session = excluded.last_session,
			last_seen    = CURRENT_TIMESTAMP`,
		query, results, session)
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

// RecordFilter upserts the counter for one filter selection.
func (s *SQLiteStore) RecordFilter(ctx context.Context, session, kind, value string) error {
	value = normalize(value)
	if kind == "" || value == "" {
		return nil
	}
	if session == "" {
		session = AnonymousSession
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO filters (kind, value, count, last_session)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(kind, value) DO UPDATE SET
			count        = count + 1,
			last_session = excluded.last_session,
			last_seen    = CURRENT_TIMESTAMP`,
		kind, value, session)
	if err != nil {
		return fmt.Errorf("failed to record filter: %w", err)
	}
	return nil
}

// TopQueries returns the n most frequent queries, count descending.
func (s *SQLiteStore) TopQueries(ctx context.Context, n int) ([]Entry, error) {
	return s.top(ctx, `
		SELECT query, count FROM searches
		ORDER BY count DESC, query ASC
		LIMIT ?`, sqlLimit(n))
}

// TopFilters returns the n most frequent values recorded for a filter kind.
func (s *SQLiteStore) TopFilters(ctx context.Context, kind string, n int) ([]Entry, error) {
	return s.top(ctx, `
		SELECT value, count FROM filters
		WHERE kind = ?
		ORDER BY count DESC, value ASC
		LIMIT ?`, kind, sqlLimit(n))
}

// sqlLimit maps "no limit" onto SQLite's LIMIT -1.
func sqlLimit(n int) int {
	if n <= 0 {
		return -1
	}
	return n
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) top(ctx context.Context, query string, args ...interface{}) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query analytics: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Value, &e.Count); err != nil {
			return nil, fmt.Errorf("failed to scan analytics row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
