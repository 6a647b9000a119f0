package errorlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS error_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	logged_at INTEGER NOT NULL,
	stamp TEXT NOT NULL,
	kind INTEGER NOT NULL,
	code INTEGER NOT NULL,
	details TEXT NOT NULL,
	fingerprint TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_error_log_code ON error_log(code);
`

// SQLiteSink stores entries in a local SQLite database.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening error log database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating error log schema: %w", err)
	}

	return &SQLiteSink{db: db}, nil
}

func (s *SQLiteSink) Name() string { return "sqlite" }
func (s *SQLiteSink) Close() error { return s.db.Close() }

// Append inserts one row.
func (s *SQLiteSink) Append(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO error_log (logged_at, stamp, kind, code, details, fingerprint) VALUES (?, ?, ?, ?, ?, ?)`,
		e.Time.UnixNano(), e.Stamp(), int(e.Kind), e.Code, e.Details, e.Fingerprint)
	if err != nil {
		return fmt.Errorf("inserting error log entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// returns all of them.
func (s *SQLiteSink) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT logged_at, stamp, kind, code, details, fingerprint FROM error_log ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying error log: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			nanos int64
			kind  int
			e     Entry
		)
		if err := rows.Scan(&nanos, &e.stamp, &kind, &e.Code, &e.Details, &e.Fingerprint); err != nil {
			return nil, fmt.Errorf("scanning error log row: %w", err)
		}
		e.Time = time.Unix(0, nanos)
		e.Kind = shared.Kind(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}
