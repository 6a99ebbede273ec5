// Package store keeps a SQLite history of inventory runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aidanlsb/onenotestats/internal/stats"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	notebook TEXT NOT NULL,
	section_groups INTEGER NOT NULL,
	sections INTEGER NOT NULL,
	pages INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS pages (
	run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	page_id TEXT NOT NULL,
	name TEXT NOT NULL,
	date_time TEXT NOT NULL,
	last_modified_time TEXT NOT NULL,
	page_level INTEGER NOT NULL,
	is_currently_viewed TEXT,
	location TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_runs_notebook ON runs(notebook, created_at);
`

// Store is the SQLite database handle.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Run is a recorded inventory run.
type Run struct {
	ID        int64
	Notebook  string
	Summary   stats.Summary
	CreatedAt time.Time
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Keep a single connection so pragmas apply to every statement.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun records a summary and its page records in one transaction and
// returns the run id.
func (s *Store) SaveRun(ctx context.Context, summary stats.Summary, records []stats.PageRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (notebook, section_groups, sections, pages, created_at) VALUES (?, ?, ?, ?, ?)`,
		summary.Notebook, summary.SectionGroupCount, summary.SectionCount, summary.PageCount, s.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO pages
		(run_id, position, page_id, name, date_time, last_modified_time, page_level, is_currently_viewed, location)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare page insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		var viewed sql.NullString
		if r.IsCurrentlyViewed != nil {
			viewed = sql.NullString{String: *r.IsCurrentlyViewed, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, runID, i, r.ID, r.Name,
			r.DateTime.Format(time.RFC3339Nano), r.LastModifiedTime.Format(time.RFC3339Nano),
			r.PageLevel, viewed, r.Location); err != nil {
			return 0, fmt.Errorf("failed to insert page %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// Runs returns the recorded runs of a notebook, newest first.
func (s *Store) Runs(ctx context.Context, notebook string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, notebook, section_groups, sections, pages, created_at
		FROM runs WHERE notebook = ? ORDER BY created_at DESC, id DESC`, notebook)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created int64
		if err := rows.Scan(&r.ID, &r.Notebook, &r.Summary.SectionGroupCount, &r.Summary.SectionCount, &r.Summary.PageCount, &created); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Summary.Notebook = r.Notebook
		r.CreatedAt = time.Unix(0, created)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Pages returns the page records stored for a run, in their original order.
func (s *Store) Pages(ctx context.Context, runID int64) ([]stats.PageRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT page_id, name, date_time, last_modified_time, page_level, is_currently_viewed, location
		FROM pages WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer rows.Close()

	var records []stats.PageRecord
	for rows.Next() {
		var r stats.PageRecord
		var dateTime, lastModified string
		var viewed sql.NullString
		if err := rows.Scan(&r.ID, &r.Name, &dateTime, &lastModified, &r.PageLevel, &viewed, &r.Location); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		if r.DateTime, err = time.Parse(time.RFC3339Nano, dateTime); err != nil {
			return nil, fmt.Errorf("failed to parse stored dateTime of %s: %w", r.ID, err)
		}
		if r.LastModifiedTime, err = time.Parse(time.RFC3339Nano, lastModified); err != nil {
			return nil, fmt.Errorf("failed to parse stored lastModifiedTime of %s: %w", r.ID, err)
		}
		if viewed.Valid {
			v := viewed.String
			r.IsCurrentlyViewed = &v
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
