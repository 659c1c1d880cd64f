// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists conversion history in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdf2tex/pkg/types"
)

// Conversion statuses.
const (
	StatusDone   = "done"
	StatusFailed = "failed"
)

// Record is one row of conversion history.
type Record struct {
	ID         int64     `json:"id" yaml:"id"`
	Original   string    `json:"original" yaml:"original"`
	SafeName   string    `json:"safe_name" yaml:"safe_name"`
	Status     string    `json:"status" yaml:"status"`
	Error      string    `json:"error,omitempty" yaml:"error,omitempty"`
	PageCount  int       `json:"page_count" yaml:"page_count"`
	ImageCount int       `json:"image_count" yaml:"image_count"`
	TexPath    string    `json:"tex_path,omitempty" yaml:"tex_path,omitempty"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// Store manages the conversion history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at cfg.DBPath and creates
// the schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			original TEXT NOT NULL,
			safe_name TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			page_count INTEGER,
			image_count INTEGER,
			tex_path TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='conversions_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE conversions_fts USING fts5(original, error, content=conversions, content_rowid=id)`,
			`CREATE TRIGGER conversions_ai AFTER INSERT ON conversions BEGIN
				INSERT INTO conversions_fts(rowid, original, error) VALUES (new.id, new.original, new.error);
			END`,
			`CREATE TRIGGER conversions_ad AFTER DELETE ON conversions BEGIN
				INSERT INTO conversions_fts(conversions_fts, rowid, original, error) VALUES('delete', old.id, old.original, old.error);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Add inserts a conversion record and returns it with ID and CreatedAt set.
func (s *Store) Add(ctx context.Context, rec Record) (Record, error) {
	rec.CreatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (original, safe_name, status, error, page_count, image_count, tex_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Original, rec.SafeName, rec.Status, rec.Error,
		rec.PageCount, rec.ImageCount, rec.TexPath,
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Record{}, fmt.Errorf("inserting conversion record: %w", err)
	}

	rec.ID, err = res.LastInsertId()
	if err != nil {
		return Record{}, fmt.Errorf("reading inserted id: %w", err)
	}
	return rec, nil
}

// Recent returns up to limit conversion records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, original, safe_name, status, COALESCE(error, ''),
		        COALESCE(page_count, 0), COALESCE(image_count, 0), COALESCE(tex_path, ''), created_at
		 FROM conversions ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Search runs an FTS match over original filenames and error text,
// newest first.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.original, c.safe_name, c.status, COALESCE(c.error, ''),
		        COALESCE(c.page_count, 0), COALESCE(c.image_count, 0), COALESCE(c.tex_path, ''), c.created_at
		 FROM conversions_fts f
		 JOIN conversions c ON c.id = f.rowid
		 WHERE conversions_fts MATCH ?
		 ORDER BY c.created_at DESC, c.id DESC LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching conversions: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var rec Record
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.Original, &rec.SafeName, &rec.Status, &rec.Error,
			&rec.PageCount, &rec.ImageCount, &rec.TexPath, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning conversion row: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
		}
		rec.CreatedAt = ts
		records = append(records, rec)
	}
	return records, rows.Err()
}
