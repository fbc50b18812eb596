// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/citation-view/pkg/types"
)

// Cache stores result sets in SQLite under a caller-chosen key. Records keep
// their delivery order, and absent fields are stored as NULL so they come
// back absent.
type Cache struct {
	db *sql.DB

	// now defaults to time.Now; tests pin it.
	now func() time.Time
}

// Entry summarizes one cached result set.
type Entry struct {
	Key       string
	Count     int
	CreatedAt time.Time
}

// Open opens or creates the cache database at path.
func Open(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	c := &Cache{db: db, now: time.Now}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS result_sets (
			key TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			set_key TEXT NOT NULL REFERENCES result_sets(key) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			doi TEXT,
			title TEXT,
			journal TEXT,
			first_author TEXT,
			year_published INTEGER,
			summary TEXT,
			citations INTEGER,
			score INTEGER,
			PRIMARY KEY (set_key, position)
		)`,
	}
	for _, stmt := range statements {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Put stores recs under key, replacing any set already there.
func (c *Cache) Put(ctx context.Context, key string, recs []types.Record) error {
	if key == "" {
		return errors.New("cache key must not be empty")
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM result_sets WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting old result set: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO result_sets (key, created_at, count) VALUES (?, ?, ?)`,
		key, c.now().UTC().Format(time.RFC3339Nano), len(recs),
	)
	if err != nil {
		return fmt.Errorf("inserting result set: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (set_key, position, doi, title, journal, first_author,
			year_published, summary, citations, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range recs {
		_, err := stmt.ExecContext(ctx, key, i,
			nullString(r.DOI), nullString(r.Title), nullString(r.Journal),
			nullString(r.FirstAuthor), nullInt(r.YearPublished), nullString(r.Summary),
			nullInt(r.Citations), nullInt(r.Score),
		)
		if err != nil {
			return fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Get returns the records stored under key in their original order. It
// returns ErrNoRecords when the key is unknown.
func (c *Cache) Get(ctx context.Context, key string) ([]types.Record, error) {
	var count int
	err := c.db.QueryRowContext(ctx,
		`SELECT count FROM result_sets WHERE key = ?`, key,
	).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("result set %q: %w", key, ErrNoRecords)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up result set %q: %w", key, err)
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT doi, title, journal, first_author, year_published, summary, citations, score
		 FROM records WHERE set_key = ? ORDER BY position`, key)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	recs := make([]types.Record, 0, count)
	for rows.Next() {
		var (
			doi, title, journal, author, summary sql.NullString
			year, citations, score               sql.NullInt64
		)
		if err := rows.Scan(&doi, &title, &journal, &author, &year, &summary, &citations, &score); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		recs = append(recs, types.Record{
			DOI:           stringPtr(doi),
			Title:         stringPtr(title),
			Journal:       stringPtr(journal),
			FirstAuthor:   stringPtr(author),
			YearPublished: intPtr(year),
			Summary:       stringPtr(summary),
			Citations:     intPtr(citations),
			Score:         intPtr(score),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return recs, nil
}

// List returns the cached result sets, newest first.
func (c *Cache) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT key, count, created_at FROM result_sets ORDER BY created_at DESC, key`)
	if err != nil {
		return nil, fmt.Errorf("querying result sets: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			created string
		)
		if err := rows.Scan(&e.Key, &e.Count, &created); err != nil {
			return nil, fmt.Errorf("scanning result set: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Drop deletes the result set stored under key. It returns ErrNoRecords when
// the key is unknown.
func (c *Cache) Drop(ctx context.Context, key string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM result_sets WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting result set %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting result set %q: %w", key, err)
	}
	if n == 0 {
		return fmt.Errorf("result set %q: %w", key, ErrNoRecords)
	}
	return nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
