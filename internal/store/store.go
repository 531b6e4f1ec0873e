// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists crawled papers in SQLite and serves full-text
// search over their titles, abstracts, and summaries.
//
// The search index is an FTS5 virtual table, so the go-sqlite3 driver must
// be compiled with the sqlite_fts5 build tag (the mage Build and Test
// targets pass it).
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mesh-intelligence/openimpact/pkg/types"
)

const dbFile = "openimpact.db"

// ErrNotFound is returned when a paper ID has no stored record.
var ErrNotFound = errors.New("paper not found")

// Store manages the paper SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the paper database at dataDir/openimpact.db and
// creates the schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}

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

// Ping verifies the database connection, for health checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			authors TEXT,
			abstract TEXT,
			comment TEXT,
			categories TEXT,
			published TEXT,
			source_url TEXT,
			summary TEXT,
			summarized_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_published ON papers(published)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(title, abstract, summary, content=papers, content_rowid=rowid, tokenize='porter unicode61')`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title, abstract, summary) VALUES (new.rowid, new.title, new.abstract, new.summary);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract, summary) VALUES('delete', old.rowid, old.title, old.abstract, old.summary);
			END`,
			`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract, summary) VALUES('delete', old.rowid, old.title, old.abstract, old.summary);
				INSERT INTO papers_fts(rowid, title, abstract, summary) VALUES (new.rowid, new.title, new.abstract, new.summary);
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

// Upsert inserts a paper or refreshes its crawled metadata. An existing
// summary is preserved so that re-crawling a category does not discard
// summarization work.
func (s *Store) Upsert(ctx context.Context, p types.Paper) error {
	if p.ID == "" {
		return fmt.Errorf("paper has no ID")
	}

	authorsJSON, _ := json.Marshal(p.Authors)
	categoriesJSON, _ := json.Marshal(p.Categories)
	published := ""
	if !p.Published.IsZero() {
		published = p.Published.UTC().Format(time.RFC3339)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO papers (id, title, authors, abstract, comment, categories, published, source_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, authors=excluded.authors, abstract=excluded.abstract,
			comment=excluded.comment, categories=excluded.categories,
			published=excluded.published, source_url=excluded.source_url`,
		p.ID, p.Title, string(authorsJSON), p.Abstract, p.Comment,
		string(categoriesJSON), published, p.SourceURL,
	)
	if err != nil {
		return fmt.Errorf("upserting paper %s: %w", p.ID, err)
	}
	return nil
}

// Get returns the stored paper with the given arXiv ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*types.Paper, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` FROM papers WHERE id = ?`, id)
	p, err := scanPaper(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading paper %s: %w", id, err)
	}
	return p, nil
}

// Has reports whether a paper with the given ID is stored.
func (s *Store) Has(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM papers WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking paper %s: %w", id, err)
	}
	return n > 0, nil
}

// Count returns the number of stored papers.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM papers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting papers: %w", err)
	}
	return n, nil
}

// AttachSummary stores a generated summary on an existing paper and stamps
// the summarization time.
func (s *Store) AttachSummary(ctx context.Context, id string, summary types.Summary) error {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE papers SET summary = ?, summarized_at = ? WHERE id = ?`,
		string(summaryJSON), time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("attaching summary to %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
