// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/openimpact/pkg/types"
)

const selectColumns = `SELECT id, title, authors, abstract, comment, categories,
	published, source_url, summary, summarized_at`

// selectQualified prefixes every column with the papers table. The FTS join
// needs it: title, abstract, and summary exist in both papers and papers_fts,
// so unqualified names are ambiguous there.
const selectQualified = `SELECT papers.id, papers.title, papers.authors,
	papers.abstract, papers.comment, papers.categories, papers.published,
	papers.source_url, papers.summary, papers.summarized_at`

// ListOptions holds parameters for paper listings.
type ListOptions struct {
	// Unsummarized restricts the listing to papers without a summary.
	Unsummarized bool

	// Limit caps the result count. Zero uses the store default.
	Limit int
}

// List returns stored papers ordered by publication date, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Paper, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}

	q := selectColumns + ` FROM papers`
	if opts.Unsummarized {
		q += ` WHERE summary IS NULL`
	}
	q += ` ORDER BY published DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}
	defer rows.Close()

	return collectPapers(rows)
}

// Search runs a full-text query over titles, abstracts, and summaries,
// ranked by FTS5 relevance. An empty query falls back to the recency
// listing so the search endpoint always has something to show.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]types.Paper, error) {
	if strings.TrimSpace(query) == "" {
		return s.List(ctx, ListOptions{Limit: limit})
	}
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		selectQualified+`
		FROM papers_fts
		JOIN papers ON papers.rowid = papers_fts.rowid
		WHERE papers_fts MATCH ?
		ORDER BY papers_fts.rank
		LIMIT ?`,
		ftsQuery(query), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching papers: %w", err)
	}
	defer rows.Close()

	return collectPapers(rows)
}

// ftsQuery quotes each term so user input is matched literally instead of
// being parsed as FTS5 query syntax.
func ftsQuery(query string) string {
	terms := strings.Fields(query)
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ReplaceAll(term, `"`, `""`)
		quoted = append(quoted, `"`+term+`"`)
	}
	return strings.Join(quoted, " ")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPaper(row rowScanner) (*types.Paper, error) {
	var (
		p            types.Paper
		authors      string
		categories   string
		published    string
		summary      sql.NullString
		summarizedAt sql.NullString
	)

	err := row.Scan(&p.ID, &p.Title, &authors, &p.Abstract, &p.Comment,
		&categories, &published, &p.SourceURL, &summary, &summarizedAt)
	if err != nil {
		return nil, err
	}

	if authors != "" {
		if err := json.Unmarshal([]byte(authors), &p.Authors); err != nil {
			return nil, fmt.Errorf("parsing authors for %s: %w", p.ID, err)
		}
	}
	if categories != "" {
		if err := json.Unmarshal([]byte(categories), &p.Categories); err != nil {
			return nil, fmt.Errorf("parsing categories for %s: %w", p.ID, err)
		}
	}
	if published != "" {
		if t, parseErr := time.Parse(time.RFC3339, published); parseErr == nil {
			p.Published = t
		}
	}
	if summary.Valid && summary.String != "" {
		var sum types.Summary
		if err := json.Unmarshal([]byte(summary.String), &sum); err != nil {
			return nil, fmt.Errorf("parsing summary for %s: %w", p.ID, err)
		}
		p.Summary = &sum
	}
	if summarizedAt.Valid && summarizedAt.String != "" {
		if t, parseErr := time.Parse(time.RFC3339, summarizedAt.String); parseErr == nil {
			p.SummarizedAt = t
		}
	}

	return &p, nil
}

func collectPapers(rows *sql.Rows) ([]types.Paper, error) {
	var papers []types.Paper
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		papers = append(papers, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating papers: %w", err)
	}
	return papers, nil
}
