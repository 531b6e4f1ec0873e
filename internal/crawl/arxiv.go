// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package crawl fetches paper metadata from arXiv and feeds the paper store.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/openimpact/internal/httputil"
	"github.com/mesh-intelligence/openimpact/pkg/types"
)

// arxivAPIBase is the arXiv export endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivClient fetches paper metadata from the arXiv Atom API.
type ArxivClient struct {
	Client    *http.Client
	UserAgent string
}

// Recent returns the most recently submitted papers in an arXiv category
// (e.g. "cs.AI"), newest first.
func (c *ArxivClient) Recent(ctx context.Context, field string, max int) ([]types.Paper, error) {
	if field == "" {
		return nil, fmt.Errorf("empty arXiv category")
	}
	if max <= 0 {
		max = 100
	}

	params := url.Values{
		"search_query": {"cat:" + field},
		"start":        {"0"},
		"max_results":  {strconv.Itoa(max)},
		"sortBy":       {"submittedDate"},
		"sortOrder":    {"descending"},
	}
	return c.query(ctx, params)
}

// Paper fetches a single paper by arXiv ID or abstract-page URL.
func (c *ArxivClient) Paper(ctx context.Context, idOrURL string) (*types.Paper, error) {
	id := NormalizeID(idOrURL)
	if id == "" {
		return nil, fmt.Errorf("unrecognized arXiv identifier %q", idOrURL)
	}

	params := url.Values{"id_list": {id}}
	papers, err := c.query(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(papers) == 0 {
		return nil, fmt.Errorf("arXiv returned no entry for %s", id)
	}
	return &papers[0], nil
}

func (c *ArxivClient) query(ctx context.Context, params url.Values) ([]types.Paper, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, arxivAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var papers []types.Paper
	for _, entry := range feed.Entries {
		id := NormalizeID(entry.ID)
		if id == "" {
			continue
		}

		p := types.Paper{
			ID:        id,
			Title:     collapseWhitespace(entry.Title),
			Abstract:  collapseWhitespace(entry.Summary),
			Comment:   collapseWhitespace(entry.Comment),
			SourceURL: "https://arxiv.org/abs/" + id,
		}

		for _, a := range entry.Authors {
			p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
		}
		for _, cat := range entry.Categories {
			if cat.Term != "" {
				p.Categories = append(p.Categories, cat.Term)
			}
		}

		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			p.Published = t
		}

		papers = append(papers, p)
	}
	return papers, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string          `xml:"id"`
	Title      string          `xml:"title"`
	Summary    string          `xml:"summary"`
	Published  string          `xml:"published"`
	Comment    string          `xml:"comment"`
	Authors    []arxivAuthor   `xml:"author"`
	Categories []arxivCategory `xml:"category"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

// NormalizeID extracts a bare arXiv ID from an ID, an abstract-page URL, or
// an Atom entry <id> URL (e.g. "http://arxiv.org/abs/2301.07041v1" →
// "2301.07041"). Returns "" when no ID can be recognized.
func NormalizeID(s string) string {
	s = strings.TrimSpace(s)

	const marker = "arxiv.org/abs/"
	if idx := strings.Index(s, marker); idx >= 0 {
		s = s[idx+len(marker):]
	}
	if s == "" || strings.Contains(s, "/") {
		return ""
	}

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(s, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(s[vIdx+1:]); err == nil {
			s = s[:vIdx]
		}
	}

	if !looksLikeID(s) {
		return ""
	}
	return s
}

// looksLikeID reports whether s has the modern arXiv ID shape (e.g.
// "2301.07041").
func looksLikeID(s string) bool {
	if len(s) < 9 || s[4] != '.' {
		return false
	}
	for i, r := range s {
		if i == 4 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// collapseWhitespace trims a field and folds the newline-wrapped formatting
// of arXiv Atom text into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
