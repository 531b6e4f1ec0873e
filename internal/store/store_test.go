// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/openimpact/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{DataDir: t.TempDir(), MaxResults: 20})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testPaper(id, title, abstract string) types.Paper {
	return types.Paper{
		ID:         id,
		Title:      title,
		Authors:    []string{"Jane Doe", "John Smith"},
		Abstract:   abstract,
		Categories: []string{"cs.AI"},
		Published:  time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		SourceURL:  "https://arxiv.org/abs/" + id,
	}
}

func TestOpenCreatesSearchIndex(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	// Open in a clean directory must build the FTS schema, and a non-empty
	// query must run against it without column ambiguity.
	s, err := Open(types.StoreConfig{DataDir: dir})
	require.NoError(t, err)

	require.NoError(t, s.Upsert(ctx, testPaper("2301.07041", "Attention Survey", "A survey.")))
	require.NoError(t, s.AttachSummary(ctx, "2301.07041", types.Summary{WhatsNew: "어텐션 요약"}))

	results, err := s.Search(ctx, "attention", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	results, err = s.Search(ctx, "어텐션", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, s.Close())

	// Reopening the same database must tolerate the existing schema.
	s, err = Open(types.StoreConfig{DataDir: dir})
	require.NoError(t, err)
	defer s.Close()

	results, err = s.Search(ctx, "attention", 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestUpsertAndGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	p := testPaper("2301.07041", "Attention Survey", "A survey of attention mechanisms.")
	require.NoError(t, s.Upsert(ctx, p))

	got, err := s.Get(ctx, "2301.07041")
	require.NoError(t, err)
	assert.Equal(t, p.Title, got.Title)
	assert.Equal(t, p.Authors, got.Authors)
	assert.Equal(t, p.Categories, got.Categories)
	assert.True(t, p.Published.Equal(got.Published))
	assert.Nil(t, got.Summary)
}

func TestGetNotFound(t *testing.T) {
	s := testStore(t)

	_, err := s.Get(context.Background(), "9999.99999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertRejectsEmptyID(t *testing.T) {
	s := testStore(t)

	err := s.Upsert(context.Background(), types.Paper{Title: "No ID"})
	assert.Error(t, err)
}

func TestUpsertPreservesSummary(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	p := testPaper("2301.07041", "Attention Survey", "A survey.")
	require.NoError(t, s.Upsert(ctx, p))
	require.NoError(t, s.AttachSummary(ctx, p.ID, types.Summary{WhatsNew: "새로운 어텐션 구조"}))

	// Re-crawling the same paper must not discard the summary.
	p.Title = "Attention Survey v2"
	require.NoError(t, s.Upsert(ctx, p))

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Attention Survey v2", got.Title)
	require.NotNil(t, got.Summary)
	assert.Equal(t, "새로운 어텐션 구조", got.Summary.WhatsNew)
	assert.False(t, got.SummarizedAt.IsZero())
}

func TestAttachSummaryNotFound(t *testing.T) {
	s := testStore(t)

	err := s.AttachSummary(context.Background(), "9999.99999", types.Summary{WhatsNew: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchMatchesTitleAndAbstract(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, testPaper("2301.00001", "Transformer Scaling Laws", "We study scaling.")))
	require.NoError(t, s.Upsert(ctx, testPaper("2301.00002", "Graph Networks", "Transformers appear in the abstract.")))
	require.NoError(t, s.Upsert(ctx, testPaper("2301.00003", "Diffusion Models", "Image generation.")))

	results, err := s.Search(ctx, "transformer", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	ids := []string{results[0].ID, results[1].ID}
	assert.Contains(t, ids, "2301.00001")
	assert.Contains(t, ids, "2301.00002")
}

func TestSearchMatchesSummary(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, testPaper("2301.00001", "Some Paper", "An abstract.")))
	require.NoError(t, s.AttachSummary(ctx, "2301.00001", types.Summary{
		TechnicalDetails: "RLHF 파이프라인을 개선했습니다",
	}))

	results, err := s.Search(ctx, "RLHF", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "2301.00001", results[0].ID)
}

func TestSearchQuotesUserInput(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, testPaper("2301.00001", "Quoting", "An abstract.")))

	// FTS5 operators and stray quotes in user input must not produce a
	// query syntax error.
	for _, q := range []string{`AND OR NOT`, `"unbalanced`, `col:value`, `(paren`} {
		_, err := s.Search(ctx, q, 10)
		assert.NoError(t, err, "query %q", q)
	}
}

func TestSearchEmptyQueryListsRecent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	older := testPaper("2301.00001", "Older", "a")
	older.Published = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	newer := testPaper("2301.00002", "Newer", "b")
	newer.Published = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Upsert(ctx, older))
	require.NoError(t, s.Upsert(ctx, newer))

	results, err := s.Search(ctx, "  ", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "2301.00002", results[0].ID)
}

func TestListUnsummarized(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, testPaper("2301.00001", "Done", "a")))
	require.NoError(t, s.Upsert(ctx, testPaper("2301.00002", "Pending", "b")))
	require.NoError(t, s.AttachSummary(ctx, "2301.00001", types.Summary{WhatsNew: "요약"}))

	pending, err := s.List(ctx, ListOptions{Unsummarized: true, Limit: 10})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "2301.00002", pending[0].ID)
}

func TestCount(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, s.Upsert(ctx, testPaper("2301.00001", "One", "a")))
	require.NoError(t, s.Upsert(ctx, testPaper("2301.00001", "One again", "a")))

	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
