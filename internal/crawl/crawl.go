// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crawl

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mesh-intelligence/openimpact/internal/store"
	"github.com/mesh-intelligence/openimpact/pkg/types"
)

// Pipeline fetches papers from arXiv and upserts them into the store.
type Pipeline struct {
	Arxiv *ArxivClient
	Store *store.Store

	// Delay is the pause between consecutive paper stores during a
	// listing crawl.
	Delay time.Duration
}

// Summary holds counts from a crawl run.
type Summary struct {
	Stored  int
	Updated int
	Failed  int
}

// Total returns the number of papers processed.
func (s Summary) Total() int {
	return s.Stored + s.Updated + s.Failed
}

// Field crawls the most recent papers in an arXiv category and stores
// them. Progress lines are written to w; a paper that fails to store does
// not abort the run.
func (p *Pipeline) Field(ctx context.Context, field string, max int, w io.Writer) (Summary, error) {
	papers, err := p.Arxiv.Recent(ctx, field, max)
	if err != nil {
		return Summary{}, fmt.Errorf("fetching %s listing: %w", field, err)
	}

	var summary Summary
	for i, paper := range papers {
		if i > 0 && p.Delay > 0 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(p.Delay):
			}
		}

		known, err := p.Store.Has(ctx, paper.ID)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", paper.ID, err)
			summary.Failed++
			continue
		}

		if err := p.Store.Upsert(ctx, paper); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", paper.ID, err)
			summary.Failed++
			continue
		}

		if known {
			fmt.Fprintf(w, "updated %s  %s\n", paper.ID, paper.Title)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "stored  %s  %s\n", paper.ID, paper.Title)
			summary.Stored++
		}
	}

	fmt.Fprintf(w, "\nprocessed %d paper(s): stored %d, updated %d, failed %d\n",
		summary.Total(), summary.Stored, summary.Updated, summary.Failed)
	return summary, nil
}

// One fetches a single paper by arXiv ID or URL and stores it.
func (p *Pipeline) One(ctx context.Context, idOrURL string, w io.Writer) (*types.Paper, error) {
	paper, err := p.Arxiv.Paper(ctx, idOrURL)
	if err != nil {
		return nil, err
	}
	if err := p.Store.Upsert(ctx, *paper); err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "stored  %s  %s\n", paper.ID, paper.Title)
	return paper, nil
}
