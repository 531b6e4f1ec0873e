// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/openimpact/internal/crawl"
	"github.com/mesh-intelligence/openimpact/internal/store"
	"github.com/mesh-intelligence/openimpact/pkg/types"
)

const (
	defaultCrawlTimeout = 60 * time.Second
	defaultCrawlDelay   = 1 * time.Second
)

var crawlCmd = &cobra.Command{
	Use:   "crawl [identifiers...]",
	Short: "Fetch paper metadata from arXiv into the paper store",
	Long: `Crawl fetches paper metadata from the arXiv API and stores it locally.
With --field it crawls the most recently submitted papers of a category
(e.g. cs.AI); with identifier arguments it fetches individual papers by
arXiv ID or abstract-page URL.`,
	RunE: runCrawl,
}

func init() {
	crawlCmd.Flags().String("field", "", "arXiv category to crawl (e.g. cs.AI)")
	crawlCmd.Flags().Int("max", 100, "maximum number of papers per listing crawl")
	crawlCmd.Flags().Duration("delay", defaultCrawlDelay, "delay between consecutive paper stores")
	crawlCmd.Flags().Duration("timeout", defaultCrawlTimeout, "HTTP request timeout")
	crawlCmd.Flags().String("data-dir", "data", "directory holding the paper database")

	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	field := stringSetting(cmd, "field", "crawl.field")
	if field == "" && len(args) == 0 {
		return fmt.Errorf("provide --field or one or more arXiv IDs/URLs")
	}

	st, err := store.Open(types.StoreConfig{
		DataDir: stringSetting(cmd, "data-dir", "store.data_dir"),
	})
	if err != nil {
		return err
	}
	defer st.Close()

	timeout := durationSetting(cmd, "timeout", "crawl.timeout")
	pipeline := &crawl.Pipeline{
		Arxiv: &crawl.ArxivClient{
			Client:    &http.Client{Timeout: timeout},
			UserAgent: defaultUserAgent,
		},
		Store: st,
		Delay: durationSetting(cmd, "delay", "crawl.fetch_delay"),
	}

	ctx := context.Background()

	if field != "" {
		max := intSetting(cmd, "max", "crawl.max_papers")
		summary, err := pipeline.Field(ctx, field, max, os.Stdout)
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d paper(s) failed to store", summary.Failed)
		}
		return nil
	}

	var failed int
	for _, id := range args {
		if _, err := pipeline.One(ctx, id, os.Stdout); err != nil {
			fmt.Fprintf(os.Stdout, "failed  %s: %v\n", id, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d paper(s) failed to store", failed)
	}
	return nil
}
