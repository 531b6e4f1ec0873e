// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/openimpact/internal/secrets"
	"github.com/mesh-intelligence/openimpact/internal/store"
	"github.com/mesh-intelligence/openimpact/internal/summarize"
	"github.com/mesh-intelligence/openimpact/pkg/types"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Generate Korean newsletter summaries for stored papers",
	Long: `Summarize walks papers without a summary and asks the configured model
for a Korean AI-newsletter summary (What's New, Technical Details,
Performance Highlights). Summaries are attached to the paper store and
become searchable.

The model endpoint is any OpenAI-compatible chat-completions API. The API
key comes from --api-key or, when unset, from .secrets/gemini-api-key or
.secrets/openai-api-key.`,
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().String("model", "gemini-1.5-flash-latest", "model identifier")
	summarizeCmd.Flags().String("base-url", "", "OpenAI-compatible API base URL")
	summarizeCmd.Flags().String("api-key", "", "API key (default: .secrets/)")
	summarizeCmd.Flags().Int("limit", 20, "maximum number of papers to summarize")
	summarizeCmd.Flags().String("data-dir", "data", "directory holding the paper database")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	apiKey := stringSetting(cmd, "api-key", "ai.api_key")
	if apiKey == "" {
		apiKey = secrets.First(loadedSecrets, "gemini-api-key", "openai-api-key")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: use --api-key or add .secrets/gemini-api-key")
	}

	st, err := store.Open(types.StoreConfig{
		DataDir: stringSetting(cmd, "data-dir", "store.data_dir"),
	})
	if err != nil {
		return err
	}
	defer st.Close()

	s := summarize.New(types.AIConfig{
		Model:   stringSetting(cmd, "model", "ai.model"),
		APIKey:  apiKey,
		BaseURL: stringSetting(cmd, "base-url", "ai.base_url"),
	}, logger)

	limit, _ := cmd.Flags().GetInt("limit")
	summary, err := s.Run(context.Background(), st, limit, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d paper(s) failed summarization", summary.Failed)
	}
	return nil
}
