// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/openimpact/internal/client"
	"github.com/mesh-intelligence/openimpact/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Run the frontend search trigger against the backend",
	Long: `Search issues one GET to the backend /search endpoint with the given
query and prints what the frontend would display: the returned JSON on
success, or the fixed error message when the call or the JSON parse fails.
The underlying error is logged, never shown.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "search query (may also be given as arguments)")
	searchCmd.Flags().String("base-url", client.DefaultBaseURL, "backend base endpoint")
	searchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (0 = none)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	query, _ := cmd.Flags().GetString("query")
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}

	trigger := client.New(types.ClientConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   durationSetting(cmd, "timeout", "client.timeout"),
			UserAgent: defaultUserAgent,
		},
		BaseURL: stringSetting(cmd, "base-url", "client.base_url"),
	}, logger)

	trigger.Search(context.Background(), query, os.Stdout)
	fmt.Println()
	return nil
}
