// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/mesh-intelligence/openimpact/internal/store"
	"github.com/mesh-intelligence/openimpact/pkg/types"
)

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "Inspect the local paper store",
}

// --- list subcommand ---

var papersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored papers, newest first",
	RunE:  runPapersList,
}

func runPapersList(cmd *cobra.Command, args []string) error {
	st, err := openPapersStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	unsummarized, _ := cmd.Flags().GetBool("unsummarized")
	limit, _ := cmd.Flags().GetInt("limit")

	ctx := context.Background()
	papers, err := st.List(ctx, store.ListOptions{Unsummarized: unsummarized, Limit: limit})
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(papers)
	}

	if len(papers) == 0 {
		fmt.Println("No papers stored.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-12s  %-60s  %-20s  %-10s  %s\n",
		"ID", "Title", "Authors", "Published", "Summary")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 115))

	for _, p := range papers {
		title := truncate(p.Title, 60)
		published := ""
		if !p.Published.IsZero() {
			published = p.Published.Format("2006-01-02")
		}
		status := "-"
		if p.Summarized() {
			status = "yes"
		}
		fmt.Fprintf(os.Stdout, "%-12s  %-60s  %-20s  %-10s  %s\n",
			p.ID, title, formatAuthors(p.Authors), published, status)
	}

	total, err := st.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\n%d shown, %d stored\n", len(papers), total)
	return nil
}

// --- show subcommand ---

var papersShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one stored paper as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runPapersShow,
}

func runPapersShow(cmd *cobra.Command, args []string) error {
	st, err := openPapersStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	paper, err := st.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(paper)
	if err != nil {
		return fmt.Errorf("marshaling paper: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

// --- shared helpers ---

func openPapersStore(cmd *cobra.Command) (*store.Store, error) {
	return store.Open(types.StoreConfig{
		DataDir: stringSetting(cmd, "data-dir", "store.data_dir"),
	})
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

// truncate shortens s to at most max runes, never splitting a multibyte
// character (author names and titles are often Korean).
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func init() {
	papersCmd.PersistentFlags().String("data-dir", "data", "directory holding the paper database")

	papersListCmd.Flags().Int("limit", 20, "maximum number of papers to list")
	papersListCmd.Flags().Bool("unsummarized", false, "only papers without a summary")
	papersListCmd.Flags().Bool("json", false, "output papers as JSON")

	papersCmd.AddCommand(papersListCmd)
	papersCmd.AddCommand(papersShowCmd)

	rootCmd.AddCommand(papersCmd)
}
