/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toothbrush/notion-mdx/internal/termfmt"
	"github.com/toothbrush/notion-mdx/notion"
)

var listDatabasesUsage = strings.TrimSpace(`
If you want to find out which databases are shared with your Notion integration, use this command.
The IDs it prints are what export --database expects.
`)

var listDatabasesCmd = &cobra.Command{
	Use:   "databases",
	Short: "Print list of databases",
	Long:  listDatabasesUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		api, stop, err := newAPI()
		if err != nil {
			return err
		}
		defer stop()

		logger.Info().Msg("listing Notion databases...")
		databases, err := api.ListAllDatabases(ctx)
		if err != nil {
			return fmt.Errorf("list: couldn't list Notion databases: %w", err)
		}
		logger.Info().Int("count", len(databases)).Msg("found databases")

		printDatabases(os.Stdout, databases)
		return nil
	},
}

func init() {
	listCmd.AddCommand(listDatabasesCmd)
}

// printDatabases writes one line per database, sorted by title, ID breaking ties.
func printDatabases(out io.Writer, databases map[string]notion.Database) {
	sorted := make([]notion.Database, 0, len(databases))
	for _, db := range databases {
		sorted = append(sorted, db)
	}
	sort.Slice(sorted, func(i, j int) bool {
		ti, tj := notion.PlainText(sorted[i].Title), notion.PlainText(sorted[j].Title)
		if ti != tj {
			return ti < tj
		}
		return sorted[i].ID < sorted[j].ID
	})

	fmt.Fprintf(out, "databases:\n")
	for _, db := range sorted {
		title := notion.PlainText(db.Title)
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(out, "  - %s: %s\n", termfmt.Bold().V(db.ID), title)
	}
}
