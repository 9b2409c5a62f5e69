/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/toothbrush/notion-mdx/localdump"
)

var rawUsage = strings.TrimSpace(`
Dump the raw Notion JSON for a database or a page.  The ID is tried as a database first; if Notion
doesn't know it as one, it's fetched as a page along with its blocks.
`)

var rawCmd = &cobra.Command{
	Use:   "raw",
	Short: "Print raw Notion JSON for a database or page",
	Long:  rawUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		if RawID == "" {
			return fmt.Errorf("raw: no ID given.  Use --id")
		}

		api, stop, err := newAPI()
		if err != nil {
			return err
		}
		defer stop()

		out, err := localdump.RawExport(cmd.Context(), api, RawID)
		if err != nil {
			return fmt.Errorf("raw: %w", err)
		}

		if RawOutput == "" {
			fmt.Println(string(out))
			return nil
		}

		target, err := homedir.Expand(RawOutput)
		if err != nil {
			return fmt.Errorf("raw: couldn't expand homedir: %w", err)
		}
		if err := os.WriteFile(target, append(out, '\n'), 0600); err != nil {
			return fmt.Errorf("raw: couldn't write %s: %w", target, err)
		}
		logger.Info().Str("path", target).Msg("wrote raw JSON")
		return nil
	},
}

var (
	RawID     string
	RawOutput string
)

func init() {
	rootCmd.AddCommand(rawCmd)

	rawCmd.Flags().StringVar(&RawID, "id", "", "ID of the database or page to dump")
	rawCmd.Flags().StringVarP(&RawOutput, "file", "o", "", "write JSON to this file instead of stdout")
}
