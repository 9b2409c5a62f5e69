/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Output current config",
	Long: `
Is something not working for you?  Have a look whether your config is as you expect.
`,
	Run: func(cmd *cobra.Command, args []string) {
		// Note, flags only get bound from the config file for the command that's running, so the
		// export settings shown here come straight from the file.
		fmt.Printf("Dump current config state:\n\n")

		fmt.Printf("  Config: %s\n", Config)
		fmt.Printf("  ConfigActual: %s\n", ConfigActual)
		fmt.Printf("  Debug: %v\n", Debug)
		fmt.Printf("  WithVCR: %v\n", WithVCR)
		fmt.Println()
		fmt.Printf("  AuthTokenCmd: %v\n", AuthTokenCmd)
		fmt.Println()
		fmt.Printf("  Database: %s\n", ParsedConfig.Database)
		fmt.Printf("  Output: %s\n", ParsedConfig.Output)
		fmt.Printf("  BasePath: %s\n", ParsedConfig.BasePath)
		fmt.Printf("  Extension: %s\n", ParsedConfig.Extension)
		fmt.Printf("  IncludeJSON: %v\n", showBool(ParsedConfig.IncludeJSON))
		fmt.Printf("  NoFrontmatter: %v\n", showBool(ParsedConfig.NoFrontmatter))
		fmt.Printf("  SkipMeta: %v\n", showBool(ParsedConfig.SkipMeta))
		fmt.Printf("  Hextra: %v\n", showBool(ParsedConfig.Hextra))
		fmt.Printf("  SiteURL: %s\n", ParsedConfig.SiteURL)
		fmt.Printf("  MetricsFile: %s\n", ParsedConfig.MetricsFile)
	},
}

func showBool(b *bool) string {
	if b == nil {
		return "(unset)"
	}
	return fmt.Sprintf("%v", *b)
}

func init() {
	configCmd.AddCommand(showCmd)
}
