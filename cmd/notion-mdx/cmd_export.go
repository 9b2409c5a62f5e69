/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/sync/errgroup"

	"github.com/toothbrush/notion-mdx/internal/metrics"
	"github.com/toothbrush/notion-mdx/internal/termfmt"
	"github.com/toothbrush/notion-mdx/localdump"
	"github.com/toothbrush/notion-mdx/render"
)

var exportUsage = strings.TrimSpace(`
Export every page of a Notion database as Markdown, one file per page.  Pages with a "path"
property land at that path under --output, the rest are named after their title.  Unless
--skip-meta is given, a _meta.ts is written per directory, ordered by each page's "weight".
`)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a Notion database to Markdown files",
	Long:  exportUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd)
	},
}

var (
	DatabaseID    string
	OutputDir     string
	BasePath      string
	IncludeJSON   bool
	NoFrontmatter bool
	Extension     string
	SkipMeta      bool
	Hextra        bool
	SiteURL       string
	MetricsFile   string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&DatabaseID, "database", "d", "", "ID of the Notion database to export")
	exportCmd.Flags().StringVarP(&OutputDir, "output", "o", "", "directory to write Markdown into")
	exportCmd.Flags().StringVar(&BasePath, "base-path", "", "path prefix for links between exported pages")
	exportCmd.Flags().BoolVar(&IncludeJSON, "include-json", false, "also write the raw Notion responses to index.json")
	exportCmd.Flags().BoolVar(&NoFrontmatter, "no-frontmatter", false, "don't prepend YAML front matter")
	exportCmd.Flags().StringVar(&Extension, "extension", localdump.DefaultExtension, "file extension for exported pages")
	exportCmd.Flags().BoolVar(&SkipMeta, "skip-meta", false, "don't write a _meta.ts per directory")
	exportCmd.Flags().BoolVar(&Hextra, "hextra", false, "render callouts as Hextra callout shortcodes")
	exportCmd.Flags().StringVar(&SiteURL, "site-url", "", "make links into this site relative")
	exportCmd.Flags().StringVar(&MetricsFile, "metrics-file", "", "write run metrics to this file in Prometheus textfile format")
}

func runExport(cmd *cobra.Command) error {
	if DatabaseID == "" {
		return fmt.Errorf("export: no database set.  Use --database or set it in your config file")
	}
	if OutputDir == "" {
		return fmt.Errorf("export: no output directory set.  Use --output or set it in your config file")
	}

	outputDir, err := homedir.Expand(OutputDir)
	if err != nil {
		return fmt.Errorf("export: couldn't expand homedir: %w", err)
	}

	api, stop, err := newAPI()
	if err != nil {
		return err
	}
	defer stop()

	runMetrics := metrics.NewRun()
	exporter := &localdump.Exporter{
		Source:   api,
		Renderer: buildRenderer(Hextra, SiteURL),
		Logger:   logger,
		Metrics:  runMetrics,
	}
	opts := localdump.Options{
		BasePath:      BasePath,
		IncludeJSON:   IncludeJSON,
		NoFrontmatter: NoFrontmatter,
		Extension:     Extension,
		SkipMeta:      SkipMeta,
	}

	logger.Debug().
		Str("database_id", DatabaseID).
		Str("output", outputDir).
		Interface("options", opts).
		Msg("starting export")

	printer := newProgressPrinter(os.Stdout, isatty.IsTerminal(os.Stderr.Fd()))

	events := make(chan localdump.Progress)
	grp, gctx := errgroup.WithContext(cmd.Context())
	grp.Go(func() error {
		return exporter.Export(gctx, DatabaseID, outputDir, opts, events)
	})
	grp.Go(func() error {
		for ev := range events {
			printer.handle(ev)
		}
		return nil
	})

	runErr := grp.Wait()
	printer.finish()

	if MetricsFile != "" {
		path, err := homedir.Expand(MetricsFile)
		if err != nil {
			return fmt.Errorf("export: couldn't expand homedir: %w", err)
		}
		if err := runMetrics.WriteTextfile(path); err != nil {
			return fmt.Errorf("export: couldn't write metrics: %w", err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("export: failed: %w", runErr)
	}
	if printer.failed > 0 {
		logger.Warn().Int("failed", printer.failed).Msg("some pages could not be exported")
	}
	return nil
}

func buildRenderer(hextra bool, siteURL string) *render.Renderer {
	hooks := map[string]render.Hook{}
	if hextra {
		hooks["callout"] = render.HextraCallout()
	}
	if siteURL != "" {
		hooks["paragraph"] = render.SiteURLRewrite(siteURL)
	}
	return render.New(hooks)
}

// progressPrinter turns export events into console lines, and keeps a progress bar on stderr when
// there's a terminal to draw it on.
type progressPrinter struct {
	out io.Writer

	progress *mpb.Progress
	bar      *mpb.Bar

	exported int
	failed   int
}

func newProgressPrinter(out io.Writer, withBar bool) *progressPrinter {
	pp := &progressPrinter{out: out}
	if withBar {
		pp.progress = mpb.New(mpb.WithOutput(os.Stderr), mpb.WithWidth(64))
	}
	return pp
}

func (pp *progressPrinter) handle(ev localdump.Progress) {
	switch ev := ev.(type) {
	case localdump.StartEvent:
		fmt.Fprintf(pp.out, "Found %d pages to export...\n", termfmt.Bold().V(ev.TotalPages))
		if pp.progress != nil && ev.TotalPages > 0 {
			pp.bar = pp.progress.AddBar(int64(ev.TotalPages),
				mpb.PrependDecorators(
					decor.Name("pages:", decor.WC{C: decor.DindentRight | decor.DextraSpace}),
				),
				mpb.AppendDecorators(
					decor.CountersNoUnit("(%d/%d) "),
					decor.NewPercentage("%d"),
				),
			)
		}

	case localdump.PageEvent:
		if ev.Failed() {
			pp.failed++
			fmt.Fprintf(pp.out, "❌ Error processing page %s: %s\n",
				ev.PageID, termfmt.Fg(termfmt.Red).V(ev.Err.Error()))
		} else {
			pp.exported++
			fmt.Fprintf(pp.out, "✅ Exported: %s\n", termfmt.Fg(termfmt.Green).V(ev.OutputPath))
		}
		if pp.bar != nil {
			pp.bar.Increment()
		}

	case localdump.IndexEvent:
		fmt.Fprintf(pp.out, "Generated index: %s\n", termfmt.Faint().V(ev.Directory))

	case localdump.RawJSONEvent:
		fmt.Fprintf(pp.out, "Wrote %s\n", termfmt.Faint().V(localdump.ConsolidatedJSON))

	case localdump.CompleteEvent:
		fmt.Fprintf(pp.out, "%s (%d exported, %d failed)\n",
			termfmt.Bold().V("✨ Export complete!"), pp.exported, pp.failed)
	}
}

// finish flushes the progress bar.  A run that stopped early leaves the bar short of its total,
// so it's aborted rather than waited on forever.
func (pp *progressPrinter) finish() {
	if pp.progress == nil {
		return
	}
	if pp.bar != nil && !pp.bar.Completed() {
		pp.bar.Abort(false)
	}
	pp.progress.Wait()
}
