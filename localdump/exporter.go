package localdump

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/toothbrush/notion-mdx/internal/metrics"
	"github.com/toothbrush/notion-mdx/render"
)

const DefaultExtension = ".mdx"

type Options struct {
	// BasePath prefixes rewritten internal links, e.g. "docs" gives "/docs/guides/x".
	BasePath      string
	IncludeJSON   bool
	NoFrontmatter bool
	// Extension defaults to DefaultExtension.
	Extension string
	SkipMeta  bool
}

func (o Options) extension() string {
	if o.Extension == "" {
		return DefaultExtension
	}
	return o.Extension
}

// Exporter writes a whole database out as Markdown documents.
type Exporter struct {
	Source   Source
	Renderer *render.Renderer

	Logger  zerolog.Logger
	Metrics *metrics.Run
}

// Export converts every page of the database into outputDir, one at a time in the order Notion
// lists them.  Events are sent on progress as they happen, and progress is closed when Export
// returns.
//
// A page that fails is reported in its PageEvent and the run carries on; only failures affecting
// the whole run (listing the database, creating outputDir, writing indexes) are returned.
func (e *Exporter) Export(ctx context.Context, databaseID string, outputDir string, opts Options, progress chan<- Progress) error {
	defer close(progress)

	send := func(p Progress) error {
		select {
		case progress <- p:
			return nil
		case <-ctx.Done():
			return context.Cause(ctx)
		}
	}

	if err := ensureOutputDir(outputDir); err != nil {
		return err
	}

	pages, err := e.Source.QueryDatabase(ctx, databaseID)
	if err != nil {
		return fmt.Errorf("localdump: couldn't list database %s: %w", databaseID, err)
	}
	e.Logger.Debug().Str("database_id", databaseID).Int("pages", len(pages)).Msg("listed database")

	total := len(pages)
	if err := send(StartEvent{TotalPages: total}); err != nil {
		return err
	}

	converter := NewConverter(e.Source, e.Renderer, opts, e.Logger, e.Metrics)
	meta := NewMetaBuilder()

	for i, p := range pages {
		event := PageEvent{
			CurrentPage: i + 1,
			TotalPages:  total,
			PageID:      p.ID,
		}

		doc, err := e.exportPage(ctx, converter, p.ID, outputDir, opts)
		if err != nil {
			e.Metrics.PageFailed()
			e.Logger.Debug().Err(err).Str("page_id", p.ID).Msg("page failed")
			event.Err = err
		} else {
			e.Metrics.PageExported()
			meta.AddPage(doc.OutputPath, doc.Title, doc.Weight)
			event.OutputPath = doc.OutputPath
		}

		if err := send(event); err != nil {
			return err
		}
	}

	if !opts.SkipMeta {
		for _, dir := range meta.Directories() {
			if _, err := meta.WriteIndex(dir); err != nil {
				return err
			}
			e.Metrics.IndexWritten()
			if err := send(IndexEvent{Directory: dir}); err != nil {
				return err
			}
		}
	}

	if opts.IncludeJSON {
		path, err := WriteConsolidatedJSON(ctx, e.Source, databaseID, outputDir)
		if err != nil {
			return err
		}
		if err := send(RawJSONEvent{Path: path}); err != nil {
			return err
		}
	}

	return send(CompleteEvent{})
}

func (e *Exporter) exportPage(ctx context.Context, converter *Converter, pageID string, outputDir string, opts Options) (*Document, error) {
	doc, err := converter.Convert(ctx, pageID, outputDir)
	if err != nil {
		return nil, err
	}

	if err := WriteDocument(doc, opts.NoFrontmatter); err != nil {
		return nil, err
	}

	return doc, nil
}
