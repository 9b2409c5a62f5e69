package localdump

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/toothbrush/notion-mdx/internal/metrics"
	"github.com/toothbrush/notion-mdx/notion"
	"github.com/toothbrush/notion-mdx/render"
)

var (
	ErrIncompletePage = errors.New("retrieved incomplete page object")
	// ErrPathOutsideOutput means a page's custom path would put it outside the output directory.
	ErrPathOutsideOutput = errors.New("custom path leaves the output directory")
)

// ConversionError is any failure turning one page into a document.
type ConversionError struct {
	PageID string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("localdump: couldn't convert page %s: %v", e.PageID, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Source is the slice of the Notion API an export reads from.  *notion.API satisfies it.
type Source interface {
	PageGetter
	QueryDatabase(ctx context.Context, databaseID string) ([]notion.Page, error)
	GetBlocks(ctx context.Context, blockID string) ([]notion.Block, error)
}

// Document is one converted page, ready to be written.
type Document struct {
	Title        string
	Body         string
	PageID       string
	CreatedAt    string
	LastEditedAt string
	Weight       float64

	// OutputPath includes the output directory it was computed against.
	OutputPath string

	Page *notion.Page
}

// Converter turns pages into Markdown documents.  It holds the link cache, so use one per export
// run; it isn't safe for concurrent use.
type Converter struct {
	source    Source
	renderer  *render.Renderer
	links     *LinkResolver
	extension string
}

func NewConverter(source Source, renderer *render.Renderer, opts Options, logger zerolog.Logger, m *metrics.Run) *Converter {
	if renderer == nil {
		renderer = render.New(nil)
	}

	links := NewLinkResolver(source, opts.BasePath)
	links.Logger = logger
	links.Metrics = m

	return &Converter{
		source:    source,
		renderer:  renderer,
		links:     links,
		extension: opts.extension(),
	}
}

// Convert fetches a page and its content and renders it.  Nothing is written to disk.
func (c *Converter) Convert(ctx context.Context, pageID string, outputDir string) (*Document, error) {
	page, err := c.source.GetPage(ctx, pageID)
	if err != nil {
		return nil, &ConversionError{PageID: pageID, Err: err}
	}
	if !page.IsFull() {
		return nil, &ConversionError{PageID: pageID, Err: ErrIncompletePage}
	}

	title := ExtractTitle(page)

	blocks, err := c.source.GetBlocks(ctx, pageID)
	if err != nil {
		return nil, &ConversionError{PageID: pageID, Err: err}
	}

	outputPath, err := c.outputPath(page, outputDir, title)
	if err != nil {
		return nil, &ConversionError{PageID: pageID, Err: err}
	}

	body := c.renderer.Render(blocks)
	body = c.links.Resolve(ctx, body)
	body = normalizeQuotes(body)

	return &Document{
		Title:        title,
		Body:         body,
		PageID:       pageID,
		CreatedAt:    page.CreatedTime,
		LastEditedAt: page.LastEditedTime,
		Weight:       ExtractWeight(page),
		OutputPath:   outputPath,
		Page:         page,
	}, nil
}

var quotes = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", `'`,
	"’", `'`,
)

// normalizeQuotes straightens typographic quotes, which MDX chokes on inside component attributes.
func normalizeQuotes(s string) string {
	return quotes.Replace(s)
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases title and collapses every run of other characters into one hyphen.
func Slugify(title string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(title), "-")
}

// outputPath puts the page at its custom path under outputDir, or else at its slug.  A custom path
// ending in "/" names a directory, and the slug is used as the file name inside it.
func (c *Converter) outputPath(page *notion.Page, outputDir string, title string) (string, error) {
	custom, ok := ExtractCustomPath(page)
	if !ok {
		return filepath.Join(outputDir, Slugify(title)+c.extension), nil
	}

	parts := strings.Split(custom, "/")
	name := parts[len(parts)-1]
	if name == "" {
		name = Slugify(title)
	}
	dirs := strings.Join(parts[:len(parts)-1], "/")

	target := filepath.Join(outputDir, filepath.FromSlash(dirs), name+c.extension)

	rel, err := filepath.Rel(outputDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrPathOutsideOutput, custom)
	}

	return target, nil
}
