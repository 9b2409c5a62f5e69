package localdump

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/toothbrush/notion-mdx/notion"
)

// ConsolidatedJSON is the file name of the all-pages JSON snapshot.
const ConsolidatedJSON = "index.json"

type pageDump struct {
	Page   *notion.Page   `json:"page"`
	Blocks []notion.Block `json:"blocks"`
}

type databaseDump struct {
	Results []notion.Page `json:"results"`
}

// WriteConsolidatedJSON lists the database again, fetches every page with its blocks, and writes
// them all to ConsolidatedJSON under outputDir.  It returns the path written.
func WriteConsolidatedJSON(ctx context.Context, source Source, databaseID string, outputDir string) (string, error) {
	pages, err := source.QueryDatabase(ctx, databaseID)
	if err != nil {
		return "", fmt.Errorf("localdump: couldn't list database %s: %w", databaseID, err)
	}

	dumps := []pageDump{}
	for _, p := range pages {
		dump, err := fetchPageDump(ctx, source, p.ID)
		if err != nil {
			return "", err
		}
		dumps = append(dumps, *dump)
	}

	out, err := json.MarshalIndent(struct {
		Pages []pageDump `json:"pages"`
	}{dumps}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("localdump: couldn't encode json: %w", err)
	}

	target := filepath.Join(outputDir, ConsolidatedJSON)
	if err := writeFile(target, string(out)); err != nil {
		return "", err
	}
	return target, nil
}

func fetchPageDump(ctx context.Context, source Source, pageID string) (*pageDump, error) {
	page, err := source.GetPage(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("localdump: couldn't fetch page %s: %w", pageID, err)
	}
	blocks, err := source.GetBlocks(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("localdump: couldn't fetch blocks of %s: %w", pageID, err)
	}
	return &pageDump{Page: page, Blocks: blocks}, nil
}

// RawExport returns the API's view of id as indented JSON.  The ID is tried as a database first;
// if Notion doesn't know a database by that ID, it's fetched as a page with its blocks.
func RawExport(ctx context.Context, source Source, id string) ([]byte, error) {
	var data any

	pages, err := source.QueryDatabase(ctx, id)
	switch {
	case err == nil:
		data = databaseDump{Results: pages}
	case errors.Is(err, notion.ErrObjectNotFound):
		dump, err := fetchPageDump(ctx, source, id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch Notion content: %w", err)
		}
		data = dump
	default:
		return nil, fmt.Errorf("failed to fetch Notion content: %w", err)
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("localdump: couldn't encode json: %w", err)
	}
	return out, nil
}
