package localdump

import (
	"context"
	"fmt"

	"github.com/toothbrush/notion-mdx/notion"
)

// fakeSource serves pages and blocks from memory and counts GetPage calls.
type fakeSource struct {
	databases map[string][]notion.Page
	pages     map[string]*notion.Page
	blocks    map[string][]notion.Block

	// blockErrs makes GetBlocks fail for the given page IDs.
	blockErrs map[string]error
	// pageErrs makes GetPage fail for the given page IDs.
	pageErrs map[string]error
	// queryErr makes every QueryDatabase call fail.
	queryErr error

	getPageCalls map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		databases:    map[string][]notion.Page{},
		pages:        map[string]*notion.Page{},
		blocks:       map[string][]notion.Block{},
		blockErrs:    map[string]error{},
		pageErrs:     map[string]error{},
		getPageCalls: map[string]int{},
	}
}

func (f *fakeSource) QueryDatabase(ctx context.Context, databaseID string) ([]notion.Page, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	pages, ok := f.databases[databaseID]
	if !ok {
		return nil, &notion.APIError{Status: 404, Code: "object_not_found", Message: "no such database"}
	}
	return pages, nil
}

func (f *fakeSource) GetPage(ctx context.Context, pageID string) (*notion.Page, error) {
	f.getPageCalls[pageID]++
	if err, ok := f.pageErrs[pageID]; ok {
		return nil, err
	}
	p, ok := f.pages[pageID]
	if !ok {
		return nil, &notion.APIError{Status: 404, Code: "object_not_found", Message: fmt.Sprintf("no page %s", pageID)}
	}
	return p, nil
}

func (f *fakeSource) GetBlocks(ctx context.Context, blockID string) ([]notion.Block, error) {
	if err, ok := f.blockErrs[blockID]; ok {
		return nil, err
	}
	return f.blocks[blockID], nil
}

// addPage registers a full page in database db.  props may be nil.
func (f *fakeSource) addPage(db string, id string, title string, props map[string]notion.Property) *notion.Page {
	all := map[string]notion.Property{
		"Name": titleProp(title),
	}
	for k, v := range props {
		all[k] = v
	}

	page := &notion.Page{
		Object:         "page",
		ID:             id,
		URL:            "https://www.notion.so/" + notion.CompactID(id),
		CreatedTime:    "2024-01-01T00:00:00.000Z",
		LastEditedTime: "2024-02-01T00:00:00.000Z",
		Properties:     all,
	}
	f.pages[id] = page
	f.databases[db] = append(f.databases[db], notion.Page{Object: "page", ID: id})
	return page
}

func runs(s string) []notion.RichText {
	return []notion.RichText{{Type: "text", PlainText: s}}
}

func titleProp(s string) notion.Property {
	if s == "" {
		return notion.Property{Type: "title", Title: []notion.RichText{}}
	}
	return notion.Property{Type: "title", Title: runs(s)}
}

func pathProp(s string) notion.Property {
	return notion.Property{Type: "rich_text", RichText: runs(s)}
}

func weightProp(w float64) notion.Property {
	return notion.Property{Type: "number", Number: &w}
}

func paragraph(s string) notion.Block {
	return notion.Block{Type: "paragraph", Paragraph: &notion.TextBlock{RichText: runs(s)}}
}
