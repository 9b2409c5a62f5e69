package notion

import (
	"context"
	"fmt"
)

const pageSize = 100

// QueryDatabase lists every page in a database, following pagination until the API says there is
// nothing more.  Pages are returned in API order.
func (api *API) QueryDatabase(ctx context.Context, databaseID string) ([]Page, error) {
	pages := []Page{}
	query := DatabaseQuery{
		PageSize: pageSize,
	}

	for {
		list, err := api.queryDatabase(ctx, databaseID, query)
		if err != nil {
			return nil, fmt.Errorf("notion: couldn't list pages: %w", err)
		}

		pages = append(pages, list.Results...)

		if !list.HasMore {
			break
		}
		if list.NextCursor == "" {
			return nil, fmt.Errorf("notion: has_more set but next_cursor was empty")
		}
		query.StartCursor = list.NextCursor
	}

	return pages, nil
}

// GetBlocks returns the complete content tree below blockID.  Blocks that have children get them
// fetched into Block.Children; child pages and databases are separate documents, so we don't
// descend into those.
func (api *API) GetBlocks(ctx context.Context, blockID string) ([]Block, error) {
	blocks, err := api.listAllChildren(ctx, blockID)
	if err != nil {
		return nil, err
	}

	for i := range blocks {
		b := &blocks[i]
		if !b.HasChildren || b.Type == "child_page" || b.Type == "child_database" {
			continue
		}
		children, err := api.GetBlocks(ctx, b.ID)
		if err != nil {
			return nil, fmt.Errorf("notion: couldn't fetch children of block %s: %w", b.ID, err)
		}
		b.Children = children
	}

	return blocks, nil
}

func (api *API) listAllChildren(ctx context.Context, blockID string) ([]Block, error) {
	blocks := []Block{}
	query := BlockChildrenQuery{
		PageSize: pageSize,
	}

	for {
		list, err := api.getBlockChildren(ctx, blockID, query)
		if err != nil {
			return nil, fmt.Errorf("notion: couldn't list blocks: %w", err)
		}

		blocks = append(blocks, list.Results...)

		if !list.HasMore {
			break
		}
		if list.NextCursor == "" {
			return nil, fmt.Errorf("notion: has_more set but next_cursor was empty")
		}
		query.StartCursor = list.NextCursor
	}

	return blocks, nil
}

// ListAllDatabases returns every database shared with the integration, keyed by ID.
func (api *API) ListAllDatabases(ctx context.Context) (map[string]Database, error) {
	databases := map[string]Database{}

	query := SearchQuery{
		Filter: &SearchFilter{
			Property: "object",
			Value:    "database",
		},
		PageSize: pageSize,
	}

	for {
		found, err := api.search(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("notion: couldn't list databases: %w", err)
		}

		for _, db := range found.Results {
			databases[db.ID] = db
		}

		if !found.HasMore {
			break
		}
		if found.NextCursor == "" {
			return nil, fmt.Errorf("notion: expected parameter 'next_cursor' was empty")
		}
		query.StartCursor = found.NextCursor
	}

	return databases, nil
}
