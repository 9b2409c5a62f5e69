package notion

// BlockChildrenQuery defines the query parameters for:
// https://developers.notion.com/reference/get-block-children
type BlockChildrenQuery struct {
	// 'StartCursor' is used for pagination; the opaque cursor comes back as 'next_cursor' in the
	// previous response.
	StartCursor string `url:"start_cursor,omitempty"`
	PageSize    int    `url:"page_size,omitempty"` // default 100, max 100
}

// DatabaseQuery is the JSON body for:
// https://developers.notion.com/reference/post-database-query
//
// We don't filter or sort: pages come back in whatever order the database's default view
// implies, and that's the order we export them in.
type DatabaseQuery struct {
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

// SearchQuery is the JSON body for:
// https://developers.notion.com/reference/post-search
type SearchQuery struct {
	Query       string        `json:"query,omitempty"`
	Filter      *SearchFilter `json:"filter,omitempty"`
	StartCursor string        `json:"start_cursor,omitempty"`
	PageSize    int           `json:"page_size,omitempty"`
}

type SearchFilter struct {
	Property string `json:"property"` // always "object"
	Value    string `json:"value"`    // "page" or "database"
}
