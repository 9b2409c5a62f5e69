package notion

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// getPageEndpoint returns the API endpoint to retrieve one page:
// https://developers.notion.com/reference/retrieve-a-page
func (a *API) getPageEndpoint(pageID string) (*url.URL, error) {
	if pageID == "" {
		return nil, fmt.Errorf("notion: please provide ID to get page by ID")
	}

	ep, err := a.resolveEndpoint(fmt.Sprintf("/v1/pages/%s", url.PathEscape(pageID)))
	if err != nil {
		return nil, fmt.Errorf("notion: couldn't resolve endpoint: %w", err)
	}

	return ep, nil
}

// getBlockChildrenEndpoint returns the API endpoint to list a block's (or page's) children:
// https://developers.notion.com/reference/get-block-children
func (a *API) getBlockChildrenEndpoint(blockID string, opts BlockChildrenQuery) (*url.URL, error) {
	if blockID == "" {
		return nil, fmt.Errorf("notion: please provide block ID to list children")
	}

	ep, err := a.resolveEndpoint(fmt.Sprintf("/v1/blocks/%s/children", url.PathEscape(blockID)))
	if err != nil {
		return nil, fmt.Errorf("notion: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("notion: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

// getDatabaseQueryEndpoint returns the API endpoint to query a database:
// https://developers.notion.com/reference/post-database-query
//
// The filter/sort/cursor parameters travel in the POST body, not the query string.
func (a *API) getDatabaseQueryEndpoint(databaseID string) (*url.URL, error) {
	if databaseID == "" {
		return nil, fmt.Errorf("notion: please provide database ID to query")
	}

	ep, err := a.resolveEndpoint(fmt.Sprintf("/v1/databases/%s/query", url.PathEscape(databaseID)))
	if err != nil {
		return nil, fmt.Errorf("notion: couldn't resolve endpoint: %w", err)
	}

	return ep, nil
}

// getSearchEndpoint returns the API endpoint for search:
// https://developers.notion.com/reference/post-search
func (a *API) getSearchEndpoint() (*url.URL, error) {
	return a.resolveEndpoint("/v1/search")
}

// Do a bit of error checking on endpoint format, and return it relative to the base URI.
func (a *API) resolveEndpoint(endpoint string) (*url.URL, error) {
	baseUri := a.BaseURI

	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("notion: failed to parse endpoint ref: %w", err)
	}

	return baseUri.ResolveReference(ref), nil
}
