package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var (
	ErrObjectNotFound = errors.New("notion: object not found")
	ErrUnauthorized   = errors.New("notion: authentication failed")
	ErrRateLimited    = errors.New("notion: rate limited")
)

// APIError is the error object Notion returns with any non-2xx status:
// https://developers.notion.com/reference/status-codes
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("notion: %d %s", e.Status, e.Code)
	}
	return fmt.Sprintf("notion: %s: %s", e.Code, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrObjectNotFound:
		return e.Code == "object_not_found" || e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Code == "unauthorized" || e.Status == http.StatusUnauthorized
	case ErrRateLimited:
		return e.Code == "rate_limited" || e.Status == http.StatusTooManyRequests
	}
	return false
}

func (api *API) GetPage(ctx context.Context, pageID string) (*Page, error) {
	ep, err := api.getPageEndpoint(pageID)
	if err != nil {
		return nil, fmt.Errorf("notion: couldn't get page endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("notion: couldn't retrieve page %s: %w", pageID, err)
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("notion: couldn't parse json response: %w", err)
	}

	return &page, nil
}

func (api *API) getBlockChildren(ctx context.Context, blockID string, opts BlockChildrenQuery) (*BlockList, error) {
	ep, err := api.getBlockChildrenEndpoint(blockID, opts)
	if err != nil {
		return nil, fmt.Errorf("notion: couldn't get block children endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, nil)
	if err != nil {
		return nil, fmt.Errorf("notion: couldn't list children of %s: %w", blockID, err)
	}

	var blocks BlockList
	if err := json.Unmarshal(body, &blocks); err != nil {
		return nil, fmt.Errorf("notion: couldn't parse json response: %w", err)
	}

	return &blocks, nil
}

func (api *API) queryDatabase(ctx context.Context, databaseID string, q DatabaseQuery) (*PageList, error) {
	ep, err := api.getDatabaseQueryEndpoint(databaseID)
	if err != nil {
		return nil, fmt.Errorf("notion: couldn't get database query endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodPost, ep, q)
	if err != nil {
		return nil, fmt.Errorf("notion: couldn't query database %s: %w", databaseID, err)
	}

	var pages PageList
	if err := json.Unmarshal(body, &pages); err != nil {
		return nil, fmt.Errorf("notion: couldn't parse json response: %w", err)
	}

	return &pages, nil
}

func (api *API) search(ctx context.Context, q SearchQuery) (*DatabaseList, error) {
	ep, err := api.getSearchEndpoint()
	if err != nil {
		return nil, fmt.Errorf("notion: couldn't get search endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodPost, ep, q)
	if err != nil {
		return nil, fmt.Errorf("notion: couldn't search: %w", err)
	}

	var found DatabaseList
	if err := json.Unmarshal(body, &found); err != nil {
		return nil, fmt.Errorf("notion: couldn't parse json response: %w", err)
	}

	return &found, nil
}

// request performs one API call, waiting on the rate limiter first and retrying 429s.
func (api *API) request(ctx context.Context, method string, url *url.URL, payload any) ([]byte, error) {
	var encoded []byte
	if payload != nil {
		var err error
		if encoded, err = json.Marshal(payload); err != nil {
			return nil, fmt.Errorf("notion: couldn't encode request body: %w", err)
		}
	}

	for attempt := 0; ; attempt++ {
		if api.limiter != nil {
			if err := api.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("notion: rate limiter: %w", err)
			}
		}

		body, retryAfter, err := api.do(ctx, method, url, encoded)
		if err == nil {
			return body, nil
		}
		if !errors.Is(err, ErrRateLimited) || attempt >= api.maxRetries {
			return nil, err
		}

		select {
		case <-time.After(retryAfter):
		case <-ctx.Done():
			return nil, context.Cause(ctx)
		}
	}
}

func (api *API) do(ctx context.Context, method string, url *url.URL, encoded []byte) ([]byte, time.Duration, error) {
	var reader io.Reader
	if encoded != nil {
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url.String(), reader)
	if err != nil {
		return nil, 0, fmt.Errorf("notion: couldn't instantiate http request: %w", err)
	}

	req.Header.Add("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+api.token)
	req.Header.Set("Notion-Version", Version)
	if encoded != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("notion: couldn't perform http request: %w", err)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		response.Body.Close()
		return nil, 0, fmt.Errorf("notion: couldn't read http response body: %w", err)
	}

	if err := response.Body.Close(); err != nil {
		return nil, 0, fmt.Errorf("notion: couldn't close response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return body, 0, nil
	}

	apiErr := &APIError{Status: response.StatusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = http.StatusText(response.StatusCode)
	}
	// the body's status wins if present, but never lose the transport's
	if apiErr.Status == 0 {
		apiErr.Status = response.StatusCode
	}

	return nil, retryDelay(response.Header.Get("Retry-After")), apiErr
}

func retryDelay(header string) time.Duration {
	if secs, err := strconv.Atoi(header); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return time.Second
}
