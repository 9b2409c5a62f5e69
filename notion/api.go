package notion

import (
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURI = "https://api.notion.com"

	// Version pins the API revision we were written against.
	Version = "2022-06-28"
)

func NewAPI(token string, opts ...Option) (*API, error) {
	if token == "" {
		return nil, fmt.Errorf("notion: auth token is empty, please check auth-token-cmd or NOTION_TOKEN")
	}

	u, err := url.ParseRequestURI(DefaultBaseURI)
	if err != nil {
		return nil, fmt.Errorf("notion: couldn't parse REST API URL: %w", err)
	}

	a := &API{
		BaseURI: u,
		Client:  &http.Client{},
		token:   token,
		// Notion asks integrations to average three requests per second.
		limiter:    rate.NewLimiter(rate.Limit(3), 3),
		maxRetries: 3,
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, fmt.Errorf("notion: bad option: %w", err)
		}
	}

	return a, nil
}

type API struct {
	// Where the REST API lives; tests point this at an httptest server.
	BaseURI *url.URL

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client

	token      string
	limiter    *rate.Limiter
	maxRetries int
}

type Option func(*API) error

// WithBaseURI points the client somewhere other than api.notion.com.
func WithBaseURI(raw string) Option {
	return func(a *API) error {
		u, err := url.ParseRequestURI(raw)
		if err != nil {
			return fmt.Errorf("couldn't parse base URI %q: %w", raw, err)
		}
		a.BaseURI = u
		return nil
	}
}

// WithRateLimit replaces the default 3 req/s limiter.  A nil limiter disables limiting.
func WithRateLimit(l *rate.Limiter) Option {
	return func(a *API) error {
		a.limiter = l
		return nil
	}
}

// WithMaxRetries sets how often a rate-limited (429) request is retried.
func WithMaxRetries(n int) Option {
	return func(a *API) error {
		if n < 0 {
			return fmt.Errorf("retries must not be negative: %d", n)
		}
		a.maxRetries = n
		return nil
	}
}
