package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"

	"github.com/toothbrush/notion-mdx/notion"
)

const cassetteName = "fixtures/notion-mdx"

// newAPI builds a Notion client from the configured token.  The returned stop func must always be
// called; it flushes the VCR cassette when --with-vcr is on.
func newAPI() (*notion.API, func(), error) {
	noop := func() {}

	token, err := resolveToken()
	if err != nil {
		return nil, noop, err
	}

	api, err := notion.NewAPI(token)
	if err != nil {
		return nil, noop, fmt.Errorf("notion-mdx: couldn't instantiate Notion API: %w", err)
	}

	if !WithVCR {
		return api, noop, nil
	}

	// set up VCR recordings.
	opts := &recorder.Options{
		CassetteName:       cassetteName,
		Mode:               recorder.ModeReplayWithNewEpisodes,
		SkipRequestLatency: true,
		RealTransport:      http.DefaultTransport,
	}
	r, err := recorder.NewWithOptions(opts)
	if err != nil {
		return nil, noop, fmt.Errorf("notion-mdx: couldn't set up go-vcr recording: %w", err)
	}

	// Remove Authorization headers from all recorded requests
	hook := func(i *cassette.Interaction) error {
		delete(i.Request.Headers, "Authorization")
		return nil
	}
	r.AddHook(hook, recorder.AfterCaptureHook)
	r.SetReplayableInteractions(true)
	// Database queries page through the same URL, the cursor lives in the body.
	r.SetMatcher(matchWithBody)

	api.Client = r.GetDefaultClient()

	stop := func() {
		if err := r.Stop(); err != nil {
			logger.Warn().Err(err).Msg("couldn't stop go-vcr recorder")
		}
	}
	return api, stop, nil
}

func matchWithBody(req *http.Request, i cassette.Request) bool {
	if !cassette.DefaultMatcher(req, i) {
		return false
	}
	if req.Body == nil || req.Body == http.NoBody {
		return i.Body == ""
	}

	var b bytes.Buffer
	if _, err := b.ReadFrom(req.Body); err != nil {
		return false
	}
	req.Body = io.NopCloser(bytes.NewReader(b.Bytes()))

	return b.String() == i.Body
}
