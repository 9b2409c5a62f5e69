package localdump

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/toothbrush/notion-mdx/internal/metrics"
	"github.com/toothbrush/notion-mdx/notion"
)

// Matches [text](/<page id>), the shape the renderer gives links to other pages.  The text may hold
// backslash-escaped characters such as \[ and \].  IDs come either compact or hyphenated.
var internalLink = regexp.MustCompile(
	`\[((?:\\.|[^\]\\])+)\]\(/([0-9a-f]{32}|[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})\)`)

// PageGetter is the one thing link resolution needs from Notion.
type PageGetter interface {
	GetPage(ctx context.Context, pageID string) (*notion.Page, error)
}

// linkTarget is a resolved lookup.  A key missing from the cache hasn't been looked up; found false
// means we did, and there's nowhere to point the link.
type linkTarget struct {
	path  string
	found bool
}

// LinkResolver rewrites links to other pages into links to their custom paths.  It remembers every
// lookup, failures included, so each page is fetched at most once.  Not safe for concurrent use.
type LinkResolver struct {
	source   PageGetter
	basePath string
	cache    map[string]linkTarget

	Logger  zerolog.Logger
	Metrics *metrics.Run
}

func NewLinkResolver(source PageGetter, basePath string) *LinkResolver {
	return &LinkResolver{
		source:   source,
		basePath: strings.Trim(basePath, "/"),
		cache:    make(map[string]linkTarget),
		Logger:   zerolog.Nop(),
	}
}

// Resolve rewrites every internal link in markdown it can find a path for.  Links it can't resolve
// are left exactly as they were.
func (r *LinkResolver) Resolve(ctx context.Context, markdown string) string {
	prefix := ""
	if r.basePath != "" {
		prefix = "/" + r.basePath
	}

	return internalLink.ReplaceAllStringFunc(markdown, func(match string) string {
		groups := internalLink.FindStringSubmatch(match)
		text, id := groups[1], groups[2]

		target := r.lookup(ctx, id)
		if !target.found {
			return match
		}
		return "[" + text + "](" + prefix + "/" + target.path + ")"
	})
}

func (r *LinkResolver) lookup(ctx context.Context, id string) linkTarget {
	key := normalizeID(id)

	if target, ok := r.cache[key]; ok {
		r.Metrics.LinkLookup(metrics.LookupHit)
		return target
	}

	target := linkTarget{}
	page, err := r.source.GetPage(ctx, key)
	switch {
	case err != nil:
		r.Metrics.LinkLookup(metrics.LookupError)
		r.Logger.Warn().Err(err).Str("page_id", key).Msg("couldn't fetch path for linked page")
	case !page.IsFull():
		r.Metrics.LinkLookup(metrics.LookupFetch)
		r.Logger.Debug().Str("page_id", key).Msg("linked page is not a full page object")
	default:
		r.Metrics.LinkLookup(metrics.LookupFetch)
		target.path, target.found = ExtractCustomPath(page)
	}

	r.cache[key] = target
	return target
}

// normalizeID turns either ID form into the hyphenated 8-4-4-4-12 one.
func normalizeID(id string) string {
	canonical, err := notion.CanonicalID(strings.ReplaceAll(id, "-", ""))
	if err != nil {
		return id
	}
	return canonical
}
