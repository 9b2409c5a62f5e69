package render

import (
	"fmt"
	"strings"

	"github.com/toothbrush/notion-mdx/notion"
)

const defaultCalloutEmoji = "📄"

var calloutTypes = map[string]string{
	"red":               "error",
	"red_background":    "error",
	"orange":            "warning",
	"orange_background": "warning",
}

// HextraCallout renders callouts as Hextra callout shortcodes.  Red callouts become errors, orange
// ones warnings, everything else info.
func HextraCallout() Hook {
	return func(block notion.Block, next Func) string {
		if block.Callout == nil {
			return next(block)
		}

		kind, ok := calloutTypes[block.Callout.Color]
		if !ok {
			kind = "info"
		}

		emoji := defaultCalloutEmoji
		if block.Callout.Icon != nil && block.Callout.Icon.Emoji != "" {
			emoji = block.Callout.Icon.Emoji
		}

		content := notion.PlainText(block.Callout.RichText)
		return fmt.Sprintf("{{< callout type=\"%s\" emoji=\"%s\" >}}\n%s\n{{< /callout >}}", kind, emoji, content)
	}
}

// SiteURLRewrite makes paragraph links pointing at siteURL relative, so exported documents keep
// working when the site moves.
func SiteURLRewrite(siteURL string) Hook {
	siteURL = strings.TrimSuffix(siteURL, "/")

	return func(block notion.Block, next Func) string {
		if siteURL == "" || block.Paragraph == nil {
			return next(block)
		}

		// blocks come to us by value, but the rich text slice is shared with the caller
		para := *block.Paragraph
		para.RichText = make([]notion.RichText, len(block.Paragraph.RichText))
		for i, run := range block.Paragraph.RichText {
			para.RichText[i] = rewriteRun(run, siteURL)
		}
		block.Paragraph = &para

		return next(block)
	}
}

func rewriteRun(run notion.RichText, siteURL string) notion.RichText {
	if run.Href != nil {
		href := relativeTo(*run.Href, siteURL)
		run.Href = &href
	}
	if run.Text != nil && run.Text.Link != nil {
		text := *run.Text
		link := *text.Link
		link.URL = relativeTo(link.URL, siteURL)
		text.Link = &link
		run.Text = &text
	}
	return run
}

func relativeTo(href, siteURL string) string {
	if href == siteURL || href == siteURL+"/" {
		return "/"
	}
	if strings.HasPrefix(href, siteURL+"/") {
		return strings.TrimPrefix(href, siteURL)
	}
	return href
}
