package render

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/escape"

	"github.com/toothbrush/notion-mdx/notion"
)

// RichText renders styled runs to inline Markdown.
func RichText(runs []notion.RichText) string {
	var sb strings.Builder
	for _, run := range runs {
		sb.WriteString(richTextRun(run))
	}
	return sb.String()
}

func richTextRun(run notion.RichText) string {
	if run.Type == "equation" && run.Equation != nil {
		return "$" + run.Equation.Expression + "$"
	}

	text := run.PlainText
	if text == "" {
		return ""
	}

	a := run.Annotations
	if a.Code {
		text = wrap(text, "`")
	} else {
		text = escape.MarkdownCharacters(text)
	}
	if a.Bold {
		text = wrap(text, "**")
	}
	if a.Italic {
		text = wrap(text, "_")
	}
	if a.Strikethrough {
		text = wrap(text, "~~")
	}

	if href := linkTarget(run); href != "" {
		text = "[" + text + "](" + href + ")"
	}

	return text
}

// wrap puts marker around s, keeping surrounding whitespace outside: "**foo** " renders, "**foo **"
// doesn't.
func wrap(s, marker string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}
	start := strings.Index(s, trimmed)
	return s[:start] + marker + trimmed + marker + s[start+len(trimmed):]
}

func linkTarget(run notion.RichText) string {
	if run.Type == "mention" && run.Mention != nil {
		switch run.Mention.Type {
		case "page":
			if run.Mention.Page != nil {
				return "/" + notion.CompactID(run.Mention.Page.ID)
			}
		case "database":
			if run.Mention.Database != nil {
				return "/" + notion.CompactID(run.Mention.Database.ID)
			}
		}
	}
	if run.Text != nil && run.Text.Link != nil && run.Text.Link.URL != "" {
		return run.Text.Link.URL
	}
	if run.Href != nil {
		return *run.Href
	}
	return ""
}
