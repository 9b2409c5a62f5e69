package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toothbrush/notion-mdx/notion"
)

func text(s string) []notion.RichText {
	return []notion.RichText{{Type: "text", PlainText: s}}
}

func para(s string) notion.Block {
	return notion.Block{Type: "paragraph", Paragraph: &notion.TextBlock{RichText: text(s)}}
}

func bullet(s string, children ...notion.Block) notion.Block {
	return notion.Block{Type: "bulleted_list_item", BulletedListItem: &notion.TextBlock{RichText: text(s)}, Children: children}
}

func numbered(s string) notion.Block {
	return notion.Block{Type: "numbered_list_item", NumberedListItem: &notion.TextBlock{RichText: text(s)}}
}

func callout(s, color, emoji string) notion.Block {
	c := &notion.CalloutBlock{RichText: text(s), Color: color}
	if emoji != "" {
		c.Icon = &notion.Icon{Type: "emoji", Emoji: emoji}
	}
	return notion.Block{Type: "callout", Callout: c}
}

func TestRenderBasicBlocks(t *testing.T) {
	r := New(nil)

	out := r.Render([]notion.Block{
		{Type: "heading_1", Heading1: &notion.TextBlock{RichText: text("Title")}},
		para("Hello world"),
		bullet("one", bullet("nested")),
		bullet("two"),
		numbered("first"),
		numbered("second"),
		{Type: "divider", Divider: &struct{}{}},
		{Type: "code", Code: &notion.CodeBlock{RichText: text("x := 1"), Language: "go"}},
	})

	expected := "# Title\n\n" +
		"Hello world\n\n" +
		"- one\n    - nested\n- two\n\n" +
		"1. first\n2. second\n\n" +
		"---\n\n" +
		"```go\nx := 1\n```"
	assert.Equal(t, expected, out)
}

func TestNumberingRestartsAfterInterruption(t *testing.T) {
	out := New(nil).Render([]notion.Block{
		numbered("a"),
		para("break"),
		numbered("b"),
	})
	assert.Equal(t, "1. a\n\nbreak\n\n1. b", out)
}

func TestUnsupportedBlocksAreSkipped(t *testing.T) {
	out := New(nil).Render([]notion.Block{
		para("before"),
		{Type: "breadcrumb"},
		para("after"),
	})
	assert.Equal(t, "before\n\nafter", out)
}

func TestRichTextAnnotationsAndLinks(t *testing.T) {
	href := "https://example.com"
	runs := []notion.RichText{
		{Type: "text", PlainText: "bold ", Annotations: notion.Annotations{Bold: true}},
		{Type: "text", PlainText: "code", Annotations: notion.Annotations{Code: true}},
		{Type: "text", PlainText: " and "},
		{Type: "text", PlainText: "a link", Href: &href},
		{Type: "text", PlainText: " "},
		{Type: "mention", PlainText: "Other page", Mention: &notion.Mention{
			Type: "page",
			Page: &notion.Reference{ID: "3c5a0edb-2574-4955-8cf9-68f5ded58812"},
		}},
	}

	assert.Equal(t,
		"**bold** `code` and [a link](https://example.com) [Other page](/3c5a0edb257449558cf968f5ded58812)",
		RichText(runs))
}

func TestRichTextEscapesMarkdown(t *testing.T) {
	assert.Equal(t, `2 \* 3`, RichText(text("2 * 3")))
	// but not inside code
	assert.Equal(t, "`2 * 3`", RichText([]notion.RichText{
		{Type: "text", PlainText: "2 * 3", Annotations: notion.Annotations{Code: true}},
	}))
}

func TestDefaultCallout(t *testing.T) {
	out := New(nil).Render([]notion.Block{callout("Heads up", "default", "💡")})
	assert.Equal(t, "> 💡 Heads up", out)
}

func TestTable(t *testing.T) {
	row := func(a, b string) notion.Block {
		return notion.Block{Type: "table_row", TableRow: &notion.TableRowBlock{Cells: [][]notion.RichText{text(a), text(b)}}}
	}
	out := New(nil).Render([]notion.Block{{
		Type:     "table",
		Table:    &notion.TableBlock{TableWidth: 2, HasColumnHeader: true},
		Children: []notion.Block{row("Name", "Value"), row("a", "1")},
	}})
	assert.Equal(t, "| Name | Value |\n| --- | --- |\n| a | 1 |", out)
}

func TestChildPageLinksUseCompactID(t *testing.T) {
	out := New(nil).Render([]notion.Block{{
		ID:        "3c5a0edb-2574-4955-8cf9-68f5ded58812",
		Type:      "child_page",
		ChildPage: &notion.ChildPageBlock{Title: "Sub"},
	}})
	assert.Equal(t, "[Sub](/3c5a0edb257449558cf968f5ded58812)", out)
}

func TestHextraCallout(t *testing.T) {
	r := New(map[string]Hook{"callout": HextraCallout()})

	tests := []struct {
		name     string
		block    notion.Block
		expected string
	}{
		{
			name:     "red is an error",
			block:    callout("Careful", "red_background", "🔥"),
			expected: "{{< callout type=\"error\" emoji=\"🔥\" >}}\nCareful\n{{< /callout >}}",
		},
		{
			name:     "orange is a warning",
			block:    callout("Hmm", "orange", "🚧"),
			expected: "{{< callout type=\"warning\" emoji=\"🚧\" >}}\nHmm\n{{< /callout >}}",
		},
		{
			name:     "unknown colors and missing icons fall back",
			block:    callout("FYI", "chartreuse", ""),
			expected: "{{< callout type=\"info\" emoji=\"📄\" >}}\nFYI\n{{< /callout >}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Render([]notion.Block{tt.block}))
		})
	}
}

func TestHooksOnlyAffectTheirKind(t *testing.T) {
	calls := 0
	r := New(map[string]Hook{
		"paragraph": func(block notion.Block, next Func) string {
			calls++
			return "<" + next(block) + ">"
		},
	})

	out := r.Render([]notion.Block{para("a"), bullet("b", para("c"))})
	assert.Equal(t, "<a>\n\n- b\n    <c>", out)
	assert.Equal(t, 2, calls, "hooks apply to nested blocks too")
}

func TestSiteURLRewrite(t *testing.T) {
	abs := "https://docs.example.com/guide/start"
	root := "https://docs.example.com"
	other := "https://elsewhere.org/x"

	block := notion.Block{Type: "paragraph", Paragraph: &notion.TextBlock{RichText: []notion.RichText{
		{Type: "text", PlainText: "guide", Href: &abs},
		{Type: "text", PlainText: " "},
		{Type: "text", PlainText: "home", Href: &root},
		{Type: "text", PlainText: " "},
		{Type: "text", PlainText: "other", Href: &other},
	}}}

	r := New(map[string]Hook{"paragraph": SiteURLRewrite("https://docs.example.com/")})
	assert.Equal(t, "[guide](/guide/start) [home](/) [other](https://elsewhere.org/x)", r.Render([]notion.Block{block}))

	// the caller's block is left alone
	assert.Equal(t, "https://docs.example.com/guide/start", *block.Paragraph.RichText[0].Href)
}
