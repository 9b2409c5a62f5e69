// Package render turns a Notion block tree into Markdown.
//
// Rendering for any block kind can be overridden with a Hook.  Hooks are handed to New and can't
// be changed afterwards, so one Renderer can be shared between goroutines.
package render

import (
	"fmt"
	"strings"

	"github.com/toothbrush/notion-mdx/notion"
)

const indent = "    "

// Func renders a single block (and its children) to Markdown.
type Func func(block notion.Block) string

// Hook overrides rendering for one block kind.  next is the built-in rendering, so a hook can
// tweak the block and delegate, or ignore next altogether.
type Hook func(block notion.Block, next Func) string

type Renderer struct {
	hooks map[string]Hook
}

func New(hooks map[string]Hook) *Renderer {
	h := make(map[string]Hook, len(hooks))
	for kind, hook := range hooks {
		h[kind] = hook
	}
	return &Renderer{hooks: h}
}

// Render converts a page's top-level blocks to a Markdown document.
func (r *Renderer) Render(blocks []notion.Block) string {
	return r.renderBlocks(blocks)
}

func (r *Renderer) renderBlocks(blocks []notion.Block) string {
	var sb strings.Builder
	ordinal := 0
	prevType := ""

	for _, b := range blocks {
		if b.Type == "numbered_list_item" {
			ordinal++
		} else {
			ordinal = 0
		}

		out := r.renderOne(b, ordinal)
		if out == "" {
			continue
		}

		if sb.Len() > 0 {
			if isListItem(b.Type) && b.Type == prevType {
				// keep lists tight
				sb.WriteString("\n")
			} else {
				sb.WriteString("\n\n")
			}
		}
		sb.WriteString(out)
		prevType = b.Type
	}

	return sb.String()
}

func (r *Renderer) renderOne(b notion.Block, ordinal int) string {
	next := func(block notion.Block) string {
		return r.renderDefault(block, ordinal)
	}
	if hook, ok := r.hooks[b.Type]; ok {
		return hook(b, next)
	}
	return next(b)
}

func isListItem(kind string) bool {
	switch kind {
	case "bulleted_list_item", "numbered_list_item", "to_do":
		return true
	}
	return false
}

func (r *Renderer) renderDefault(b notion.Block, ordinal int) string {
	switch b.Type {
	case "paragraph":
		if b.Paragraph == nil {
			return ""
		}
		return r.withChildren(RichText(b.Paragraph.RichText), b, indent)

	case "heading_1":
		return r.heading("#", b.Heading1, b)
	case "heading_2":
		return r.heading("##", b.Heading2, b)
	case "heading_3":
		return r.heading("###", b.Heading3, b)

	case "bulleted_list_item":
		if b.BulletedListItem == nil {
			return ""
		}
		return r.withChildren("- "+RichText(b.BulletedListItem.RichText), b, indent)

	case "numbered_list_item":
		if b.NumberedListItem == nil {
			return ""
		}
		if ordinal < 1 {
			ordinal = 1
		}
		return r.withChildren(fmt.Sprintf("%d. %s", ordinal, RichText(b.NumberedListItem.RichText)), b, indent)

	case "to_do":
		if b.ToDo == nil {
			return ""
		}
		box := "- [ ] "
		if b.ToDo.Checked {
			box = "- [x] "
		}
		return r.withChildren(box+RichText(b.ToDo.RichText), b, indent)

	case "toggle":
		if b.Toggle == nil {
			return ""
		}
		var sb strings.Builder
		sb.WriteString("<details>\n<summary>")
		sb.WriteString(RichText(b.Toggle.RichText))
		sb.WriteString("</summary>\n\n")
		if children := r.renderBlocks(b.Children); children != "" {
			sb.WriteString(children)
			sb.WriteString("\n\n")
		}
		sb.WriteString("</details>")
		return sb.String()

	case "quote":
		if b.Quote == nil {
			return ""
		}
		return quoted(r.withChildren(RichText(b.Quote.RichText), b, ""))

	case "callout":
		if b.Callout == nil {
			return ""
		}
		text := RichText(b.Callout.RichText)
		if icon := IconText(b.Callout.Icon); icon != "" {
			text = icon + " " + text
		}
		return quoted(r.withChildren(text, b, ""))

	case "code":
		if b.Code == nil {
			return ""
		}
		lang := b.Code.Language
		if lang == "plain text" {
			lang = "text"
		}
		return "```" + lang + "\n" + notion.PlainText(b.Code.RichText) + "\n```"

	case "divider":
		return "---"

	case "equation":
		if b.Equation == nil {
			return ""
		}
		return "$$\n" + b.Equation.Expression + "\n$$"

	case "image":
		if b.Image == nil {
			return ""
		}
		return fmt.Sprintf("![%s](%s)", notion.PlainText(b.Image.Caption), b.Image.URL())

	case "file", "pdf", "video":
		f := fileOf(b)
		if f == nil {
			return ""
		}
		label := notion.PlainText(f.Caption)
		if label == "" {
			label = f.Name
		}
		if label == "" {
			label = f.URL()
		}
		return fmt.Sprintf("[%s](%s)", label, f.URL())

	case "bookmark", "embed", "link_preview":
		l := linkOf(b)
		if l == nil || l.URL == "" {
			return ""
		}
		label := notion.PlainText(l.Caption)
		if label == "" {
			label = l.URL
		}
		return fmt.Sprintf("[%s](%s)", label, l.URL)

	case "table":
		if b.Table == nil {
			return ""
		}
		return table(b)

	case "child_page":
		if b.ChildPage == nil {
			return ""
		}
		return fmt.Sprintf("[%s](/%s)", b.ChildPage.Title, notion.CompactID(b.ID))

	case "child_database":
		if b.ChildDatabase == nil {
			return ""
		}
		return fmt.Sprintf("[%s](/%s)", b.ChildDatabase.Title, notion.CompactID(b.ID))

	case "link_to_page":
		if b.LinkToPage == nil {
			return ""
		}
		target := b.LinkToPage.PageID
		if target == "" {
			target = b.LinkToPage.DatabaseID
		}
		if target == "" {
			return ""
		}
		return fmt.Sprintf("[Link to page](/%s)", notion.CompactID(target))
	}

	switch b.Type {
	case "column_list", "column", "synced_block":
		return r.renderBlocks(b.Children)
	}

	return ""
}

func (r *Renderer) heading(marker string, text *notion.TextBlock, b notion.Block) string {
	if text == nil {
		return ""
	}
	out := marker + " " + RichText(text.RichText)
	// toggleable headings carry children
	if children := r.renderBlocks(b.Children); children != "" {
		out += "\n\n" + children
	}
	return out
}

// withChildren appends b's rendered children below head, each line prefixed with pad.
func (r *Renderer) withChildren(head string, b notion.Block, pad string) string {
	children := r.renderBlocks(b.Children)
	if children == "" {
		return head
	}
	if pad == "" {
		return head + "\n" + children
	}
	return head + "\n" + indentLines(children, pad)
}

func indentLines(s, pad string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}

func quoted(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + l
		}
	}
	return strings.Join(lines, "\n")
}

func fileOf(b notion.Block) *notion.FileBlock {
	switch b.Type {
	case "file":
		return b.File
	case "pdf":
		return b.PDF
	case "video":
		return b.Video
	}
	return nil
}

func linkOf(b notion.Block) *notion.LinkBlock {
	switch b.Type {
	case "bookmark":
		return b.Bookmark
	case "embed":
		return b.Embed
	case "link_preview":
		return b.LinkPreview
	}
	return nil
}

func table(b notion.Block) string {
	rows := []string{}
	for _, child := range b.Children {
		if child.Type != "table_row" || child.TableRow == nil {
			continue
		}
		cells := make([]string, len(child.TableRow.Cells))
		for i, cell := range child.TableRow.Cells {
			cells[i] = strings.ReplaceAll(RichText(cell), "\n", " ")
		}
		rows = append(rows, "| "+strings.Join(cells, " | ")+" |")

		if len(rows) == 1 {
			sep := make([]string, len(cells))
			for i := range sep {
				sep[i] = "---"
			}
			rows = append(rows, "| "+strings.Join(sep, " | ")+" |")
		}
	}
	return strings.Join(rows, "\n")
}

// IconText returns the emoji of an icon, or an image link for external icons.
func IconText(icon *notion.Icon) string {
	if icon == nil {
		return ""
	}
	if icon.Emoji != "" {
		return icon.Emoji
	}
	if icon.External != nil && icon.External.URL != "" {
		return fmt.Sprintf("![](%s)", icon.External.URL)
	}
	return ""
}
