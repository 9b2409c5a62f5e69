package localdump

import "github.com/toothbrush/notion-mdx/notion"

const untitled = "untitled"

// ExtractTitle returns the plain text of the page's title property, or "untitled".
func ExtractTitle(page *notion.Page) string {
	if page == nil {
		return untitled
	}
	for _, prop := range page.Properties {
		if prop.Type != "title" {
			continue
		}
		if len(prop.Title) > 0 && prop.Title[0].PlainText != "" {
			return prop.Title[0].PlainText
		}
		break
	}
	return untitled
}

// ExtractCustomPath returns the page's "path" (or "Path") rich text property, if it's set.
func ExtractCustomPath(page *notion.Page) (string, bool) {
	prop, ok := lookupProperty(page, "path", "Path")
	if !ok || prop.Type != "rich_text" {
		return "", false
	}
	if len(prop.RichText) == 0 || prop.RichText[0].PlainText == "" {
		return "", false
	}
	return prop.RichText[0].PlainText, true
}

// ExtractWeight returns the page's "weight" (or "Weight") number property, defaulting to 0.
func ExtractWeight(page *notion.Page) float64 {
	prop, ok := lookupProperty(page, "weight", "Weight")
	if !ok || prop.Type != "number" || prop.Number == nil {
		return 0
	}
	return *prop.Number
}

// lookupProperty returns the first of names present on the page.  A present but mistyped property
// still wins over later names.
func lookupProperty(page *notion.Page, names ...string) (notion.Property, bool) {
	if page == nil {
		return notion.Property{}, false
	}
	for _, name := range names {
		if prop, ok := page.Properties[name]; ok {
			return prop, true
		}
	}
	return notion.Property{}, false
}
