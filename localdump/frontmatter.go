package localdump

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v3"

	"github.com/toothbrush/notion-mdx/notion"
)

type field struct {
	key   string
	value any
}

// FrontMatter renders the YAML header for doc, delimiters and trailing blank line included.
//
// The fixed fields come first, then every page property in name order.  A property sharing a name
// with a fixed field replaces its value in place.
func FrontMatter(doc *Document) (string, error) {
	fields := []field{
		{"title", doc.Title},
		{"notionId", doc.PageID},
		{"createdAt", doc.CreatedAt},
		{"lastEditedAt", doc.LastEditedAt},
		{"weight", doc.Weight},
	}
	position := map[string]int{}
	for i, f := range fields {
		position[f.key] = i
	}

	if doc.Page != nil {
		names := maps.Keys(doc.Page.Properties)
		sort.Strings(names)

		for _, name := range names {
			value := projectProperty(doc.Page.Properties[name])
			if i, ok := position[name]; ok {
				fields[i].value = value
				continue
			}
			position[name] = len(fields)
			fields = append(fields, field{name, value})
		}
	}

	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		var value yaml.Node
		if err := value.Encode(f.value); err != nil {
			return "", fmt.Errorf("localdump: couldn't encode front matter field %s: %w", f.key, err)
		}
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.key},
			&value,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(mapping); err != nil {
		return "", fmt.Errorf("localdump: couldn't marshal front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("localdump: couldn't marshal front matter: %w", err)
	}

	return "---\n" + strings.TrimRight(buf.String(), "\n") + "\n---\n\n", nil
}

// projectProperty flattens a property value to something that reads well in YAML: a scalar, or a
// list of scalars.
func projectProperty(prop notion.Property) any {
	switch prop.Type {
	case "title":
		return firstPlainText(prop.Title)
	case "rich_text":
		return firstPlainText(prop.RichText)
	case "number":
		if prop.Number == nil {
			return nil
		}
		return *prop.Number
	case "select":
		if prop.Select == nil {
			return ""
		}
		return prop.Select.Name
	case "multi_select":
		names := []string{}
		for _, opt := range prop.MultiSelect {
			names = append(names, opt.Name)
		}
		return names
	case "date":
		if prop.Date == nil {
			return ""
		}
		return prop.Date.Start
	case "checkbox":
		return prop.Checkbox
	case "url":
		return deref(prop.URL)
	case "email":
		return deref(prop.Email)
	case "phone_number":
		return deref(prop.PhoneNumber)
	case "formula":
		if prop.Formula == nil {
			return ""
		}
		if prop.Formula.String != nil {
			return *prop.Formula.String
		}
		if prop.Formula.Number != nil {
			return *prop.Formula.Number
		}
		return ""
	case "relation":
		ids := []string{}
		for _, rel := range prop.Relation {
			ids = append(ids, rel.ID)
		}
		return ids
	case "rollup":
		items := []string{}
		if prop.Rollup == nil {
			return items
		}
		for _, raw := range prop.Rollup.Array {
			var compact bytes.Buffer
			if err := json.Compact(&compact, raw); err != nil {
				items = append(items, string(raw))
				continue
			}
			items = append(items, compact.String())
		}
		return items
	case "created_time":
		return prop.CreatedTime
	case "last_edited_time":
		return prop.LastEditedTime
	case "created_by":
		return userID(prop.CreatedBy)
	case "last_edited_by":
		return userID(prop.LastEditedBy)
	}
	return ""
}

func firstPlainText(runs []notion.RichText) string {
	if len(runs) == 0 {
		return ""
	}
	return runs[0].PlainText
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func userID(ref *notion.Reference) string {
	if ref == nil {
		return ""
	}
	return ref.ID
}
