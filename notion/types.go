package notion

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// See https://developers.notion.com/reference/page.  Only the fields we read are typed; the raw
// JSON is kept so the object can be written back out unchanged.
type Page struct {
	Object         string              `json:"object"`
	ID             string              `json:"id"`
	CreatedTime    string              `json:"created_time,omitempty"`
	LastEditedTime string              `json:"last_edited_time,omitempty"`
	Archived       bool                `json:"archived,omitempty"`
	URL            string              `json:"url,omitempty"`
	Properties     map[string]Property `json:"properties,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// IsFull reports whether p is a complete page object rather than the partial {object, id} stub
// the API hands out for pages the integration can't fully see.
func (p *Page) IsFull() bool {
	return p != nil && p.URL != "" && p.Properties != nil
}

func (p *Page) UnmarshalJSON(data []byte) error {
	type page Page
	var decoded page
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = Page(decoded)
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func (p Page) MarshalJSON() ([]byte, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}
	type page Page
	return json.Marshal(page(p))
}

// Property is one typed value in a page's property map:
// https://developers.notion.com/reference/page-property-values
//
// Type tells you which of the other fields is meaningful.
type Property struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`

	Title          []RichText     `json:"title,omitempty"`
	RichText       []RichText     `json:"rich_text,omitempty"`
	Number         *float64       `json:"number,omitempty"`
	Select         *SelectOption  `json:"select,omitempty"`
	MultiSelect    []SelectOption `json:"multi_select,omitempty"`
	Date           *DateValue     `json:"date,omitempty"`
	Checkbox       bool           `json:"checkbox,omitempty"`
	URL            *string        `json:"url,omitempty"`
	Email          *string        `json:"email,omitempty"`
	PhoneNumber    *string        `json:"phone_number,omitempty"`
	Formula        *Formula       `json:"formula,omitempty"`
	Relation       []Reference    `json:"relation,omitempty"`
	Rollup         *Rollup        `json:"rollup,omitempty"`
	CreatedTime    string         `json:"created_time,omitempty"`
	LastEditedTime string         `json:"last_edited_time,omitempty"`
	CreatedBy      *Reference     `json:"created_by,omitempty"`
	LastEditedBy   *Reference     `json:"last_edited_by,omitempty"`
}

type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type DateValue struct {
	Start    string  `json:"start"`
	End      *string `json:"end,omitempty"`
	TimeZone *string `json:"time_zone,omitempty"`
}

type Formula struct {
	Type    string   `json:"type"`
	String  *string  `json:"string,omitempty"`
	Number  *float64 `json:"number,omitempty"`
	Boolean *bool    `json:"boolean,omitempty"`
}

type Rollup struct {
	Type   string            `json:"type"`
	Number *float64          `json:"number,omitempty"`
	Array  []json.RawMessage `json:"array,omitempty"`
}

// Reference is anything the API gives us as {"id": ...}: related pages, users, parents.
type Reference struct {
	Object string `json:"object,omitempty"`
	ID     string `json:"id"`
}

// RichText is one styled run:
// https://developers.notion.com/reference/rich-text
type RichText struct {
	Type        string       `json:"type"`
	PlainText   string       `json:"plain_text"`
	Href        *string      `json:"href,omitempty"`
	Annotations Annotations  `json:"annotations"`
	Text        *TextContent `json:"text,omitempty"`
	Mention     *Mention     `json:"mention,omitempty"`
	Equation    *Expression  `json:"equation,omitempty"`
}

type Annotations struct {
	Bold          bool   `json:"bold"`
	Italic        bool   `json:"italic"`
	Strikethrough bool   `json:"strikethrough"`
	Underline     bool   `json:"underline"`
	Code          bool   `json:"code"`
	Color         string `json:"color,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
	Link    *struct {
		URL string `json:"url"`
	} `json:"link,omitempty"`
}

type Mention struct {
	Type     string     `json:"type"`
	Page     *Reference `json:"page,omitempty"`
	Database *Reference `json:"database,omitempty"`
	User     *Reference `json:"user,omitempty"`
}

type Expression struct {
	Expression string `json:"expression"`
}

// PlainText concatenates every run's plain text.
func PlainText(runs []RichText) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.PlainText)
	}
	return sb.String()
}

// Database is the subset of https://developers.notion.com/reference/database we list.
type Database struct {
	Object string     `json:"object"`
	ID     string     `json:"id"`
	Title  []RichText `json:"title"`
	URL    string     `json:"url,omitempty"`
}

// CompactID strips the hyphens from a page/block ID, yielding the 32-character form Notion uses in
// URLs.  IDs that don't parse are returned as-is.
func CompactID(id string) string {
	u, err := uuid.Parse(id)
	if err != nil {
		return id
	}
	return strings.ReplaceAll(u.String(), "-", "")
}

// CanonicalID returns the lower-case 8-4-4-4-12 form of id.
func CanonicalID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
