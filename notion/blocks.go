package notion

import "encoding/json"

// Block is one content node:
// https://developers.notion.com/reference/block
//
// Exactly one of the kind-specific pointers is set, matching Type.  Children is filled in by
// GetBlocks when HasChildren is true; it isn't part of the API object.
type Block struct {
	Object      string `json:"object"`
	ID          string `json:"id"`
	Type        string `json:"type"`
	HasChildren bool   `json:"has_children"`
	Archived    bool   `json:"archived,omitempty"`

	Paragraph        *TextBlock      `json:"paragraph,omitempty"`
	Heading1         *TextBlock      `json:"heading_1,omitempty"`
	Heading2         *TextBlock      `json:"heading_2,omitempty"`
	Heading3         *TextBlock      `json:"heading_3,omitempty"`
	BulletedListItem *TextBlock      `json:"bulleted_list_item,omitempty"`
	NumberedListItem *TextBlock      `json:"numbered_list_item,omitempty"`
	ToDo             *ToDoBlock      `json:"to_do,omitempty"`
	Toggle           *TextBlock      `json:"toggle,omitempty"`
	Quote            *TextBlock      `json:"quote,omitempty"`
	Callout          *CalloutBlock   `json:"callout,omitempty"`
	Code             *CodeBlock      `json:"code,omitempty"`
	Divider          *struct{}       `json:"divider,omitempty"`
	Image            *FileBlock      `json:"image,omitempty"`
	File             *FileBlock      `json:"file,omitempty"`
	PDF              *FileBlock      `json:"pdf,omitempty"`
	Video            *FileBlock      `json:"video,omitempty"`
	Bookmark         *LinkBlock      `json:"bookmark,omitempty"`
	Embed            *LinkBlock      `json:"embed,omitempty"`
	LinkPreview      *LinkBlock      `json:"link_preview,omitempty"`
	Equation         *Expression     `json:"equation,omitempty"`
	Table            *TableBlock     `json:"table,omitempty"`
	TableRow         *TableRowBlock  `json:"table_row,omitempty"`
	ChildPage        *ChildPageBlock `json:"child_page,omitempty"`
	ChildDatabase    *ChildPageBlock `json:"child_database,omitempty"`
	LinkToPage       *LinkToPage     `json:"link_to_page,omitempty"`

	Children []Block        `json:"-"`
	Raw      json.RawMessage `json:"-"`
}

func (b *Block) UnmarshalJSON(data []byte) error {
	type block Block
	var decoded block
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*b = Block(decoded)
	b.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func (b Block) MarshalJSON() ([]byte, error) {
	if len(b.Raw) > 0 {
		return b.Raw, nil
	}
	type block Block
	return json.Marshal(block(b))
}

type TextBlock struct {
	RichText []RichText `json:"rich_text"`
	Color    string     `json:"color,omitempty"`
}

type ToDoBlock struct {
	RichText []RichText `json:"rich_text"`
	Checked  bool       `json:"checked"`
	Color    string     `json:"color,omitempty"`
}

type CalloutBlock struct {
	RichText []RichText `json:"rich_text"`
	Icon     *Icon      `json:"icon,omitempty"`
	Color    string     `json:"color,omitempty"`
}

type Icon struct {
	Type     string `json:"type"`
	Emoji    string `json:"emoji,omitempty"`
	External *struct {
		URL string `json:"url"`
	} `json:"external,omitempty"`
}

type CodeBlock struct {
	RichText []RichText `json:"rich_text"`
	Caption  []RichText `json:"caption,omitempty"`
	Language string     `json:"language,omitempty"`
}

type FileBlock struct {
	Type     string     `json:"type"`
	Caption  []RichText `json:"caption,omitempty"`
	Name     string     `json:"name,omitempty"`
	File     *FileURL   `json:"file,omitempty"`
	External *FileURL   `json:"external,omitempty"`
}

// URL returns whichever of the hosted or external locations is set.
func (f *FileBlock) URL() string {
	if f == nil {
		return ""
	}
	if f.File != nil {
		return f.File.URL
	}
	if f.External != nil {
		return f.External.URL
	}
	return ""
}

type FileURL struct {
	URL        string `json:"url"`
	ExpiryTime string `json:"expiry_time,omitempty"`
}

type LinkBlock struct {
	URL     string     `json:"url"`
	Caption []RichText `json:"caption,omitempty"`
}

type TableBlock struct {
	TableWidth      int  `json:"table_width"`
	HasColumnHeader bool `json:"has_column_header"`
	HasRowHeader    bool `json:"has_row_header"`
}

type TableRowBlock struct {
	Cells [][]RichText `json:"cells"`
}

type ChildPageBlock struct {
	Title string `json:"title"`
}

type LinkToPage struct {
	Type       string `json:"type"`
	PageID     string `json:"page_id,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
}
