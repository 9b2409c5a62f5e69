package localdump

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toothbrush/notion-mdx/notion"
	"github.com/toothbrush/notion-mdx/render"
)

const (
	pageA = "3c5a0edb-2574-4955-8cf9-68f5ded58812"
	pageB = "23f1324e-5ecc-4d32-af0e-81e60a03cf18"
	self  = "11111111-1111-1111-1111-111111111111"
)

func linkRun(text, href string) notion.RichText {
	return notion.RichText{Type: "text", PlainText: text, Href: &href}
}

func TestPropertyExtraction(t *testing.T) {
	page := &notion.Page{Properties: map[string]notion.Property{}}
	assert.Equal(t, "untitled", ExtractTitle(page))
	assert.Equal(t, "untitled", ExtractTitle(nil))

	page.Properties["Name"] = titleProp("")
	assert.Equal(t, "untitled", ExtractTitle(page), "empty titles fall back too")

	page.Properties["Name"] = titleProp("Hello")
	assert.Equal(t, "Hello", ExtractTitle(page))

	_, ok := ExtractCustomPath(page)
	assert.False(t, ok)
	assert.Equal(t, 0.0, ExtractWeight(page))

	page.Properties["Path"] = pathProp("upper/case")
	path, ok := ExtractCustomPath(page)
	assert.True(t, ok)
	assert.Equal(t, "upper/case", path)

	page.Properties["path"] = pathProp("lower/case")
	path, _ = ExtractCustomPath(page)
	assert.Equal(t, "lower/case", path, "path wins over Path")

	page.Properties["path"] = notion.Property{Type: "number"}
	_, ok = ExtractCustomPath(page)
	assert.False(t, ok, "a mistyped path property doesn't fall through to Path")

	page.Properties["Weight"] = weightProp(3.5)
	assert.Equal(t, 3.5, ExtractWeight(page))
	page.Properties["weight"] = weightProp(-1)
	assert.Equal(t, -1.0, ExtractWeight(page))
}

func TestConvertOutputPaths(t *testing.T) {
	src := newFakeSource()
	src.addPage(testDB, self, "Hello, World: Part 2!", nil)
	src.addPage(testDB, pageA, "Ignored", map[string]notion.Property{"path": pathProp("guides/foo")})

	c := NewConverter(src, nil, Options{}, nopLogger(), nil)

	doc, err := c.Convert(context.Background(), self, "out")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "hello-world-part-2-.mdx"), doc.OutputPath)

	doc, err = c.Convert(context.Background(), pageA, "out")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "guides", "foo.mdx"), doc.OutputPath)
	assert.Equal(t, "Ignored", doc.Title)

	c = NewConverter(src, nil, Options{Extension: ".md"}, nopLogger(), nil)
	doc, err = c.Convert(context.Background(), pageA, "out")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "guides", "foo.md"), doc.OutputPath)
}

func TestConvertDirectoryPathUsesSlug(t *testing.T) {
	src := newFakeSource()
	src.addPage(testDB, self, "Getting Started", map[string]notion.Property{"path": pathProp("guides/")})

	doc, err := NewConverter(src, nil, Options{}, nopLogger(), nil).Convert(context.Background(), self, "out")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "guides", "getting-started.mdx"), doc.OutputPath)

	m := NewMetaBuilder()
	m.AddPage(doc.OutputPath, doc.Title, doc.Weight)
	assert.Equal(t, "export default {\n  'getting-started': 'Getting Started'\n}\n", m.Content(filepath.Join("out", "guides")))
}

func TestConvertRejectsPathsOutsideOutput(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "site", "content")

	tests := []struct {
		name   string
		path   string
		escape bool
	}{
		{name: "parent", path: "../x", escape: true},
		{name: "grandparent", path: "../../x", escape: true},
		{name: "climbs back in", path: "guides/../../content/x", escape: false},
		{name: "dots inside", path: "guides/../x", escape: false},
		{name: "leading slash stays inside", path: "/guides/x", escape: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFakeSource()
			src.addPage(testDB, self, "Sneaky", map[string]notion.Property{"path": pathProp(tt.path)})

			doc, err := NewConverter(src, nil, Options{}, nopLogger(), nil).Convert(context.Background(), self, outputDir)
			if tt.escape {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrPathOutsideOutput)
				var convErr *ConversionError
				require.True(t, errors.As(err, &convErr))
				assert.Equal(t, self, convErr.PageID)
				return
			}

			require.NoError(t, err)
			rel, err := filepath.Rel(outputDir, doc.OutputPath)
			require.NoError(t, err)
			assert.NotContains(t, rel, "..")
		})
	}
}

func TestConvertResolvesLinksWithBracketsInText(t *testing.T) {
	src := newFakeSource()
	src.addPage(testDB, self, "Linking", nil)
	src.addPage(testDB, pageA, "A", map[string]notion.Property{"path": pathProp("guides/x")})
	src.blocks[self] = []notion.Block{
		{Type: "paragraph", Paragraph: &notion.TextBlock{RichText: []notion.RichText{
			linkRun("see [1] here", "/3c5a0edb257449558cf968f5ded58812"),
		}}},
	}

	doc, err := NewConverter(src, nil, Options{}, nopLogger(), nil).Convert(context.Background(), self, "out")
	require.NoError(t, err)
	assert.Equal(t, `[see \[1\] here](/guides/x)`, doc.Body)
}

func TestConvertDocumentFields(t *testing.T) {
	src := newFakeSource()
	src.addPage(testDB, self, "Doc", map[string]notion.Property{"weight": weightProp(4)})

	doc, err := NewConverter(src, nil, Options{}, nopLogger(), nil).Convert(context.Background(), self, "out")
	require.NoError(t, err)

	assert.Equal(t, self, doc.PageID)
	assert.Equal(t, "2024-01-01T00:00:00.000Z", doc.CreatedAt)
	assert.Equal(t, "2024-02-01T00:00:00.000Z", doc.LastEditedAt)
	assert.Equal(t, 4.0, doc.Weight)
	assert.Equal(t, "", doc.Body)
}

func TestConvertNormalizesQuotes(t *testing.T) {
	src := newFakeSource()
	src.addPage(testDB, self, "Quotes", nil)
	src.blocks[self] = []notion.Block{paragraph("“Double” and ‘single’ quotes")}

	doc, err := NewConverter(src, nil, Options{}, nopLogger(), nil).Convert(context.Background(), self, "out")
	require.NoError(t, err)
	assert.Equal(t, `"Double" and 'single' quotes`, doc.Body)
}

func TestConvertResolvesLinks(t *testing.T) {
	src := newFakeSource()
	src.addPage(testDB, self, "Linking", nil)
	src.addPage(testDB, pageA, "A", map[string]notion.Property{"path": pathProp("guides/x")})
	src.addPage(testDB, pageB, "B", map[string]notion.Property{"path": pathProp("guides/y")})
	src.blocks[self] = []notion.Block{
		{Type: "paragraph", Paragraph: &notion.TextBlock{RichText: []notion.RichText{
			linkRun("A", "/3c5a0edb257449558cf968f5ded58812"),
			{Type: "text", PlainText: " and "},
			linkRun("B", "/23f1324e5ecc4d32af0e81e60a03cf18"),
		}}},
	}

	doc, err := NewConverter(src, nil, Options{}, nopLogger(), nil).Convert(context.Background(), self, "out")
	require.NoError(t, err)
	assert.Equal(t, "[A](/guides/x) and [B](/guides/y)", doc.Body)
}

func TestConvertUsesRendererHooks(t *testing.T) {
	src := newFakeSource()
	src.addPage(testDB, self, "Hooks", nil)
	src.blocks[self] = []notion.Block{{
		Type:    "callout",
		Callout: &notion.CalloutBlock{RichText: runs("Careful"), Color: "red"},
	}}

	r := render.New(map[string]render.Hook{"callout": render.HextraCallout()})
	doc, err := NewConverter(src, r, Options{}, nopLogger(), nil).Convert(context.Background(), self, "out")
	require.NoError(t, err)
	assert.Equal(t, "{{< callout type=\"error\" emoji=\"📄\" >}}\nCareful\n{{< /callout >}}", doc.Body)
}

func TestConvertErrors(t *testing.T) {
	src := newFakeSource()
	src.pageErrs[self] = errors.New("nope")

	_, err := NewConverter(src, nil, Options{}, nopLogger(), nil).Convert(context.Background(), self, "out")
	var convErr *ConversionError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, self, convErr.PageID)
	assert.Contains(t, err.Error(), "nope")

	_, err = NewConverter(src, nil, Options{}, nopLogger(), nil).Convert(context.Background(), pageA, "out")
	assert.ErrorIs(t, err, notion.ErrObjectNotFound)
}
