package localdump

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetaOrdersByWeight(t *testing.T) {
	m := NewMetaBuilder()
	m.AddPage("out/two.mdx", "Two", 2)
	m.AddPage("out/zero.mdx", "Zero", 0)
	m.AddPage("out/one.mdx", "One", 1)

	assert.Equal(t, "export default {\n  'zero': 'Zero',\n  'one': 'One',\n  'two': 'Two'\n}\n", m.Content("out"))
}

func TestMetaTiesKeepInsertionOrder(t *testing.T) {
	m := NewMetaBuilder()
	m.AddPage("out/b.mdx", "B", 0)
	m.AddPage("out/a.mdx", "A", 0)
	m.AddPage("out/first.mdx", "First", -1)

	assert.Equal(t, "export default {\n  'first': 'First',\n  'b': 'B',\n  'a': 'A'\n}\n", m.Content("out"))
}

func TestMetaEscapesQuotes(t *testing.T) {
	m := NewMetaBuilder()
	m.AddPage("out/bobs-page.mdx", "Bob's page", 0)

	assert.Equal(t, "export default {\n  'bobs-page': 'Bob\\'s page'\n}\n", m.Content("out"))
}

func TestMetaDirectories(t *testing.T) {
	m := NewMetaBuilder()
	m.AddPage(filepath.Join("out", "guides", "a.mdx"), "A", 0)
	m.AddPage(filepath.Join("out", "top.mdx"), "Top", 0)
	m.AddPage(filepath.Join("out", "guides", "b.mdx"), "B", 0)

	assert.Equal(t, []string{filepath.Join("out", "guides"), "out"}, m.Directories())
}

func writeAllIndexes(t *testing.T, m *MetaBuilder) {
	t.Helper()
	for _, dir := range m.Directories() {
		path, err := m.WriteIndex(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, MetaFile), path)
	}
}

func TestMetaWriteIndex(t *testing.T) {
	dir := t.TempDir()
	m := NewMetaBuilder()
	m.AddPage(filepath.Join(dir, "a.mdx"), "A", 0)
	m.AddPage(filepath.Join(dir, "nested", "b.mdx"), "B", 0)

	writeAllIndexes(t, m)

	top, err := os.ReadFile(filepath.Join(dir, MetaFile))
	require.NoError(t, err)
	assert.Equal(t, "export default {\n  'a': 'A'\n}\n", string(top))

	nested, err := os.ReadFile(filepath.Join(dir, "nested", MetaFile))
	require.NoError(t, err)
	assert.Equal(t, "export default {\n  'b': 'B'\n}\n", string(nested))

	// writing again gives the same result
	writeAllIndexes(t, m)
	again, err := os.ReadFile(filepath.Join(dir, MetaFile))
	require.NoError(t, err)
	assert.Equal(t, top, again)
}
