package localdump

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// MetaFile is the per-directory navigation file Nextra-style sites read.
const MetaFile = "_meta.ts"

type metaEntry struct {
	path   string
	title  string
	weight float64
}

// MetaBuilder collects exported pages per directory, so each directory can get a MetaFile listing
// its pages by weight.
type MetaBuilder struct {
	dirs  []string
	pages map[string][]metaEntry
}

func NewMetaBuilder() *MetaBuilder {
	return &MetaBuilder{
		pages: make(map[string][]metaEntry),
	}
}

func (m *MetaBuilder) AddPage(outputPath string, title string, weight float64) {
	dir := filepath.Dir(outputPath)
	if _, ok := m.pages[dir]; !ok {
		m.dirs = append(m.dirs, dir)
	}
	m.pages[dir] = append(m.pages[dir], metaEntry{
		path:   outputPath,
		title:  title,
		weight: weight,
	})
}

// Directories lists every directory seen, in the order they were first added.
func (m *MetaBuilder) Directories() []string {
	return append([]string(nil), m.dirs...)
}

// Content renders dir's MetaFile.  Pages are ordered by ascending weight; equal weights keep the
// order they were added in.
func (m *MetaBuilder) Content(dir string) string {
	entries := append([]metaEntry(nil), m.pages[dir]...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].weight < entries[j].weight
	})

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		base := filepath.Base(e.path)
		key := strings.TrimSuffix(base, filepath.Ext(base))
		lines = append(lines, fmt.Sprintf("  '%s': '%s'", escapeSingleQuotes(key), escapeSingleQuotes(e.title)))
	}

	return "export default {\n" + strings.Join(lines, ",\n") + "\n}\n"
}

// WriteIndex (re)writes dir's MetaFile and returns its path.
func (m *MetaBuilder) WriteIndex(dir string) (string, error) {
	target := filepath.Join(dir, MetaFile)
	if err := writeFile(target, m.Content(dir)); err != nil {
		return "", fmt.Errorf("localdump: couldn't write index for %s: %w", dir, err)
	}
	return target, nil
}

func escapeSingleQuotes(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
