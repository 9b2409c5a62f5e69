package localdump

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ensureOutputDir creates dir if needed and checks it really is a directory.
func ensureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("localdump: couldn't create directory %s: %w", dir, err)
	}

	stat, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("localdump: cannot stat '%s': %w", dir, err)
	}
	if !stat.IsDir() {
		return fmt.Errorf("localdump: output path not a directory: '%s'", dir)
	}

	return nil
}

// writeFile writes contents to target, creating parent directories as needed.
func writeFile(target string, contents string) error {
	directory := filepath.Dir(target)
	if err := os.MkdirAll(directory, 0750); err != nil {
		return fmt.Errorf("localdump: couldn't create directory %s: %w", directory, err)
	}

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("localdump: couldn't create file %s: %w", target, err)
	}

	return writeAndClose(f, target, contents)
}

// writeAndClose reports a failed Close as a failed write; that's where buffered data gets lost.
func writeAndClose(w io.WriteCloser, target string, contents string) error {
	if _, err := io.WriteString(w, contents); err != nil {
		w.Close()
		return fmt.Errorf("localdump: couldn't write to file %s: %w", target, err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("localdump: couldn't close file %s: %w", target, err)
	}

	return nil
}

// WriteDocument writes doc to its OutputPath, with front matter unless noFrontmatter is set.
func WriteDocument(doc *Document, noFrontmatter bool) error {
	contents := doc.Body
	if !noFrontmatter {
		fm, err := FrontMatter(doc)
		if err != nil {
			return err
		}
		contents = fm + contents
	}

	return writeFile(doc.OutputPath, contents)
}
