// Package writer stores tokenized pages as Markdown files, one per page,
// with the page metadata in a YAML front matter block.
package writer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/takak2166/scrapbox2md/internal/models"
)

// Writer writes rendered pages to disk.
type Writer struct {
	OutputDir string

	used map[string]bool
}

// New creates a Writer targeting outputDir, creating it if needed.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		return nil, fmt.Errorf("output directory is empty")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{OutputDir: outputDir, used: map[string]bool{}}, nil
}

type frontMatter struct {
	Title   string `yaml:"title"`
	ID      string `yaml:"id"`
	Created string `yaml:"created"`
	Updated string `yaml:"updated"`
}

// Render returns the Markdown document for page. Bracket markup is written
// back verbatim.
func Render(page models.TokenizedPage) ([]byte, error) {
	meta, err := yaml.Marshal(frontMatter{
		Title:   page.Page.Title,
		ID:      page.Page.ID,
		Created: page.Page.CreatedAt.Format(time.RFC3339),
		Updated: page.Page.UpdatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("encoding front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(meta)
	buf.WriteString("---\n\n")
	for _, segments := range page.Lines {
		buf.WriteString(models.RawText(segments))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// WritePage renders page and writes it to <title>.md. When another page of
// this run already took that name, <title>_<id>.md is used instead, then
// <title>_<id>_2.md and so on.
func (w *Writer) WritePage(page models.TokenizedPage) (string, error) {
	data, err := Render(page)
	if err != nil {
		return "", err
	}

	name := w.filename(page.Page)
	path := filepath.Join(w.OutputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

func (w *Writer) filename(page models.NormalizedPage) string {
	base := sanitize(page.Title)
	if base == "" {
		base = sanitize(page.ID)
	}
	name := base
	if w.used[name] {
		name = base + "_" + sanitize(page.ID)
	}
	for n := 2; w.used[name]; n++ {
		name = fmt.Sprintf("%s_%s_%d", base, sanitize(page.ID), n)
	}
	w.used[name] = true
	return name + ".md"
}

// sanitize replaces characters that are not allowed in file names on common
// filesystems with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, ch), unicode.IsControl(ch):
			b.WriteRune('_')
		default:
			b.WriteRune(ch)
		}
	}
	return strings.Trim(strings.TrimSpace(b.String()), ".")
}
