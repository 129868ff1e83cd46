// Package printer renders collected files into the dump document
package printer

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/bethropolis/dump-source/internal/collector"
)

// Format selects the document layout
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
)

// ParseFormat accepts a format name, with "md" as shorthand for markdown
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("printer: unknown format %q (want markdown, json or html)", s)
	}
}

// Extension returns the file extension documents of this format carry
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatHTML:
		return ".html"
	default:
		return ".md"
	}
}

// DocumentName returns the timestamped file name for a run started at now:
// "dump-" + the UTC ISO-8601 time with milliseconds, colons replaced by
// hyphens.
func DocumentName(now time.Time, format Format) string {
	stamp := now.UTC().Format("2006-01-02T15:04:05.000Z")
	return strings.ReplaceAll("dump-"+stamp+format.Extension(), ":", "-")
}

// Printer writes the rendered document to its output
type Printer struct {
	output io.Writer
	format Format
}

// New creates a Printer writing markdown to stdout
func New() *Printer {
	return &Printer{
		output: os.Stdout,
		format: FormatMarkdown,
	}
}

// WithOutput sets the output destination
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithFormat sets the document format
func (p *Printer) WithFormat(format Format) *Printer {
	p.format = format
	return p
}

// JSONFileEntry represents a file entry in JSON output
type JSONFileEntry struct {
	Path    string `json:"path"`
	Content string `json:"content"` // Base64 encoded content
}

// Render writes the document for files in the given order
func (p *Printer) Render(files []collector.CollectedFile) error {
	var doc []byte
	var err error

	switch p.format {
	case FormatJSON:
		doc, err = JSON(files)
	case FormatHTML:
		doc, err = HTML(files)
	default:
		doc = Markdown(files)
	}
	if err != nil {
		return err
	}

	if _, err := p.output.Write(doc); err != nil {
		return fmt.Errorf("printer: failed to write document: %w", err)
	}
	return nil
}

// Markdown renders one fenced block per file, labeled with its path, with
// blank lines between blocks.
func Markdown(files []collector.CollectedFile) []byte {
	var buf bytes.Buffer
	for i, f := range files {
		if i > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString("```")
		buf.WriteString(f.Path)
		buf.WriteByte('\n')
		buf.Write(f.Content)
		buf.WriteString("\n```")
	}
	return buf.Bytes()
}

// JSON renders files as an array of path/content pairs with base64 content
func JSON(files []collector.CollectedFile) ([]byte, error) {
	entries := make([]JSONFileEntry, 0, len(files))
	for _, f := range files {
		entries = append(entries, JSONFileEntry{
			Path:    f.Path,
			Content: base64.StdEncoding.EncodeToString(f.Content),
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("printer: failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// HTML renders the markdown document to HTML
func HTML(files []collector.CollectedFile) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(Markdown(files), &buf); err != nil {
		return nil, fmt.Errorf("printer: failed to render HTML: %w", err)
	}
	return buf.Bytes(), nil
}
