// Package render provides transcript renderers for book exports.
// This file implements the Markdown renderer, which concatenates pages
// under a heading per page.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/spreadview/core"
)

// MarkdownRenderer writes the transcript as a single Markdown document.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Markdown transcript.
func (r *MarkdownRenderer) Render(pages []core.TranscriptPage, meta core.TranscriptMeta) ([]byte, error) {
	var buf strings.Builder
	if meta.Title != "" {
		fmt.Fprintf(&buf, "# %s\n\n", meta.Title)
	}
	if meta.Source != "" {
		fmt.Fprintf(&buf, "_Source: %s_\n\n", meta.Source)
	}
	for _, p := range pages {
		fmt.Fprintf(&buf, "## Page %s\n\n", p.Label)
		if p.Markdown != "" {
			buf.WriteString(p.Markdown)
			buf.WriteString("\n\n")
		}
	}
	return []byte(strings.TrimRight(buf.String(), "\n") + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
