// Package normalize implements the Normalizer interface.
// It converts cleaned full-text HTML into Markdown, the format every
// transcript renderer starts from.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
)

var (
	// OCR output breaks words across lines with a trailing hyphen.
	reLineHyphen = regexp.MustCompile(`(\p{L})-[ \t]*\r?\n[ \t]*(\p{Ll})`)
	reBlankRuns  = regexp.MustCompile(`\n{3,}`)
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct {
	conv *converter.Converter
}

// New creates a MarkdownNormalizer producing CommonMark.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
	}
}

// Normalize converts a cleaned HTML fragment into Markdown. Words hyphenated
// across OCR line breaks are joined first.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	html = reLineHyphen.ReplaceAllString(html, "$1$2")
	markdown, err := n.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	markdown = reBlankRuns.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown), nil
}
