// JSON renderer.
// Builds a structured transcript: book metadata, then one entry per page
// with its Markdown, plain text and the headings found on it.

package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/spreadview/core"
)

// Heading represents a single heading found on a page.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

type jsonPage struct {
	core.TranscriptPage
	Text     string    `json:"text"`
	Headings []Heading `json:"headings"`
	Words    int       `json:"words"`
}

type jsonTranscript struct {
	Metadata core.TranscriptMeta `json:"metadata"`
	Pages    []jsonPage          `json:"pages"`
}

// JSONRenderer produces structured JSON output from transcript pages.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts the pages and metadata into the JSON transcript.
func (r *JSONRenderer) Render(pages []core.TranscriptPage, meta core.TranscriptMeta) ([]byte, error) {
	out := jsonTranscript{
		Metadata: meta,
		Pages:    make([]jsonPage, 0, len(pages)),
	}
	for _, p := range pages {
		text := stripMarkdown(p.Markdown)
		out.Pages = append(out.Pages, jsonPage{
			TranscriptPage: p,
			Text:           text,
			Headings:       extractHeadings(p.Markdown),
			Words:          len(strings.Fields(text)),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// --- Markdown parsing helpers ---

var headingRegex = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

func extractHeadings(md string) []Heading {
	matches := headingRegex.FindAllStringSubmatch(md, -1)
	headings := make([]Heading, 0, len(matches))
	for _, m := range matches {
		headings = append(headings, Heading{
			Level: len(m[1]),
			Text:  strings.TrimSpace(m[2]),
		})
	}
	return headings
}

// linkRegex matches Markdown links [text](url).
var linkRegex = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)

var (
	emphasisRegex = regexp.MustCompile(`\*{1,3}([^*]+)\*{1,3}`)
	inlineCode    = regexp.MustCompile("`([^`]+)`")
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

// stripMarkdown removes common Markdown formatting to produce plain text.
func stripMarkdown(md string) string {
	text := headingRegex.ReplaceAllString(md, "$2")
	text = emphasisRegex.ReplaceAllString(text, "$1")
	text = linkRegex.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "```", "")
	text = inlineCode.ReplaceAllString(text, "$1")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
