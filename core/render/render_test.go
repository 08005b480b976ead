package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/spreadview/core"
)

var testPages = []core.TranscriptPage{
	{Index: 0, Label: "n0", PID: "b:1", Markdown: ""},
	{Index: 1, Label: "1", PID: "b:2", Markdown: "## Chapter I\n\nThe **first** day at [sea](http://example.org)."},
}

var testMeta = core.TranscriptMeta{Title: "Logbook", Source: "http://repo.example.org/b:0", PageCount: 2}

func TestMarkdownRenderer(t *testing.T) {
	r := NewMarkdownRenderer()
	out, err := r.Render(testPages, testMeta)
	require.NoError(t, err)
	s := string(out)
	require.Contains(t, s, "# Logbook\n")
	require.Contains(t, s, "## Page n0\n\n## Page 1\n")
	require.Contains(t, s, "The **first** day")
	require.Equal(t, ".md", r.Extension())
}

func TestJSONRenderer(t *testing.T) {
	r := NewJSONRenderer()
	out, err := r.Render(testPages, testMeta)
	require.NoError(t, err)

	var got struct {
		Metadata core.TranscriptMeta `json:"metadata"`
		Pages    []struct {
			Label    string    `json:"label"`
			PID      string    `json:"pid"`
			Text     string    `json:"text"`
			Headings []Heading `json:"headings"`
			Words    int       `json:"words"`
		} `json:"pages"`
	}
	require.NoError(t, json.Unmarshal(out, &got))
	require.Equal(t, "Logbook", got.Metadata.Title)
	require.Len(t, got.Pages, 2)
	require.Equal(t, "b:2", got.Pages[1].PID)
	require.Equal(t, []Heading{{Level: 2, Text: "Chapter I"}}, got.Pages[1].Headings)
	require.Equal(t, "Chapter I\n\nThe first day at sea.", got.Pages[1].Text)
	require.Equal(t, 7, got.Pages[1].Words)
	require.Zero(t, got.Pages[0].Words)
	require.Equal(t, ".json", r.Extension())
}

func TestPDFRenderer(t *testing.T) {
	r := NewPDFRenderer()
	out, err := r.Render(testPages, testMeta)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	require.Equal(t, ".pdf", r.Extension())
}

func TestCleanInlineMarkdown(t *testing.T) {
	require.Equal(t, "bold and link", cleanInlineMarkdown("**bold** and [link](http://x)"))
	require.Equal(t, "code", cleanInlineMarkdown("`code`"))
}
