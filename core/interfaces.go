// Package core defines the shared types and collaborator interfaces for spreadview.
// Each collaborator is a small interface so the adapter can be tested
// against fakes instead of a live repository.
package core

import "context"

// Dimensions is the pixel size of a page image.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// TranscriptPage is the full text of a single page ready for export.
type TranscriptPage struct {
	Index    int    `json:"index"`
	Label    string `json:"label"`
	PID      string `json:"pid"`
	Markdown string `json:"markdown"`
}

// TranscriptMeta describes the book a transcript belongs to.
type TranscriptMeta struct {
	Title      string `json:"title"`
	Source     string `json:"source"`
	PageCount  int    `json:"page_count"`
	ExportedAt string `json:"exported_at"` // ISO8601
}

// Fetcher retrieves documents from the repository backend.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
	FetchJSON(ctx context.Context, url string, v any) error
}

// TextSource returns the full text of a page object as HTML.
type TextSource interface {
	Text(ctx context.Context, pid string) (string, error)
}

// Extractor strips noise from repository HTML.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts cleaned HTML into Markdown (the transcript format).
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts transcript pages into a final output format.
type Renderer interface {
	Render(pages []TranscriptPage, meta TranscriptMeta) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
