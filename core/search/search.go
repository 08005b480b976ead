// Package search queries the repository's full-text index for a book and
// turns the hits into navigation line markers.
package search

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/spreadview/core"
	"github.com/gaurav-prasanna/spreadview/core/book"
)

// ErrSearchDisabled is returned when the book has no search endpoint.
var ErrSearchDisabled = errors.New("search is not enabled for this book")

const (
	msgNoMatches  = "No matches were found."
	msgNotIndexed = "This book hasn't been indexed for searching yet. We've just started indexing it, so search should be available soon. Please try again later. Thanks!"
)

// Paragraph locates a match on a page. Page is a 1-based leaf number.
type Paragraph struct {
	Page int `json:"page"`
}

// Match is a single search hit. Text carries the highlighted term wrapped
// in triple braces, {{{like this}}}.
type Match struct {
	Text string      `json:"text"`
	Par  []Paragraph `json:"par"`
}

// Results is the search endpoint response.
type Results struct {
	Matches []Match `json:"matches"`
	// Indexed is false when the book is still waiting for indexing.
	Indexed *bool `json:"indexed,omitempty"`
}

// Message returns the notice to show when there are no matches, or "".
func (r *Results) Message() string {
	if len(r.Matches) > 0 {
		return ""
	}
	if r.Indexed != nil && !*r.Indexed {
		return msgNotIndexed
	}
	return msgNoMatches
}

// Marker is a search hit placed on the navigation line.
type Marker struct {
	PageIndex  int    `json:"page_index"`
	PageNumber string `json:"page_number"`
	Percent    string `json:"percent"`
	// Query is HTML: the match text with highlights turned into jump links.
	Query string `json:"query"`
}

var highlightRe = regexp.MustCompile(`{{{(.+?)}}}`)

// Markers converts the results into navigation markers for b.
// Matches without a location are skipped.
func (r *Results) Markers(b *book.Book) []Marker {
	markers := make([]Marker, 0, len(r.Matches))
	for _, m := range r.Matches {
		if len(m.Par) == 0 {
			continue
		}
		index := b.LeafNumToIndex(m.Par[0].Page)
		open := fmt.Sprintf(`<a href="#page/%s" data-page-index="%d">`, url.PathEscape(b.PageNum(index)), index)
		query := highlightRe.ReplaceAllStringFunc(m.Text, func(hit string) string {
			return open + strings.TrimSuffix(strings.TrimPrefix(hit, "{{{"), "}}}") + "</a>"
		})
		markers = append(markers, Marker{
			PageIndex:  index,
			PageNumber: b.PageNum(index),
			Percent:    b.PercentThrough(index),
			Query:      query,
		})
	}
	return markers
}

// Client runs searches against a book's search endpoint.
type Client struct {
	book    *book.Book
	fetcher core.Fetcher
	log     *zap.Logger
}

// New creates a Client.
func New(b *book.Book, fetcher core.Fetcher, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{book: b, fetcher: fetcher, log: log}
}

// Search queries the index for term.
func (c *Client) Search(ctx context.Context, term string) (*Results, error) {
	if !c.book.SearchEnabled() {
		return nil, ErrSearchDisabled
	}
	// Slashes would end up in the URL path.
	term = strings.ReplaceAll(term, "/", " ")
	u := strings.Replace(c.book.Settings().SearchURI, "TERM", url.PathEscape(term), 1)

	var res Results
	if err := c.fetcher.FetchJSON(ctx, u, &res); err != nil {
		return nil, fmt.Errorf("search call to %s failed: %w", u, err)
	}
	c.log.Debug("Search finished", zap.String("term", term), zap.Int("matches", len(res.Matches)))
	return &res, nil
}
