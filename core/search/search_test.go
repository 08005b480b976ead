package search_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gaurav-prasanna/spreadview/core/book"
	"github.com/gaurav-prasanna/spreadview/core/fetch"
	"github.com/gaurav-prasanna/spreadview/core/search"
)

func settings(base string, withSearch bool) string {
	searchURI := ""
	if withSearch {
		searchURI = base + "/search/TERM"
	}
	return fmt.Sprintf(`{
  "pageCount": 5,
  "label": "Field notes",
  "djatokaUri": "%[1]s/djatoka/",
  "dimensionsUri": "%[1]s/dims/PID",
  "textUri": "%[1]s/text/PID",
  "searchUri": "%[2]s",
  "pageNumbers": ["", "", "1", "2", "3"],
  "pages": [
    {"pid": "fn:1", "uri": "u1", "width": 800, "height": 1200},
    {"pid": "fn:2", "uri": "u2", "width": 800, "height": 1200},
    {"pid": "fn:3", "uri": "u3", "width": 800, "height": 1200},
    {"pid": "fn:4", "uri": "u4", "width": 800, "height": 1200},
    {"pid": "fn:5", "uri": "u5", "width": 800, "height": 1200}
  ]
}`, base, searchURI)
}

func setup(t *testing.T, withSearch bool, handler http.HandlerFunc) (*book.Book, *search.Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s, err := book.ParseSettings([]byte(settings(srv.URL, withSearch)))
	require.NoError(t, err)
	f := fetch.New()
	log := zaptest.NewLogger(t)
	b, err := book.New(context.Background(), s, f, log)
	require.NoError(t, err)
	return b, search.New(b, f, log)
}

func TestSearchMarkers(t *testing.T) {
	var gotPath string
	b, c := setup(t, true, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"matches": [
			{"text": "the {{{barn owl}}} nests", "par": [{"page": 4}]},
			{"text": "no location"},
			{"text": "a {{{barn owl}}} again", "par": [{"page": 1}]}
		]}`))
	})

	res, err := c.Search(context.Background(), "barn/owl")
	require.NoError(t, err)
	require.Equal(t, "/search/barn owl", gotPath)
	require.Empty(t, res.Message())

	markers := res.Markers(b)
	require.Len(t, markers, 2)

	require.Equal(t, 3, markers[0].PageIndex)
	require.Equal(t, "2", markers[0].PageNumber)
	require.Equal(t, "75%", markers[0].Percent)
	require.Equal(t, `the <a href="#page/2" data-page-index="3">barn owl</a> nests`, markers[0].Query)

	require.Equal(t, 0, markers[1].PageIndex)
	require.Equal(t, "n0", markers[1].PageNumber)
	require.True(t, strings.Contains(markers[1].Query, `data-page-index="0"`))
}

func TestSearchMessages(t *testing.T) {
	_, c := setup(t, true, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "pending") {
			_, _ = w.Write([]byte(`{"matches": [], "indexed": false}`))
			return
		}
		_, _ = w.Write([]byte(`{"matches": []}`))
	})

	res, err := c.Search(context.Background(), "nothing")
	require.NoError(t, err)
	require.Equal(t, "No matches were found.", res.Message())

	res, err = c.Search(context.Background(), "pending")
	require.NoError(t, err)
	require.Contains(t, res.Message(), "hasn't been indexed")
}

func TestSearchFailures(t *testing.T) {
	_, c := setup(t, true, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "solr down", http.StatusServiceUnavailable)
	})
	_, err := c.Search(context.Background(), "owl")
	require.ErrorContains(t, err, "search call to")

	_, c = setup(t, false, func(w http.ResponseWriter, r *http.Request) {})
	_, err = c.Search(context.Background(), "owl")
	require.ErrorIs(t, err, search.ErrSearchDisabled)
}

func TestSearchMarkersKeepLabelLiteral(t *testing.T) {
	raw := strings.Replace(settings("http://repo.invalid", false), `"", "", "1"`, `"", "", "$1"`, 1)
	s, err := book.ParseSettings([]byte(raw))
	require.NoError(t, err)
	b, err := book.New(context.Background(), s, fetch.New(), zaptest.NewLogger(t))
	require.NoError(t, err)

	res := &search.Results{Matches: []search.Match{
		{Text: "price {{{$2}}} paid", Par: []search.Paragraph{{Page: 3}}},
	}}
	markers := res.Markers(b)
	require.Len(t, markers, 1)
	require.Equal(t, `price <a href="#page/$1" data-page-index="2">$2</a> paid`, markers[0].Query)
}
