package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gaurav-prasanna/spreadview/core/fetch"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/text":
			_, _ = w.Write([]byte("<p>page text</p>"))
		case "/dims":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"width": 1200, "height": 1800}`))
		case "/broken":
			_, _ = w.Write([]byte(`{"width": `))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := fetch.New(
		fetch.WithUserAgent("test-agent"),
		fetch.WithTimeout(5*time.Second),
		fetch.WithLogger(zaptest.NewLogger(t)),
	)
	ctx := context.Background()

	body, err := f.Fetch(ctx, srv.URL+"/text")
	require.NoError(t, err)
	require.Equal(t, "<p>page text</p>", string(body))

	var dims struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	require.NoError(t, f.FetchJSON(ctx, srv.URL+"/dims", &dims))
	require.Equal(t, 1200, dims.Width)
	require.Equal(t, 1800, dims.Height)

	err = f.FetchJSON(ctx, srv.URL+"/broken", &dims)
	require.ErrorContains(t, err, "decoding response")

	_, err = f.Fetch(ctx, srv.URL+"/missing")
	require.ErrorContains(t, err, "unexpected status 404")
}

func TestFetchCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetch.New().Fetch(ctx, srv.URL)
	require.Error(t, err)
}
