package transcript_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"

	"github.com/gaurav-prasanna/spreadview/core/book"
	"github.com/gaurav-prasanna/spreadview/core/extract"
	"github.com/gaurav-prasanna/spreadview/core/normalize"
	"github.com/gaurav-prasanna/spreadview/core/transcript"
)

type mapTexts map[string]string

func (m mapTexts) Text(_ context.Context, pid string) (string, error) {
	if t, ok := m[pid]; ok {
		return t, nil
	}
	return "", errors.New("text not found")
}

type offline struct{}

func (offline) Fetch(context.Context, string) ([]byte, error) { return nil, errors.New("offline") }
func (offline) FetchJSON(context.Context, string, any) error  { return errors.New("offline") }

const settings = `
pageCount: 4
label: Letters home
djatokaUri: http://img.example.org/
dimensionsUri: http://repo.example.org/dims/PID
textUri: http://repo.example.org/text/PID
pageNumbers: ["", "1", "2", "3"]
pages:
  - {pid: "l:1", uri: u1, width: 700, height: 1000}
  - {uri: u2}
  - {pid: "l:3", uri: u3}
  - {pid: "l:4", uri: u4}
`

func builder(t *testing.T, texts mapTexts) *transcript.Builder {
	t.Helper()
	s, err := book.ParseSettings([]byte(settings))
	require.NoError(t, err)
	log := zaptest.NewLogger(t)
	b, err := book.New(context.Background(), s, offline{}, log)
	require.NoError(t, err)
	return transcript.New(b, texts, extract.New(), normalize.New(), log)
}

func TestBuild(t *testing.T) {
	tb := builder(t, mapTexts{
		"l:1": "<p>Dear <em>mother</em>,</p>",
		"l:3": "<h3>June</h3><p>Rain again.</p>",
	})

	pages, err := tb.Build(context.Background(), -5, 2)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	require.Equal(t, "Dear *mother*,", pages[0].Markdown)
	require.Equal(t, "n0", pages[0].Label)
	require.Empty(t, pages[1].PID)
	require.Empty(t, pages[1].Markdown)
	require.Contains(t, pages[2].Markdown, "### June")
	require.Equal(t, "2", pages[2].Label)

	meta := tb.Meta("http://repo.example.org/l:0")
	require.Equal(t, "Letters home", meta.Title)
	require.Equal(t, 4, meta.PageCount)
	require.NotEmpty(t, meta.ExportedAt)
}

func TestBuildPartialFailure(t *testing.T) {
	tb := builder(t, mapTexts{"l:1": "<p>a</p>"})

	pages, err := tb.Build(context.Background(), 0, 10)
	require.Len(t, pages, 2, "page 0 and the pid-less page 1")
	require.Len(t, multierr.Errors(err), 2)
	require.ErrorContains(t, err, "page 2: fetch")
	require.ErrorContains(t, err, "page 3: fetch")
}

func TestBuildEmptyRange(t *testing.T) {
	tb := builder(t, mapTexts{})
	_, err := tb.Build(context.Background(), 3, 1)
	require.ErrorContains(t, err, "empty page range")
}

func TestBuildCancelled(t *testing.T) {
	tb := builder(t, mapTexts{"l:1": "<p>a</p>"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pages, err := tb.Build(ctx, 0, 3)
	require.Empty(t, pages)
	require.ErrorIs(t, err, context.Canceled)
}
