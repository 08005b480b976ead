package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/spreadview/core/normalize"
)

func TestNormalize(t *testing.T) {
	md, err := normalize.New().Normalize("<h2>Preface</h2><p>Some <strong>bold</strong> words.</p>")
	require.NoError(t, err)
	require.Contains(t, md, "## Preface")
	require.Contains(t, md, "**bold**")
}

func TestNormalizeEmpty(t *testing.T) {
	md, err := normalize.New().Normalize("")
	require.NoError(t, err)
	require.Empty(t, md)
}

func TestNormalizeJoinsHyphenatedLines(t *testing.T) {
	md, err := normalize.New().Normalize("<p>Report of the agri-\nculture board, 1911-\n1912.</p>")
	require.NoError(t, err)
	require.Contains(t, md, "agriculture board")
	require.NotContains(t, md, "agri-")
	require.Contains(t, md, "1911-", "digits are left alone")
}
