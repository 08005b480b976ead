package extract_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/spreadview/core/extract"
)

func TestExtractStripsNoise(t *testing.T) {
	in := `<html><head><style>p{}</style></head><body>
<script>alert(1)</script>
<p onclick="steal()" style="color:red">Chapter one</p>
<a href="javascript:void(0)">x</a>
<form><input name="q"></form>
</body></html>`

	out, err := extract.New().Extract(in)
	require.NoError(t, err)
	require.Contains(t, out, "<p>Chapter one</p>")
	require.NotContains(t, out, "script")
	require.NotContains(t, out, "onclick")
	require.NotContains(t, out, "javascript:")
	require.NotContains(t, out, "<form")
	require.NotContains(t, out, "style")
}

func TestExtractPrefersMain(t *testing.T) {
	in := `<body><div>chrome</div><main><p>text</p></main></body>`
	out, err := extract.New().Extract(in)
	require.NoError(t, err)
	require.Equal(t, "<p>text</p>", out)
}

func TestExtractPlainText(t *testing.T) {
	out, err := extract.New().Extract("OCR line with <b>bold</b> & more")
	require.NoError(t, err)
	require.Equal(t, "OCR line with <b>bold</b> &amp; more", out)
}
