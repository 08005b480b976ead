package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilenameFromLabel(t *testing.T) {
	require.Equal(t, "Annual_report__1911", FilenameFromLabel("Annual report, 1911"))
	require.Equal(t, "book", FilenameFromLabel("  "))
	require.Equal(t, "book", FilenameFromLabel("???"))
	require.Len(t, FilenameFromLabel(strings.Repeat("a", 200)), maxNameLen)
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.Write("Field notes", "p1-3", []byte("text"), ".md")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "Field_notes_p1-3.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "text", string(data))
}
