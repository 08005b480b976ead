// Package output handles file naming and writing for transcript exports.
// Filenames are derived from the book label (e.g. "Annual report, 1911"
// becomes Annual_report__1911.md), optionally suffixed with the page range.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxNameLen bounds the label-derived part of a filename.
const maxNameLen = 80

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data under a name derived from label and returns the path.
// A non-empty suffix is appended to the name, e.g. "p1-20".
func (w *Writer) Write(label, suffix string, data []byte, ext string) (string, error) {
	name := FilenameFromLabel(label)
	if suffix != "" {
		name += "_" + sanitize(suffix)
	}
	path := filepath.Join(w.OutputDir, name+ext)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// FilenameFromLabel converts a book label into a flat filename.
func FilenameFromLabel(label string) string {
	name := strings.Trim(sanitize(strings.TrimSpace(label)), "_")
	if name == "" {
		return "book"
	}
	if len(name) > maxNameLen {
		name = strings.TrimRight(name[:maxNameLen], "_")
	}
	return name
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
