// Package transcript collects the full text of a page range as Markdown,
// ready for a renderer.
package transcript

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/spreadview/core"
	"github.com/gaurav-prasanna/spreadview/core/book"
)

// Builder runs each page through fetch → extract → normalize.
type Builder struct {
	book       *book.Book
	texts      core.TextSource
	extractor  core.Extractor
	normalizer core.Normalizer
	log        *zap.Logger
}

// New creates a Builder.
func New(b *book.Book, texts core.TextSource, extractor core.Extractor, normalizer core.Normalizer, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{book: b, texts: texts, extractor: extractor, normalizer: normalizer, log: log}
}

// Meta returns transcript metadata for the book.
func (t *Builder) Meta(source string) core.TranscriptMeta {
	return core.TranscriptMeta{
		Title:      t.book.Title(),
		Source:     source,
		PageCount:  t.book.PageCount(),
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Build collects pages from..to inclusive, clamped to the book. Pages
// without an object id are included with empty text. Pages that fail are
// left out and their errors combined into the returned error, so a partial
// transcript can still be written.
func (t *Builder) Build(ctx context.Context, from, to int) ([]core.TranscriptPage, error) {
	from = max(from, 0)
	to = min(to, t.book.PageCount()-1)
	if from > to {
		return nil, fmt.Errorf("empty page range %d..%d", from, to)
	}

	var (
		pages []core.TranscriptPage
		errs  error
	)
	for i := from; i <= to; i++ {
		if err := ctx.Err(); err != nil {
			return pages, multierr.Append(errs, err)
		}
		page, err := t.page(ctx, i)
		if err != nil {
			t.log.Warn("Skipping page", zap.Int("index", i), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("page %d: %w", i, err))
			continue
		}
		pages = append(pages, page)
	}
	return pages, errs
}

func (t *Builder) page(ctx context.Context, index int) (core.TranscriptPage, error) {
	page := core.TranscriptPage{Index: index, Label: t.book.PageNum(index)}
	pid, ok := t.book.PID(index)
	if !ok {
		return page, nil
	}
	page.PID = pid

	raw, err := t.texts.Text(ctx, pid)
	if err != nil {
		return page, fmt.Errorf("fetch: %w", err)
	}
	content, err := t.extractor.Extract(raw)
	if err != nil {
		return page, fmt.Errorf("extract: %w", err)
	}
	md, err := t.normalizer.Normalize(content)
	if err != nil {
		return page, fmt.Errorf("normalize: %w", err)
	}
	page.Markdown = md
	return page, nil
}
