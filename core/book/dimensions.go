package book

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/spreadview/core"
)

// PageDimensions returns the pixel size of the page at index.
//
// Geometry listed in the settings wins; otherwise the repository's
// dimensions callback is asked once and the answer kept for the lifetime of
// the book. A page without geometry or object id has zero dimensions.
// Failed lookups are not remembered.
func (b *Book) PageDimensions(ctx context.Context, index int) (core.Dimensions, error) {
	b.mu.Lock()
	d, ok := b.dimensions[index]
	b.mu.Unlock()
	if ok {
		return d, nil
	}

	p, ok := b.Page(index)
	if !ok {
		return core.Dimensions{}, fmt.Errorf("%w: index %d", ErrNoPage, index)
	}

	switch {
	case p.Width > 0 && p.Height > 0:
		d = core.Dimensions{Width: p.Width, Height: p.Height}
	case p.PID == "":
		b.log.Warn("Page has neither geometry nor object id", zap.Int("index", index))
	default:
		uri := b.DimensionsURI(p.PID)
		var resp struct {
			Width  jsonInt `json:"width"`
			Height jsonInt `json:"height"`
		}
		if err := b.fetcher.FetchJSON(ctx, uri, &resp); err != nil {
			return core.Dimensions{}, fmt.Errorf("page %d dimensions: %w", index, err)
		}
		d = core.Dimensions{Width: int(resp.Width), Height: int(resp.Height)}
		b.log.Debug("Fetched page dimensions",
			zap.Int("index", index), zap.String("pid", p.PID),
			zap.Int("width", d.Width), zap.Int("height", d.Height))
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	// A concurrent caller may have won; keep the first entry.
	if prev, ok := b.dimensions[index]; ok {
		return prev, nil
	}
	b.dimensions[index] = d
	return d, nil
}

// PageWidth returns the width in pixels of the page at index.
func (b *Book) PageWidth(ctx context.Context, index int) (int, error) {
	d, err := b.PageDimensions(ctx, index)
	return d.Width, err
}

// PageHeight returns the height in pixels of the page at index.
func (b *Book) PageHeight(ctx context.Context, index int) (int, error) {
	d, err := b.PageDimensions(ctx, index)
	return d.Height, err
}
