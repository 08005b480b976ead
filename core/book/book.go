// Package book maps a repository's object-id based content model onto the
// index based API of the page viewer.
//
// A Book is built once from Settings and answers every per-page question
// the viewer asks: labels, object ids, image and text URIs, geometry,
// layout and table of contents.
package book

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/spreadview/core"
	"github.com/gaurav-prasanna/spreadview/core/layout"
)

// ErrNoPage is returned for an index outside the book or a page entry
// without an object id.
var ErrNoPage = errors.New("no such page")

const titleLimit = 97

// Book is the viewer adapter for a single book. It is safe for concurrent use.
type Book struct {
	settings *Settings
	fetcher  core.Fetcher
	log      *zap.Logger
	resolver *layout.Resolver

	mu         sync.Mutex
	dimensions map[int]core.Dimensions
}

// New builds a Book. The layout configuration is fixed here from the page
// count, page progression and geometry of the first page, which may cost
// one dimension lookup. A failed lookup leaves the first page with zero
// geometry, so PageSide and SpreadPages report ErrInvalidConfiguration.
func New(ctx context.Context, s *Settings, fetcher core.Fetcher, log *zap.Logger) (*Book, error) {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Book{
		settings:   s,
		fetcher:    fetcher,
		log:        log,
		dimensions: make(map[int]core.Dimensions),
	}

	dir, err := layout.ParseDirection(s.PageProgression)
	if err != nil {
		return nil, err
	}

	var first core.Dimensions
	if s.PageCount > 0 {
		if first, err = b.PageDimensions(ctx, 0); err != nil {
			// Layout queries report the degenerate geometry; the rest of the
			// book stays usable.
			log.Warn("First page geometry unavailable", zap.Error(err))
			first = core.Dimensions{}
		}
	}
	cfg, err := layout.NewConfiguration(s.PageCount, dir, float64(first.Width), float64(first.Height))
	if err != nil {
		return nil, err
	}
	b.resolver = layout.New(cfg)

	log.Debug("Book ready",
		zap.String("label", s.Label),
		zap.Int("pages", s.PageCount),
		zap.Stringer("direction", dir),
		zap.Int("first_width", first.Width),
		zap.Int("first_height", first.Height),
		zap.Bool("spine", cfg.Spine()))
	return b, nil
}

// Settings returns the settings the book was built from.
func (b *Book) Settings() *Settings {
	return b.settings
}

// PageCount returns the number of pages.
func (b *Book) PageCount() int {
	return b.settings.PageCount
}

// Layout returns the page layout resolver.
func (b *Book) Layout() *layout.Resolver {
	return b.resolver
}

// Title returns the book label, shortened for the viewer's title bar.
func (b *Book) Title() string {
	label := b.settings.Label
	if utf8.RuneCountInString(label) <= titleLimit {
		return label
	}
	return string([]rune(label)[:titleLimit]) + "..."
}

// PageNum returns the printed page label for index, or "n<index>" when the
// page has none (front matter, plates).
func (b *Book) PageNum(index int) string {
	if index >= 0 && index < len(b.settings.PageNumbers) && b.settings.PageNumbers[index] != "" {
		return b.settings.PageNumbers[index]
	}
	return "n" + strconv.Itoa(index)
}

// PageName is the label shown for index in navigation and search results.
func (b *Book) PageName(index int) string {
	return b.PageNum(index)
}

// PageIndex is the inverse of PageNum.
func (b *Book) PageIndex(pageNum string) (int, error) {
	for i := 0; i < b.settings.PageCount; i++ {
		if i < len(b.settings.PageNumbers) && b.settings.PageNumbers[i] == pageNum {
			return i, nil
		}
	}
	if rest, ok := strings.CutPrefix(pageNum, "n"); ok {
		if i, err := strconv.Atoi(rest); err == nil && layout.InRange(i, b.settings.PageCount) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: label %q", ErrNoPage, pageNum)
}

// LeafNumToIndex converts a 1-based leaf number into a page index.
func (b *Book) LeafNumToIndex(leafNum int) int {
	return leafNum - 1
}

// NavPageNum is the text of the navigation bar's page indicator.
func (b *Book) NavPageNum(index int) string {
	num := b.PageNum(index)
	if strings.HasPrefix(num, "n") {
		return fmt.Sprintf("%d / %d", index+1, b.settings.PageCount)
	}
	return num
}

// PercentThrough positions index along the navigation line as a CSS
// percentage.
func (b *Book) PercentThrough(index int) string {
	last := b.settings.PageCount - 1
	if last <= 0 {
		return "0%"
	}
	return strconv.FormatFloat(float64(index)/float64(last)*100, 'f', -1, 64) + "%"
}

// Page returns the settings entry for index.
func (b *Book) Page(index int) (Page, bool) {
	if !layout.InRange(index, b.settings.PageCount) {
		return Page{}, false
	}
	return b.settings.Pages[index], true
}

// PID returns the object id of the page at index.
func (b *Book) PID(index int) (string, bool) {
	p, ok := b.Page(index)
	if !ok || p.PID == "" {
		return "", false
	}
	return p.PID, true
}

// SearchEnabled reports whether the repository offers full-text search.
func (b *Book) SearchEnabled() bool {
	return b.settings.SearchURI != ""
}

// DjatokaURI returns the image server region request for a resource.
func (b *Book) DjatokaURI(resourceURI string) string {
	base := b.settings.DjatokaURI
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	params := url.Values{}
	params.Set("rft_id", resourceURI)
	params.Set("url_ver", "Z39.88-2004")
	params.Set("svc_id", "info:lanl-repo/svc/getRegion")
	params.Set("svc_val_fmt", "info:ofi/fmt:kev:mtx:jpeg2000")
	params.Set("svc.format", "image/jpg")
	params.Set("svc.level", b.settings.Compression)
	params.Set("svc.rotate", "0")
	return base + "resolver?" + params.Encode()
}

// DimensionsURI returns the dimensions callback for a page object.
func (b *Book) DimensionsURI(pid string) string {
	return strings.Replace(b.settings.DimensionsURI, "PID", pid, 1)
}

// TextURI returns the full-text callback for a page object.
func (b *Book) TextURI(pid string) string {
	return strings.Replace(b.settings.TextURI, "PID", pid, 1)
}

// PageURI returns the image URI for index.
func (b *Book) PageURI(index int) (string, error) {
	p, ok := b.Page(index)
	if !ok {
		return "", fmt.Errorf("%w: index %d", ErrNoPage, index)
	}
	return b.DjatokaURI(p.URI), nil
}

// SpreadPages is a spread together with which of its members exist.
type SpreadPages struct {
	layout.Spread
	HasLeft  bool `json:"has_left"`
	HasRight bool `json:"has_right"`
}

// SpreadPages returns the spread containing index with out-of-book members
// flagged as absent.
func (b *Book) SpreadPages(index int) (SpreadPages, error) {
	sp, err := b.resolver.SpreadIndices(index)
	if err != nil {
		return SpreadPages{}, err
	}
	return SpreadPages{
		Spread:   sp,
		HasLeft:  layout.InRange(sp.Left, b.settings.PageCount),
		HasRight: layout.InRange(sp.Right, b.settings.PageCount),
	}, nil
}
