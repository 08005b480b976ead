// Package api serves book layout, page data, dialogs and search to the
// viewer front end over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/spreadview/core"
	"github.com/gaurav-prasanna/spreadview/core/book"
	"github.com/gaurav-prasanna/spreadview/core/layout"
	"github.com/gaurav-prasanna/spreadview/core/search"
	"github.com/gaurav-prasanna/spreadview/core/ui"
)

// LayoutResponse describes where a page sits.
type LayoutResponse struct {
	Index  int              `json:"index"`
	Side   string           `json:"side"`
	Spread book.SpreadPages `json:"spread"`
	// Facing is the other page of the spread, absent at the book's ends.
	Facing *int             `json:"facing,omitempty"`
}

// PageResponse is everything the viewer needs to draw one page.
type PageResponse struct {
	Index      int             `json:"index"`
	Label      string          `json:"label"`
	NavLabel   string          `json:"nav_label"`
	PID        string          `json:"pid,omitempty"`
	ImageURI   string          `json:"image_uri"`
	TextURI    string          `json:"text_uri,omitempty"`
	Dimensions core.Dimensions `json:"dimensions"`
}

// SearchResponse carries markers and, when empty, the notice to show.
type SearchResponse struct {
	Markers []search.Marker `json:"markers"`
	HTML    []string        `json:"html"`
	Message string          `json:"message,omitempty"`
}

// BookResponse describes the book as a whole.
type BookResponse struct {
	Title         string            `json:"title"`
	PageCount     int               `json:"page_count"`
	Direction     string            `json:"direction"`
	Spine         bool              `json:"spine"`
	ImagesURI     string            `json:"images_uri,omitempty"`
	Mode          int               `json:"mode"`
	SearchEnabled bool              `json:"search_enabled"`
	NavTitles     map[string]string `json:"nav_titles"`
	Chapters      []book.Chapter    `json:"chapters"`
	ChaptersHTML  []string          `json:"chapters_html"`
	EmbedCode     string            `json:"embed_code"`
}

// prefetchTimeout bounds one background neighbourhood prefetch.
const prefetchTimeout = 30 * time.Second

// Handler routes viewer requests.
type Handler struct {
	book     *book.Book
	search   *search.Client
	dialogs  *ui.Dialogs
	log      *zap.Logger
	mux      *http.ServeMux
	prefetch int
}

// Option configures a Handler.
type Option func(*Handler)

// WithPrefetch makes layout requests warm the dimensions of the surrounding
// spreads in the background with at most workers lookups in flight.
func WithPrefetch(workers int) Option {
	return func(h *Handler) {
		h.prefetch = workers
	}
}

// NewHandler wires the routes.
func NewHandler(b *book.Book, sc *search.Client, dialogs *ui.Dialogs, log *zap.Logger, opts ...Option) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Handler{book: b, search: sc, dialogs: dialogs, log: log, mux: http.NewServeMux()}
	for _, opt := range opts {
		opt(h)
	}
	h.mux.HandleFunc("GET /book", h.handleBook)
	h.mux.HandleFunc("GET /layout/{index}", h.handleLayout)
	h.mux.HandleFunc("GET /pages/{index}", h.handlePage)
	h.mux.HandleFunc("GET /fulltext/{index}", h.handleFullText)
	h.mux.HandleFunc("GET /search", h.handleSearch)
	h.mux.HandleFunc("GET /info", h.handleInfo)
	h.mux.HandleFunc("GET /share", h.handleShare)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleBook(w http.ResponseWriter, r *http.Request) {
	cfg := h.book.Layout().Configuration()
	chapters := h.book.Chapters()
	resp := BookResponse{
		Title:         h.book.Title(),
		PageCount:     h.book.PageCount(),
		Direction:     cfg.Direction.String(),
		Spine:         cfg.Spine(),
		ImagesURI:     h.book.Settings().ImagesFolderURI,
		Mode:          h.book.Settings().Mode,
		SearchEnabled: h.book.SearchEnabled(),
		NavTitles:     ui.NavigationTitles(cfg.Direction),
		Chapters:      chapters,
		ChaptersHTML:  make([]string, 0, len(chapters)),
		EmbedCode:     ui.EmbedCode(),
	}
	for _, c := range chapters {
		frag, err := ui.ChapterMarker(c)
		if err != nil {
			h.fail(w, http.StatusInternalServerError, err)
			return
		}
		resp.ChaptersHTML = append(resp.ChaptersHTML, frag)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleLayout(w http.ResponseWriter, r *http.Request) {
	index, ok := h.index(w, r)
	if !ok {
		return
	}
	side, err := h.book.Layout().PageSide(index)
	if err != nil {
		h.fail(w, statusFor(err), err)
		return
	}
	sp, err := h.book.SpreadPages(index)
	if err != nil {
		h.fail(w, statusFor(err), err)
		return
	}
	resp := LayoutResponse{Index: index, Side: side.String(), Spread: sp}
	if p := sp.Partner(index); layout.InRange(p, h.book.PageCount()) {
		resp.Facing = &p
	}
	if h.prefetch > 0 {
		go h.warm(context.WithoutCancel(r.Context()), index)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// warm resolves the dimensions of the pages around index so the next page
// turns do not wait on the image server.
func (h *Handler) warm(ctx context.Context, index int) {
	ctx, cancel := context.WithTimeout(ctx, prefetchTimeout)
	defer cancel()
	if err := h.book.Prefetch(ctx, h.book.SpreadNeighbourhood(index), h.prefetch); err != nil {
		h.log.Debug("Neighbourhood prefetch incomplete", zap.Int("index", index), zap.Error(err))
	}
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	index, ok := h.index(w, r)
	if !ok {
		return
	}
	uri, err := h.book.PageURI(index)
	if err != nil {
		h.fail(w, statusFor(err), err)
		return
	}
	dims, err := h.book.PageDimensions(r.Context(), index)
	if err != nil {
		h.fail(w, statusFor(err), err)
		return
	}
	resp := PageResponse{
		Index:      index,
		Label:      h.book.PageName(index),
		NavLabel:   h.book.NavPageNum(index),
		ImageURI:   uri,
		Dimensions: dims,
	}
	if pid, ok := h.book.PID(index); ok {
		resp.PID = pid
		resp.TextURI = h.book.TextURI(pid)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleFullText(w http.ResponseWriter, r *http.Request) {
	index, ok := h.index(w, r)
	if !ok {
		return
	}
	mode := ui.Mode(h.book.Settings().Mode)
	if m := r.URL.Query().Get("mode"); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil || n < 1 || n > 3 {
			h.fail(w, http.StatusBadRequest, errors.New("mode must be 1, 2 or 3"))
			return
		}
		mode = ui.Mode(n)
	}
	frag, err := h.dialogs.FullText(r.Context(), mode, index)
	if err != nil {
		h.fail(w, statusFor(err), err)
		return
	}
	h.writeHTML(w, frag)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		h.fail(w, http.StatusBadRequest, errors.New("missing search term"))
		return
	}
	res, err := h.search.Search(r.Context(), term)
	if err != nil {
		h.fail(w, statusFor(err), err)
		return
	}
	markers := res.Markers(h.book)
	resp := SearchResponse{
		Markers: markers,
		HTML:    make([]string, 0, len(markers)),
		Message: res.Message(),
	}
	for _, m := range markers {
		frag, err := ui.SearchMarker(m)
		if err != nil {
			h.fail(w, http.StatusInternalServerError, err)
			return
		}
		resp.HTML = append(resp.HTML, frag)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	frag, err := h.dialogs.Info()
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	h.writeHTML(w, frag)
}

func (h *Handler) handleShare(w http.ResponseWriter, r *http.Request) {
	page := r.URL.Query().Get("url")
	if page == "" {
		page = r.Referer()
	}
	frag, err := h.dialogs.Share(page)
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	h.writeHTML(w, frag)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		h.fail(w, http.StatusBadRequest, errors.New("page index must be an integer"))
		return 0, false
	}
	return index, true
}

// statusFor maps domain errors onto HTTP status codes. Anything unknown
// came from the repository.
func statusFor(err error) int {
	switch {
	case errors.Is(err, book.ErrNoPage):
		return http.StatusNotFound
	case errors.Is(err, layout.ErrInvalidConfiguration):
		return http.StatusUnprocessableEntity
	case errors.Is(err, search.ErrSearchDisabled):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func (h *Handler) fail(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.log.Error("Request failed", zap.Int("status", status), zap.Error(err))
	} else {
		h.log.Debug("Request rejected", zap.Int("status", status), zap.Error(err))
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn("Writing response", zap.Error(err))
	}
}

func (h *Handler) writeHTML(w http.ResponseWriter, frag string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(frag)); err != nil {
		h.log.Warn("Writing response", zap.Error(err))
	}
}
