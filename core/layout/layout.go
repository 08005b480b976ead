// Package layout decides where pages sit in a two-page view.
// It maps a page index to the side it renders on and to the pair of
// indices forming its visible spread, for both reading directions.
package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidConfiguration is returned when the book geometry or reading
// direction cannot drive the layout.
var ErrInvalidConfiguration = errors.New("invalid layout configuration")

// spineAspectRatio is the height/width ratio above which the first scanned
// image is treated as the book's spine rather than its cover.
const spineAspectRatio = 2.5

// Direction is the reading direction of a book.
type Direction int

const (
	LTR Direction = iota
	RTL
)

// ParseDirection accepts the page progression values used by repository
// settings ("lr", "rl") and their long forms. Anything else is rejected.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lr", "ltr":
		return LTR, nil
	case "rl", "rtl":
		return RTL, nil
	default:
		return LTR, fmt.Errorf("%w: unknown page progression %q", ErrInvalidConfiguration, s)
	}
}

func (d Direction) String() string {
	if d == RTL {
		return "rl"
	}
	return "lr"
}

// Side is the half of a spread a page renders on.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "R"
	}
	return "L"
}

// Configuration is the book-level input of the resolver.
// It is built once and never changed.
type Configuration struct {
	PageCount       int
	Direction       Direction
	FirstPageWidth  float64
	FirstPageHeight float64
}

// NewConfiguration validates and returns a Configuration.
// A zero first page width is accepted here; PageSide reports it.
func NewConfiguration(pageCount int, dir Direction, firstWidth, firstHeight float64) (Configuration, error) {
	if pageCount < 0 {
		return Configuration{}, fmt.Errorf("%w: negative page count %d", ErrInvalidConfiguration, pageCount)
	}
	if dir != LTR && dir != RTL {
		return Configuration{}, fmt.Errorf("%w: unknown direction %d", ErrInvalidConfiguration, int(dir))
	}
	for _, v := range []float64{firstWidth, firstHeight} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return Configuration{}, fmt.Errorf("%w: bad first page geometry %vx%v", ErrInvalidConfiguration, firstWidth, firstHeight)
		}
	}
	return Configuration{
		PageCount:       pageCount,
		Direction:       dir,
		FirstPageWidth:  firstWidth,
		FirstPageHeight: firstHeight,
	}, nil
}

// Spread holds the indices shown together in a two-page view.
// Either member may fall outside the book; see InRange.
type Spread struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

// Partner returns the member of the spread that is not index.
func (s Spread) Partner(index int) int {
	if s.Left == index {
		return s.Right
	}
	return s.Left
}

// InRange reports whether index names a page of a book with pageCount pages.
// Spread members outside the book mean "no facing page".
func InRange(index, pageCount int) bool {
	return index >= 0 && index < pageCount
}

// Spine reports whether the first page is narrow enough to be the book's
// spine rather than its cover.
func (c Configuration) Spine() bool {
	return c.FirstPageWidth > 0 && c.FirstPageHeight/c.FirstPageWidth > spineAspectRatio
}

// Resolver computes page sides and spreads for one book.
type Resolver struct {
	cfg Configuration
}

// New creates a Resolver for cfg.
func New(cfg Configuration) *Resolver {
	return &Resolver{cfg: cfg}
}

// Configuration returns the configuration the resolver was built with.
func (r *Resolver) Configuration() Configuration {
	return r.cfg
}

// PageSide returns the side index renders on. Any integer is accepted and
// handled by parity alone.
func (r *Resolver) PageSide(index int) (Side, error) {
	if r.cfg.FirstPageWidth == 0 {
		return Left, fmt.Errorf("%w: first page has zero width", ErrInvalidConfiguration)
	}
	// Spine books keep the cover mapping; see Configuration.Spine.
	// TODO: confirm with the collections team whether spine books should flip parity.
	return coverSide(r.cfg.Direction, index&1 == 0), nil
}

func coverSide(dir Direction, even bool) Side {
	if dir == RTL {
		if even {
			return Left
		}
		return Right
	}
	if even {
		return Right
	}
	return Left
}

// SpreadIndices returns the spread containing index. Exactly one member
// equals index; the other is its neighbour in reading order.
func (r *Resolver) SpreadIndices(index int) (Spread, error) {
	side, err := r.PageSide(index)
	if err != nil {
		return Spread{}, err
	}
	if r.cfg.Direction == RTL {
		if side == Right {
			return Spread{Left: index + 1, Right: index}, nil
		}
		return Spread{Left: index, Right: index - 1}, nil
	}
	if side == Left {
		return Spread{Left: index, Right: index + 1}, nil
	}
	return Spread{Left: index - 1, Right: index}, nil
}
