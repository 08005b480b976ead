package book

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// indexQueue is a FIFO of page indices that drops duplicates.
type indexQueue struct {
	items   []int
	visited map[int]bool
	idx     int // current read position
}

func newIndexQueue() *indexQueue {
	return &indexQueue{visited: make(map[int]bool)}
}

// add enqueues index unless it was seen before.
func (q *indexQueue) add(index int) {
	if q.visited[index] {
		return
	}
	q.visited[index] = true
	q.items = append(q.items, index)
}

func (q *indexQueue) hasNext() bool {
	return q.idx < len(q.items)
}

func (q *indexQueue) next() int {
	index := q.items[q.idx]
	q.idx++
	return index
}

// SpreadNeighbourhood lists the pages a reader at index is likely to see
// next: both members of the current spread and of the spreads on either side.
func (b *Book) SpreadNeighbourhood(index int) []int {
	q := newIndexQueue()
	for _, i := range []int{index, index - 2, index + 2} {
		sp, err := b.SpreadPages(i)
		if err != nil {
			continue
		}
		if sp.HasLeft {
			q.add(sp.Left)
		}
		if sp.HasRight {
			q.add(sp.Right)
		}
	}
	return q.items
}

// Prefetch resolves the dimensions of the given pages with at most workers
// lookups in flight. Duplicate and out of range indices are skipped. Every
// failed lookup is reported; successful ones stay cached either way.
func (b *Book) Prefetch(ctx context.Context, indices []int, workers int) error {
	q := newIndexQueue()
	for _, i := range indices {
		if i >= 0 && i < b.PageCount() {
			q.add(i)
		}
	}
	if workers < 1 {
		workers = 1
	}

	errs := make([]error, len(q.items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for n := 0; q.hasNext(); n++ {
		index := q.next()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[n] = fmt.Errorf("page %d: %w", index, err)
				return nil
			}
			if _, err := b.PageDimensions(ctx, index); err != nil {
				errs[n] = err
			}
			return nil
		})
	}
	_ = g.Wait()

	err := multierr.Combine(errs...)
	b.log.Debug("Prefetched page dimensions",
		zap.Int("pages", len(q.items)), zap.Int("failed", len(multierr.Errors(err))))
	return err
}
