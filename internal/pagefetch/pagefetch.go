// Package pagefetch coordinates incremental catalog loading. A Pager walks an
// offset-paged source one page at a time, accumulating results in fetch order
// and tracking an explicit state machine so callers can distinguish "more
// pages exist" from "done" from "last fetch failed, retry if you want".
package pagefetch

import (
	"context"
	"errors"
	"fmt"

	"github.com/chapterone/storefront-core/internal/catalog"
)

type State int

const (
	Idle State = iota
	Fetching
	HasMore
	Exhausted
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Fetching:
		return "fetching"
	case HasMore:
		return "has_more"
	case Exhausted:
		return "exhausted"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrExhausted is returned by Next once the source has no further pages.
var ErrExhausted = errors.New("pagefetch: no more pages")

// PageFunc fetches one page. A short or empty result marks the end of the
// collection; a non-nil error marks a transport failure the caller may retry.
type PageFunc func(ctx context.Context, offset, limit int) ([]catalog.Book, error)

type Pager struct {
	fetch    PageFunc
	pageSize int

	state  State
	items  []catalog.Book
	offset int
	err    error
}

const defaultPageSize = 20

func New(fetch PageFunc, pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Pager{fetch: fetch, pageSize: pageSize, state: Idle}
}

// Next requests the next unfetched page and returns just that page. The
// accumulated view is available via Items. Calling Next after exhaustion
// returns ErrExhausted without touching the source; calling it in Failed
// retries the same offset, so an already-fetched page is never re-requested.
func (p *Pager) Next(ctx context.Context) ([]catalog.Book, error) {
	switch p.state {
	case Exhausted:
		return nil, ErrExhausted
	case Fetching:
		return nil, fmt.Errorf("pagefetch: fetch already in progress")
	}

	p.state = Fetching
	page, err := p.fetch(ctx, p.offset, p.pageSize)
	if err != nil {
		p.state = Failed
		p.err = fmt.Errorf("page at offset %d: %w", p.offset, err)
		return nil, p.err
	}

	p.err = nil
	p.items = append(p.items, page...)
	p.offset += len(page)
	if len(page) < p.pageSize {
		p.state = Exhausted
	} else {
		p.state = HasMore
	}
	return page, nil
}

// All drains the source from the current position and returns the full
// accumulated collection. Used by the snapshot refresher.
func (p *Pager) All(ctx context.Context) ([]catalog.Book, error) {
	for p.state != Exhausted {
		if _, err := p.Next(ctx); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return p.Items(), nil
}

// Items returns a copy of everything fetched so far, in page order.
func (p *Pager) Items() []catalog.Book {
	out := make([]catalog.Book, len(p.items))
	copy(out, p.items)
	return out
}

func (p *Pager) State() State { return p.state }

// Err is the error from the most recent failed fetch, nil otherwise.
func (p *Pager) Err() error { return p.err }

// HasMore reports whether another Next call would hit the source.
func (p *Pager) HasMore() bool { return p.state == Idle || p.state == HasMore || p.state == Failed }

// Offset is the position the next fetch would start from.
func (p *Pager) Offset() int { return p.offset }

// Reset discards accumulated items and returns the pager to Idle.
func (p *Pager) Reset() {
	p.state = Idle
	p.items = nil
	p.offset = 0
	p.err = nil
}
