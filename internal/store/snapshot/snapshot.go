// Package snapshot owns the in-memory copy of the full catalog. Readers get
// an immutable *Snapshot and never see in-place mutation; refresh builds a
// whole new snapshot and swaps the pointer. Invalidation events from the
// platform are debounced so a burst of writes costs one refetch.
package snapshot

import (
	"context"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/chapterone/storefront-core/internal/catalog"
	"github.com/chapterone/storefront-core/internal/debounce"
	"github.com/chapterone/storefront-core/internal/pagefetch"
	"github.com/chapterone/storefront-core/internal/upstream"
)

type Snapshot struct {
	Books     []catalog.Book
	FetchedAt time.Time
}

type Holder struct {
	client    *upstream.Client
	pageSize  int
	refreshTO time.Duration
	cur       atomic.Pointer[Snapshot]
	deb       *debounce.Debouncer[string]
	onRefresh func() // ran after a successful swap (cache version bump)
}

// NewHolder builds a holder that coalesces invalidations over the quiet
// window. onRefresh may be nil.
func NewHolder(client *upstream.Client, pageSize int, quiet time.Duration, onRefresh func()) *Holder {
	h := &Holder{
		client:    client,
		pageSize:  pageSize,
		refreshTO: 30 * time.Second,
		onRefresh: onRefresh,
	}
	h.cur.Store(&Snapshot{Books: []catalog.Book{}})
	h.deb = debounce.New(quiet, func(reason string) {
		ctx, cancel := context.WithTimeout(context.Background(), h.refreshTO)
		defer cancel()
		if err := h.Refresh(ctx); err != nil {
			log.Printf("[snapshot] refresh (%s) failed: %v", reason, err)
		}
	})
	return h
}

// Current never returns nil; before the first refresh it is an empty catalog.
func (h *Holder) Current() *Snapshot { return h.cur.Load() }

// Refresh drains the catalog through the pager and swaps in the new snapshot.
// On failure the previous snapshot stays current.
func (h *Holder) Refresh(ctx context.Context) error {
	pager := pagefetch.New(h.client.Books, h.pageSize)
	books, err := pager.All(ctx)
	if err != nil {
		return err
	}
	h.cur.Store(&Snapshot{Books: books, FetchedAt: time.Now().UTC()})
	dbg("refreshed: %d books", len(books))
	if h.onRefresh != nil {
		h.onRefresh()
	}
	return nil
}

// Invalidate schedules a debounced refresh. reason is only for logs.
func (h *Holder) Invalidate(reason string) { h.deb.Call(reason) }

// Close cancels any pending refresh. Pending work never fires after Close.
func (h *Holder) Close() { h.deb.Cancel() }

func dbg(format string, args ...any) {
	if os.Getenv("SNAPSHOT_DEBUG") == "1" {
		log.Printf("[snapshot] "+format, args...)
	}
}
