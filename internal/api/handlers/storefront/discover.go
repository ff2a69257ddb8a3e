package storefront

import (
	"net/http"

	"github.com/chapterone/storefront-core/internal/api/httpx"
	"github.com/chapterone/storefront-core/internal/store/discover"
)

// Discover is GET /catalog/discover: the homepage sections. Limits are
// tunable per block but clamped so a client cannot request the whole catalog
// shuffled.
func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lim := discover.DefaultLimits()
	lim.Featured = clamp(parseInt(q.Get("featured"), lim.Featured), 1, 24)
	lim.Newest = clamp(parseInt(q.Get("newest"), lim.Newest), 1, 24)
	lim.FreePicks = clamp(parseInt(q.Get("free"), lim.FreePicks), 1, 24)

	view := h.snap.Current()
	sections := discover.Build(r.Context(), view.Books, h.rdb, lim)
	httpx.OK(w, sections)
}

// Featured is GET /catalog/featured: just the daily featured sample, for
// surfaces that embed it standalone.
func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	lim := discover.DefaultLimits()
	lim.Featured = clamp(parseInt(r.URL.Query().Get("limit"), lim.Featured), 1, 24)
	lim.Newest, lim.FreePicks = 1, 1

	view := h.snap.Current()
	sections := discover.Build(r.Context(), view.Books, h.rdb, lim)
	httpx.OK(w, sections.Featured)
}
