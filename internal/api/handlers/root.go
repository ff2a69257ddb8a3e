package handlers

import (
	"net/http"
	"time"

	"github.com/chapterone/storefront-core/internal/api/httpx"
	"github.com/chapterone/storefront-core/internal/store/snapshot"
)

// RootHandler identifies the service.
func RootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	httpx.OK(w, map[string]string{"service": "chapterone-storefront", "docs": "/catalog/"})
}

// Healthz reports liveness plus how fresh the catalog snapshot is; a
// storefront serving a day-old snapshot is technically up but worth an alert.
func Healthz(snap *snapshot.Holder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cur := snap.Current()
		httpx.OK(w, map[string]any{
			"books":       len(cur.Books),
			"snapshot_at": cur.FetchedAt,
			"stale_secs":  int(time.Since(cur.FetchedAt).Seconds()),
		})
	}
}
