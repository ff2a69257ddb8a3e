package storefront

import (
	"net/http"
	"strings"

	"github.com/chapterone/storefront-core/internal/api/httpx"
	"github.com/chapterone/storefront-core/internal/store/discover"
)

// Invalidate is POST /internal/invalidate: the platform calls it after
// catalog writes. The snapshot refresh is debounced, the cache version bump
// is immediate so stale discover sections stop being served right away.
func (h *Handler) Invalidate(w http.ResponseWriter, r *http.Request) {
	reason := strings.TrimSpace(r.URL.Query().Get("reason"))
	if reason == "" {
		reason = "upstream write"
	}
	if err := discover.BumpVersion(r.Context(), h.rdb); err != nil {
		// keep going; the debounced refresh will still replace the snapshot
		httpx.WriteJSON(w, http.StatusAccepted, map[string]any{"status": "success", "warning": "cache version bump failed"})
		h.snap.Invalidate(reason)
		return
	}
	h.snap.Invalidate(reason)
	httpx.WriteJSON(w, http.StatusAccepted, map[string]any{"status": "success"})
}
