package storefront

import (
	"net/http"

	"github.com/chapterone/storefront-core/internal/api/apperr"
	"github.com/chapterone/storefront-core/internal/api/httpx"
	"github.com/chapterone/storefront-core/internal/metrics/viewqueue"
)

// View is POST /books/{id}/view: best-effort view tracking. Always 202;
// the queue drops on overload and that is fine for metrics.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	bookID := r.PathValue("id")
	if bookID == "" {
		apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "missing book id")
		return
	}
	viewqueue.Enqueue(bookID)
	httpx.WriteJSON(w, http.StatusAccepted, map[string]any{"status": "success"})
}
