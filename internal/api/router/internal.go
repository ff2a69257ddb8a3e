package router

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/chapterone/storefront-core/internal/api/apperr"
	"github.com/chapterone/storefront-core/internal/api/handlers/storefront"
)

// MountInternal wires the /internal/* endpoints the platform (not browsers)
// calls, behind a shared-secret header. With INTERNAL_TOKEN unset the gate
// is open, which is fine for local dev and wrong for anything else;
// HardeningWarnings nags about it in production.
func MountInternal(mux *http.ServeMux, h *storefront.Handler) {
	gate := func(next http.HandlerFunc) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			want := os.Getenv("INTERNAL_TOKEN")
			if want != "" {
				got := r.Header.Get("X-Internal-Token")
				if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
					apperr.WriteStatus(w, r, http.StatusForbidden, "Forbidden", "")
					return
				}
			}
			next(w, r)
		})
	}

	mux.Handle("POST /internal/invalidate", gate(h.Invalidate))
}
