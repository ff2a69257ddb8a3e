package router

import (
	"net/http"

	"github.com/chapterone/storefront-core/internal/api/handlers"
	"github.com/chapterone/storefront-core/internal/api/handlers/search"
	"github.com/chapterone/storefront-core/internal/api/handlers/storefront"
	"github.com/chapterone/storefront-core/internal/store/snapshot"
	"github.com/chapterone/storefront-core/internal/upstream"
	"github.com/redis/go-redis/v9"
)

func Router(snap *snapshot.Holder, rdb *redis.Client, client *upstream.Client) http.Handler {
	mux := http.NewServeMux()
	h := storefront.New(snap, rdb, client)

	// Root + health
	mux.HandleFunc("GET /", handlers.RootHandler)
	mux.HandleFunc("GET /healthz", handlers.Healthz(snap))

	// Keep legacy /catalog -> /catalog/
	mux.HandleFunc("GET /catalog", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/catalog/", http.StatusMovedPermanently)
	})

	// Catalog views (method-specific + 1.22 patterns)
	mux.HandleFunc("GET /catalog/", h.List)
	mux.HandleFunc("GET /catalog/discover", h.Discover)
	mux.HandleFunc("GET /catalog/featured", h.Featured)

	// Typeahead over the snapshot
	mux.HandleFunc("GET /search/suggest", search.Suggest(snap))

	// Per-user book state + view tracking
	mux.HandleFunc("GET /books/{id}/membership", h.Membership)
	mux.HandleFunc("POST /books/{id}/view", h.View)

	// Operational endpoints for the platform
	MountInternal(mux, h)

	return mux
}
