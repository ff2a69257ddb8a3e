package storefront

import (
	"context"
	"net/http"
	"sync"

	"github.com/chapterone/storefront-core/internal/api/apperr"
	"github.com/chapterone/storefront-core/internal/api/httpx"
	"github.com/chapterone/storefront-core/internal/fingerprint"
	"github.com/chapterone/storefront-core/internal/membership"
	"github.com/chapterone/storefront-core/internal/upstream"
)

type shelfState struct {
	membership.State
	Owned     bool `json:"owned"`
	Removable bool `json:"removable"`
}

// Membership is GET /books/{id}/membership: where does this book sit for the
// calling user. The four collections are fetched concurrently; a 404 from
// the platform counts as an empty collection, anything else fails the
// request.
func (h *Handler) Membership(w http.ResponseWriter, r *http.Request) {
	bookID := r.PathValue("id")
	if bookID == "" {
		apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "missing book id")
		return
	}
	token := upstream.BearerFromHeader(r.Header.Get("Authorization"))
	if err := upstream.ScreenToken(token); err != nil {
		apperr.WriteStatus(w, r, http.StatusUnauthorized, "Unauthorized", err.Error())
		return
	}

	type fetch struct {
		name string
		fn   func(context.Context, string) ([]fingerprint.Ref, error)
		out  []fingerprint.Ref
		err  error
	}
	fetches := []*fetch{
		{name: "library", fn: h.client.Library},
		{name: "wishlist", fn: h.client.Wishlist},
		{name: "cart", fn: h.client.Cart},
		{name: "purchases", fn: h.client.Purchases},
	}

	var wg sync.WaitGroup
	for _, f := range fetches {
		wg.Add(1)
		go func(f *fetch) {
			defer wg.Done()
			f.out, f.err = f.fn(r.Context(), token)
		}(f)
	}
	wg.Wait()

	for _, f := range fetches {
		if f.err == nil {
			continue
		}
		if fe, ok := upstream.AsFetchError(f.err); ok && fe.Status == http.StatusNotFound {
			f.out = nil // a user with no collection yet is an empty collection
			continue
		}
		apperr.HandleUpstreamError(w, r, f.err, "Failed to load "+f.name)
		return
	}

	state := membership.Resolve(bookID, fetches[0].out, fetches[1].out, fetches[2].out)
	owned := membership.Owned(bookID, fetches[3].out)
	httpx.OK(w, shelfState{
		State:     state,
		Owned:     owned,
		Removable: !owned,
	})
}
