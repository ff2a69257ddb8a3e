package storefront

import (
	"net/http"

	"github.com/chapterone/storefront-core/internal/api/apperr"
	"github.com/chapterone/storefront-core/internal/api/httpx"
	"github.com/chapterone/storefront-core/internal/catalog"
	"github.com/chapterone/storefront-core/internal/pagefetch"
	"github.com/chapterone/storefront-core/internal/validate"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// List is GET /catalog/: filter + sort the snapshot, then page the result.
// Position comes from an opaque cursor when present, falling back to a bare
// offset param for clients that track it themselves.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, offset := validate.ClampLimitOffset(q.Get("limit"), q.Get("offset"), defaultPageSize, maxPageSize)
	if token := q.Get("cursor"); token != "" {
		cur, err := pagefetch.DecodeCursor(token)
		if err != nil {
			apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "malformed cursor")
			return
		}
		offset = cur.Offset
		if cur.Size > 0 {
			limit = clamp(cur.Size, 1, maxPageSize)
		}
	}

	view := h.snap.Current()
	filtered := catalog.FilterAndSort(view.Books, criteriaFromQuery(r))

	total := len(filtered)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := filtered[offset:end]

	meta := httpx.PageMeta{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: end < total,
	}
	if meta.HasMore {
		meta.NextCursor = pagefetch.Cursor{Offset: end, Size: limit}.Encode()
	}
	httpx.OKPage(w, page, meta)
}
