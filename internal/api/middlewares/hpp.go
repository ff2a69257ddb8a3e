package middlewares

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// HPP collapses duplicated query/body params to their first value and drops
// anything outside the whitelist. Filter params arrive straight from browser
// URL bars; ?price=free&price=paid should mean "free", not whichever the
// handler happens to read last.
type HPPOptions struct {
	CheckQuery                  bool
	CheckBody                   bool
	CheckBodyOnlyForContentType string
	Whitelist                   []string
}

func HPP(opts HPPOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.CheckBody && r.Method == http.MethodPost &&
				strings.Contains(r.Header.Get("Content-Type"), opts.CheckBodyOnlyForContentType) {
				if err := r.ParseForm(); err == nil {
					collapseParams(r.Form, opts.Whitelist)
				}
			}
			if opts.CheckQuery {
				q := r.URL.Query()
				collapseParams(q, opts.Whitelist)
				r.URL.RawQuery = q.Encode()
			}
			next.ServeHTTP(w, r)
		})
	}
}

// collapseParams keeps the first value of each whitelisted param and removes
// everything else in place.
func collapseParams(values url.Values, whitelist []string) {
	for k, v := range values {
		if !slices.Contains(whitelist, k) {
			delete(values, k)
			continue
		}
		if len(v) > 1 {
			values[k] = v[:1]
		}
	}
}

func DefaultHPPOptions() HPPOptions {
	return HPPOptions{
		CheckQuery:                  true,
		CheckBody:                   true,
		CheckBodyOnlyForContentType: "application/x-www-form-urlencoded",
		Whitelist: []string{
			// General / shared
			"id", "book_id", "page", "limit", "offset", "cursor",

			// Catalog filtering
			"search", "q", "category", "price", "tags",
			"sort", "order",

			// Discover sections
			"featured", "newest", "free",

			// Operational
			"reason",
		},
	}
}
