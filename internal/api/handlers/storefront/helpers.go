package storefront

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/chapterone/storefront-core/internal/catalog"
	"github.com/chapterone/storefront-core/internal/validate"
)

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// criteriaFromQuery maps the storefront's query params onto filter criteria.
// "q" and "search" are both accepted; unknown sort keys and price classes
// fall back to "no filter" rather than erroring.
func criteriaFromQuery(r *http.Request) catalog.Criteria {
	q := r.URL.Query()
	search := strings.TrimSpace(q.Get("search"))
	if search == "" {
		search = strings.TrimSpace(q.Get("q"))
	}
	search = validate.BoundSearchTerm(search)
	return catalog.Criteria{
		Search:   search,
		Category: strings.TrimSpace(q.Get("category")),
		Price:    catalog.ParsePriceClass(q.Get("price")),
		Sort:     catalog.ParseSortKey(q.Get("sort")),
		Dir:      catalog.ParseSortDir(q.Get("order")),
	}
}
