package catalog

import "strings"

// CategoryAll is the sentinel the storefront sends when no category filter is
// active.
const CategoryAll = "All"

type PriceClass string

const (
	PriceAll  PriceClass = "all"
	PriceFree PriceClass = "free"
	PricePaid PriceClass = "paid"
)

// ParsePriceClass maps a query-param value onto a PriceClass; anything
// unrecognized means no price filter.
func ParsePriceClass(s string) PriceClass {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free":
		return PriceFree
	case "paid":
		return PricePaid
	default:
		return PriceAll
	}
}

type SortKey string

const (
	SortNone   SortKey = ""
	SortTitle  SortKey = "title"
	SortAuthor SortKey = "author"
	SortRating SortKey = "rating"
	SortDate   SortKey = "dateAdded"
)

// ParseSortKey accepts the storefront spellings ("date_added" and "created_at"
// are aliases for dateAdded). Unknown keys sort nothing.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "title":
		return SortTitle
	case "author":
		return SortAuthor
	case "rating":
		return SortRating
	case "dateadded", "date_added", "created_at", "date":
		return SortDate
	default:
		return SortNone
	}
}

type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

func ParseSortDir(s string) SortDir {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return Desc
	}
	return Asc
}

// Criteria is the ephemeral filter/sort request. The zero value filters
// nothing and preserves input order.
type Criteria struct {
	Search   string
	Category string
	Price    PriceClass
	Sort     SortKey
	Dir      SortDir
}

func (c Criteria) categoryActive() bool {
	cat := strings.TrimSpace(c.Category)
	return cat != "" && !strings.EqualFold(cat, CategoryAll)
}
