package discover

import "github.com/chapterone/storefront-core/internal/catalog"

type Limits struct {
	Featured, Newest, FreePicks int
}

func DefaultLimits() Limits {
	return Limits{Featured: 8, Newest: 10, FreePicks: 6}
}

// Sections is the discover-surface payload: a daily-rotating featured sample,
// the newest additions, and a shuffled handful of free books.
type Sections struct {
	Featured  []catalog.Book `json:"featured"`
	Newest    []catalog.Book `json:"newest"`
	FreePicks []catalog.Book `json:"free_picks"`
}
