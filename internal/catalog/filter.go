package catalog

import (
	"slices"
	"strings"
)

// FilterAndSort derives an ordered view of books for the given criteria.
// The input slice is never mutated; the result is always a fresh slice.
// Filters compose with AND (search, then category, then price); with no sort
// key the surviving books keep their input order, otherwise the sort is
// stable so equal keys also keep it.
func FilterAndSort(books []Book, c Criteria) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if !matchesSearch(b, c.Search) {
			continue
		}
		if c.categoryActive() && !matchesCategory(b, c.Category) {
			continue
		}
		if !matchesPrice(b, c.Price) {
			continue
		}
		out = append(out, b)
	}
	sortBooks(out, c.Sort, c.Dir)
	return out
}

// matchesSearch is an any-of match over title, author, description and genre.
func matchesSearch(b Book, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	return foldContains(b.Title, term) ||
		foldContains(b.Author, term) ||
		foldContains(b.Description, term) ||
		foldContains(b.Genre, term)
}

// matchesCategory accepts a hit on either the genre or the alternate
// category field.
func matchesCategory(b Book, cat string) bool {
	return strings.EqualFold(b.Genre, cat) || strings.EqualFold(b.Category, cat)
}

func matchesPrice(b Book, pc PriceClass) bool {
	switch pc {
	case PriceFree:
		return b.Free
	case PricePaid:
		return !b.Free
	default:
		return true
	}
}

func sortBooks(books []Book, key SortKey, dir SortDir) {
	if key == SortNone {
		return
	}
	sign := 1
	if dir == Desc {
		sign = -1
	}
	slices.SortStableFunc(books, func(a, b Book) int {
		var c int
		switch key {
		case SortTitle:
			c = strings.Compare(Fold(a.Title), Fold(b.Title))
		case SortAuthor:
			c = strings.Compare(Fold(a.Author), Fold(b.Author))
		case SortRating:
			// missing ratings decode to 0 and naturally sort last on desc
			switch {
			case a.Rating < b.Rating:
				c = -1
			case a.Rating > b.Rating:
				c = 1
			}
		case SortDate:
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		return sign * c
	})
}
