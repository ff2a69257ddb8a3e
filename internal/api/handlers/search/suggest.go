package search

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/chapterone/storefront-core/internal/catalog"
	"github.com/chapterone/storefront-core/internal/store/snapshot"
)

type SuggestItem struct {
	Type  string  `json:"type"` // "book" | "author"
	Score float64 `json:"-"`    // internal ranking only

	// Common
	Label *string `json:"label,omitempty"` // prebuilt display text for UI
	URL   *string `json:"url,omitempty"`   // /books/{id} or /catalog/?search=

	// Book fields
	ID         *string `json:"id,omitempty"`
	Title      *string `json:"title,omitempty"`
	AuthorName *string `json:"authorName,omitempty"`

	// Author fields
	Name       *string `json:"name,omitempty"`
	BooksCount *int    `json:"books_count,omitempty"`
}

func displayKey(it SuggestItem) string {
	if it.Label != nil {
		return *it.Label
	}
	if it.Name != nil {
		return *it.Name
	}
	if it.Title != nil {
		return *it.Title
	}
	return ""
}

// Suggest serves typeahead over the in-memory snapshot: books by title or
// author, plus author entries aggregated from the catalog. Scoring favors
// prefix hits over substring hits; short queries return nothing rather than
// noise.
func Suggest(snap *snapshot.Holder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		q := strings.TrimSpace(r.URL.Query().Get("q"))
		if len([]rune(q)) < 2 {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status": "success", "count": 0, "data": []any{},
			})
			return
		}

		limit := 10
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 20 {
				limit = n
			}
		}

		books := snap.Current().Books

		var items []SuggestItem

		// --- BOOKS (title or author hit) ---
		for i := range books {
			b := &books[i]
			score := maxScore(matchScore(b.Title, q), matchScore(b.Author, q))
			if score == 0 {
				continue
			}
			lbl := b.Title
			if b.Author != "" {
				lbl = b.Title + " — " + b.Author
			}
			url := "/books/" + b.ID
			items = append(items, SuggestItem{
				Type:       "book",
				Score:      score,
				ID:         &b.ID,
				Title:      &b.Title,
				AuthorName: &b.Author,
				Label:      &lbl,
				URL:        &url,
			})
		}

		// --- AUTHORS (aggregated from the snapshot) ---
		counts := map[string]int{}
		for i := range books {
			if a := strings.TrimSpace(books[i].Author); a != "" {
				counts[a]++
			}
		}
		for name, n := range counts {
			score := matchScore(name, q)
			if score == 0 {
				continue
			}
			lbl := name
			url := "/catalog/?search=" + strings.ReplaceAll(name, " ", "+")
			items = append(items, SuggestItem{
				Type:       "author",
				Score:      score,
				Name:       &name,
				Label:      &lbl,
				URL:        &url,
				BooksCount: &n,
			})
		}

		// merge + take top N
		sort.Slice(items, func(i, j int) bool {
			if items[i].Score == items[j].Score {
				if items[i].Type != items[j].Type {
					return items[i].Type == "book"
				}
				return strings.ToLower(displayKey(items[i])) < strings.ToLower(displayKey(items[j]))
			}
			return items[i].Score > items[j].Score
		})
		if len(items) > limit {
			items = items[:limit]
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"count":  len(items),
			"data":   items,
		})
	}
}

// matchScore: 1.0 prefix hit, 0.6 word-prefix hit, 0.3 substring hit,
// 0 otherwise. Folding makes it case- and accent-insensitive.
func matchScore(field, q string) float64 {
	f := catalog.Fold(field)
	needle := catalog.Fold(q)
	if f == "" || needle == "" {
		return 0
	}
	if strings.HasPrefix(f, needle) {
		return 1.0
	}
	for _, word := range strings.Fields(f) {
		if strings.HasPrefix(word, needle) {
			return 0.6
		}
	}
	if strings.Contains(f, needle) {
		return 0.3
	}
	return 0
}

func maxScore(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
