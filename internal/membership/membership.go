// Package membership cross-references a book against the three user-owned
// collections. All functions are pure reads over snapshots the caller already
// fetched; nil collections are valid and simply contribute false.
package membership

import "github.com/chapterone/storefront-core/internal/fingerprint"

// State is the composite per-(user, book) answer the storefront renders
// buttons from.
type State struct {
	InLibrary  bool `json:"inLibrary"`
	InWishlist bool `json:"inWishlist"`
	InCart     bool `json:"inCart"`
}

// Resolve tests the book id against each collection independently. Entries
// whose fingerprint cannot be resolved are skipped rather than matched.
func Resolve(bookID string, library, wishlist, cart []fingerprint.Ref) State {
	if bookID == "" {
		return State{}
	}
	return State{
		InLibrary:  contains(library, bookID),
		InWishlist: contains(wishlist, bookID),
		InCart:     contains(cart, bookID),
	}
}

// Owned reports whether the book appears in the user's purchase history.
// Purchase history is the single source of truth for ownership: a library
// entry's own "purchased" flag is display state and never consulted, so a
// purchased book stays non-removable even if the flag is stale.
func Owned(bookID string, purchases []fingerprint.Ref) bool {
	return bookID != "" && contains(purchases, bookID)
}

// Removable is the library-removal rule: free additions can be removed,
// purchases cannot.
func Removable(bookID string, purchases []fingerprint.Ref) bool {
	return !Owned(bookID, purchases)
}

func contains(entries []fingerprint.Ref, id string) bool {
	for _, e := range entries {
		if e.Matches(id) {
			return true
		}
	}
	return false
}
