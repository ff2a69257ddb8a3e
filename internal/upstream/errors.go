package upstream

import (
	"errors"
	"fmt"
)

// FetchError is the typed failure for platform API calls. Handlers map it to
// problem+json; the pager maps it to its Failed state. Temporary tells the
// caller whether a retry is worth anything.
type FetchError struct {
	Op     string // e.g. "books.list", "user.wishlist"
	Status int    // HTTP status, 0 for transport-level failures
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Temporary reports whether the failure class is retryable: network errors,
// 429 and 5xx.
func (e *FetchError) Temporary() bool {
	return e.Status == 0 || e.Status == 429 || e.Status >= 500
}

// AsFetchError unwraps err into a *FetchError when possible.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	ok := errors.As(err, &fe)
	return fe, ok
}
