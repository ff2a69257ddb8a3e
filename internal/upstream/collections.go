package upstream

import (
	"context"
	"time"

	"github.com/chapterone/storefront-core/internal/catalog"
	"github.com/chapterone/storefront-core/internal/fingerprint"
)

// Books fetches one catalog page. The page is public; no token needed.
func (c *Client) Books(ctx context.Context, offset, limit int) ([]catalog.Book, error) {
	var out []catalog.Book
	if err := c.get(ctx, "books.list", "/books/?"+pageQuery(offset, limit), "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Library returns the user's library entries. Entries arrive in whatever id
// shape the platform happens to use; fingerprint.Ref soaks up the variance.
func (c *Client) Library(ctx context.Context, token string) ([]fingerprint.Ref, error) {
	return c.userCollection(ctx, "user.library", "/users/me/library", token)
}

// Wishlist returns the user's wishlist entries.
func (c *Client) Wishlist(ctx context.Context, token string) ([]fingerprint.Ref, error) {
	return c.userCollection(ctx, "user.wishlist", "/users/me/wishlist", token)
}

// Cart returns the user's cart entries.
func (c *Client) Cart(ctx context.Context, token string) ([]fingerprint.Ref, error) {
	return c.userCollection(ctx, "user.cart", "/users/me/cart", token)
}

// Purchases returns the user's purchase history, the source of truth for
// ownership checks.
func (c *Client) Purchases(ctx context.Context, token string) ([]fingerprint.Ref, error) {
	return c.userCollection(ctx, "user.purchases", "/users/me/purchases", token)
}

func (c *Client) userCollection(ctx context.Context, op, path, token string) ([]fingerprint.Ref, error) {
	if err := ScreenToken(token); err != nil {
		return nil, &FetchError{Op: op, Status: 401, Err: err}
	}
	var out []fingerprint.Ref
	if err := c.get(ctx, op, path, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ViewEvent is one recorded book-detail view.
type ViewEvent struct {
	BookID   string    `json:"book_id"`
	ViewedAt time.Time `json:"viewed_at"`
}

// ReportViews ships a batch of view events to the platform. Best-effort from
// the caller's perspective; the view queue drops batches that keep failing.
func (c *Client) ReportViews(ctx context.Context, events []ViewEvent) error {
	if len(events) == 0 {
		return nil
	}
	return c.post(ctx, "metrics.views", "/metrics/views", "", map[string]any{"events": events})
}
