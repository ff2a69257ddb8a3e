// Package storefront serves the reader-facing derived views: the filtered
// catalog, the discover sections and per-user book state. Handlers only
// transform: the snapshot holder owns catalog data, the upstream client owns
// user collections.
package storefront

import (
	"github.com/chapterone/storefront-core/internal/store/snapshot"
	"github.com/chapterone/storefront-core/internal/upstream"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	snap   *snapshot.Holder
	rdb    *redis.Client
	client *upstream.Client
}

func New(snap *snapshot.Holder, rdb *redis.Client, client *upstream.Client) *Handler {
	return &Handler{snap: snap, rdb: rdb, client: client}
}
