// Package discover assembles the storefront's discover surface from the
// catalog snapshot: a daily-seeded featured sample, the newest additions and
// a shuffled set of free books. Blocks are cached in redis per day and per
// limit so a popular homepage costs one snapshot pass at most.
package discover

import (
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"slices"
	"time"

	"github.com/chapterone/storefront-core/internal/catalog"
	"github.com/redis/go-redis/v9"
)

func debugEnabled() bool { return os.Getenv("DISCOVER_DEBUG") == "1" }

func dbg(format string, args ...any) {
	if debugEnabled() {
		log.Printf("[discover] "+format, args...)
	}
}

// Build derives the discover sections for today. rdb may be nil (cache off).
func Build(ctx context.Context, books []catalog.Book, rdb *redis.Client, lim Limits) Sections {
	day := time.Now().UTC().Format("2006-01-02")
	c := newCache(rdb)

	kFeatured := blockKey("featured", day, lim.Featured)
	kNewest := blockKey("newest", day, lim.Newest)
	kFree := blockKey("free", day, lim.FreePicks)

	var featured, newest, free []catalog.Book

	// fast path: cache pulls
	if hits, ok := c.mget(ctx, kFeatured, kNewest, kFree); ok {
		featured = decodeBlock(hits[0], "featured")
		newest = decodeBlock(hits[1], "newest")
		free = decodeBlock(hits[2], "free")
	}

	toCache := make(map[string][]byte)

	// deterministic daily rotation
	rng := rand.New(rand.NewSource(int64(dailySeed(day))))

	if featured == nil {
		dbg("cache miss: featured -> sampling")
		featured = catalog.Sample(books, lim.Featured, rng)
		stage(toCache, c, kFeatured, featured)
	}

	if newest == nil {
		dbg("cache miss: newest -> sorting")
		newest = buildNewest(books, lim.Newest)
		stage(toCache, c, kNewest, newest)
	}

	if free == nil {
		dbg("cache miss: free -> filter+sample")
		onlyFree := catalog.FilterAndSort(books, catalog.Criteria{Price: catalog.PriceFree})
		free = catalog.Sample(onlyFree, lim.FreePicks, rng)
		stage(toCache, c, kFree, free)
	}

	c.setPipeline(ctx, toCache)

	return Sections{Featured: featured, Newest: newest, FreePicks: free}
}

func buildNewest(books []catalog.Book, limit int) []catalog.Book {
	if limit <= 0 {
		return []catalog.Book{}
	}
	out := catalog.FilterAndSort(books, catalog.Criteria{Sort: catalog.SortDate, Dir: catalog.Desc})
	if len(out) > limit {
		out = slices.Clip(out[:limit])
	}
	return out
}

func blockKey(block, day string, limit int) string {
	return fmt.Sprintf("%s:%s:n=%d", block, day, limit)
}

func decodeBlock(raw []byte, name string) []catalog.Book {
	if raw == nil {
		return nil
	}
	var out []catalog.Book
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("[discover] cache unmarshal %s failed: %v", name, err)
		return nil
	}
	dbg("cache hit: %s (%d items)", name, len(out))
	return out
}

func stage(toCache map[string][]byte, c *cache, key string, block []catalog.Book) {
	if b, err := json.Marshal(block); err == nil {
		toCache[c.key(key)] = b
	}
}

func dailySeed(day string) uint64 {
	sum := sha1.Sum([]byte(day))
	return binary.BigEndian.Uint64(sum[:8])
}
