package discover

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Request-scoped cache guard: no PINGs, warn once per request, no retry storms.
type cache struct {
	rdb     *redis.Client
	enabled bool
	warned  bool
	prefix  string
	ttl     time.Duration
	shortTO time.Duration // short timeout per cache op
}

const (
	versionKey   = "disc:ver" // global version counter in Redis
	PrefixFormat = "disc:v%d:"
)

// newCache builds a request-scoped cache wrapper. The key prefix carries the
// current invalidation version, so bumping the version orphans every cached
// section at once. Redis being down or slow degrades to building everything
// from the snapshot; it never degrades to an error.
func newCache(rdb *redis.Client) *cache {
	if rdb == nil || os.Getenv("DISCOVER_DISABLE_CACHE") == "1" {
		return &cache{enabled: false}
	}

	// TTL (default 2h)
	ttl := 2 * time.Hour
	if v := os.Getenv("DISCOVER_CACHE_TTL"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}

	// Per-op timeout (default 150ms)
	shortTO := 150 * time.Millisecond
	if v := os.Getenv("DISCOVER_CACHE_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			shortTO = time.Duration(ms) * time.Millisecond
		}
	}

	return &cache{
		rdb:     rdb,
		enabled: true,
		prefix:  currentPrefix(rdb, shortTO),
		ttl:     ttl,
		shortTO: shortTO,
	}
}

func currentPrefix(rdb *redis.Client, shortTO time.Duration) string {
	ctx, cancel := context.WithTimeout(context.Background(), shortTO)
	defer cancel()
	ver, err := rdb.Get(ctx, versionKey).Int64()
	if err != nil {
		// fail-open to v1 (redis.Nil on first boot, anything else on outage)
		ver = 1
	}
	return fmt.Sprintf(PrefixFormat, ver)
}

func (c *cache) key(block string) string {
	return c.prefix + block
}

// mget returns a parallel slice of []byte (nil when missing).
func (c *cache) mget(ctx context.Context, blocks ...string) ([][]byte, bool) {
	if !c.enabled {
		return nil, false
	}
	var cancel context.CancelFunc
	ctx, cancel = context.WithTimeout(ctx, c.shortTO)
	defer cancel()

	keys := make([]string, len(blocks))
	for i, b := range blocks {
		keys[i] = c.key(b)
	}
	res, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		c.warnOnce("cache mget failed: %v; bypassing cache for this request", err)
		return nil, false
	}
	out := make([][]byte, len(res))
	for i, v := range res {
		if v == nil {
			out[i] = nil
			continue
		}
		switch t := v.(type) {
		case string:
			out[i] = []byte(t)
		case []byte:
			out[i] = t
		default:
			b, _ := json.Marshal(t)
			out[i] = b
		}
	}
	return out, true
}

// setPipeline uses the cache's default TTL.
func (c *cache) setPipeline(ctx context.Context, kv map[string][]byte) {
	if !c.enabled || len(kv) == 0 {
		return
	}
	var cancel context.CancelFunc
	ctx, cancel = context.WithTimeout(ctx, c.shortTO)
	defer cancel()

	pipe := c.rdb.Pipeline()
	for k, v := range kv {
		pipe.SetEx(ctx, k, v, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.warnOnce("cache pipeline set failed: %v (muted next)", err)
	}
}

func (c *cache) warnOnce(format string, args ...any) {
	if c.warned {
		return
	}
	c.warned = true
	log.Printf("[discover][cache] "+format, args...)
}

// BumpVersion increments the global version key. Call it after the snapshot
// swaps so stale sections stop being served. Safe no-op with a nil client.
func BumpVersion(ctx context.Context, rdb *redis.Client) error {
	if rdb == nil {
		return nil
	}
	cctx, cancel := context.WithTimeout(ctx, 150*time.Millisecond)
	defer cancel()
	if _, err := rdb.Incr(cctx, versionKey).Result(); err != nil {
		return fmt.Errorf("bump version failed: %w", err)
	}
	return nil
}

// CurrentVersion reads the live version counter (1 when unset). The retention
// sweep uses it to recognize superseded prefixes.
func CurrentVersion(ctx context.Context, rdb *redis.Client) int64 {
	if rdb == nil {
		return 1
	}
	cctx, cancel := context.WithTimeout(ctx, 150*time.Millisecond)
	defer cancel()
	ver, err := rdb.Get(cctx, versionKey).Int64()
	if err != nil || ver < 1 {
		return 1
	}
	return ver
}
