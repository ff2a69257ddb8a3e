// internal/maintenance/retention.go
package maintenance

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/chapterone/storefront-core/internal/store/discover"
	"github.com/redis/go-redis/v9"
)

// StartCacheRetention runs a daily job at localTime ("HH:MM", UTC) that
// deletes discover-cache keys left under superseded version prefixes. Bumping
// the cache version orphans old keys instead of deleting them; this sweep is
// what actually reclaims the memory.
// Call once at startup: go maintenance.StartCacheRetention(ctx, rdb, "03:00")
func StartCacheRetention(ctx context.Context, rdb *redis.Client, localTime string) {
	if rdb == nil {
		return
	}
	go func() {
		h, m := 3, 0
		if parts := strings.Split(localTime, ":"); len(parts) == 2 {
			if v, err := strconv.Atoi(parts[0]); err == nil {
				h = v
			}
			if v, err := strconv.Atoi(parts[1]); err == nil {
				m = v
			}
		}

		for {
			now := time.Now().UTC()
			next := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, time.UTC)
			if !next.After(now) {
				next = next.Add(24 * time.Hour)
			}
			timer := time.NewTimer(time.Until(next))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				sweepOnce(ctx, rdb)
			}
		}
	}()
}

func sweepOnce(ctx context.Context, rdb *redis.Client) {
	cur := discover.CurrentVersion(ctx, rdb)
	deleted := 0
	for ver := cur - 1; ver >= 1; ver-- {
		n, err := deletePrefix(ctx, rdb, fmt.Sprintf(discover.PrefixFormat, ver))
		if err != nil {
			log.Printf("[retention] sweep of v%d failed: %v", ver, err)
			return
		}
		if n == 0 && ver < cur-1 {
			// older generations were already swept
			break
		}
		deleted += n
	}
	log.Printf("[retention] removed %d stale discover cache keys (current v%d)", deleted, cur)
}

func deletePrefix(ctx context.Context, rdb *redis.Client, prefix string) (int, error) {
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := rdb.Scan(ctx, cursor, prefix+"*", 200).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			if err := rdb.Del(ctx, keys...).Err(); err != nil {
				return deleted, err
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}
