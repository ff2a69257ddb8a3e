package validate

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Env validates required env configuration for the storefront.
// Fail-fast on bad config.
func Env() error {
	// The platform API base URL must be present and absolute
	base := os.Getenv("PLATFORM_API_URL")
	if base == "" {
		return errors.New("PLATFORM_API_URL is required")
	}
	u, err := url.Parse(base)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("PLATFORM_API_URL %q is not an absolute URL", base)
	}

	// Snapshot quiet window must parse and be > 0 (default is fine if unset)
	if _, err := envDuration("SNAPSHOT_QUIET_WINDOW", "2s"); err != nil {
		return fmt.Errorf("SNAPSHOT_QUIET_WINDOW: %w", err)
	}
	return nil
}

// HardeningWarnings returns non-fatal warnings you may want to log on startup.
func HardeningWarnings(appEnv string) []string {
	var warns []string

	if strings.EqualFold(appEnv, "production") {
		if os.Getenv("INTERNAL_TOKEN") == "" {
			warns = append(warns, "INTERNAL_TOKEN not set; /internal/* endpoints are unauthenticated")
		}
		if base := os.Getenv("PLATFORM_API_URL"); strings.HasPrefix(base, "http://") {
			warns = append(warns, "PLATFORM_API_URL uses http:// (no TLS). Prefer https:// in production")
		}
		if u := os.Getenv("UPSTASH_REDIS_URL"); u != "" && strings.HasPrefix(u, "redis://") {
			warns = append(warns, "UPSTASH_REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS")
		}
		if os.Getenv("UPSTASH_REDIS_URL") == "" {
			// Using REDIS_ADDR path
			if os.Getenv("REDIS_PASSWORD") == "" || os.Getenv("REDIS_USER") == "" {
				warns = append(warns, "REDIS_ADDR provided without REDIS_USER/REDIS_PASSWORD; require auth in production")
			}
		}
	}

	return warns
}

// PingRedis checks connectivity with a short timeout.
func PingRedis(rdb *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_, err := rdb.Ping(ctx).Result()
	return err
}

// --- helpers ---

func envDuration(key, def string) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		s = def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}
