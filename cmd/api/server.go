package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	mw "github.com/chapterone/storefront-core/internal/api/middlewares"
	"github.com/chapterone/storefront-core/internal/api/router"
	"github.com/chapterone/storefront-core/internal/maintenance"
	"github.com/chapterone/storefront-core/internal/metrics/viewqueue"
	"github.com/chapterone/storefront-core/internal/store/discover"
	"github.com/chapterone/storefront-core/internal/store/snapshot"
	"github.com/chapterone/storefront-core/internal/upstream"
	"github.com/chapterone/storefront-core/internal/validate"
	"github.com/chapterone/storefront-core/pkg/utils"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {

	_ = godotenv.Load("../../.env")

	if err := validate.Env(); err != nil {
		log.Fatalf("bad configuration: %v", err)
	}
	for _, warn := range validate.HardeningWarnings(os.Getenv("APP_ENV")) {
		log.Printf("[config] %s", warn)
	}

	port := ":3000"
	if p := os.Getenv("PORT"); p != "" {
		port = ":" + p
	}

	rdb := newRedis()
	if rdb != nil {
		if err := validate.PingRedis(rdb, 3*time.Second); err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}
		fmt.Println("✅ Connected to Redis")
	} else {
		log.Println("[config] no Redis configured; discover cache disabled")
	}

	// Platform API client
	rps := envInt("PLATFORM_API_RPS", 10)
	retries := envInt("PLATFORM_API_RETRIES", 2)
	client := upstream.NewClient(os.Getenv("PLATFORM_API_URL"), rps, retries)

	// Catalog snapshot: initial load, then debounced refresh on invalidations
	quiet := envDuration("SNAPSHOT_QUIET_WINDOW", 2*time.Second)
	snap := snapshot.NewHolder(client, envInt("SNAPSHOT_PAGE_SIZE", 100), quiet, func() {
		if err := discover.BumpVersion(context.Background(), rdb); err != nil {
			log.Printf("[snapshot] cache version bump failed: %v", err)
		}
	})
	defer snap.Close()
	{
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		if err := snap.Refresh(ctx); err != nil {
			// boot with an empty catalog rather than crash-looping while the
			// platform is down; the first invalidation will fill it
			log.Printf("[snapshot] initial load failed: %v", err)
		}
		cancel()
	}

	// Background jobs
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	maintenance.StartCacheRetention(rootCtx, rdb, envStr("CACHE_RETENTION_AT", "03:30"))
	viewqueue.Start(client, 10000, 2)
	defer viewqueue.Shutdown()

	var tb *mw.RedisTokenBucket
	var sw *mw.RedisSlidingWindow
	if rdb != nil {
		tb = mw.NewRedisTokenBucket(rdb, 5, 20, mw.PerIPKey("tb"))
		sw = mw.NewRedisSlidingWindow(rdb, 3000, 60*time.Minute, mw.PerIPKey("sw"))
	}

	chain := []utils.Middleware{
		mw.Cors,
		mw.ResponseTimeMiddleware,
		mw.RequestID,
		mw.Recovery,
		mw.BodySizeLimit,
		mw.HPP(mw.DefaultHPPOptions()),
	}
	if tb != nil {
		chain = append(chain, tb.Middleware, sw.Middleware)
	}
	chain = append(chain, mw.Compression, mw.SecurityHeaders)

	secureMux := utils.ApplyMiddleware(router.Router(snap, rdb, client), chain...)

	server := &http.Server{
		Addr:              port,
		Handler:           secureMux,
		ReadHeaderTimeout: 5 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
	}

	go func() {
		<-rootCtx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shCtx)
	}()

	fmt.Println("Server is running on port:", port)
	if cert, key := os.Getenv("TLS_CERT"), os.Getenv("TLS_KEY"); cert != "" && key != "" {
		if err := server.ListenAndServeTLS(cert, key); err != nil && err != http.ErrServerClosed {
			log.Fatalln("Error starting server:", err)
		}
	} else {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalln("Error starting server:", err)
		}
	}
}

// newRedis builds the client from either a full URL or split fields; returns
// nil when nothing is configured (cache + rate limits degrade gracefully).
func newRedis() *redis.Client {
	if url := os.Getenv("UPSTASH_REDIS_URL"); url != "" {
		opt, err := redis.ParseURL(url) // e.g. rediss://default:<token>@host:port
		if err != nil {
			log.Fatalf("invalid UPSTASH_REDIS_URL: %v", err)
		}
		if opt.TLSConfig == nil {
			opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = 1 * time.Second
		opt.WriteTimeout = 1 * time.Second
		return redis.NewClient(opt)
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Username:     os.Getenv("REDIS_USER"),
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
