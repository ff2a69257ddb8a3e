package middlewares

import (
	"net/http"
	"os"
	"strconv"
)

// The storefront only accepts small control payloads (view events,
// invalidation pings); 1MB leaves generous headroom while keeping a
// misbehaving client from streaming gigabytes into a handler.
const defaultMaxBody = int64(1 << 20)

// BodySizeLimit caps request bodies on mutating methods. MAX_BODY_SIZE (bytes)
// overrides the default.
func BodySizeLimit(next http.Handler) http.Handler {
	limit := defaultMaxBody
	if v := os.Getenv("MAX_BODY_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		next.ServeHTTP(w, r)
	})
}
