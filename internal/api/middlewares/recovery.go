package middlewares

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/chapterone/storefront-core/internal/api/apperr"
)

// Recovery turns handler panics into a problem+json 500 carrying the request
// id, so a crashing derivation never takes the process down or leaks a stack
// to the client.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				rid := GetRequestID(r)
				log.Printf("[panic] rid=%s %s %s: %v\n%s",
					rid, r.Method, r.URL.Path, v, debug.Stack())
				apperr.Write(w, r, apperr.Problem{
					Status:    http.StatusInternalServerError,
					Title:     "Internal Server Error",
					RequestID: rid,
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
