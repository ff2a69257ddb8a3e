package middlewares

import (
	"log"
	"net/http"
	"os"
	"time"
)

type timedWriter struct {
	http.ResponseWriter
	start   time.Time
	status  int
	stamped bool
}

// stamp must run before the first byte of the response; headers are frozen
// after that.
func (w *timedWriter) stamp() {
	if !w.stamped {
		w.Header().Set("X-Response-Time", time.Since(w.start).String())
		w.stamped = true
	}
}

func (w *timedWriter) WriteHeader(code int) {
	w.status = code
	w.stamp()
	w.ResponseWriter.WriteHeader(code)
}

func (w *timedWriter) Write(b []byte) (int, error) {
	w.stamp()
	return w.ResponseWriter.Write(b)
}

// ResponseTimeMiddleware stamps X-Response-Time on every response and, with
// HTTP_LOG=1, emits a one-line access log.
func ResponseTimeMiddleware(next http.Handler) http.Handler {
	logEnabled := os.Getenv("HTTP_LOG") == "1"

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tw := &timedWriter{ResponseWriter: w, start: time.Now(), status: http.StatusOK}
		next.ServeHTTP(tw, r)

		// bodyless responses (204, HEAD) never hit Write
		if !tw.stamped {
			tw.Header().Set("X-Response-Time", time.Since(tw.start).String())
		}
		if logEnabled {
			log.Printf("[http] %s %s %d %s rid=%s",
				r.Method, r.URL.Path, tw.status, time.Since(tw.start), GetRequestID(r))
		}
	})
}
