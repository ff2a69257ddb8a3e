package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	mw "github.com/chapterone/storefront-core/internal/api/middlewares"
)

func serveWithSecurityHeaders(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	wrapped := mw.SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest("GET", target, nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	return rec
}

func TestSecurityHeaders_Baseline(t *testing.T) {
	rec := serveWithSecurityHeaders(t, "/catalog/books")

	want := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"X-XSS-Protection":        "1; mode=block",
		"Referrer-Policy":         "no-referrer",
		"Content-Security-Policy": "default-src 'self'",
		"Permissions-Policy":      "camera=(), microphone=(), geolocation=()",
	}
	for header, expected := range want {
		if got := rec.Header().Get(header); got != expected {
			t.Errorf("Header %s: expected %q, got %q", header, expected, got)
		}
	}

	if cc := rec.Header().Get("Cache-Control"); cc == "" {
		t.Error("Expected Cache-Control header")
	}
}

func TestSecurityHeaders_NoHSTSWithoutTLS(t *testing.T) {
	// httptest requests never carry a TLS state, so HSTS must stay off even
	// for an https target URL.
	rec := serveWithSecurityHeaders(t, "https://store.chapterone.app/catalog/books")

	if got := rec.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("Expected no HSTS on plaintext connection, got %q", got)
	}
}

func TestSecurityHeaders_StrictModeAddsIsolationHeaders(t *testing.T) {
	relaxed := serveWithSecurityHeaders(t, "/catalog/books")
	if got := relaxed.Header().Get("Cross-Origin-Opener-Policy"); got != "" {
		t.Errorf("Expected no COOP by default, got %q", got)
	}

	t.Setenv("STRICT_SECURITY", "1")
	strict := serveWithSecurityHeaders(t, "/catalog/books")

	want := map[string]string{
		"Cross-Origin-Opener-Policy":   "same-origin",
		"Cross-Origin-Embedder-Policy": "require-corp",
		"Cross-Origin-Resource-Policy": "same-origin",
	}
	for header, expected := range want {
		if got := strict.Header().Get(header); got != expected {
			t.Errorf("Header %s: expected %q, got %q", header, expected, got)
		}
	}
}
