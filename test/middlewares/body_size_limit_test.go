package middlewares_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mw "github.com/chapterone/storefront-core/internal/api/middlewares"
)

// drainingHandler reads the whole body so MaxBytesReader gets a chance to
// trip, answering 413 when it does.
func drainingHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			http.Error(w, "body too large", http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestBodySizeLimit_AcceptsSmallBodies(t *testing.T) {
	wrapped := mw.BodySizeLimit(drainingHandler())

	req := httptest.NewRequest("POST", "/metrics/views", strings.NewReader(`{"bookId":"b-1"}`))
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}

func TestBodySizeLimit_RejectsOversizedMutations(t *testing.T) {
	wrapped := mw.BodySizeLimit(drainingHandler())

	// 2MB exceeds the 1MB default cap
	oversized := bytes.Repeat([]byte("a"), 2<<20)

	for _, method := range []string{"POST", "PUT", "PATCH"} {
		req := httptest.NewRequest(method, "/metrics/views", bytes.NewReader(oversized))
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)

		if rec.Code == http.StatusOK {
			t.Errorf("%s: expected oversized body to be rejected", method)
		}
	}
}

func TestBodySizeLimit_IgnoresReadMethods(t *testing.T) {
	wrapped := mw.BodySizeLimit(drainingHandler())

	req := httptest.NewRequest("GET", "/catalog/books", bytes.NewReader(bytes.Repeat([]byte("a"), 2<<20)))
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected GET to bypass the cap, got %d", rec.Code)
	}
}

func TestBodySizeLimit_EnvOverride(t *testing.T) {
	t.Setenv("MAX_BODY_SIZE", "16")
	wrapped := mw.BodySizeLimit(drainingHandler())

	req := httptest.NewRequest("POST", "/metrics/views", strings.NewReader(strings.Repeat("x", 64)))
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code == http.StatusOK {
		t.Error("Expected 64-byte body to exceed the 16-byte override")
	}
}
