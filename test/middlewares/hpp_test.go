package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mw "github.com/chapterone/storefront-core/internal/api/middlewares"
)

func TestHPP_CollapsesDuplicateQueryParams(t *testing.T) {
	var gotPrice, gotSort string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrice = r.URL.Query().Get("price")
		gotSort = r.URL.Query().Get("sort")
		w.WriteHeader(http.StatusOK)
	})

	wrapped := mw.HPP(mw.DefaultHPPOptions())(handler)

	req := httptest.NewRequest("GET", "/catalog/books?price=free&price=paid&sort=title", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if gotPrice != "free" {
		t.Errorf("expected first price value %q, got %q", "free", gotPrice)
	}
	if gotSort != "title" {
		t.Errorf("expected sort %q, got %q", "title", gotSort)
	}
}

func TestHPP_DropsUnknownQueryParams(t *testing.T) {
	var rawQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	})

	wrapped := mw.HPP(mw.DefaultHPPOptions())(handler)

	req := httptest.NewRequest("GET", "/catalog/books?category=Fiction&__proto__=x&callback=evil", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if !strings.Contains(rawQuery, "category=Fiction") {
		t.Errorf("whitelisted param was dropped: %q", rawQuery)
	}
	if strings.Contains(rawQuery, "proto") || strings.Contains(rawQuery, "callback") {
		t.Errorf("unknown params survived: %q", rawQuery)
	}
}

func TestHPP_CollapsesFormBodyParams(t *testing.T) {
	var gotReason []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm: %v", err)
		}
		gotReason = r.Form["reason"]
		w.WriteHeader(http.StatusOK)
	})

	wrapped := mw.HPP(mw.DefaultHPPOptions())(handler)

	body := strings.NewReader("reason=deploy&reason=other&junk=1")
	req := httptest.NewRequest("POST", "/internal/cache/invalidate", body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if len(gotReason) != 1 || gotReason[0] != "deploy" {
		t.Errorf("expected reason [deploy], got %v", gotReason)
	}
}
