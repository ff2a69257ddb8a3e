// Package httpx holds the success-envelope helpers every handler writes
// through: {"status":"success","data":...}, with paging metadata on list
// responses. Failures go through apperr instead.
package httpx

import (
	"encoding/json"
	"net/http"
)

// PageMeta rides along list responses so infinite-scroll clients know where
// they are.
type PageMeta struct {
	Total      int    `json:"total"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, map[string]any{"status": "success", "data": data})
}

// OKPage writes a list payload plus paging metadata.
func OKPage(w http.ResponseWriter, data any, meta PageMeta) {
	WriteJSON(w, http.StatusOK, map[string]any{"status": "success", "data": data, "meta": meta})
}
