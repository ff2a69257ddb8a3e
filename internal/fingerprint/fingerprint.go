// Package fingerprint normalizes the identifier shapes the platform API uses
// for books and collection entries. Payloads may carry the id as "_id" or "id",
// either on the record itself or on a nested "book" object; all call sites go
// through Resolve so membership checks agree on one canonical key.
package fingerprint

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ID is a JSON identifier that may arrive as a string or a bare number.
type ID string

func (v *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*v = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*v = ID(n.String())
	return nil
}

// Ref is the tagged decoding of every entry/book shape we accept. A wishlist
// or cart entry wraps the book under "book"; bare catalog rows carry the id
// directly. Unknown fields are ignored.
type Ref struct {
	Mongo ID   `json:"_id"`
	Plain ID   `json:"id"`
	Book  *Ref `json:"book,omitempty"`
}

// Resolve returns the canonical identifier for the ref, trying the nested
// book's "_id" and "id" before the entry's own. ok is false when no shape
// yields a usable id; callers must skip such records instead of matching "".
func (r Ref) Resolve() (id string, ok bool) {
	if r.Book != nil {
		if s := clean(string(r.Book.Mongo)); s != "" {
			return s, true
		}
		if s := clean(string(r.Book.Plain)); s != "" {
			return s, true
		}
	}
	if s := clean(string(r.Mongo)); s != "" {
		return s, true
	}
	if s := clean(string(r.Plain)); s != "" {
		return s, true
	}
	return "", false
}

// Matches reports whether the ref resolves to the given id. Refs without a
// usable id never match anything.
func (r Ref) Matches(id string) bool {
	got, ok := r.Resolve()
	return ok && got == id
}

func clean(s string) string { return strings.TrimSpace(s) }
