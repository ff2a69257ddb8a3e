package pagefetch

import (
	"encoding/base64"
	"encoding/json"
)

// Cursor is the opaque paging token the catalog endpoint hands to clients so
// infinite scroll never re-requests a position it already has.
type Cursor struct {
	Offset int `json:"offset"`
	Size   int `json:"size,omitempty"`
}

// Encode renders the cursor as a URL-safe base64 token. The zero cursor
// encodes to "" (first page).
func (c Cursor) Encode() string {
	if c.Offset == 0 {
		return ""
	}
	b, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(b)
}

// DecodeCursor parses a token previously produced by Encode. The empty token
// is the first page, not an error.
func DecodeCursor(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, nil
	}
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, err
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, err
	}
	if c.Offset < 0 {
		c.Offset = 0
	}
	return c, nil
}
