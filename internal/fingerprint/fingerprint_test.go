package fingerprint

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveJSON(t *testing.T, raw string) (string, bool) {
	t.Helper()
	var r Ref
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	return r.Resolve()
}

func TestResolveShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"mongo id", `{"_id":"abc"}`, "abc", true},
		{"plain id", `{"id":"abc"}`, "abc", true},
		{"numeric id", `{"id":42}`, "42", true},
		{"nested book mongo", `{"_id":"entry1","book":{"_id":"abc"}}`, "abc", true},
		{"nested book plain", `{"book":{"id":"abc"}}`, "abc", true},
		{"nested wins over entry", `{"_id":"entry1","id":"entry2","book":{"id":"abc"}}`, "abc", true},
		{"empty nested falls through", `{"_id":"abc","book":{}}`, "abc", true},
		{"whitespace id", `{"id":"  abc  "}`, "abc", true},
		{"no id at all", `{"title":"x"}`, "", false},
		{"blank id", `{"id":"   "}`, "", false},
		{"null id", `{"id":null}`, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := resolveJSON(t, tc.raw)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveIsIdempotentAcrossShapes(t *testing.T) {
	// The same book arriving as a catalog row, a wishlist entry and a cart
	// entry must resolve to one key.
	shapes := []string{
		`{"_id":"b-9"}`,
		`{"id":"b-9"}`,
		`{"_id":"wl-1","book":{"_id":"b-9"}}`,
		`{"_id":"cart-3","book":{"id":"b-9"}}`,
	}
	for _, raw := range shapes {
		got, ok := resolveJSON(t, raw)
		require.True(t, ok, raw)
		assert.Equal(t, "b-9", got, raw)
	}
}

func TestMatches(t *testing.T) {
	var r Ref
	require.NoError(t, json.Unmarshal([]byte(`{"book":{"_id":"b-9"}}`), &r))

	assert.True(t, r.Matches("b-9"))
	assert.False(t, r.Matches("b-10"))
	assert.False(t, Ref{}.Matches(""), "unresolvable refs match nothing, not empty string")
}
