package membership

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapterone/storefront-core/internal/fingerprint"
)

func refs(t *testing.T, raw string) []fingerprint.Ref {
	t.Helper()
	var out []fingerprint.Ref
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestResolveEmptyCollections(t *testing.T) {
	st := Resolve("b-1", nil, nil, nil)
	assert.Equal(t, State{}, st, "empty collections answer false on every flag")
}

func TestResolveAcrossEntryShapes(t *testing.T) {
	library := refs(t, `[{"_id":"b-1"},{"id":"b-2"}]`)
	wishlist := refs(t, `[{"_id":"wl-1","book":{"_id":"b-2"}}]`)
	cart := refs(t, `[{"book":{"id":"b-3"}}]`)

	assert.Equal(t, State{InLibrary: true}, Resolve("b-1", library, wishlist, cart))
	assert.Equal(t, State{InLibrary: true, InWishlist: true}, Resolve("b-2", library, wishlist, cart))
	assert.Equal(t, State{InCart: true}, Resolve("b-3", library, wishlist, cart))
	assert.Equal(t, State{}, Resolve("b-4", library, wishlist, cart))
}

func TestResolveSkipsUnresolvableEntries(t *testing.T) {
	library := refs(t, `[{"title":"no id here"},{"_id":"b-1"}]`)
	assert.True(t, Resolve("b-1", library, nil, nil).InLibrary)
	assert.Equal(t, State{}, Resolve("", library, nil, nil), "empty book id matches nothing")
}

func TestOwnedAndRemovable(t *testing.T) {
	purchases := refs(t, `[{"book":{"_id":"b-9"}}]`)

	assert.True(t, Owned("b-9", purchases))
	assert.False(t, Removable("b-9", purchases), "purchased books can't be removed")

	assert.False(t, Owned("b-1", purchases))
	assert.True(t, Removable("b-1", purchases), "free additions are removable")

	assert.True(t, Removable("b-1", nil))
}

func TestStateJSONShape(t *testing.T) {
	out, err := json.Marshal(State{InLibrary: true, InCart: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"inLibrary":true,"inWishlist":false,"inCart":true}`, string(out))
}
