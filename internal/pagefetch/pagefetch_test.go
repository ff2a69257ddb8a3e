package pagefetch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapterone/storefront-core/internal/catalog"
)

// fakeSource serves total synthetic books and records every requested offset.
type fakeSource struct {
	total   int
	offsets []int
	failAt  map[int]error
}

func (f *fakeSource) fetch(_ context.Context, offset, limit int) ([]catalog.Book, error) {
	f.offsets = append(f.offsets, offset)
	if err, ok := f.failAt[offset]; ok {
		delete(f.failAt, offset)
		return nil, err
	}
	var page []catalog.Book
	for i := offset; i < offset+limit && i < f.total; i++ {
		page = append(page, catalog.Book{ID: fmt.Sprintf("b-%d", i)})
	}
	return page, nil
}

func TestPagerWalksUntilShortPage(t *testing.T) {
	src := &fakeSource{total: 7}
	p := New(src.fetch, 3)
	ctx := context.Background()

	page, err := p.Next(ctx)
	require.NoError(t, err)
	assert.Len(t, page, 3)
	assert.Equal(t, HasMore, p.State())

	_, err = p.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, HasMore, p.State())

	page, err = p.Next(ctx)
	require.NoError(t, err)
	assert.Len(t, page, 1, "last page is short")
	assert.Equal(t, Exhausted, p.State())
	assert.False(t, p.HasMore())

	_, err = p.Next(ctx)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, []int{0, 3, 6}, src.offsets, "exhausted pager never hits the source again")
}

func TestPagerExactMultipleNeedsEmptyPage(t *testing.T) {
	src := &fakeSource{total: 6}
	p := New(src.fetch, 3)
	ctx := context.Background()

	_, _ = p.Next(ctx)
	_, _ = p.Next(ctx)
	assert.Equal(t, HasMore, p.State(), "a full page can't prove the end")

	page, err := p.Next(ctx)
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Equal(t, Exhausted, p.State())
}

func TestPagerAccumulatesInOrder(t *testing.T) {
	src := &fakeSource{total: 5}
	p := New(src.fetch, 2)

	all, err := p.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, b := range all {
		assert.Equal(t, fmt.Sprintf("b-%d", i), b.ID)
	}
}

func TestPagerRetriesSameOffsetAfterFailure(t *testing.T) {
	boom := errors.New("upstream down")
	src := &fakeSource{total: 5, failAt: map[int]error{2: boom}}
	p := New(src.fetch, 2)
	ctx := context.Background()

	_, err := p.Next(ctx)
	require.NoError(t, err)

	_, err = p.Next(ctx)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, Failed, p.State())
	assert.Equal(t, 2, p.Offset(), "failure must not advance the offset")
	assert.True(t, p.HasMore(), "failed is retryable")
	assert.Len(t, p.Items(), 2, "failed page contributes nothing")

	// retry succeeds and picks up where it left off, no duplicates
	_, err = p.Next(ctx)
	require.NoError(t, err)
	assert.Nil(t, p.Err())

	all, err := p.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Equal(t, []int{0, 2, 2, 4}, src.offsets)
}

func TestPagerItemsReturnsCopy(t *testing.T) {
	src := &fakeSource{total: 2}
	p := New(src.fetch, 5)
	_, err := p.Next(context.Background())
	require.NoError(t, err)

	got := p.Items()
	got[0].ID = "tampered"
	assert.Equal(t, "b-0", p.Items()[0].ID)
}

func TestPagerReset(t *testing.T) {
	src := &fakeSource{total: 2}
	p := New(src.fetch, 5)
	_, _ = p.Next(context.Background())
	require.Equal(t, Exhausted, p.State())

	p.Reset()
	assert.Equal(t, Idle, p.State())
	assert.Zero(t, p.Offset())
	assert.Empty(t, p.Items())

	all, err := p.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPagerDefaultPageSize(t *testing.T) {
	src := &fakeSource{total: 1}
	p := New(src.fetch, 0)
	_, err := p.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Exhausted, p.State())
}

func TestAllHonorsContextCancellation(t *testing.T) {
	src := &fakeSource{total: 1000}
	p := New(src.fetch, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.All(ctx)
	assert.Error(t, err)
}

func TestCursorRoundTrip(t *testing.T) {
	c := Cursor{Offset: 40, Size: 20}
	token := c.Encode()
	require.NotEmpty(t, token)

	got, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestCursorEdges(t *testing.T) {
	assert.Empty(t, Cursor{}.Encode(), "first page has no token")

	got, err := DecodeCursor("")
	require.NoError(t, err)
	assert.Zero(t, got.Offset)

	_, err = DecodeCursor("%%%not-base64%%%")
	assert.Error(t, err)

	_, err = DecodeCursor("bm90IGpzb24")
	assert.Error(t, err)
}
