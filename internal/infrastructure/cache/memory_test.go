package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Minute, 2*time.Minute)
	ctx := context.Background()

	_, found := store.Get(ctx, "search:missing")
	assert.False(t, found)

	store.Set(ctx, "search:abc", []byte(`{"total":3}`), time.Minute)

	payload, found := store.Get(ctx, "search:abc")
	require.True(t, found)
	assert.Equal(t, []byte(`{"total":3}`), payload)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute, 2*time.Minute)
	ctx := context.Background()

	store.Set(ctx, "search:shortlived", []byte("x"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, found := store.Get(ctx, "search:shortlived")
	assert.False(t, found)
}

func TestMemoryStoreInvalidateByPrefix(t *testing.T) {
	store := NewMemoryStore(time.Minute, 2*time.Minute)
	ctx := context.Background()

	store.Set(ctx, "search:aa", []byte("1"), time.Minute)
	store.Set(ctx, "search:ab", []byte("2"), time.Minute)
	store.Set(ctx, "search:zz", []byte("3"), time.Minute)
	store.Set(ctx, "other:aa", []byte("4"), time.Minute)

	store.Invalidate(ctx, "search:a")

	_, found := store.Get(ctx, "search:aa")
	assert.False(t, found)
	_, found = store.Get(ctx, "search:ab")
	assert.False(t, found)

	_, found = store.Get(ctx, "search:zz")
	assert.True(t, found)
	_, found = store.Get(ctx, "other:aa")
	assert.True(t, found)
}

func TestMemoryStoreInvalidateAll(t *testing.T) {
	store := NewMemoryStore(time.Minute, 2*time.Minute)
	ctx := context.Background()

	store.Set(ctx, "search:aa", []byte("1"), time.Minute)
	store.Set(ctx, "search:bb", []byte("2"), time.Minute)

	store.Invalidate(ctx, "")

	_, found := store.Get(ctx, "search:aa")
	assert.False(t, found)
	_, found = store.Get(ctx, "search:bb")
	assert.False(t, found)
}
