package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestGetSetJSON(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	type payload struct {
		Name string `json:"name"`
	}

	found, err := GetJSON(ctx, client, "missing", &payload{})
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, client, "k", payload{Name: "v"}, time.Minute))

	var got payload
	found, err = GetJSON(ctx, client, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", got.Name)
}

func TestCacheAsideFetchesOnce(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *string) func() error {
		return func() error {
			calls++
			*dest = "fresh"
			return nil
		}
	}

	var first string
	require.NoError(t, CacheAside(ctx, client, "k", &first, time.Minute, fetch(&first)))
	assert.Equal(t, "fresh", first)
	assert.Equal(t, 1, calls)

	var second string
	require.NoError(t, CacheAside(ctx, client, "k", &second, time.Minute, fetch(&second)))
	assert.Equal(t, "fresh", second)
	assert.Equal(t, 1, calls, "second read must be served from cache")
}

func TestDeleteInvalidates(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, client, "k", "v", time.Minute))
	Delete(ctx, client, "k")

	var got string
	found, err := GetJSON(ctx, client, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNilClientPassThrough(t *testing.T) {
	ctx := context.Background()

	found, err := GetJSON(ctx, nil, "k", nil)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, nil, "k", "v", time.Minute))
	Delete(ctx, nil, "k")

	var dest string
	calls := 0
	require.NoError(t, CacheAside(ctx, nil, "k", &dest, time.Minute, func() error {
		calls++
		dest = "fetched"
		return nil
	}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "fetched", dest)
}
