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

type cachedCamp struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	found, err := GetJSON(ctx, CampKey(1), &cachedCamp{})
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, CampKey(1), cachedCamp{ID: 1, Name: "Al-Kahf Camp"}, CampTTL))

	var got cachedCamp
	found, err = GetJSON(ctx, CampKey(1), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Al-Kahf Camp", got.Name)
}

func TestAside(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedCamp) func() error {
		return func() error {
			fetches++
			*dest = cachedCamp{ID: 7, Name: "Maryam Camp"}
			return nil
		}
	}

	var first cachedCamp
	require.NoError(t, Aside(ctx, ContentKey(7), &first, ContentTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "Maryam Camp", first.Name)

	// Second read hits the cache; fetch is not called again.
	var second cachedCamp
	require.NoError(t, Aside(ctx, ContentKey(7), &second, ContentTTL, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "Maryam Camp", second.Name)

	// After TTL expiry the next read falls through to fetch.
	mr.FastForward(ContentTTL + time.Minute)
	var third cachedCamp
	require.NoError(t, Aside(ctx, ContentKey(7), &third, ContentTTL, fetch(&third)))
	assert.Equal(t, 2, fetches)
}

func TestInvalidateContent(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, ContentKey(3), cachedCamp{ID: 3}, ContentTTL))
	InvalidateContent(ctx, 3)

	found, err := GetJSON(ctx, ContentKey(3), &cachedCamp{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNilClientIsNoop(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	found, err := GetJSON(ctx, CampKey(1), &cachedCamp{})
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, SetJSON(ctx, CampKey(1), cachedCamp{}, CampTTL))

	// Aside degrades to a plain fetch.
	var got cachedCamp
	require.NoError(t, Aside(ctx, CampKey(1), &got, CampTTL, func() error {
		got = cachedCamp{ID: 1, Name: "fresh"}
		return nil
	}))
	assert.Equal(t, "fresh", got.Name)
}
