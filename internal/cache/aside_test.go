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

type cachedUser struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func withTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	loads := 0
	load := func(dest *cachedUser) func() error {
		return func() error {
			loads++
			dest.ID = 7
			dest.Name = "dana"
			return nil
		}
	}

	var first cachedUser
	require.NoError(t, Aside(ctx, UserKey(7), &first, UserTTL, load(&first)))
	assert.Equal(t, 1, loads)
	assert.Equal(t, "dana", first.Name)

	// Second read comes from the cache; the loader must not run again.
	var second cachedUser
	require.NoError(t, Aside(ctx, UserKey(7), &second, UserTTL, load(&second)))
	assert.Equal(t, 1, loads)
	assert.Equal(t, first, second)
}

func TestAside_InvalidateForcesReload(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	loads := 0
	var user cachedUser
	load := func() error {
		loads++
		user = cachedUser{ID: 7, Name: "dana"}
		return nil
	}

	require.NoError(t, Aside(ctx, UserKey(7), &user, UserTTL, load))
	InvalidateUser(ctx, 7)
	require.NoError(t, Aside(ctx, UserKey(7), &user, UserTTL, load))
	assert.Equal(t, 2, loads)
}

func TestAside_NoClientCallsLoader(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	loads := 0
	var user cachedUser
	err := Aside(ctx, UserKey(1), &user, time.Minute, func() error {
		loads++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, loads)
}

func TestAside_CorruptEntryReloads(t *testing.T) {
	mr := withTestRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(UserKey(9), "{not json"))

	loads := 0
	var user cachedUser
	err := Aside(ctx, UserKey(9), &user, time.Minute, func() error {
		loads++
		user = cachedUser{ID: 9, Name: "reloaded"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, loads)
	assert.Equal(t, "reloaded", user.Name)
}
