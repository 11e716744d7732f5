package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/errors"
)

func setupTestCache(t *testing.T) (*RedisDraftCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisDraftCache(client, time.Minute), mr
}

func TestRedisDraftCache_SetAndGet(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	draft := newTestDraft("d1", "pos-01", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, cache.Set(ctx, draft))

	assert.True(t, mr.Exists("draft:d1"))
	assert.Equal(t, time.Minute, mr.TTL("draft:d1"))

	got, err := cache.Get(ctx, "d1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "pos-01", got.TerminalID)
	assert.Equal(t, int64(1), got.Lines[0].ProductID)
}

func TestRedisDraftCache_Miss(t *testing.T) {
	cache, _ := setupTestCache(t)

	got, err := cache.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisDraftCache_CorruptEntry(t *testing.T) {
	cache, mr := setupTestCache(t)
	require.NoError(t, mr.Set("draft:bad", "{not json"))

	_, err := cache.Get(context.Background(), "bad")
	assert.Error(t, err)
}

func TestRedisDraftCache_Expiry(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, newTestDraft("d1", "pos-01", time.Now().UTC())))
	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisDraftCache_Delete(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, newTestDraft("d1", "pos-01", time.Now().UTC())))
	require.NoError(t, cache.Delete(ctx, "d1"))
	assert.False(t, mr.Exists("draft:d1"))
}

func TestCachedDraftRepository_ReadThrough(t *testing.T) {
	cache, mr := setupTestCache(t)
	store := NewMemoryDraftRepository()
	repo := NewCachedDraftRepository(store, cache)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newTestDraft("d1", "pos-01", time.Now().UTC())))
	assert.False(t, mr.Exists("draft:d1"))

	got, err := repo.GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "d1", got.ID)
	assert.True(t, mr.Exists("draft:d1"))
}

func TestCachedDraftRepository_ServesFromCache(t *testing.T) {
	cache, mr := setupTestCache(t)
	repo := NewCachedDraftRepository(NewMemoryDraftRepository(), cache)

	cached := newTestDraft("only-cached", "pos-01", time.Now().UTC())
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	require.NoError(t, mr.Set("draft:only-cached", string(data)))

	got, err := repo.GetByID(context.Background(), "only-cached")
	require.NoError(t, err)
	assert.Equal(t, "only-cached", got.ID)
}

func TestCachedDraftRepository_DeleteEvicts(t *testing.T) {
	cache, mr := setupTestCache(t)
	repo := NewCachedDraftRepository(NewMemoryDraftRepository(), cache)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestDraft("d1", "pos-01", time.Now().UTC())))
	assert.True(t, mr.Exists("draft:d1"))

	require.NoError(t, repo.Delete(ctx, "d1"))
	assert.False(t, mr.Exists("draft:d1"))

	_, err := repo.GetByID(ctx, "d1")
	assert.True(t, errors.IsNotFound(err))
}

func TestCachedDraftRepository_CacheDownFallsBack(t *testing.T) {
	cache, mr := setupTestCache(t)
	store := NewMemoryDraftRepository()
	repo := NewCachedDraftRepository(store, cache)
	ctx := context.Background()

	mr.Close()

	require.NoError(t, repo.Create(ctx, newTestDraft("d1", "pos-01", time.Now().UTC())))
	got, err := repo.GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "d1", got.ID)
}

