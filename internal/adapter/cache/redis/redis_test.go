package redis

import (
	"context"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*goredis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), config.RedisConfig{Addr: mr.Addr()}, logger.NewNop())
	require.NoError(t, err)
	client.Close()

	addr := mr.Addr()
	mr.Close()
	_, err = NewClient(context.Background(), config.RedisConfig{Addr: addr}, logger.NewNop())
	assert.Error(t, err)
}

func TestCartRepository_MissingCartIsEmpty(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewCartRepository(client, time.Hour)

	cart, err := repo.Get(context.Background(), "U1")

	require.NoError(t, err)
	assert.Equal(t, "U1", cart.UserID)
	assert.True(t, cart.IsEmpty())
}

func TestCartRepository_SaveGetDelete(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, time.Hour)
	ctx := context.Background()
	cart := domain.NewCart("U1")
	require.NoError(t, cart.Add(&domain.Sweet{ID: "X", Name: "Brigadeiro", Price: 2.5}, 3))

	require.NoError(t, repo.Save(ctx, cart))
	assert.True(t, mr.Exists("cart:U1"))
	assert.Equal(t, time.Hour, mr.TTL("cart:U1"))

	got, err := repo.Get(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, cart.Items, got.Items)

	require.NoError(t, repo.Delete(ctx, "U1"))
	assert.False(t, mr.Exists("cart:U1"))
}

func TestCartRepository_ExpiresAfterTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewCartRepository(client, time.Minute)
	ctx := context.Background()
	cart := domain.NewCart("U1")
	require.NoError(t, cart.Add(&domain.Sweet{ID: "X", Name: "Brigadeiro", Price: 2.5}, 1))
	require.NoError(t, repo.Save(ctx, cart))

	mr.FastForward(2 * time.Minute)

	got, err := repo.Get(ctx, "U1")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestCartRepository_CorruptValue(t *testing.T) {
	client, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("cart:U1", "{not json"))

	_, err := NewCartRepository(client, time.Hour).Get(context.Background(), "U1")

	assert.Error(t, err)
}

func TestCatalogCache_RoundTripAndInvalidate(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewCatalogCache(client, 5*time.Minute)
	ctx := context.Background()

	_, err := cache.GetSweets(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	sweets := []*domain.Sweet{
		{ID: "a", Name: "Alfajor", Price: 6, Category: "Doces", Rating: domain.RatingAggregate{Average: 4.5, Count: 2}},
		{ID: "b", Name: "Beijinho", Price: 2, Category: "Docinhos"},
	}
	require.NoError(t, cache.SetSweets(ctx, 0, sweets))
	assert.Equal(t, 5*time.Minute, mr.TTL(catalogKey))

	got, err := cache.GetSweets(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Alfajor", got[0].Name)
	assert.Equal(t, domain.RatingAggregate{Average: 4.5, Count: 2}, got[0].Rating)

	require.NoError(t, cache.Invalidate(ctx))
	_, err = cache.GetSweets(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogCache_WriteFromBeforeInvalidateIsDropped(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewCatalogCache(client, 5*time.Minute)
	ctx := context.Background()

	before, err := cache.Generation(ctx)
	require.NoError(t, err)
	assert.Zero(t, before)

	// A review commits between the reader's store read and its cache fill.
	require.NoError(t, cache.Invalidate(ctx))
	stale := []*domain.Sweet{{ID: "a", Name: "Alfajor", Rating: domain.RatingAggregate{Average: 4, Count: 1}}}
	require.NoError(t, cache.SetSweets(ctx, before, stale))

	_, err = cache.GetSweets(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound, "stale listing must not be cached")

	after, err := cache.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	fresh := []*domain.Sweet{{ID: "a", Name: "Alfajor", Rating: domain.RatingAggregate{Average: 4.5, Count: 2}}}
	require.NoError(t, cache.SetSweets(ctx, after, fresh))
	got, err := cache.GetSweets(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got[0].Rating.Count)
}
