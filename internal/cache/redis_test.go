package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and a RedisCache pointing at it.
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})

	return NewRedisCache(client, time.Minute), mr
}

func testProduct(id string) domain.Product {
	return domain.Product{
		ID:                 id,
		Name:               "Battery " + id,
		Brand:              "Apple",
		Price:              decimal.RequireFromString("19.99"),
		CapacityPercentage: 100,
		Features:           []string{"fast charge", "6 months warranty"},
		Category:           domain.Category{ID: 1, Name: "iPhone", Slug: "iphone"},
	}
}

func TestGetProduct_CacheMiss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	_, err := cache.GetProduct(t.Context(), "nonexistent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestSetProduct_RoundTrip(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := t.Context()

	want := testProduct("p1")
	require.NoError(t, cache.SetProduct(ctx, want))

	assert.True(t, mr.Exists(productKey("p1")))
	ttl := mr.TTL(productKey("p1"))
	assert.GreaterOrEqual(t, ttl, time.Minute)
	assert.LessOrEqual(t, ttl, time.Minute+6*time.Second)

	got, err := cache.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Features, got.Features)
	assert.Equal(t, want.Category, got.Category)
	assert.True(t, want.Price.Equal(got.Price))
}

func TestGetProduct_InvalidJSON(t *testing.T) {
	cache, mr := setupTestRedis(t)

	require.NoError(t, mr.Set(productKey("p1"), "{broken"))

	_, err := cache.GetProduct(t.Context(), "p1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestGetProduct_Expired(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := t.Context()

	require.NoError(t, cache.SetProduct(ctx, testProduct("p1")))
	mr.FastForward(2 * time.Minute)

	_, err := cache.GetProduct(ctx, "p1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestPage_InvalidateRetiresPages(t *testing.T) {
	cache, _ := setupTestRedis(t)
	ctx := t.Context()

	params := domain.SearchParams{Brand: "Apple"}
	page := domain.ProductPage{
		Items:       []domain.Product{testProduct("p1")},
		CurrentPage: 1,
		TotalPages:  1,
		TotalItems:  1,
		PerPage:     domain.DefaultPerPage,
	}

	require.NoError(t, cache.SetPage(ctx, params, page))

	got, err := cache.GetPage(ctx, params)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "p1", got.Items[0].ID)

	// equal after normalization, so same key
	_, err = cache.GetPage(ctx, domain.SearchParams{Brand: "Apple", Page: -1, PerPage: 0})
	require.NoError(t, err)

	_, err = cache.GetPage(ctx, domain.SearchParams{Brand: "Samsung"})
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Invalidate(ctx, "p1"))

	_, err = cache.GetPage(ctx, params)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisUnavailable(t *testing.T) {
	cache, mr := setupTestRedis(t)
	mr.Close()

	_, err := cache.GetProduct(t.Context(), "p1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}
