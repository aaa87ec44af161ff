package cache_test

import (
	"context"
	"io"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nikolayk812/storefront-sync/internal/cache"
	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRepository struct {
	mu       sync.Mutex
	products map[string]domain.Product

	gets     atomic.Int32
	searches atomic.Int32
	brands   atomic.Int32
	// release, when set, holds GetProduct and ListBrands until closed
	release chan struct{}
}

func newCountingRepository(products ...domain.Product) *countingRepository {
	r := &countingRepository{products: map[string]domain.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *countingRepository) GetProduct(_ context.Context, id string) (domain.Product, error) {
	r.gets.Add(1)
	if r.release != nil {
		<-r.release
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, port.ErrNotFound
	}
	return p, nil
}

func (r *countingRepository) SearchProducts(_ context.Context, params domain.SearchParams) (domain.ProductPage, error) {
	r.searches.Add(1)

	r.mu.Lock()
	defer r.mu.Unlock()

	var items []domain.Product
	for _, p := range r.products {
		if params.Brand == "" || p.Brand == params.Brand {
			items = append(items, p)
		}
	}
	params = params.Normalized()
	return domain.ProductPage{Items: items, CurrentPage: params.Page, TotalPages: 1, TotalItems: len(items), PerPage: params.PerPage}, nil
}

func (r *countingRepository) ListBrands(context.Context) ([]string, error) {
	r.brands.Add(1)
	if r.release != nil {
		<-r.release
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	brands := []string{}
	for _, p := range r.products {
		if !slices.Contains(brands, p.Brand) {
			brands = append(brands, p.Brand)
		}
	}
	slices.Sort(brands)
	return brands, nil
}

func (r *countingRepository) ListCompatible(_ context.Context, device string) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Product
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Compatibility), strings.ToLower(device)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *countingRepository) SaveProduct(_ context.Context, p domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}

func newCachedRepository(t *testing.T, next port.ProductRepository) (port.ProductRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	log := logrus.New()
	log.SetOutput(io.Discard)

	return cache.NewProductRepository(next, cache.NewRedisCache(client, time.Minute), log), mr
}

func battery(id, brand, price string) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     "Battery " + id,
		Brand:    brand,
		Price:    decimal.RequireFromString(price),
		Features: []string{"li-ion"},
	}
}

func TestGetProduct_ReadsThrough(t *testing.T) {
	ctx := t.Context()
	next := newCountingRepository(battery("p1", "Apple", "10.00"))
	repo, _ := newCachedRepository(t, next)

	for range 3 {
		p, err := repo.GetProduct(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Battery p1", p.Name)
	}

	assert.Equal(t, int32(1), next.gets.Load())
}

func TestGetProduct_NotFoundIsNotCached(t *testing.T) {
	ctx := t.Context()
	next := newCountingRepository()
	repo, _ := newCachedRepository(t, next)

	for range 2 {
		_, err := repo.GetProduct(ctx, "ghost")
		require.ErrorIs(t, err, port.ErrNotFound)
	}

	assert.Equal(t, int32(2), next.gets.Load())
}

func TestGetProduct_ConcurrentMissesShareOneLoad(t *testing.T) {
	ctx := t.Context()
	next := newCountingRepository(battery("p1", "Apple", "10.00"))
	next.release = make(chan struct{})
	repo, _ := newCachedRepository(t, next)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.GetProduct(ctx, "p1")
			assert.NoError(t, err)
		}()
	}

	require.Eventually(t, func() bool {
		return next.gets.Load() >= 1
	}, time.Second, time.Millisecond)
	// give the remaining callers time to join the in-flight load
	time.Sleep(20 * time.Millisecond)
	close(next.release)
	wg.Wait()

	assert.Equal(t, int32(1), next.gets.Load())
}

func TestGetProduct_RedisDownFallsBack(t *testing.T) {
	ctx := t.Context()
	next := newCountingRepository(battery("p1", "Apple", "10.00"))
	repo, mr := newCachedRepository(t, next)
	mr.Close()

	p, err := repo.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
}

func TestSaveProduct_InvalidatesSearch(t *testing.T) {
	ctx := t.Context()
	next := newCountingRepository(battery("p1", "Apple", "10.00"))
	repo, _ := newCachedRepository(t, next)

	params := domain.SearchParams{Brand: "Apple"}

	page, err := repo.SearchProducts(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalItems)

	_, err = repo.SearchProducts(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, int32(1), next.searches.Load())

	require.NoError(t, repo.SaveProduct(ctx, battery("p2", "Apple", "12.00")))

	page, err = repo.SearchProducts(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalItems)
	assert.Equal(t, int32(2), next.searches.Load())

	updated := battery("p1", "Apple", "8.00")
	require.NoError(t, repo.SaveProduct(ctx, updated))

	p, err := repo.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(p.Price))
}

func TestListBrands_SeesSavedProducts(t *testing.T) {
	ctx := t.Context()
	next := newCountingRepository(battery("p1", "Samsung", "10.00"))
	repo, _ := newCachedRepository(t, next)

	brands, err := repo.ListBrands(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Samsung"}, brands)

	require.NoError(t, repo.SaveProduct(ctx, battery("p2", "Apple", "12.00")))

	brands, err = repo.ListBrands(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "Samsung"}, brands)
	assert.Equal(t, int32(2), next.brands.Load())
}

func TestListCompatible_PassesThrough(t *testing.T) {
	ctx := t.Context()
	p1 := battery("p1", "Apple", "10.00")
	p1.Compatibility = "iPhone 13"
	repo, _ := newCachedRepository(t, newCountingRepository(p1, battery("p2", "Samsung", "12.00")))

	products, err := repo.ListCompatible(ctx, "iphone")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}
