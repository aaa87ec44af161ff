package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strconv"
	"time"

	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/wire"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

const (
	DefaultTTL = 10 * time.Minute

	versionKey = "products:version"
)

// RedisCache stores catalog reads. Search pages are keyed by a catalog version
// that Invalidate bumps, so a single write retires every cached page.
type RedisCache struct {
	client  redis.Cmdable
	baseTTL time.Duration
}

func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &RedisCache{
		client:  client,
		baseTTL: ttl,
	}
}

func (r *RedisCache) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	var p wire.Product
	if err := r.get(ctx, productKey(id), &p); err != nil {
		return domain.Product{}, err
	}

	product, err := wire.ProductToDomain(p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("wire.ProductToDomain: %w", err)
	}

	return product, nil
}

func (r *RedisCache) SetProduct(ctx context.Context, product domain.Product) error {
	p, err := wire.ProductFromDomain(product)
	if err != nil {
		return fmt.Errorf("wire.ProductFromDomain: %w", err)
	}

	return r.set(ctx, productKey(product.ID), p)
}

func (r *RedisCache) GetPage(ctx context.Context, params domain.SearchParams) (domain.ProductPage, error) {
	key, err := r.pageKey(ctx, params)
	if err != nil {
		return domain.ProductPage{}, err
	}

	var page wire.ProductPage
	if err := r.get(ctx, key, &page); err != nil {
		return domain.ProductPage{}, err
	}

	result, err := wire.ProductPageToDomain(page)
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("wire.ProductPageToDomain: %w", err)
	}

	return result, nil
}

func (r *RedisCache) SetPage(ctx context.Context, params domain.SearchParams, page domain.ProductPage) error {
	key, err := r.pageKey(ctx, params)
	if err != nil {
		return err
	}

	p, err := wire.ProductPageFromDomain(page)
	if err != nil {
		return fmt.Errorf("wire.ProductPageFromDomain: %w", err)
	}

	return r.set(ctx, key, p)
}

// Invalidate drops the cached product and retires all cached search pages.
func (r *RedisCache) Invalidate(ctx context.Context, id string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, productKey(id))
		pipe.Incr(ctx, versionKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate failed: %w", err)
	}

	return nil
}

func (r *RedisCache) get(ctx context.Context, key string, out any) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal %s failed: %w", key, err)
	}

	return nil
}

func (r *RedisCache) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s failed: %w", key, err)
	}

	// jitter spreads expiry of entries written together
	jitter := time.Duration(rand.Int64N(int64(r.baseTTL/10) + 1))

	if err := r.client.Set(ctx, key, data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (r *RedisCache) pageKey(ctx context.Context, params domain.SearchParams) (string, error) {
	version, err := r.client.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("redis get version failed: %w", err)
	}

	return fmt.Sprintf("products:search:v%d:%s", version, canonicalQuery(params)), nil
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

// canonicalQuery renders normalized params with sorted keys, so equal searches share a key.
func canonicalQuery(params domain.SearchParams) string {
	p := params.Normalized()

	q := url.Values{}
	q.Set("query", p.Query)
	q.Set("brand", p.Brand)
	q.Set("category", p.Category)
	if p.MinPrice != nil {
		q.Set("min_price", p.MinPrice.String())
	}
	if p.MaxPrice != nil {
		q.Set("max_price", p.MaxPrice.String())
	}
	if p.IsFeatured != nil {
		q.Set("is_featured", strconv.FormatBool(*p.IsFeatured))
	}
	q.Set("sort_by", string(p.SortBy))
	q.Set("sort_direction", string(p.SortDir))
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("per_page", strconv.Itoa(p.PerPage))

	return q.Encode()
}
