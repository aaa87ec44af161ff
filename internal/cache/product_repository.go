package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

type productCache interface {
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	SetProduct(ctx context.Context, product domain.Product) error
	GetPage(ctx context.Context, params domain.SearchParams) (domain.ProductPage, error)
	SetPage(ctx context.Context, params domain.SearchParams, page domain.ProductPage) error
	Invalidate(ctx context.Context, id string) error
}

// productRepository reads through the cache. Cache failures are logged and
// fall back to the underlying repository; concurrent misses for the same key
// share one load.
type productRepository struct {
	next  port.ProductRepository
	cache productCache
	log   logrus.FieldLogger
	group singleflight.Group
}

func NewProductRepository(next port.ProductRepository, cache productCache, log logrus.FieldLogger) port.ProductRepository {
	return &productRepository{
		next:  next,
		cache: cache,
		log:   log.WithField("component", "product-cache"),
	}
}

func (r *productRepository) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	product, err := r.cache.GetProduct(ctx, id)
	if err == nil {
		return product, nil
	}
	r.logMiss(err, "product_id", id)

	v, err, _ := r.group.Do("product:"+id, func() (any, error) {
		product, err := r.next.GetProduct(ctx, id)
		if err != nil {
			return domain.Product{}, err
		}

		if err := r.cache.SetProduct(ctx, product); err != nil {
			r.log.WithError(err).WithField("product_id", id).Warn("cache write failed")
		}
		return product, nil
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("next.GetProduct: %w", err)
	}

	return v.(domain.Product), nil
}

func (r *productRepository) SearchProducts(ctx context.Context, params domain.SearchParams) (domain.ProductPage, error) {
	page, err := r.cache.GetPage(ctx, params)
	if err == nil {
		return page, nil
	}
	key := canonicalQuery(params)
	r.logMiss(err, "query", key)

	v, err, _ := r.group.Do("search:"+key, func() (any, error) {
		page, err := r.next.SearchProducts(ctx, params)
		if err != nil {
			return domain.ProductPage{}, err
		}

		if err := r.cache.SetPage(ctx, params, page); err != nil {
			r.log.WithError(err).WithField("query", key).Warn("cache write failed")
		}
		return page, nil
	})
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("next.SearchProducts: %w", err)
	}

	return v.(domain.ProductPage), nil
}

// ListBrands is not cached; concurrent calls share one load.
func (r *productRepository) ListBrands(ctx context.Context) ([]string, error) {
	v, err, _ := r.group.Do("brands", func() (any, error) {
		return r.next.ListBrands(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("next.ListBrands: %w", err)
	}

	return v.([]string), nil
}

func (r *productRepository) ListCompatible(ctx context.Context, device string) ([]domain.Product, error) {
	v, err, _ := r.group.Do("compatible:"+strings.ToLower(device), func() (any, error) {
		return r.next.ListCompatible(ctx, device)
	})
	if err != nil {
		return nil, fmt.Errorf("next.ListCompatible: %w", err)
	}

	return v.([]domain.Product), nil
}

// SaveProduct writes through and invalidates after the write commits.
func (r *productRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	if err := r.next.SaveProduct(ctx, product); err != nil {
		return fmt.Errorf("next.SaveProduct: %w", err)
	}

	if err := r.cache.Invalidate(ctx, product.ID); err != nil {
		return fmt.Errorf("cache.Invalidate: %w", err)
	}

	return nil
}

func (r *productRepository) logMiss(err error, key, value string) {
	if errors.Is(err, ErrCacheMiss) {
		return
	}
	r.log.WithError(err).WithField(key, value).Warn("cache read failed")
}
