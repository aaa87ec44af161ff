package client

import (
	"context"
	"net/http"

	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/nikolayk812/storefront-sync/internal/wire"
)

var _ port.FavoritesAPI = (*FavoritesResource)(nil)

type FavoritesResource struct{ c *Client }

func (r *FavoritesResource) List(ctx context.Context) ([]domain.Product, error) {
	var products []wire.Product
	if err := r.c.do(ctx, http.MethodGet, []string{"favorites"}, nil, nil, &products); err != nil {
		return nil, err
	}

	out, err := wire.ProductsToDomain(products)
	if err != nil {
		return nil, malformedError(http.StatusOK, err)
	}

	return out, nil
}

func (r *FavoritesResource) Add(ctx context.Context, productID string) error {
	return r.c.do(ctx, http.MethodPost, []string{"favorites"}, nil,
		wire.AddFavoriteRequest{ProductID: productID}, nil)
}

func (r *FavoritesResource) Remove(ctx context.Context, productID string) error {
	return r.c.do(ctx, http.MethodDelete, []string{"favorites", productID}, nil, nil, nil)
}

func (r *FavoritesResource) Clear(ctx context.Context) error {
	return r.c.do(ctx, http.MethodDelete, []string{"favorites"}, nil, nil, nil)
}
