package client

import (
	"context"
	"net/http"

	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/nikolayk812/storefront-sync/internal/wire"
)

var _ port.CartAPI = (*CartResource)(nil)

type CartResource struct{ c *Client }

func (r *CartResource) Get(ctx context.Context) ([]domain.CartLineItem, error) {
	var items []wire.CartLineItem
	if err := r.c.do(ctx, http.MethodGet, []string{"cart"}, nil, nil, &items); err != nil {
		return nil, err
	}

	out, err := wire.CartLineItemsToDomain(items)
	if err != nil {
		return nil, malformedError(http.StatusOK, err)
	}

	return out, nil
}

func (r *CartResource) AddItem(ctx context.Context, productID string, quantity int) error {
	return r.c.do(ctx, http.MethodPost, []string{"cart", "items"}, nil,
		wire.AddCartItemRequest{ProductID: productID, Quantity: quantity}, nil)
}

func (r *CartResource) UpdateItem(ctx context.Context, productID string, quantity int) error {
	return r.c.do(ctx, http.MethodPut, []string{"cart", "items", productID}, nil,
		wire.UpdateCartItemRequest{Quantity: quantity}, nil)
}

func (r *CartResource) RemoveItem(ctx context.Context, productID string) error {
	return r.c.do(ctx, http.MethodDelete, []string{"cart", "items", productID}, nil, nil, nil)
}

func (r *CartResource) Clear(ctx context.Context) error {
	return r.c.do(ctx, http.MethodDelete, []string{"cart"}, nil, nil, nil)
}
