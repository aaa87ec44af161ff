package port

import (
	"context"

	"github.com/nikolayk812/storefront-sync/internal/domain"
)

// CartRepository persists carts for the reference backend.
type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)
	AddItem(ctx context.Context, ownerID, productID string, quantity int) error
	UpdateItem(ctx context.Context, ownerID, productID string, quantity int) (bool, error)
	DeleteItem(ctx context.Context, ownerID, productID string) (bool, error)
	ClearCart(ctx context.Context, ownerID string) error
}

// CartAPI is the remote cart resource as seen by the client-side store.
type CartAPI interface {
	Get(ctx context.Context) ([]domain.CartLineItem, error)
	AddItem(ctx context.Context, productID string, quantity int) error
	UpdateItem(ctx context.Context, productID string, quantity int) error
	RemoveItem(ctx context.Context, productID string) error
	Clear(ctx context.Context) error
}
