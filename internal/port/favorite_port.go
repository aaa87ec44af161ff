package port

import (
	"context"

	"github.com/nikolayk812/storefront-sync/internal/domain"
)

type FavoriteRepository interface {
	ListFavorites(ctx context.Context, ownerID string) ([]domain.Product, error)
	AddFavorite(ctx context.Context, ownerID, productID string) error
	DeleteFavorite(ctx context.Context, ownerID, productID string) (bool, error)
	ClearFavorites(ctx context.Context, ownerID string) error
}

type FavoritesAPI interface {
	List(ctx context.Context) ([]domain.Product, error)
	Add(ctx context.Context, productID string) error
	Remove(ctx context.Context, productID string) error
	Clear(ctx context.Context) error
}
