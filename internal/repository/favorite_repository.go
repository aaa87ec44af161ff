package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-sync/internal/db"
	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/port"
)

type favoriteRepository struct {
	q *db.Queries
}

func NewFavorite(pool *pgxpool.Pool) (port.FavoriteRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &favoriteRepository{q: db.New(pool)}, nil
}

func NewFavoriteWithTx(tx pgx.Tx) port.FavoriteRepository {
	return &favoriteRepository{q: db.New(tx)}
}

// ListFavorites returns favorited products in the order they were added.
func (r *favoriteRepository) ListFavorites(ctx context.Context, ownerID string) ([]domain.Product, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	rows, err := r.q.ListFavorites(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("q.ListFavorites: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		product, err := mapProductToDomain(row.Product, row.Category)
		if err != nil {
			return nil, fmt.Errorf("mapProductToDomain: %w", err)
		}
		products = append(products, product)
	}

	return products, nil
}

// AddFavorite is idempotent: adding a product twice keeps the original position.
func (r *favoriteRepository) AddFavorite(ctx context.Context, ownerID, productID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}
	if productID == "" {
		return fmt.Errorf("productID is empty")
	}

	_, err := r.q.AddFavorite(ctx, db.AddFavoriteParams{
		OwnerID:   ownerID,
		ProductID: productID,
	})
	if err != nil {
		if nf := notFound(err); nf != nil {
			return fmt.Errorf("product[%s]: %w", productID, nf)
		}
		return fmt.Errorf("q.AddFavorite: %w", err)
	}

	return nil
}

func (r *favoriteRepository) DeleteFavorite(ctx context.Context, ownerID, productID string) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}

	rowsAffected, err := r.q.DeleteFavorite(ctx, db.DeleteFavoriteParams{
		OwnerID:   ownerID,
		ProductID: productID,
	})
	if err != nil {
		return false, fmt.Errorf("q.DeleteFavorite: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *favoriteRepository) ClearFavorites(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	if err := r.q.ClearFavorites(ctx, ownerID); err != nil {
		return fmt.Errorf("q.ClearFavorites: %w", err)
	}

	return nil
}
