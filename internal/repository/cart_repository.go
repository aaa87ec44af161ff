package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-sync/internal/db"
	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"golang.org/x/text/currency"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) (port.CartRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	rows, err := r.q.GetCart(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.GetCart: %w", err)
	}

	cart, err := mapGetCartRowsToDomain(rows)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapGetCartRowsToDomain: %w", err)
	}
	cart.OwnerID = ownerID

	return cart, nil
}

// AddItem merges quantity into an existing line for the same product.
func (r *cartRepository) AddItem(ctx context.Context, ownerID, productID string, quantity int) error {
	if err := validateLine(ownerID, productID, quantity); err != nil {
		return err
	}

	err := r.q.AddItem(ctx, db.AddItemParams{
		OwnerID:   ownerID,
		ProductID: productID,
		Quantity:  int32(quantity),
	})
	if err != nil {
		if nf := notFound(err); nf != nil {
			return fmt.Errorf("product[%s]: %w", productID, nf)
		}
		return fmt.Errorf("q.AddItem: %w", err)
	}

	return nil
}

func (r *cartRepository) UpdateItem(ctx context.Context, ownerID, productID string, quantity int) (bool, error) {
	if err := validateLine(ownerID, productID, quantity); err != nil {
		return false, err
	}

	rowsAffected, err := r.q.UpdateItem(ctx, db.UpdateItemParams{
		OwnerID:   ownerID,
		ProductID: productID,
		Quantity:  int32(quantity),
	})
	if err != nil {
		return false, fmt.Errorf("q.UpdateItem: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, ownerID, productID string) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}

	rowsAffected, err := r.q.DeleteItem(ctx, db.DeleteItemParams{
		OwnerID:   ownerID,
		ProductID: productID,
	})
	if err != nil {
		return false, fmt.Errorf("q.DeleteItem: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *cartRepository) ClearCart(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	if err := r.q.ClearCart(ctx, ownerID); err != nil {
		return fmt.Errorf("q.ClearCart: %w", err)
	}

	return nil
}

func validateLine(ownerID, productID string, quantity int) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}
	if productID == "" {
		return fmt.Errorf("productID is empty")
	}
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}
	return nil
}

func mapGetCartRowToDomain(row db.GetCartRow) (domain.CartLineItem, currency.Unit, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.CartLineItem{}, currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	return domain.CartLineItem{
		ProductID: row.ProductID,
		Name:      row.Name,
		ImageURL:  row.ImageUrl,
		UnitPrice: row.PriceAmount,
		Quantity:  int(row.Quantity),
		AddedAt:   row.CreatedAt,
	}, parsedCurrency, nil
}

// mapGetCartRowsToDomain requires every line to be priced in the same currency.
func mapGetCartRowsToDomain(rows []db.GetCartRow) (domain.Cart, error) {
	var cart domain.Cart

	for i, row := range rows {
		item, cur, err := mapGetCartRowToDomain(row)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("mapGetCartRowToDomain: %w", err)
		}

		if i == 0 {
			cart.Currency = cur
		} else if cur != cart.Currency {
			return domain.Cart{}, fmt.Errorf("cart mixes currencies %s and %s", cart.Currency, cur)
		}

		cart.Items = append(cart.Items, item)
	}

	return cart, nil
}
