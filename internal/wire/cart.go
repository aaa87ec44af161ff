package wire

import (
	"fmt"

	"github.com/nikolayk812/storefront-sync/internal/domain"
)

type CartLineItem struct {
	ProductID string `json:"productId" validate:"required"`
	Name      string `json:"name"`
	ImageURL  string `json:"imageUrl"`
	UnitPrice string `json:"unitPrice" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1,max=99"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=1,max=99"`
}

func CartLineItemFromDomain(item domain.CartLineItem) CartLineItem {
	return CartLineItem{
		ProductID: item.ProductID,
		Name:      item.Name,
		ImageURL:  item.ImageURL,
		UnitPrice: item.UnitPrice.StringFixed(2),
		Quantity:  item.Quantity,
	}
}

func CartFromDomain(cart domain.Cart) []CartLineItem {
	out := make([]CartLineItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		out = append(out, CartLineItemFromDomain(item))
	}
	return out
}

// CartLineItemsToDomain validates a cart payload and maps it to domain line items.
// Duplicate product ids and unparseable prices are rejected.
func CartLineItemsToDomain(items []CartLineItem) ([]domain.CartLineItem, error) {
	out := make([]domain.CartLineItem, 0, len(items))
	seen := make(map[string]struct{}, len(items))

	for i, item := range items {
		if err := Validate(item); err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}

		if _, dup := seen[item.ProductID]; dup {
			return nil, fmt.Errorf("items[%d]: duplicate productId %q", i, item.ProductID)
		}
		seen[item.ProductID] = struct{}{}

		price, err := domain.ParseAmount(item.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("items[%d].unitPrice: %w", i, err)
		}

		out = append(out, domain.CartLineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			ImageURL:  item.ImageURL,
			UnitPrice: price,
			Quantity:  item.Quantity,
		})
	}

	return out, nil
}
