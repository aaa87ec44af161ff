package domain

import (
	"errors"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

type Cart struct {
	OwnerID  string
	Currency currency.Unit
	Items    []CartLineItem
}

type CartLineItem struct {
	ProductID string
	Name      string
	ImageURL  string
	UnitPrice decimal.Decimal
	Quantity  int

	AddedAt time.Time
}

func (i CartLineItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemCount is the sum of all line quantities.
func (c Cart) ItemCount() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// TotalPrice is the sum of unit price times quantity over all lines.
func (c Cart) TotalPrice() Money {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return Money{Amount: total, Currency: c.Currency}
}

func (c Cart) Find(productID string) (CartLineItem, bool) {
	idx := slices.IndexFunc(c.Items, func(item CartLineItem) bool {
		return item.ProductID == productID
	})
	if idx < 0 {
		return CartLineItem{}, false
	}
	return c.Items[idx], true
}

func (c Cart) Contains(productID string) bool {
	_, ok := c.Find(productID)
	return ok
}

// Clone returns a cart whose Items slice is not shared with c.
func (c Cart) Clone() Cart {
	c.Items = slices.Clone(c.Items)
	return c
}
