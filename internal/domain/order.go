package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
	PaymentMobileMoney    PaymentMethod = "mobile_money"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCashOnDelivery, PaymentBankTransfer, PaymentMobileMoney:
		return true
	}
	return false
}

type ShippingAddress struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// MissingFields lists the names of blank address fields.
func (a ShippingAddress) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"street", a.Street},
		{"city", a.City},
		{"state", a.State},
		{"zipCode", a.ZipCode},
		{"country", a.Country},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

type OrderLine struct {
	ProductID string
	Quantity  int
}

type OrderItem struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID              uuid.UUID
	OwnerID         string
	Status          OrderStatus
	Items           []OrderItem
	Total           Money
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod

	CreatedAt time.Time
	UpdatedAt time.Time
}
