package wire

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-sync/internal/domain"
	"golang.org/x/text/currency"
)

type ShippingAddress struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
	Country string `json:"country" validate:"required"`
}

type OrderLine struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1,max=99"`
}

type CreateOrderRequest struct {
	Items           []OrderLine     `json:"items" validate:"required,min=1,dive"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod" validate:"required,oneof=cash_on_delivery bank_transfer mobile_money"`
}

type OrderItem struct {
	ProductID string `json:"productId" validate:"required"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity" validate:"min=1"`
	UnitPrice string `json:"unitPrice" validate:"required"`
}

type Order struct {
	ID              string          `json:"id" validate:"required,uuid"`
	Status          string          `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
	Items           []OrderItem     `json:"items" validate:"dive"`
	TotalAmount     string          `json:"totalAmount" validate:"required"`
	Currency        string          `json:"currency" validate:"required,len=3"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func CreateOrderRequestFromLines(lines []domain.OrderLine, addr domain.ShippingAddress, method domain.PaymentMethod) CreateOrderRequest {
	items := make([]OrderLine, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	return CreateOrderRequest{
		Items:           items,
		ShippingAddress: ShippingAddress(addr),
		PaymentMethod:   string(method),
	}
}

func (r CreateOrderRequest) Lines() []domain.OrderLine {
	out := make([]domain.OrderLine, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, domain.OrderLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}

func OrderFromDomain(o domain.Order) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
		})
	}

	return Order{
		ID:              o.ID.String(),
		Status:          string(o.Status),
		Items:           items,
		TotalAmount:     o.Total.Amount.StringFixed(2),
		Currency:        o.Total.Currency.String(),
		ShippingAddress: ShippingAddress(o.ShippingAddress),
		PaymentMethod:   string(o.PaymentMethod),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func OrderToDomain(o Order) (domain.Order, error) {
	if err := Validate(o); err != nil {
		return domain.Order{}, err
	}

	id, err := uuid.Parse(o.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("id: %w", err)
	}

	total, err := domain.ParseAmount(o.TotalAmount)
	if err != nil {
		return domain.Order{}, fmt.Errorf("totalAmount: %w", err)
	}

	cur, err := currency.ParseISO(o.Currency)
	if err != nil {
		return domain.Order{}, fmt.Errorf("currency[%s] is not valid: %w", o.Currency, err)
	}

	items := make([]domain.OrderItem, 0, len(o.Items))
	for i, it := range o.Items {
		price, err := domain.ParseAmount(it.UnitPrice)
		if err != nil {
			return domain.Order{}, fmt.Errorf("items[%d].unitPrice: %w", i, err)
		}
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: price,
		})
	}

	return domain.Order{
		ID:              id,
		Status:          domain.OrderStatus(o.Status),
		Items:           items,
		Total:           domain.Money{Amount: total, Currency: cur},
		ShippingAddress: domain.ShippingAddress(o.ShippingAddress),
		PaymentMethod:   domain.PaymentMethod(o.PaymentMethod),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}, nil
}

func OrdersToDomain(orders []Order) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(orders))
	for i, o := range orders {
		order, err := OrderToDomain(o)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, order)
	}
	return out, nil
}
