package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-sync/internal/domain"
)

type NewOrder struct {
	Lines           []domain.OrderLine
	ShippingAddress domain.ShippingAddress
	PaymentMethod   domain.PaymentMethod
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, ownerID string, order NewOrder) (domain.Order, error)
	ListOrders(ctx context.Context, ownerID string) ([]domain.Order, error)
	GetOrder(ctx context.Context, ownerID string, id uuid.UUID) (domain.Order, error)
}

type OrdersAPI interface {
	Create(ctx context.Context, order NewOrder) (domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Order, error)
}
