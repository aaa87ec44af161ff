package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/nikolayk812/storefront-sync/internal/wire"
)

var _ port.OrdersAPI = (*OrdersResource)(nil)

type OrdersResource struct{ c *Client }

func (r *OrdersResource) Create(ctx context.Context, order port.NewOrder) (domain.Order, error) {
	req := wire.CreateOrderRequestFromLines(order.Lines, order.ShippingAddress, order.PaymentMethod)

	var created wire.Order
	if err := r.c.do(ctx, http.MethodPost, []string{"orders"}, nil, req, &created); err != nil {
		return domain.Order{}, err
	}

	out, err := wire.OrderToDomain(created)
	if err != nil {
		return domain.Order{}, malformedError(http.StatusCreated, err)
	}

	return out, nil
}

func (r *OrdersResource) List(ctx context.Context) ([]domain.Order, error) {
	var orders []wire.Order
	if err := r.c.do(ctx, http.MethodGet, []string{"orders"}, nil, nil, &orders); err != nil {
		return nil, err
	}

	out, err := wire.OrdersToDomain(orders)
	if err != nil {
		return nil, malformedError(http.StatusOK, err)
	}

	return out, nil
}

func (r *OrdersResource) Get(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	var order wire.Order
	if err := r.c.do(ctx, http.MethodGet, []string{"orders", id.String()}, nil, nil, &order); err != nil {
		return domain.Order{}, err
	}

	out, err := wire.OrderToDomain(order)
	if err != nil {
		return domain.Order{}, malformedError(http.StatusOK, err)
	}

	return out, nil
}
