package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-sync/internal/db"
	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type orderRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) (port.OrderRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q: db.New(tx),
	}
}

// CreateOrder prices the lines from the catalog, so clients never dictate prices.
// Lines for the same product are merged.
func (r *orderRepository) CreateOrder(ctx context.Context, ownerID string, order port.NewOrder) (domain.Order, error) {
	if ownerID == "" {
		return domain.Order{}, fmt.Errorf("ownerID is empty")
	}

	lines, err := mergeLines(order.Lines)
	if err != nil {
		return domain.Order{}, err
	}
	if !order.PaymentMethod.Valid() {
		return domain.Order{}, fmt.Errorf("paymentMethod[%s] is not supported", order.PaymentMethod)
	}
	if missing := order.ShippingAddress.MissingFields(); len(missing) > 0 {
		return domain.Order{}, fmt.Errorf("shippingAddress is missing %v", missing)
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Order, error) {
		ids := make([]string, 0, len(lines))
		for _, line := range lines {
			ids = append(ids, line.ProductID)
		}

		prices, err := q.GetProductPrices(ctx, ids)
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.GetProductPrices: %w", err)
		}

		byID := make(map[string]db.GetProductPricesRow, len(prices))
		for _, p := range prices {
			byID[p.ID] = p
		}

		var (
			items    = make([]domain.OrderItem, 0, len(lines))
			total    = decimal.Zero
			totalCur string
		)

		for _, line := range lines {
			p, ok := byID[line.ProductID]
			if !ok {
				return domain.Order{}, fmt.Errorf("product[%s]: %w", line.ProductID, port.ErrNotFound)
			}
			if totalCur == "" {
				totalCur = p.PriceCurrency
			} else if totalCur != p.PriceCurrency {
				return domain.Order{}, fmt.Errorf("order mixes currencies %s and %s", totalCur, p.PriceCurrency)
			}

			item := domain.OrderItem{
				ProductID: p.ID,
				Name:      p.Name,
				Quantity:  line.Quantity,
				UnitPrice: p.PriceAmount,
			}
			total = total.Add(item.Subtotal())
			items = append(items, item)
		}

		created, err := q.CreateOrder(ctx, db.CreateOrderParams{
			ID:            uuid.New(),
			OwnerID:       ownerID,
			Status:        string(domain.OrderPending),
			TotalAmount:   total,
			TotalCurrency: totalCur,
			Street:        order.ShippingAddress.Street,
			City:          order.ShippingAddress.City,
			State:         order.ShippingAddress.State,
			ZipCode:       order.ShippingAddress.ZipCode,
			Country:       order.ShippingAddress.Country,
			PaymentMethod: string(order.PaymentMethod),
		})
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.CreateOrder: %w", err)
		}

		dbItems := make([]db.OrderItem, 0, len(items))
		for i, item := range items {
			params := db.AddOrderItemParams{
				OrderID:   created.ID,
				Position:  int32(i),
				ProductID: item.ProductID,
				Name:      item.Name,
				Quantity:  int32(item.Quantity),
				UnitPrice: item.UnitPrice,
			}
			if err := q.AddOrderItem(ctx, params); err != nil {
				return domain.Order{}, fmt.Errorf("q.AddOrderItem: %w", err)
			}
			dbItems = append(dbItems, db.OrderItem(params))
		}

		result, err := mapOrderToDomain(created, dbItems)
		if err != nil {
			return domain.Order{}, fmt.Errorf("mapOrderToDomain: %w", err)
		}

		return result, nil
	})
}

// ListOrders returns the owner's orders, newest first.
func (r *orderRepository) ListOrders(ctx context.Context, ownerID string) ([]domain.Order, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	rows, err := r.q.ListOrders(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrders: %w", err)
	}

	itemRows, err := r.q.ListOrderItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrderItemsByOwner: %w", err)
	}

	itemsByOrder := make(map[uuid.UUID][]db.OrderItem, len(rows))
	for _, item := range itemRows {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		order, err := mapOrderToDomain(row, itemsByOrder[row.ID])
		if err != nil {
			return nil, fmt.Errorf("mapOrderToDomain: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// GetOrder only finds orders that belong to ownerID.
func (r *orderRepository) GetOrder(ctx context.Context, ownerID string, id uuid.UUID) (domain.Order, error) {
	if ownerID == "" {
		return domain.Order{}, fmt.Errorf("ownerID is empty")
	}

	row, err := r.q.GetOrder(ctx, db.GetOrderParams{
		OwnerID: ownerID,
		ID:      id,
	})
	if err != nil {
		if nf := notFound(err); nf != nil {
			return domain.Order{}, fmt.Errorf("order[%s]: %w", id, nf)
		}
		return domain.Order{}, fmt.Errorf("q.GetOrder: %w", err)
	}

	items, err := r.q.GetOrderItems(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrderItems: %w", err)
	}

	order, err := mapOrderToDomain(row, items)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapOrderToDomain: %w", err)
	}

	return order, nil
}

func mergeLines(lines []domain.OrderLine) ([]domain.OrderLine, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("order has no lines")
	}

	merged := make([]domain.OrderLine, 0, len(lines))
	index := make(map[string]int, len(lines))

	for _, line := range lines {
		if line.ProductID == "" {
			return nil, fmt.Errorf("productID is empty")
		}
		if line.Quantity < 1 {
			return nil, domain.ErrInvalidQuantity
		}

		if i, ok := index[line.ProductID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}

	return merged, nil
}

func mapOrderToDomain(row db.Order, items []db.OrderItem) (domain.Order, error) {
	parsedCurrency, err := currency.ParseISO(row.TotalCurrency)
	if err != nil {
		return domain.Order{}, fmt.Errorf("currency[%s] is not valid: %w", row.TotalCurrency, err)
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  int(item.Quantity),
			UnitPrice: item.UnitPrice,
		})
	}

	return domain.Order{
		ID:      row.ID,
		OwnerID: row.OwnerID,
		Status:  domain.OrderStatus(row.Status),
		Items:   orderItems,
		Total:   domain.Money{Amount: row.TotalAmount, Currency: parsedCurrency},
		ShippingAddress: domain.ShippingAddress{
			Street:  row.Street,
			City:    row.City,
			State:   row.State,
			ZipCode: row.ZipCode,
			Country: row.Country,
		},
		PaymentMethod: domain.PaymentMethod(row.PaymentMethod),
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}
