package backend_test

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// memory implements every repository port over maps guarded by one mutex.
type memory struct {
	mu        sync.Mutex
	catalog   map[string]domain.Product
	carts     map[string][]domain.CartLineItem
	favorites map[string][]string
	orders    map[string][]domain.Order
	failAll   error
}

var (
	_ port.CartRepository     = (*memory)(nil)
	_ port.FavoriteRepository = (*memory)(nil)
	_ port.ProductRepository  = (*memory)(nil)
	_ port.OrderRepository    = (*memory)(nil)
)

func newMemory(products ...domain.Product) *memory {
	m := &memory{
		catalog:   map[string]domain.Product{},
		carts:     map[string][]domain.CartLineItem{},
		favorites: map[string][]string{},
		orders:    map[string][]domain.Order{},
	}
	for _, p := range products {
		m.catalog[p.ID] = p
	}
	return m
}

func battery(id, brand, price string) domain.Product {
	return domain.Product{
		ID:                 id,
		Name:               "Battery " + id,
		Brand:              brand,
		Price:              decimal.RequireFromString(price),
		CapacityPercentage: 100,
		Features:           []string{"li-ion", "6 months warranty"},
		Category:           domain.Category{ID: 1, Name: "Phone", Slug: "phone"},
		CreatedAt:          time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func (m *memory) GetCart(_ context.Context, ownerID string) (domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return domain.Cart{}, m.failAll
	}
	return domain.Cart{OwnerID: ownerID, Currency: currency.USD, Items: slices.Clone(m.carts[ownerID])}, nil
}

func (m *memory) AddItem(_ context.Context, ownerID, productID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.catalog[productID]
	if !ok {
		return fmt.Errorf("product[%s]: %w", productID, port.ErrNotFound)
	}

	items := m.carts[ownerID]
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			return nil
		}
	}
	m.carts[ownerID] = append(items, domain.CartLineItem{
		ProductID: p.ID,
		Name:      p.Name,
		ImageURL:  p.ImageURL,
		UnitPrice: p.Price,
		Quantity:  quantity,
	})
	return nil
}

func (m *memory) UpdateItem(_ context.Context, ownerID, productID string, quantity int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.carts[ownerID]
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			return true, nil
		}
	}
	return false, nil
}

func (m *memory) DeleteItem(_ context.Context, ownerID, productID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.carts[ownerID]
	idx := slices.IndexFunc(items, func(item domain.CartLineItem) bool {
		return item.ProductID == productID
	})
	if idx < 0 {
		return false, nil
	}
	m.carts[ownerID] = slices.Delete(items, idx, idx+1)
	return true, nil
}

func (m *memory) ClearCart(_ context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, ownerID)
	return nil
}

func (m *memory) ListFavorites(_ context.Context, ownerID string) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Product, 0, len(m.favorites[ownerID]))
	for _, id := range m.favorites[ownerID] {
		out = append(out, m.catalog[id])
	}
	return out, nil
}

func (m *memory) AddFavorite(_ context.Context, ownerID, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.catalog[productID]; !ok {
		return fmt.Errorf("product[%s]: %w", productID, port.ErrNotFound)
	}
	if !slices.Contains(m.favorites[ownerID], productID) {
		m.favorites[ownerID] = append(m.favorites[ownerID], productID)
	}
	return nil
}

func (m *memory) DeleteFavorite(_ context.Context, ownerID, productID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := m.favorites[ownerID]
	idx := slices.Index(ids, productID)
	if idx < 0 {
		return false, nil
	}
	m.favorites[ownerID] = slices.Delete(ids, idx, idx+1)
	return true, nil
}

func (m *memory) ClearFavorites(_ context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.favorites, ownerID)
	return nil
}

func (m *memory) GetProduct(_ context.Context, id string) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.catalog[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", id, port.ErrNotFound)
	}
	return p, nil
}

func (m *memory) SearchProducts(_ context.Context, params domain.SearchParams) (domain.ProductPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	params = params.Normalized()

	var matched []domain.Product
	for _, p := range m.catalog {
		if params.Brand != "" && p.Brand != params.Brand {
			continue
		}
		if params.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(params.Query)) {
			continue
		}
		if params.MinPrice != nil && p.Price.LessThan(*params.MinPrice) {
			continue
		}
		if params.MaxPrice != nil && p.Price.GreaterThan(*params.MaxPrice) {
			continue
		}
		matched = append(matched, p)
	}
	slices.SortFunc(matched, func(a, b domain.Product) int {
		return strings.Compare(a.ID, b.ID)
	})

	start := min((params.Page-1)*params.PerPage, len(matched))
	end := min(start+params.PerPage, len(matched))

	return domain.ProductPage{
		Items:       matched[start:end],
		CurrentPage: params.Page,
		TotalPages:  max(1, (len(matched)+params.PerPage-1)/params.PerPage),
		TotalItems:  len(matched),
		PerPage:     params.PerPage,
	}, nil
}

func (m *memory) ListBrands(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	brands := []string{}
	for _, p := range m.catalog {
		if p.Brand != "" && !slices.Contains(brands, p.Brand) {
			brands = append(brands, p.Brand)
		}
	}
	slices.Sort(brands)
	return brands, nil
}

func (m *memory) ListCompatible(_ context.Context, device string) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := []domain.Product{}
	for _, p := range m.catalog {
		if strings.Contains(strings.ToLower(p.Compatibility), strings.ToLower(device)) {
			matched = append(matched, p)
		}
	}
	slices.SortFunc(matched, func(a, b domain.Product) int {
		return strings.Compare(a.ID, b.ID)
	})
	return matched, nil
}

func (m *memory) SaveProduct(_ context.Context, p domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog[p.ID] = p
	return nil
}

func (m *memory) CreateOrder(_ context.Context, ownerID string, order port.NewOrder) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	created := domain.Order{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		Status:          domain.OrderPending,
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		Total:           domain.Money{Amount: decimal.Zero, Currency: currency.USD},
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}

	for _, line := range order.Lines {
		p, ok := m.catalog[line.ProductID]
		if !ok {
			return domain.Order{}, fmt.Errorf("product[%s]: %w", line.ProductID, port.ErrNotFound)
		}
		item := domain.OrderItem{ProductID: p.ID, Name: p.Name, Quantity: line.Quantity, UnitPrice: p.Price}
		created.Items = append(created.Items, item)
		created.Total.Amount = created.Total.Amount.Add(item.Subtotal())
	}

	m.orders[ownerID] = append(m.orders[ownerID], created)
	return created, nil
}

func (m *memory) ListOrders(_ context.Context, ownerID string) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.orders[ownerID]), nil
}

func (m *memory) GetOrder(_ context.Context, ownerID string, id uuid.UUID) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range m.orders[ownerID] {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, fmt.Errorf("order[%s]: %w", id, port.ErrNotFound)
}

func (m *memory) cartOf(ownerID string) []domain.CartLineItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.carts[ownerID])
}
