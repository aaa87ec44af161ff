package store_test

import (
	"context"
	"net/http"
	"slices"
	"sync"

	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/shopspring/decimal"
)

var errNoResponse = domain.NewAPIError(domain.MsgNoResponse, 0, nil, domain.ErrNoResponse)

func notFound() error {
	return domain.NewAPIError("Item not found", http.StatusNotFound, nil, nil)
}

type catalogEntry struct {
	name  string
	price decimal.Decimal
}

// fakeCartAPI keeps a server-side cart in memory. Failures are injected per operation.
type fakeCartAPI struct {
	mu       sync.Mutex
	catalog  map[string]catalogEntry
	items    []domain.CartLineItem
	failures map[string]error
	calls    map[string]int

	inFlight    int
	maxInFlight int

	// gate, when set, blocks every call until it is closed or receives a value
	gate chan struct{}
}

var _ port.CartAPI = (*fakeCartAPI)(nil)

func newFakeCartAPI() *fakeCartAPI {
	return &fakeCartAPI{
		catalog: map[string]catalogEntry{
			"battery-1": {name: "Battery One", price: decimal.RequireFromString("10.00")},
			"battery-2": {name: "Battery Two", price: decimal.RequireFromString("24.99")},
			"battery-3": {name: "Battery Three", price: decimal.RequireFromString("5.50")},
		},
		failures: map[string]error{},
		calls:    map[string]int{},
	}
}

func (f *fakeCartAPI) failOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[op] = err
}

func (f *fakeCartAPI) heal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = map[string]error{}
}

func (f *fakeCartAPI) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// blockCalls parks every later call until the returned channel is closed.
func (f *fakeCartAPI) blockCalls() chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = make(chan struct{})
	return f.gate
}

func (f *fakeCartAPI) peakInFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxInFlight
}

func (f *fakeCartAPI) serverItems() []domain.CartLineItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.items)
}

func (f *fakeCartAPI) enter(ctx context.Context, op string) error {
	f.mu.Lock()
	f.calls[op]++
	f.inFlight++
	f.maxInFlight = max(f.maxInFlight, f.inFlight)
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			f.leave()
			return ctx.Err()
		}
	}

	f.mu.Lock()
	err := f.failures[op]
	f.mu.Unlock()
	if err != nil {
		f.leave()
	}
	return err
}

func (f *fakeCartAPI) leave() {
	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
}

func (f *fakeCartAPI) Get(ctx context.Context) ([]domain.CartLineItem, error) {
	if err := f.enter(ctx, "get"); err != nil {
		return nil, err
	}
	defer f.leave()

	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.items), nil
}

func (f *fakeCartAPI) AddItem(ctx context.Context, productID string, quantity int) error {
	if err := f.enter(ctx, "add"); err != nil {
		return err
	}
	defer f.leave()

	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.catalog[productID]
	if !ok {
		return notFound()
	}

	for i := range f.items {
		if f.items[i].ProductID == productID {
			f.items[i].Quantity += quantity
			return nil
		}
	}

	f.items = append(f.items, domain.CartLineItem{
		ProductID: productID,
		Name:      entry.name,
		UnitPrice: entry.price,
		Quantity:  quantity,
	})
	return nil
}

func (f *fakeCartAPI) UpdateItem(ctx context.Context, productID string, quantity int) error {
	if err := f.enter(ctx, "update"); err != nil {
		return err
	}
	defer f.leave()

	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.items {
		if f.items[i].ProductID == productID {
			f.items[i].Quantity = quantity
			return nil
		}
	}
	return notFound()
}

func (f *fakeCartAPI) RemoveItem(ctx context.Context, productID string) error {
	if err := f.enter(ctx, "remove"); err != nil {
		return err
	}
	defer f.leave()

	f.mu.Lock()
	defer f.mu.Unlock()

	idx := slices.IndexFunc(f.items, func(item domain.CartLineItem) bool {
		return item.ProductID == productID
	})
	if idx < 0 {
		return notFound()
	}
	f.items = slices.Delete(f.items, idx, idx+1)
	return nil
}

func (f *fakeCartAPI) Clear(ctx context.Context) error {
	if err := f.enter(ctx, "clear"); err != nil {
		return err
	}
	defer f.leave()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = nil
	return nil
}

type fakeFavoritesAPI struct {
	mu       sync.Mutex
	ids      []string
	failures map[string]error
	calls    map[string]int
}

var _ port.FavoritesAPI = (*fakeFavoritesAPI)(nil)

func newFakeFavoritesAPI(ids ...string) *fakeFavoritesAPI {
	return &fakeFavoritesAPI{
		ids:      ids,
		failures: map[string]error{},
		calls:    map[string]int{},
	}
}

func (f *fakeFavoritesAPI) failOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[op] = err
}

func (f *fakeFavoritesAPI) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeFavoritesAPI) enter(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.failures[op]
}

func (f *fakeFavoritesAPI) List(_ context.Context) ([]domain.Product, error) {
	if err := f.enter("list"); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.Product, 0, len(f.ids))
	for _, id := range f.ids {
		out = append(out, domain.Product{ID: id, Name: "Battery " + id})
	}
	return out, nil
}

func (f *fakeFavoritesAPI) Add(_ context.Context, productID string) error {
	if err := f.enter("add"); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if !slices.Contains(f.ids, productID) {
		f.ids = append(f.ids, productID)
	}
	return nil
}

func (f *fakeFavoritesAPI) Remove(_ context.Context, productID string) error {
	if err := f.enter("remove"); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	idx := slices.Index(f.ids, productID)
	if idx < 0 {
		return notFound()
	}
	f.ids = slices.Delete(f.ids, idx, idx+1)
	return nil
}

func (f *fakeFavoritesAPI) Clear(_ context.Context) error {
	if err := f.enter("clear"); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = nil
	return nil
}
