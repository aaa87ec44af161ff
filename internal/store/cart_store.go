package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/sirupsen/logrus"
)

// CartSnapshot is an immutable view of the cart store.
type CartSnapshot struct {
	Status Status
	Cart   domain.Cart
	Err    error
}

func (s CartSnapshot) ItemCount() int {
	return s.Cart.ItemCount()
}

func (s CartSnapshot) TotalPrice() domain.Money {
	return s.Cart.TotalPrice()
}

// CartStore mirrors the remote cart. Mutations are serialized and always reconciled
// against the server: after a successful remote call the full cart is fetched again.
// A failed mutation leaves the items untouched and records the error.
type CartStore struct {
	api   port.CartAPI
	queue *mutationQueue
	log   logrus.FieldLogger
	subs  subscribers[CartSnapshot]

	mu     sync.RWMutex
	status Status
	cart   domain.Cart
	err    error
}

func NewCartStore(api port.CartAPI, opts ...Option) *CartStore {
	o := newOptions(opts)

	return &CartStore{
		api:   api,
		queue: newMutationQueue(o.queueSize),
		log:   o.log.WithField("component", "cart-store"),
		cart:  domain.Cart{Currency: o.currency},
	}
}

// Initialize loads the cart from the server. It may be called again to retry.
func (s *CartStore) Initialize(ctx context.Context) error {
	return s.queue.submit(ctx, func(ctx context.Context) error {
		prev := s.setStatus(StatusLoading)

		items, err := s.api.Get(ctx)
		if err != nil {
			err = fmt.Errorf("api.Get: %w", err)
			s.fail("initialize", "", err, prev)
			return err
		}

		s.commit(items)
		return nil
	})
}

// Add adds quantity units of a product, merging into an existing line.
func (s *CartStore) Add(ctx context.Context, productID string, quantity int) error {
	if productID == "" {
		return fmt.Errorf("productID is empty")
	}
	if quantity < 1 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, quantity)
	}

	return s.run(ctx, "add", productID, func(ctx context.Context) error {
		if err := s.api.AddItem(ctx, productID, quantity); err != nil {
			return fmt.Errorf("api.AddItem: %w", err)
		}
		return s.resync(ctx)
	})
}

// UpdateQuantity sets a line's quantity. A non-positive quantity removes the line;
// a product that is not in the cart is left alone.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}
	if productID == "" {
		return fmt.Errorf("productID is empty")
	}

	return s.run(ctx, "update", productID, func(ctx context.Context) error {
		if !s.current().Contains(productID) {
			return nil
		}

		if err := s.api.UpdateItem(ctx, productID, quantity); err != nil {
			return fmt.Errorf("api.UpdateItem: %w", err)
		}
		return s.resync(ctx)
	})
}

// Remove deletes a line. Removing an absent product succeeds.
func (s *CartStore) Remove(ctx context.Context, productID string) error {
	if productID == "" {
		return fmt.Errorf("productID is empty")
	}

	return s.run(ctx, "remove", productID, func(ctx context.Context) error {
		if err := s.api.RemoveItem(ctx, productID); err != nil && !isNotFound(err) {
			return fmt.Errorf("api.RemoveItem: %w", err)
		}
		return s.resync(ctx)
	})
}

// Clear empties the cart. The end state is known, so no resync is made.
func (s *CartStore) Clear(ctx context.Context) error {
	return s.run(ctx, "clear", "", func(ctx context.Context) error {
		if err := s.api.Clear(ctx); err != nil {
			return fmt.Errorf("api.Clear: %w", err)
		}
		s.commit(nil)
		return nil
	})
}

func (s *CartStore) Snapshot() CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return CartSnapshot{
		Status: s.status,
		Cart:   s.cart.Clone(),
		Err:    s.err,
	}
}

func (s *CartStore) Items() []domain.CartLineItem {
	return s.Snapshot().Cart.Items
}

func (s *CartStore) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.ItemCount()
}

func (s *CartStore) TotalPrice() domain.Money {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.TotalPrice()
}

func (s *CartStore) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Err returns the last surfaced error, if it has not been dismissed.
func (s *CartStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// DismissError clears the surfaced error. It is applied in turn with queued
// mutations, so subscribers are still notified from the worker goroutine.
// It is a no-op once the store is closed.
func (s *CartStore) DismissError() {
	_ = s.queue.submit(context.Background(), func(context.Context) error {
		s.mu.Lock()
		s.err = nil
		s.mu.Unlock()

		s.subs.notify(s.Snapshot())
		return nil
	})
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs on the store's worker goroutine and must not wait on store mutations.
func (s *CartStore) Subscribe(fn func(CartSnapshot)) (unsubscribe func()) {
	return s.subs.add(fn)
}

// Close stops the store and drops its state. Pending and later mutations fail with ErrClosed.
func (s *CartStore) Close() {
	s.queue.close()

	s.mu.Lock()
	s.status = StatusUninitialized
	s.cart = domain.Cart{Currency: s.cart.Currency}
	s.err = nil
	s.mu.Unlock()

	s.subs.reset()
}

func (s *CartStore) run(ctx context.Context, op, productID string, fn func(ctx context.Context) error) error {
	return s.queue.submit(ctx, func(ctx context.Context) error {
		err := fn(ctx)
		if surfaced(err) {
			s.fail(op, productID, err, s.Status())
		}
		return err
	})
}

func (s *CartStore) resync(ctx context.Context) error {
	items, err := s.api.Get(ctx)
	if err != nil {
		return fmt.Errorf("resync: api.Get: %w", err)
	}

	s.commit(items)
	return nil
}

func (s *CartStore) current() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart
}

func (s *CartStore) setStatus(status Status) (prev Status) {
	s.mu.Lock()
	prev, s.status = s.status, status
	s.mu.Unlock()

	s.subs.notify(s.Snapshot())
	return prev
}

func (s *CartStore) commit(items []domain.CartLineItem) {
	s.mu.Lock()
	s.cart = domain.Cart{
		OwnerID:  s.cart.OwnerID,
		Currency: s.cart.Currency,
		Items:    items,
	}
	s.status = StatusReady
	s.err = nil
	s.mu.Unlock()

	s.subs.notify(s.Snapshot())
}

func (s *CartStore) fail(op, productID string, err error, status Status) {
	s.log.WithError(err).WithFields(logrus.Fields{
		"op":         op,
		"product_id": productID,
	}).Warn("cart operation failed")

	s.mu.Lock()
	s.status = status
	s.err = err
	s.mu.Unlock()

	s.subs.notify(s.Snapshot())
}
