// Package session ties the API client and the synchronization stores to one signed-in user.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-sync/internal/client"
	"github.com/nikolayk812/storefront-sync/internal/config"
	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/nikolayk812/storefront-sync/internal/store"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/currency"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCartNotReady       = errors.New("cart is not loaded")
	ErrInvalidAddress     = errors.New("shipping address is incomplete")
	ErrUnsupportedPayment = errors.New("payment method is not supported")
)

// APIs groups the remote resources a session works against.
type APIs struct {
	Cart      port.CartAPI
	Favorites port.FavoritesAPI
	Products  port.ProductsAPI
	Orders    port.OrdersAPI
}

// Session owns the stores of one signed-in user. It is created at login and closed at logout.
type Session struct {
	Cart      *store.CartStore
	Favorites *store.FavoritesStore
	Products  port.ProductsAPI

	orders port.OrdersAPI
	log    logrus.FieldLogger
}

// New builds a session without loading anything.
func New(apis APIs, cur currency.Unit, log logrus.FieldLogger) *Session {
	opts := []store.Option{store.WithLogger(log), store.WithCurrency(cur)}

	return &Session{
		Cart:      store.NewCartStore(apis.Cart, opts...),
		Favorites: store.NewFavoritesStore(apis.Favorites, opts...),
		Products:  apis.Products,
		orders:    apis.Orders,
		log:       log.WithField("component", "session"),
	}
}

// Open connects to the API described by cfg and loads cart and favorites concurrently.
// If either load fails the session is closed and the error returned.
func Open(ctx context.Context, cfg config.Client, creds port.CredentialSource, log logrus.FieldLogger) (*Session, error) {
	if creds == nil {
		return nil, fmt.Errorf("creds is nil")
	}

	api, err := client.New(cfg.APIURL,
		client.WithTimeout(cfg.Timeout),
		client.WithCredentials(creds),
		client.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("client.New: %w", err)
	}

	s := New(APIs{
		Cart:      api.Cart,
		Favorites: api.Favorites,
		Products:  api.Products,
		Orders:    api.Orders,
	}, cfg.Currency, log)

	if err := s.Initialize(ctx); err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

// Initialize loads both stores in parallel. It may be called again after a failure.
// A failed load does not cancel the other one, so each store keeps its own outcome.
func (s *Session) Initialize(ctx context.Context) error {
	var g errgroup.Group

	g.Go(func() error {
		if err := s.Cart.Initialize(ctx); err != nil {
			return fmt.Errorf("cart.Initialize: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.Favorites.Initialize(ctx); err != nil {
			return fmt.Errorf("favorites.Initialize: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Orders lists the user's past orders.
func (s *Session) Orders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("orders.List: %w", err)
	}
	return orders, nil
}

func (s *Session) Order(ctx context.Context, id string) (domain.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order id[%s] is not valid: %w", id, err)
	}

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.Get: %w", err)
	}
	return order, nil
}

// Checkout places an order for the current cart contents and then empties the cart.
// When the order is placed but clearing the cart fails, both the order and the error are returned.
func (s *Session) Checkout(ctx context.Context, addr domain.ShippingAddress, method domain.PaymentMethod) (domain.Order, error) {
	if missing := addr.MissingFields(); len(missing) > 0 {
		return domain.Order{}, fmt.Errorf("%w: missing %v", ErrInvalidAddress, missing)
	}
	if !method.Valid() {
		return domain.Order{}, fmt.Errorf("%w: %q", ErrUnsupportedPayment, method)
	}

	snapshot := s.Cart.Snapshot()
	if snapshot.Status != store.StatusReady {
		return domain.Order{}, ErrCartNotReady
	}
	if len(snapshot.Cart.Items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	lines := make([]domain.OrderLine, 0, len(snapshot.Cart.Items))
	for _, item := range snapshot.Cart.Items {
		lines = append(lines, domain.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := s.orders.Create(ctx, port.NewOrder{
		Lines:           lines,
		ShippingAddress: addr,
		PaymentMethod:   method,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.Create: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    order.Total.String(),
	}).Info("order placed")

	if err := s.Cart.Clear(ctx); err != nil {
		return order, fmt.Errorf("cart.Clear: %w", err)
	}

	return order, nil
}

// Close stops both stores and drops their state.
func (s *Session) Close() {
	s.Cart.Close()
	s.Favorites.Close()
}
