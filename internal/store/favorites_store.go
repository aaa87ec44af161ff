package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/sirupsen/logrus"
)

type FavoritesSnapshot struct {
	Status    Status
	Favorites domain.FavoriteSet
	Err       error
}

func (s FavoritesSnapshot) IsFavorite(productID string) bool {
	return s.Favorites.Contains(productID)
}

// FavoritesStore mirrors the remote favorites list. Toggle changes the local set
// only after the remote call succeeds; it does not refetch the list.
type FavoritesStore struct {
	api   port.FavoritesAPI
	queue *mutationQueue
	log   logrus.FieldLogger
	subs  subscribers[FavoritesSnapshot]

	mu        sync.RWMutex
	status    Status
	favorites domain.FavoriteSet
	err       error
}

func NewFavoritesStore(api port.FavoritesAPI, opts ...Option) *FavoritesStore {
	o := newOptions(opts)

	return &FavoritesStore{
		api:   api,
		queue: newMutationQueue(o.queueSize),
		log:   o.log.WithField("component", "favorites-store"),
	}
}

func (s *FavoritesStore) Initialize(ctx context.Context) error {
	return s.queue.submit(ctx, func(ctx context.Context) error {
		prev := s.setStatus(StatusLoading)

		products, err := s.api.List(ctx)
		if err != nil {
			err = fmt.Errorf("api.List: %w", err)
			s.fail("initialize", "", err, prev)
			return err
		}

		ids := make([]string, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ID)
		}

		s.commit(domain.NewFavoriteSet(ids...))
		return nil
	})
}

// Toggle flips membership of productID and reports whether it is now a favorite.
// Membership is evaluated when the toggle runs, after earlier queued mutations.
func (s *FavoritesStore) Toggle(ctx context.Context, productID string) (bool, error) {
	if productID == "" {
		return false, fmt.Errorf("productID is empty")
	}

	var favorite bool
	err := s.run(ctx, "toggle", productID, func(ctx context.Context) error {
		current := s.current()

		if current.Contains(productID) {
			if err := s.api.Remove(ctx, productID); err != nil && !isNotFound(err) {
				return fmt.Errorf("api.Remove: %w", err)
			}
			s.commit(current.Without(productID))
			favorite = false
			return nil
		}

		if err := s.api.Add(ctx, productID); err != nil && !isConflict(err) {
			return fmt.Errorf("api.Add: %w", err)
		}
		s.commit(current.With(productID))
		favorite = true
		return nil
	})
	if err != nil {
		return s.IsFavorite(productID), err
	}

	return favorite, nil
}

func (s *FavoritesStore) IsFavorite(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.favorites.Contains(productID)
}

func (s *FavoritesStore) Clear(ctx context.Context) error {
	return s.run(ctx, "clear", "", func(ctx context.Context) error {
		if err := s.api.Clear(ctx); err != nil {
			return fmt.Errorf("api.Clear: %w", err)
		}
		s.commit(domain.FavoriteSet{})
		return nil
	})
}

func (s *FavoritesStore) Snapshot() FavoritesSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return FavoritesSnapshot{
		Status:    s.status,
		Favorites: s.favorites,
		Err:       s.err,
	}
}

func (s *FavoritesStore) ProductIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.favorites.IDs()
}

func (s *FavoritesStore) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *FavoritesStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// DismissError clears the surfaced error. It is applied in turn with queued
// mutations, so subscribers are still notified from the worker goroutine.
// It is a no-op once the store is closed.
func (s *FavoritesStore) DismissError() {
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
func (s *FavoritesStore) Subscribe(fn func(FavoritesSnapshot)) (unsubscribe func()) {
	return s.subs.add(fn)
}

func (s *FavoritesStore) Close() {
	s.queue.close()

	s.mu.Lock()
	s.status = StatusUninitialized
	s.favorites = domain.FavoriteSet{}
	s.err = nil
	s.mu.Unlock()

	s.subs.reset()
}

func (s *FavoritesStore) run(ctx context.Context, op, productID string, fn func(ctx context.Context) error) error {
	return s.queue.submit(ctx, func(ctx context.Context) error {
		err := fn(ctx)
		if surfaced(err) {
			s.fail(op, productID, err, s.Status())
		}
		return err
	})
}

func (s *FavoritesStore) current() domain.FavoriteSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.favorites
}

func (s *FavoritesStore) setStatus(status Status) (prev Status) {
	s.mu.Lock()
	prev, s.status = s.status, status
	s.mu.Unlock()

	s.subs.notify(s.Snapshot())
	return prev
}

func (s *FavoritesStore) commit(favorites domain.FavoriteSet) {
	s.mu.Lock()
	s.favorites = favorites
	s.status = StatusReady
	s.err = nil
	s.mu.Unlock()

	s.subs.notify(s.Snapshot())
}

func (s *FavoritesStore) fail(op, productID string, err error, status Status) {
	s.log.WithError(err).WithFields(logrus.Fields{
		"op":         op,
		"product_id": productID,
	}).Warn("favorites operation failed")

	s.mu.Lock()
	s.status = status
	s.err = err
	s.mu.Unlock()

	s.subs.notify(s.Snapshot())
}
