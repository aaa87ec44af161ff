package store

import (
	"errors"
	"net/http"
	"sync"

	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/currency"
)

type Status int

const (
	StatusUninitialized Status = iota
	StatusLoading
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

type options struct {
	log       logrus.FieldLogger
	currency  currency.Unit
	queueSize int
}

type Option func(*options)

func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithCurrency sets the currency of cart totals. Defaults to USD.
func WithCurrency(cur currency.Unit) Option {
	return func(o *options) {
		o.currency = cur
	}
}

func WithQueueSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueSize = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		log:       logrus.StandardLogger(),
		currency:  currency.USD,
		queueSize: defaultQueueSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// subscribers fan snapshots out to registered callbacks.
type subscribers[T any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(T)
}

func (s *subscribers[T]) add(fn func(T)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fns == nil {
		s.fns = make(map[int]func(T))
	}
	id := s.next
	s.next++
	s.fns[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.fns, id)
	}
}

func (s *subscribers[T]) notify(v T) {
	s.mu.Lock()
	fns := make([]func(T), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

func (s *subscribers[T]) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fns = nil
}

func hasStatus(err error, status int) bool {
	apiErr, ok := domain.AsAPIError(err)
	return ok && apiErr.Status == status
}

func isNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

func isConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

// surfaced reports whether err should be recorded on the store. Discarded intents
// and teardown are not user-facing failures.
func surfaced(err error) bool {
	return err != nil && !errors.Is(err, ErrClosed)
}
