package store

import (
	"context"
	"errors"
	"sync"
)

var ErrClosed = errors.New("store is closed")

const defaultQueueSize = 32

type mutation struct {
	ctx    context.Context
	fn     func(ctx context.Context) error
	result chan error
}

// mutationQueue applies mutations one at a time, in submission order, on a single
// worker goroutine. Closing it cancels the running mutation and rejects the rest.
type mutationQueue struct {
	pending chan mutation
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once
}

func newMutationQueue(size int) *mutationQueue {
	ctx, cancel := context.WithCancel(context.Background())
	q := &mutationQueue{
		pending: make(chan mutation, size),
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *mutationQueue) run() {
	defer close(q.stopped)

	for {
		select {
		case <-q.ctx.Done():
			q.drain()
			return
		case m := <-q.pending:
			if q.ctx.Err() != nil {
				m.result <- ErrClosed
				q.drain()
				return
			}
			m.result <- q.apply(m)
		}
	}
}

func (q *mutationQueue) apply(m mutation) error {
	// the caller gave up before its turn came
	if err := m.ctx.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(m.ctx)
	defer cancel()
	stop := context.AfterFunc(q.ctx, cancel)
	defer stop()

	return m.fn(ctx)
}

func (q *mutationQueue) drain() {
	for {
		select {
		case m := <-q.pending:
			m.result <- ErrClosed
		default:
			return
		}
	}
}

// submit enqueues fn and waits for its result.
func (q *mutationQueue) submit(ctx context.Context, fn func(ctx context.Context) error) error {
	if q.ctx.Err() != nil {
		return ErrClosed
	}

	m := mutation{ctx: ctx, fn: fn, result: make(chan error, 1)}

	select {
	case q.pending <- m:
	case <-q.ctx.Done():
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-m.result:
		return err
	case <-q.stopped:
		// the worker may have answered right before stopping
		select {
		case err := <-m.result:
			return err
		default:
			return ErrClosed
		}
	}
}

func (q *mutationQueue) close() {
	q.once.Do(q.cancel)
	<-q.stopped
}
