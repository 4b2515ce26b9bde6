// Package dispatch implements the asynchronous completion primitives of the
// application: pending operations that resolve exactly once and a bounded
// worker pool that executes them off the caller's goroutine.
package dispatch

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Operation is a pending asynchronous unit of work. It is created by
// submitting work to a [Pool] and resolves exactly once, either with a result
// or with an error. A resolved operation must not be reused.
type Operation[T any] struct {
	once   sync.Once
	done   chan struct{}
	result T
	err    error
}

func newOperation[T any]() *Operation[T] {
	return &Operation[T]{
		done: make(chan struct{}),
	}
}

// resolve settles the operation. Any resolution after the first is discarded,
// guaranteeing the exactly-once contract.
func (o *Operation[T]) resolve(result T, err error) {
	o.once.Do(func() {
		o.result = result
		o.err = err
		close(o.done)
	})
}

// Done returns a channel that is closed once the operation has resolved.
func (o *Operation[T]) Done() <-chan struct{} {
	return o.done
}

// Result returns the outcome of a resolved operation. It must only be called
// after the [Operation.Done] channel has been closed.
func (o *Operation[T]) Result() (T, error) {
	return o.result, o.err
}

// Await blocks until the operation has resolved or the given context expires.
// A context expiry does not cancel the dispatched work, it only abandons the
// wait; a late result is settled into the operation and discarded.
func (o *Operation[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-o.done:
		return o.result, o.err
	case <-ctx.Done():
		var zero T

		return zero, fmt.Errorf("(dispatch-await) %w", ctx.Err())
	}
}

// Pool is a bounded worker pool for non-blocking filesystem requests. Two
// operations submitted back-to-back carry no ordering guarantee relative to
// each other; ordering requires chaining through [Operation.Await].
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool returns a pointer to a new [Pool] admitting at most maxWorkers
// concurrently executing operations.
func NewPool(maxWorkers int64) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	return &Pool{
		sem: semaphore.NewWeighted(maxWorkers),
	}
}

// Submit schedules work on the pool and returns the corresponding pending
// [Operation]. Errors of the work function are delivered through the
// operation's resolution, never by panicking out of the pool. The context only
// gates admission into the pool; once the work has been dispatched it can no
// longer be cancelled.
func Submit[T any](ctx context.Context, pool *Pool, work func() (T, error)) *Operation[T] {
	op := newOperation[T]()

	go func() {
		if err := pool.sem.Acquire(ctx, 1); err != nil {
			var zero T
			op.resolve(zero, fmt.Errorf("(dispatch-submit) %w: %w", ErrNotAdmitted, err))

			return
		}
		defer pool.sem.Release(1)

		result, err := work()
		op.resolve(result, err)
	}()

	return op
}
