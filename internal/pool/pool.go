// Package pool wraps sync.Pool with a typed API.
package pool

import "sync"

// Pool is a typed sync.Pool. When reset is set, items are reset on Put so
// Get never hands out stale contents.
type Pool[T any] struct {
	internal sync.Pool
	reset    func(T)
}

// New creates a Pool with the given constructor.
func New[T any](newFn func() T) *Pool[T] {
	return NewWithReset(newFn, nil)
}

// NewWithReset creates a Pool whose items are passed to reset before they
// are returned to the pool.
func NewWithReset[T any](newFn func() T, reset func(T)) *Pool[T] {
	return &Pool[T]{
		internal: sync.Pool{
			New: func() any {
				return newFn()
			},
		},
		reset: reset,
	}
}

// Get retrieves an item from the pool.
func (p *Pool[T]) Get() T {
	return p.internal.Get().(T)
}

// Put resets item and returns it to the pool.
func (p *Pool[T]) Put(item T) {
	if p.reset != nil {
		p.reset(item)
	}
	p.internal.Put(item)
}
