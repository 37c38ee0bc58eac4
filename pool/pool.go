// Package pool provides a bounded free list for reusing objects.
//
// The contract is take and put, never store: once a value is put back it must
// not be used through any reference other than one returned by a later Take.
// A Pool is not safe for concurrent use.
package pool

// Pool is a bounded free list of *T values.
type Pool[T any] struct {
	free  []*T
	max   int
	reset func(*T)
}

// New creates a pool that keeps at most max idle values. reset, if not nil,
// is applied to every value handed out by Take.
func New[T any](max int, reset func(*T)) *Pool[T] {
	return &Pool[T]{
		free:  make([]*T, 0, max),
		max:   max,
		reset: reset,
	}
}

// Take returns an idle value, or a new one when the pool is empty.
func (p *Pool[T]) Take() *T {
	var item *T
	if n := len(p.free); n > 0 {
		item = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
	} else {
		item = new(T)
	}

	if p.reset != nil {
		p.reset(item)
	}
	return item
}

// Put returns a value to the pool. Values beyond the pool's capacity are dropped.
func (p *Pool[T]) Put(item *T) {
	if item == nil || len(p.free) >= p.max {
		return
	}
	p.free = append(p.free, item)
}

// Idle reports the number of values waiting in the pool.
func (p *Pool[T]) Idle() int {
	return len(p.free)
}
