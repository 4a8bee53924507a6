package generic

// Pool is a free list of reusable values. Unlike sync.Pool it never drops
// values behind the caller's back, so reuse is deterministic: Get returns
// the most recently Put value first.
//
// Pool is not safe for concurrent use.
type Pool[T any] struct {
	generate func() T
	reset    func(T)
	free     []T
	created  int
}

// NewPool returns an empty pool. reset, if not nil, runs on every value
// handed back through Put.
func NewPool[T any](generate func() T, reset func(T)) *Pool[T] {
	return &Pool[T]{generate: generate, reset: reset}
}

// NewHotPool returns a pool pre-filled with hotSize values.
func NewHotPool[T any](generate func() T, reset func(T), hotSize int) *Pool[T] {
	p := NewPool(generate, reset)
	for i := 0; i < hotSize; i++ {
		p.free = append(p.free, generate())
		p.created++
	}
	return p
}

func (p *Pool[T]) Get() T {
	if n := len(p.free); n > 0 {
		v := p.free[n-1]
		var zero T
		p.free[n-1] = zero
		p.free = p.free[:n-1]
		return v
	}
	p.created++
	return p.generate()
}

func (p *Pool[T]) Put(value T) {
	if p.reset != nil {
		p.reset(value)
	}
	p.free = append(p.free, value)
}

// Idle returns the number of values waiting for reuse.
func (p *Pool[T]) Idle() int {
	return len(p.free)
}

// Created returns how many values the pool has generated in total.
func (p *Pool[T]) Created() int {
	return p.created
}
