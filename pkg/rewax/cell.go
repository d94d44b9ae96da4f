package rewax

import "sync"

// Cell is the handle returned by UseState. The memo store owns the cell;
// every render that reaches the same slot gets the same *Cell back, so
// writes made by handlers are visible to the next render.
//
// Cell[T] is safe for concurrent access.
type Cell[T any] struct {
	value T
	mu    sync.RWMutex
}

// NewCell creates a free-standing cell. Most code gets its cells from
// UseState instead.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set replaces the value.
func (c *Cell[T]) Set(value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
}

// Update replaces the value with fn applied to it and returns the result.
func (c *Cell[T]) Update(fn func(T) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = fn(c.value)
	return c.value
}

// Ptr runs fn with a pointer to the value while holding the write lock.
// It is how struct and map fields are edited in place.
func (c *Cell[T]) Ptr(fn func(*T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.value)
}
