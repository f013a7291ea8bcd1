package filter

import "sync"

// concurrentFilter serializes inserts while letting lookups run in parallel.
type concurrentFilter struct {
	mu    sync.RWMutex
	inner Filter
}

var _ Filter = (*concurrentFilter)(nil)

// NewConcurrent wraps f so that it is safe for concurrent use by multiple
// goroutines. f must not be used directly afterwards.
func NewConcurrent(f Filter) Filter {
	if cf, ok := f.(*concurrentFilter); ok {
		return cf
	}
	return &concurrentFilter{inner: f}
}

func (c *concurrentFilter) Insert(key []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inner.Insert(key)
}

func (c *concurrentFilter) Contains(key []byte) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inner.Contains(key)
}

func (c *concurrentFilter) Size() uint64 { return c.inner.Size() }

func (c *concurrentFilter) HashCount() uint32 { return c.inner.HashCount() }

func (c *concurrentFilter) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inner.Stats()
}
