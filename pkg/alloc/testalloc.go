package alloc

import (
	"sync"
)

// CountingAllocator wraps another Allocator and tracks how many buffers
// are outstanding (allocated but not yet deallocated). Leak tests assert
// that Outstanding returns to zero after resources are released.
type CountingAllocator struct {
	inner Allocator

	mu          sync.Mutex
	outstanding int
	allocs      int
}

// NewCounting creates a CountingAllocator around inner.
func NewCounting(inner Allocator) *CountingAllocator {
	return &CountingAllocator{inner: inner}
}

// ZeroAllocate delegates to the inner allocator and counts successes.
func (c *CountingAllocator) ZeroAllocate(count, size int) []byte {
	buf := c.inner.ZeroAllocate(count, size)
	if buf == nil {
		return nil
	}

	c.mu.Lock()
	c.outstanding++
	c.allocs++
	c.mu.Unlock()

	return buf
}

// Deallocate delegates to the inner allocator and counts the release.
func (c *CountingAllocator) Deallocate(buf []byte) {
	if buf == nil {
		return
	}

	c.mu.Lock()
	c.outstanding--
	c.mu.Unlock()

	c.inner.Deallocate(buf)
}

// Outstanding returns the number of buffers allocated but not deallocated.
func (c *CountingAllocator) Outstanding() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.outstanding
}

// Allocations returns the total number of successful allocations.
func (c *CountingAllocator) Allocations() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.allocs
}

// FailingAllocator succeeds for a fixed number of allocations and then
// returns nil forever. It exercises allocation-failure paths in tests.
type FailingAllocator struct {
	mu        sync.Mutex
	remaining int
}

// NewFailing creates an allocator whose first failAfter allocations
// succeed and whose subsequent allocations fail.
func NewFailing(failAfter int) *FailingAllocator {
	return &FailingAllocator{remaining: failAfter}
}

// ZeroAllocate fails once the allowance is exhausted.
func (f *FailingAllocator) ZeroAllocate(count, size int) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.remaining <= 0 {
		return nil
	}
	f.remaining--

	total, ok := checkedLen(count, size)
	if !ok {
		return nil
	}

	return make([]byte, total)
}

// Deallocate is a no-op; the failing allocator is heap-backed.
func (f *FailingAllocator) Deallocate([]byte) {}
