// Package alloc provides an allocator abstraction for byte buffers
// to enable dependency injection and testing of allocation failure paths.
//
// Every heap-owning entity in this module is parameterized by an Allocator
// rather than allocating implicitly, so tests can inject failing or
// counting allocators and pooled allocators can recycle buffers.
package alloc

import (
	"sync"
)

// Allocator is an interface that abstracts zeroed buffer allocation.
// This allows for dependency injection and testing with failing implementations.
type Allocator interface {
	// ZeroAllocate returns a zeroed buffer of count*size bytes.
	// Returns nil if count or size is not positive, if count*size
	// overflows, or if the buffer cannot be obtained.
	ZeroAllocate(count, size int) []byte

	// Deallocate releases a buffer previously returned by ZeroAllocate
	// on this allocator. Passing nil is a no-op.
	Deallocate(buf []byte)
}

// Default returns the heap allocator. Deallocate is a no-op; the garbage
// collector owns reclamation.
func Default() Allocator {
	return heapAllocator{}
}

// heapAllocator implements Allocator using plain make.
type heapAllocator struct{}

func (heapAllocator) ZeroAllocate(count, size int) []byte {
	total, ok := checkedLen(count, size)
	if !ok {
		return nil
	}

	return make([]byte, total)
}

func (heapAllocator) Deallocate([]byte) {}

// checkedLen returns count*size, guarding against non-positive arguments
// and overflow.
func checkedLen(count, size int) (int, bool) {
	if count <= 0 || size <= 0 {
		return 0, false
	}

	total := count * size
	if total/size != count {
		return 0, false
	}

	return total, true
}

// PoolAllocator implements Allocator using a sync.Pool so that buffers
// released via Deallocate can be reused by later allocations. Buffers are
// re-zeroed on reuse, so the zeroed-buffer contract still holds.
type PoolAllocator struct {
	pool sync.Pool
}

// NewPool creates a new PoolAllocator.
func NewPool() *PoolAllocator {
	return &PoolAllocator{}
}

// ZeroAllocate returns a zeroed buffer of count*size bytes, reusing a
// pooled buffer when one of sufficient capacity is available.
func (p *PoolAllocator) ZeroAllocate(count, size int) []byte {
	total, ok := checkedLen(count, size)
	if !ok {
		return nil
	}

	if pooled, ok := p.pool.Get().(*[]byte); ok && cap(*pooled) >= total {
		buf := (*pooled)[:total]
		clear(buf)

		return buf
	}

	return make([]byte, total)
}

// Deallocate returns the buffer to the pool for reuse.
func (p *PoolAllocator) Deallocate(buf []byte) {
	if buf == nil {
		return
	}

	p.pool.Put(&buf)
}
