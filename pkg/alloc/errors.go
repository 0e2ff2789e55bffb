package alloc

import "errors"

// Exported variables.
var (
	// ErrInvalidAllocator reports a nil allocator where one is required.
	ErrInvalidAllocator = errors.New("allocator is invalid")
	// ErrAllocFailed reports that the allocator could not supply a buffer.
	ErrAllocFailed = errors.New("allocation failed")
)
