// Package pathutil provides allocator-parameterized path composition:
// joining, native-delimiter normalization, and home-directory expansion.
//
// Functions that produce a path return an owned []byte obtained from the
// supplied allocator; ownership transfers to the caller, who releases it
// through the same allocator. A nil result never accompanies a nil error.
package pathutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/joe/fs-utils/pkg/alloc"
)

// Delimiter is the platform path delimiter.
const Delimiter = string(os.PathSeparator)

// Join concatenates left, the platform delimiter, and right. It performs
// no normalization: duplicate delimiters are not collapsed and "." / ".."
// are not resolved.
func Join(left, right string, allocator alloc.Allocator) ([]byte, error) {
	if allocator == nil {
		return nil, alloc.ErrInvalidAllocator
	}

	buf := allocator.ZeroAllocate(1, len(left)+len(Delimiter)+len(right))
	if buf == nil {
		return nil, fmt.Errorf("failed to join %q and %q: %w", left, right, alloc.ErrAllocFailed)
	}

	n := copy(buf, left)
	n += copy(buf[n:], Delimiter)
	copy(buf[n:], right)

	return buf, nil
}

// ToNative replaces every forward-slash delimiter in path with the
// platform-native delimiter. Where the native delimiter already is the
// forward slash this is a plain duplication.
func ToNative(path string, allocator alloc.Allocator) ([]byte, error) {
	if allocator == nil {
		return nil, alloc.ErrInvalidAllocator
	}

	native := strings.ReplaceAll(path, "/", Delimiter)

	return duplicate(native, allocator)
}

// duplicate copies s into an allocator-owned buffer.
func duplicate(s string, allocator alloc.Allocator) ([]byte, error) {
	if s == "" {
		// ZeroAllocate rejects zero sizes; an empty path is still a
		// valid owned result.
		return []byte{}, nil
	}

	buf := allocator.ZeroAllocate(1, len(s))
	if buf == nil {
		return nil, fmt.Errorf("failed to duplicate %q: %w", s, alloc.ErrAllocFailed)
	}
	copy(buf, s)

	return buf, nil
}
