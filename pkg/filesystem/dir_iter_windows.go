//go:build windows

package filesystem

import (
	"errors"
	"os"
	"syscall"

	"github.com/joe/fs-utils/pkg/alloc"
)

// windowsEnumState enumerates a directory with the handle-based
// FindFirstFile/FindNextFile API. The find-first result is buffered so
// that readOne yields it first, giving this backend the same
// open-then-read shape as the unix one.
type windowsEnumState struct {
	handle syscall.Handle
	data   syscall.Win32finddata
	first  []byte // buffered find-first entry, pending until the first readOne
	opened bool
	done   bool
	closed bool
}

func newEnumState(_ alloc.Allocator) (enumState, error) {
	return &windowsEnumState{handle: syscall.InvalidHandle}, nil
}

func (s *windowsEnumState) open(dir string) error {
	pattern, err := syscall.UTF16PtrFromString(dir + `\*`)
	if err != nil {
		return &os.PathError{Op: "open", Path: dir, Err: err}
	}

	handle, err := syscall.FindFirstFile(pattern, &s.data)
	if err != nil {
		// An existing but empty directory reports ERROR_FILE_NOT_FOUND
		// for the wildcard search; that is success with no entries.
		if errors.Is(err, syscall.ERROR_FILE_NOT_FOUND) && IsDirectory(dir) {
			s.opened = true
			s.done = true

			return nil
		}

		return &os.PathError{Op: "FindFirstFile", Path: dir, Err: err}
	}

	s.handle = handle
	s.opened = true
	s.first = []byte(syscall.UTF16ToString(s.data.FileName[:]))

	return nil
}

func (s *windowsEnumState) readOne() ([]byte, bool, error) {
	if !s.opened || s.done || s.closed {
		return nil, false, nil
	}

	if s.first != nil {
		name := s.first
		s.first = nil

		return name, true, nil
	}

	if err := syscall.FindNextFile(s.handle, &s.data); err != nil {
		s.done = true

		if errors.Is(err, syscall.ERROR_NO_MORE_FILES) {
			return nil, false, nil
		}

		return nil, false, &os.PathError{Op: "FindNextFile", Path: "", Err: err}
	}

	return []byte(syscall.UTF16ToString(s.data.FileName[:])), true, nil
}

// close releases the find handle exactly once. The closed flag is the
// guard; exhaustion does not implicitly close the handle, so End stays
// safe whether or not the sequence ran to the end.
func (s *windowsEnumState) close() {
	if s.closed {
		return
	}
	s.closed = true

	if s.opened && s.handle != syscall.InvalidHandle {
		_ = syscall.FindClose(s.handle)
		s.handle = syscall.InvalidHandle
	}

	s.first = nil
}
