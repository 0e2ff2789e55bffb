//go:build linux || darwin

package filesystem

import (
	"fmt"
	"os"
	"syscall"
	"unsafe"

	"github.com/joe/fs-utils/pkg/alloc"
)

// enumBufSize is the getdents read buffer size. One kernel call typically
// fills many records, so advances rarely enter the kernel.
const enumBufSize = 8192

// unixEnumState enumerates a directory with raw getdents reads. Parsing
// the records ourselves is deliberate: os.ReadDir and Readdirnames drop
// "." and "..", and the listing contract here is fidelity to the native
// enumeration.
type unixEnumState struct {
	fd        int
	buf       []byte // allocator-owned getdents buffer
	pending   []byte // unparsed tail of the last getdents read
	allocator alloc.Allocator
	opened    bool
	done      bool
	closed    bool
}

func newEnumState(allocator alloc.Allocator) (enumState, error) {
	buf := allocator.ZeroAllocate(1, enumBufSize)
	if buf == nil {
		return nil, fmt.Errorf("failed to allocate enumeration buffer: %w", alloc.ErrAllocFailed)
	}

	return &unixEnumState{fd: -1, buf: buf, allocator: allocator}, nil
}

func (s *unixEnumState) open(dir string) error {
	fd, err := syscall.Open(dir, syscall.O_RDONLY|syscall.O_DIRECTORY|syscall.O_CLOEXEC, 0)
	if err != nil {
		return &os.PathError{Op: "open", Path: dir, Err: err}
	}

	s.fd = fd
	s.opened = true

	return nil
}

func (s *unixEnumState) readOne() ([]byte, bool, error) {
	if !s.opened || s.done || s.closed {
		return nil, false, nil
	}

	for {
		if len(s.pending) == 0 {
			n, err := syscall.ReadDirent(s.fd, s.buf)
			if err != nil {
				s.done = true

				return nil, false, err
			}

			if n == 0 {
				s.done = true

				return nil, false, nil
			}

			s.pending = s.buf[:n]
		}

		name, consumed, ok := parseDirent(s.pending)
		s.pending = s.pending[consumed:]

		if ok {
			return name, true, nil
		}
		// deleted placeholder record; keep scanning
	}
}

func (s *unixEnumState) close() {
	if s.closed {
		return
	}
	s.closed = true

	if s.opened && s.fd >= 0 {
		_ = syscall.Close(s.fd)
		s.fd = -1
	}

	if s.buf != nil {
		s.allocator.Deallocate(s.buf)
		s.buf = nil
		s.pending = nil
	}
}

// parseDirent decodes the first dirent record in buf. consumed is the
// record length to skip; ok is false for deleted-entry placeholders
// (inode 0) and malformed records. The returned name aliases buf.
func parseDirent(buf []byte) (name []byte, consumed int, ok bool) {
	dirent := (*syscall.Dirent)(unsafe.Pointer(&buf[0]))

	reclen := int(dirent.Reclen)
	if reclen == 0 || reclen > len(buf) {
		// Malformed record; drop the remainder of the buffer.
		return nil, len(buf), false
	}

	if dirent.Ino == 0 {
		return nil, reclen, false
	}

	nameOff := int(unsafe.Offsetof(dirent.Name))
	if nameOff >= reclen {
		return nil, reclen, false
	}

	raw := buf[nameOff:reclen]
	for i, b := range raw {
		if b == 0 {
			raw = raw[:i]

			break
		}
	}

	if len(raw) == 0 {
		return nil, reclen, false
	}

	return raw, reclen, true
}
