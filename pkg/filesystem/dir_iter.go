package filesystem

import (
	"errors"
	"fmt"

	"github.com/joe/fs-utils/pkg/alloc"
	"github.com/joe/fs-utils/pkg/diag"
)

// initialNameBufSize covers NAME_MAX on the supported unix platforms; the
// buffer grows on demand for longer native names.
const initialNameBufSize = 256

// Exported variables.
var (
	// ErrEmptyPath reports a missing directory path argument.
	ErrEmptyPath = errors.New("directory path is empty")
	// ErrNotDirectory reports a path that was required to be a directory.
	ErrNotDirectory = errors.New("path is not a directory")
)

// enumState is the platform enumeration backend behind DirIter. Platform
// branching lives entirely below this contract.
type enumState interface {
	// open begins enumeration of dir. Implementations whose native open
	// produces the first entry as a side effect buffer it for the first
	// readOne, so that every platform presents the open-then-read shape.
	open(dir string) error

	// readOne returns the next raw entry name. The returned slice is
	// valid only until the next readOne call. ok is false at exhaustion,
	// and stays false on every later call.
	readOne() (name []byte, ok bool, err error)

	// close releases the native handle and any state-owned buffers.
	// Idempotent.
	close()
}

// DirIter is one active enumeration session over a directory. It is
// forward-only and exclusively owned by the goroutine that drives it;
// distinct iterators are independent of each other.
type DirIter struct {
	path      string
	entry     []byte // current entry view into nameBuf; nil when absent
	nameBuf   []byte
	state     enumState
	allocator alloc.Allocator
}

// StartDirIter opens enumeration of path and materializes the first entry
// (per native semantics, typically "."). If the directory exists but
// enumeration yields nothing, the call still succeeds and Entry returns
// nil. Every failure path releases whatever was acquired before it.
func StartDirIter(path string, allocator alloc.Allocator) (*DirIter, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	if allocator == nil {
		return nil, alloc.ErrInvalidAllocator
	}

	state, err := newEnumState(allocator)
	if err != nil {
		return nil, err
	}

	return startIter(path, allocator, state)
}

// startIter drives the backend through open and the first read. It owns
// state from the moment it is called, including on failure.
func startIter(path string, allocator alloc.Allocator, state enumState) (*DirIter, error) {
	nameBuf := allocator.ZeroAllocate(1, initialNameBufSize)
	if nameBuf == nil {
		state.close()

		return nil, fmt.Errorf("failed to allocate entry name buffer: %w", alloc.ErrAllocFailed)
	}

	iter := &DirIter{
		path:      path,
		nameBuf:   nameBuf,
		state:     state,
		allocator: allocator,
	}

	if err := state.open(path); err != nil {
		iter.End()
		diag.Recordf("Can't open directory %s (%s): %v", path, diag.Classify(err), err)

		return nil, fmt.Errorf("failed to open directory %s: %w", path, err)
	}

	name, ok, err := state.readOne()
	if err != nil {
		iter.End()
		diag.Recordf("Can't iterate directory %s (%s): %v", path, diag.Classify(err), err)

		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	if ok {
		if err := iter.setEntry(name); err != nil {
			iter.End()

			return nil, err
		}
	}

	return iter, nil
}

// Next advances to the next entry. It returns true and replaces the entry
// view when one is available, false with a cleared view at exhaustion.
// Calling Next after exhaustion, or after End, returns false without
// fault. A native read error is recorded as a diagnostic and then
// presents as exhaustion; the boolean does not distinguish the two.
func (it *DirIter) Next() bool {
	if it == nil || it.state == nil {
		return false
	}

	name, ok, err := it.state.readOne()
	if err != nil {
		diag.Recordf("Can't iterate directory %s (%s): %v", it.path, diag.Classify(err), err)
		it.entry = nil

		return false
	}

	if !ok {
		it.entry = nil

		return false
	}

	if err := it.setEntry(name); err != nil {
		diag.Recordf("Can't hold entry name in directory %s: %v", it.path, err)
		it.entry = nil

		return false
	}

	return true
}

// Entry returns a borrowed view of the current entry name. The view is
// owned by the iterator and valid only until the next call to Next or
// End; callers that need the name longer must copy it (see EntryName).
// Entry returns nil once the sequence is exhausted or the iterator ended.
func (it *DirIter) Entry() []byte {
	if it == nil {
		return nil
	}

	return it.entry
}

// EntryName returns an owned copy of the current entry name, or "" when
// no entry is current.
func (it *DirIter) EntryName() string {
	return string(it.Entry())
}

// End releases the native handle and all iterator-owned memory through
// the allocator the iterator was created with. It is idempotent, safe on
// a nil iterator, and safe whether or not the sequence was exhausted.
// After End the iterator and any previously returned entry views are
// invalid.
func (it *DirIter) End() {
	if it == nil {
		return
	}

	if it.state != nil {
		it.state.close()
		it.state = nil
	}

	if it.nameBuf != nil {
		it.allocator.Deallocate(it.nameBuf)
		it.nameBuf = nil
	}

	it.entry = nil
}

// setEntry copies name into the iterator-owned buffer, growing it through
// the allocator when the native name is longer than the current buffer.
func (it *DirIter) setEntry(name []byte) error {
	if len(name) > len(it.nameBuf) {
		grown := it.allocator.ZeroAllocate(1, len(name))
		if grown == nil {
			return fmt.Errorf("failed to grow entry name buffer to %d bytes: %w",
				len(name), alloc.ErrAllocFailed)
		}

		it.allocator.Deallocate(it.nameBuf)
		it.nameBuf = grown
	}

	n := copy(it.nameBuf, name)
	it.entry = it.nameBuf[:n]

	return nil
}
