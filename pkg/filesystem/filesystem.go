// Package filesystem provides a portable filesystem layer: lazy directory
// enumeration, metadata predicates, size aggregation, and idempotent
// directory creation.
//
// The core is DirIter, a forward-only iterator over the entries of one
// directory. It hides two structurally different native enumeration
// mechanisms (FindFirstFile/FindNextFile on Windows, getdents on unix)
// behind one contract: Start materializes the first entry, Next yields the
// rest, End releases the native handle and every iterator-owned buffer.
// Unlike os.ReadDir, the iterator reports "." and ".." — filtering them is
// the consumer's job, and listings reflect exactly what the native
// enumeration produced.
//
// Predicates and size queries are total: they answer false or zero on any
// native failure and report the detail through pkg/diag.
package filesystem

import (
	"os"
)

// Owner permission bits of a file mode.
const (
	ownerRead  = 0o400
	ownerWrite = 0o200
)

// Exists reports whether path resolves to anything at all. A failed
// metadata fetch, whatever the reason, reads as false.
func Exists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

// IsDirectory reports whether path is a directory.
func IsDirectory(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

// IsFile reports whether path is a regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}

// IsReadable reports whether path carries the owner-read permission bit.
func IsReadable(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().Perm()&ownerRead != 0
}

// IsWritable reports whether path carries the owner-write permission bit.
func IsWritable(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().Perm()&ownerWrite != 0
}

// IsReadableAndWritable reports whether path carries both owner bits. On
// the Windows metadata model every writable file is also readable, so
// there this collapses to IsWritable.
func IsReadableAndWritable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	perm := info.Mode().Perm()

	return perm&ownerRead != 0 && perm&ownerWrite != 0
}

// Getcwd returns the current working directory, or false if it cannot be
// retrieved.
func Getcwd() (string, bool) {
	wd, err := os.Getwd()
	if err != nil {
		return "", false
	}

	return wd, true
}
