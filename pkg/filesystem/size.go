package filesystem

import (
	"os"

	"github.com/joe/fs-utils/pkg/alloc"
	"github.com/joe/fs-utils/pkg/diag"
	"github.com/joe/fs-utils/pkg/pathutil"
)

// FileSize returns the size of the regular file at path. A path that is
// not a regular file records a diagnostic and counts as 0, as does a
// failed metadata fetch.
func FileSize(path string) int64 {
	if !IsFile(path) {
		diag.Recordf("Path is not a file: %s", path)

		return 0
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0
	}

	return info.Size()
}

// DirectorySize sums the sizes of the direct regular-file children of
// path, skipping "." and "..". Subdirectories contribute 0 (FileSize
// rejects them); their contents are not descended into — recursion is the
// caller's decision, see RecursiveDirectorySize. A path that is not a
// directory records a diagnostic and counts as 0.
func DirectorySize(path string, allocator alloc.Allocator) int64 {
	var total int64

	if !IsDirectory(path) {
		diag.Recordf("Path is not a directory: %s", path)

		return total
	}

	iter, err := StartDirIter(path, allocator)
	if err != nil {
		return total
	}
	defer iter.End()

	for entry := iter.Entry(); entry != nil; {
		if name := string(entry); name != "." && name != ".." {
			child, err := pathutil.Join(path, name, allocator)
			if err == nil {
				total += FileSize(string(child))
				allocator.Deallocate(child)
			}
		}

		if !iter.Next() {
			break
		}
		entry = iter.Entry()
	}

	return total
}
