package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kr/fs"

	"github.com/joe/fs-utils/pkg/alloc"
	"github.com/joe/fs-utils/pkg/diag"
)

// statFS adapts the directory iterator to the kr/fs FileSystem contract
// so callers can compose recursive walks out of the same enumeration the
// rest of this package uses.
type statFS struct {
	allocator alloc.Allocator
}

// ReadDir lists dir through a DirIter, skipping "." and "..". Entries
// that vanish between enumeration and stat are dropped from the listing.
func (s statFS) ReadDir(dirname string) ([]os.FileInfo, error) {
	allocator := s.allocator
	if allocator == nil {
		allocator = alloc.Default()
	}

	iter, err := StartDirIter(dirname, allocator)
	if err != nil {
		return nil, err
	}
	defer iter.End()

	var infos []os.FileInfo

	for entry := iter.Entry(); entry != nil; {
		if name := string(entry); name != "." && name != ".." {
			info, err := os.Lstat(filepath.Join(dirname, name))
			if err == nil {
				infos = append(infos, info)
			}
		}

		if !iter.Next() {
			break
		}
		entry = iter.Entry()
	}

	return infos, nil
}

func (s statFS) Lstat(name string) (os.FileInfo, error) {
	info, err := os.Lstat(name)
	if err != nil {
		return nil, fmt.Errorf("failed to lstat %s: %w", name, err)
	}

	return info, nil
}

func (s statFS) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// RecursiveDirectorySize walks the whole tree under path and sums the
// sizes of every regular file in it. This is the deliberate, explicitly
// recursive counterpart of DirectorySize. Unreadable subtrees record a
// diagnostic and are skipped.
func RecursiveDirectorySize(path string, allocator alloc.Allocator) (int64, error) {
	if allocator == nil {
		return 0, alloc.ErrInvalidAllocator
	}

	if !IsDirectory(path) {
		return 0, fmt.Errorf("failed to walk %s: %w", path, ErrNotDirectory)
	}

	var total int64

	walker := fs.WalkFS(path, statFS{allocator: allocator})
	for walker.Step() {
		if err := walker.Err(); err != nil {
			diag.Recordf("Can't walk %s (%s): %v", walker.Path(), diag.Classify(err), err)

			continue
		}

		if info := walker.Stat(); info != nil && info.Mode().IsRegular() {
			total += info.Size()
		}
	}

	return total, nil
}
