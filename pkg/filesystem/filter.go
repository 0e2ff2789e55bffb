package filesystem

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/joe/fs-utils/pkg/alloc"
)

// EntryFilter decides which entry names a listing keeps.
type EntryFilter interface {
	// ShouldInclude returns true if the entry name should be included.
	ShouldInclude(name string) bool
}

// GlobFilter implements EntryFilter using glob patterns.
type GlobFilter struct {
	normalizedPattern string
	isEmpty           bool
}

// NewGlobFilter creates a new GlobFilter with the given pattern.
// Empty pattern matches all entries. Matching is case-insensitive.
func NewGlobFilter(pattern string) *GlobFilter {
	return &GlobFilter{
		normalizedPattern: strings.ToLower(pattern),
		isEmpty:           pattern == "",
	}
}

// ShouldInclude returns true if the entry name matches the glob pattern.
func (f *GlobFilter) ShouldInclude(name string) bool {
	if f.isEmpty {
		return true
	}

	matched, err := doublestar.Match(f.normalizedPattern, strings.ToLower(name))
	if err != nil {
		// Invalid pattern matches nothing.
		return false
	}

	return matched
}

// ListMatching returns the entry names of dir accepted by pattern,
// excluding "." and "..". The result order is the native enumeration
// order, which is unspecified.
func ListMatching(dir, pattern string, allocator alloc.Allocator) ([]string, error) {
	filter := NewGlobFilter(pattern)

	iter, err := StartDirIter(dir, allocator)
	if err != nil {
		return nil, err
	}
	defer iter.End()

	var names []string

	for entry := iter.Entry(); entry != nil; {
		if name := string(entry); name != "." && name != ".." && filter.ShouldInclude(name) {
			names = append(names, name)
		}

		if !iter.Next() {
			break
		}
		entry = iter.Entry()
	}

	return names, nil
}
