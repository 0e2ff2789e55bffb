package diag

import (
	"errors"
	"io/fs"
	"strings"
	"syscall"
)

// Category represents the kind of native failure behind a diagnostic.
type Category string

// Exported constants.
const (
	CategoryPermission Category = "permission"
	CategoryPath       Category = "path"
	CategoryDiskSpace  Category = "disk_space"
	CategoryIO         Category = "io"
	CategoryUnknown    Category = "unknown"
)

// Classify maps a native error to a Category. Sentinel and errno checks
// run first; message patterns catch errors that arrive pre-stringified.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	switch {
	case errors.Is(err, fs.ErrPermission):
		return CategoryPermission
	case errors.Is(err, fs.ErrNotExist):
		return CategoryPath
	case errors.Is(err, syscall.ENOSPC), errors.Is(err, syscall.EDQUOT):
		return CategoryDiskSpace
	case errors.Is(err, syscall.EIO):
		return CategoryIO
	}

	return matchMessage(err.Error())
}

//nolint:gochecknoglobals // Shared pattern table, read-only after init
var messagePatterns = map[Category][]string{
	CategoryPermission: {
		"permission denied",
		"access denied",
		"operation not permitted",
	},
	CategoryDiskSpace: {
		"no space left on device",
		"disk full",
		"quota exceeded",
	},
	CategoryPath: {
		"no such file or directory",
		"file not found",
		"path does not exist",
		"not a directory",
	},
	CategoryIO: {
		"input/output error",
		"i/o error",
		"short read",
	},
}

// matchMessage returns the category whose patterns match the message.
func matchMessage(msg string) Category {
	lower := strings.ToLower(msg)

	for category, patterns := range messagePatterns {
		for _, pattern := range patterns {
			if strings.Contains(lower, pattern) {
				return category
			}
		}
	}

	return CategoryUnknown
}
