package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"runtime"
)

// dirPermissions is the creation mode: owner/group full access, others
// read/execute.
const dirPermissions = 0o775

// Mkdir creates the directory at absPath. The path must be non-empty and,
// on POSIX-like systems, absolute (leading '/'); absoluteness is not
// checked on Windows. A path that already exists as a directory is
// success — creation is idempotent. Any other native failure is false.
func Mkdir(absPath string) bool {
	if absPath == "" {
		return false
	}

	if runtime.GOOS != "windows" && absPath[0] != '/' {
		return false
	}

	err := os.Mkdir(absPath, dirPermissions)
	if err == nil {
		return true
	}

	return errors.Is(err, fs.ErrExist) && IsDirectory(absPath)
}
