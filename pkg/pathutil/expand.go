package pathutil

import (
	"errors"
	"fmt"
	"os"

	"github.com/joe/fs-utils/pkg/alloc"
)

// homeReference is the leading character that requests home expansion.
const homeReference = '~'

// Exported variables.
var (
	// ErrNoHomeDir reports that no home directory could be resolved from
	// the environment.
	ErrNoHomeDir = errors.New("home directory is not set in the environment")
)

// EnvLookup is an interface that abstracts environment variable lookup.
// This allows for dependency injection and testing without mutating the
// process environment.
type EnvLookup interface {
	LookupEnv(key string) (string, bool)
}

// OSEnv returns an EnvLookup backed by the process environment.
func OSEnv() EnvLookup {
	return osEnv{}
}

type osEnv struct{}

func (osEnv) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Expander resolves home-directory references using an injected
// environment lookup.
type Expander struct {
	Env EnvLookup
}

// NewExpander creates an Expander backed by the process environment.
func NewExpander() Expander {
	return Expander{Env: OSEnv()}
}

// ExpandUser returns a duplicate of path when it does not begin with '~'.
// Otherwise it returns the resolved home directory concatenated with the
// remainder of path after the '~'. Fails when no home directory resolves.
func (e Expander) ExpandUser(path string, allocator alloc.Allocator) ([]byte, error) {
	if allocator == nil {
		return nil, alloc.ErrInvalidAllocator
	}

	if path == "" || path[0] != homeReference {
		return duplicate(path, allocator)
	}

	home, err := e.homeDir()
	if err != nil {
		return nil, err
	}

	remainder := path[1:]

	buf := allocator.ZeroAllocate(1, len(home)+len(remainder))
	if buf == nil {
		return nil, fmt.Errorf("failed to expand %q: %w", path, alloc.ErrAllocFailed)
	}

	n := copy(buf, home)
	copy(buf[n:], remainder)

	return buf, nil
}

// homeDir resolves the caller's home directory. HOME is consulted first,
// then USERPROFILE for the Windows environment model.
func (e Expander) homeDir() (string, error) {
	env := e.Env
	if env == nil {
		env = OSEnv()
	}

	if home, ok := env.LookupEnv("HOME"); ok && home != "" {
		return home, nil
	}

	if home, ok := env.LookupEnv("USERPROFILE"); ok && home != "" {
		return home, nil
	}

	return "", ErrNoHomeDir
}

// ExpandUser expands path against the process environment.
func ExpandUser(path string, allocator alloc.Allocator) ([]byte, error) {
	return NewExpander().ExpandUser(path, allocator)
}
