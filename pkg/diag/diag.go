// Package diag provides the diagnostic side channel for native filesystem
// failures.
//
// The core packages report native errors here instead of failing their
// callers: predicates and size queries stay total (false / zero) while the
// detail of what went wrong flows through the installed Recorder. Callers
// that want diagnostics in their own logging install an adapter via
// SetRecorder; tests install a Buffer and assert on the captured messages.
package diag

import (
	"fmt"
	"os"
	"sync"
)

// Recorder accepts formatted diagnostic messages.
type Recorder interface {
	Recordf(format string, args ...any)
}

//nolint:gochecknoglobals // The recorder slot mirrors a process-wide error side channel
var (
	mu       sync.RWMutex
	recorder Recorder = stderrRecorder{}
)

// Recordf formats a diagnostic message and hands it to the installed
// recorder.
func Recordf(format string, args ...any) {
	mu.RLock()
	r := recorder
	mu.RUnlock()

	r.Recordf(format, args...)
}

// SetRecorder installs r as the process-wide recorder and returns the
// previous one. Passing nil installs Discard.
func SetRecorder(r Recorder) Recorder {
	if r == nil {
		r = Discard()
	}

	mu.Lock()
	previous := recorder
	recorder = r
	mu.Unlock()

	return previous
}

// stderrRecorder writes diagnostics to standard error, one per line.
type stderrRecorder struct{}

func (stderrRecorder) Recordf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// Buffer is a Recorder that captures messages for test assertions.
type Buffer struct {
	mu       sync.Mutex
	messages []string
}

// NewBuffer creates an empty capturing recorder.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Recordf captures the formatted message.
func (b *Buffer) Recordf(format string, args ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.messages = append(b.messages, fmt.Sprintf(format, args...))
}

// Messages returns a copy of everything recorded so far.
func (b *Buffer) Messages() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, len(b.messages))
	copy(out, b.messages)

	return out
}

// Len returns the number of recorded messages.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.messages)
}

// Discard returns a Recorder that drops everything.
func Discard() Recorder {
	return discardRecorder{}
}

type discardRecorder struct{}

func (discardRecorder) Recordf(string, ...any) {}
