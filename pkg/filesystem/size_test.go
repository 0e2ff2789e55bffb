//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/fs-utils/pkg/alloc"
	"github.com/joe/fs-utils/pkg/diag"
	"github.com/joe/fs-utils/pkg/filesystem"
)

// sizeFixture builds a tree with 8 bytes of direct-child file content and
// 7 more bytes nested one level down.
func sizeFixture(t *testing.T) string {
	t.Helper()
	g := NewWithT(t)

	dir := t.TempDir()
	g.Expect(os.WriteFile(filepath.Join(dir, "three.txt"), []byte("abc"), 0o644)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(dir, "five.txt"), []byte("abcde"), 0o644)).To(Succeed())

	nested := filepath.Join(dir, "nested")
	g.Expect(os.Mkdir(nested, 0o755)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(nested, "seven.txt"), []byte("abcdefg"), 0o644)).To(Succeed())

	return dir
}

func TestFileSize(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "sized.txt")
	g.Expect(os.WriteFile(path, []byte("0123456789"), 0o644)).To(Succeed())

	g.Expect(filesystem.FileSize(path)).To(Equal(int64(10)))
}

func TestFileSizeOnDirectory(t *testing.T) {
	g := NewWithT(t)

	buf := diag.NewBuffer()
	previous := diag.SetRecorder(buf)
	defer diag.SetRecorder(previous)

	dir := t.TempDir()

	g.Expect(filesystem.FileSize(dir)).To(BeZero())
	g.Expect(buf.Messages()).To(ContainElement(ContainSubstring("not a file")))
}

func TestFileSizeOnMissingPath(t *testing.T) {
	g := NewWithT(t)

	previous := diag.SetRecorder(diag.Discard())
	defer diag.SetRecorder(previous)

	g.Expect(filesystem.FileSize(filepath.Join(t.TempDir(), "missing"))).To(BeZero())
}

func TestDirectorySizeSumsDirectChildrenOnly(t *testing.T) {
	g := NewWithT(t)

	previous := diag.SetRecorder(diag.Discard())
	defer diag.SetRecorder(previous)

	dir := sizeFixture(t)

	// 3 + 5 from direct children; the nested subdirectory contributes 0
	// and its contents are not descended into.
	g.Expect(filesystem.DirectorySize(dir, alloc.Default())).To(Equal(int64(8)))
}

func TestDirectorySizeMatchesPerFileSum(t *testing.T) {
	g := NewWithT(t)

	previous := diag.SetRecorder(diag.Discard())
	defer diag.SetRecorder(previous)

	dir := sizeFixture(t)

	entries, err := os.ReadDir(dir)
	g.Expect(err).ShouldNot(HaveOccurred())

	var expected int64
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			expected += filesystem.FileSize(filepath.Join(dir, entry.Name()))
		}
	}

	g.Expect(filesystem.DirectorySize(dir, alloc.Default())).To(Equal(expected))
}

func TestDirectorySizeOnNonDirectory(t *testing.T) {
	g := NewWithT(t)

	buf := diag.NewBuffer()
	previous := diag.SetRecorder(buf)
	defer diag.SetRecorder(previous)

	path := filepath.Join(t.TempDir(), "plain.txt")
	g.Expect(os.WriteFile(path, []byte("x"), 0o644)).To(Succeed())

	g.Expect(filesystem.DirectorySize(path, alloc.Default())).To(BeZero())
	g.Expect(buf.Messages()).To(ContainElement(ContainSubstring("not a directory")))
}

func TestDirectorySizeReleasesJoinedPaths(t *testing.T) {
	g := NewWithT(t)

	previous := diag.SetRecorder(diag.Discard())
	defer diag.SetRecorder(previous)

	dir := sizeFixture(t)
	counting := alloc.NewCounting(alloc.Default())

	filesystem.DirectorySize(dir, counting)
	g.Expect(counting.Outstanding()).To(BeZero())
}

func TestRecursiveDirectorySize(t *testing.T) {
	g := NewWithT(t)

	previous := diag.SetRecorder(diag.Discard())
	defer diag.SetRecorder(previous)

	dir := sizeFixture(t)

	total, err := filesystem.RecursiveDirectorySize(dir, alloc.Default())
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(total).To(Equal(int64(15)), "recursive size includes nested file content")
}

func TestRecursiveDirectorySizeOnNonDirectory(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "plain.txt")
	g.Expect(os.WriteFile(path, []byte("x"), 0o644)).To(Succeed())

	_, err := filesystem.RecursiveDirectorySize(path, alloc.Default())
	g.Expect(err).To(MatchError(filesystem.ErrNotDirectory))
}

func TestRecursiveDirectorySizeNilAllocator(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := filesystem.RecursiveDirectorySize(t.TempDir(), nil)
	g.Expect(err).To(MatchError(alloc.ErrInvalidAllocator))
}
