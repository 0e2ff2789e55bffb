//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package pathutil_test

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/fs-utils/pkg/alloc"
	"github.com/joe/fs-utils/pkg/pathutil"
)

func TestJoin(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	got, err := pathutil.Join("a", "b", alloc.Default())
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(got)).To(Equal("a" + pathutil.Delimiter + "b"))
}

func TestJoinDoesNotNormalize(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	got, err := pathutil.Join("a"+pathutil.Delimiter, "..", alloc.Default())
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(got)).To(Equal("a" + pathutil.Delimiter + pathutil.Delimiter + ".."))
}

func TestJoinEmptyPieces(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	got, err := pathutil.Join("", "", alloc.Default())
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(got)).To(Equal(pathutil.Delimiter))
}

func TestJoinInvalidAllocator(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	got, err := pathutil.Join("a", "b", nil)
	g.Expect(got).To(BeNil())
	g.Expect(errors.Is(err, alloc.ErrInvalidAllocator)).To(BeTrue())
}

func TestJoinAllocationFailure(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	got, err := pathutil.Join("a", "b", alloc.NewFailing(0))
	g.Expect(got).To(BeNil())
	g.Expect(errors.Is(err, alloc.ErrAllocFailed)).To(BeTrue())
}

func TestJoinOwnershipRoundTrip(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	counting := alloc.NewCounting(alloc.Default())

	got, err := pathutil.Join("left", "right", counting)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(counting.Outstanding()).To(Equal(1))

	counting.Deallocate(got)
	g.Expect(counting.Outstanding()).To(BeZero())
}

func TestToNative(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	got, err := pathutil.ToNative("a/b/c", alloc.Default())
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(got)).To(Equal("a" + pathutil.Delimiter + "b" + pathutil.Delimiter + "c"))
}

func TestToNativeNoDelimiters(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	got, err := pathutil.ToNative("plain", alloc.Default())
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(got)).To(Equal("plain"))
}

func TestToNativeEmpty(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	got, err := pathutil.ToNative("", alloc.Default())
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(got).NotTo(BeNil())
	g.Expect(got).To(BeEmpty())
}

func TestToNativeInvalidAllocator(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := pathutil.ToNative("a/b", nil)
	g.Expect(errors.Is(err, alloc.ErrInvalidAllocator)).To(BeTrue())
}
