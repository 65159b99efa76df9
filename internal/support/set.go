package support

import mapset "github.com/deckarep/golang-set/v2"

// Set is a generic set interface, kept minimal and independent of the
// backing implementation so call sites don't take a direct dependency on
// golang-set's richer API surface.
type Set[T comparable] interface {
	Add(item T)
	Contains(item T) bool
	Len() int
	ToSlice() []T
}

type goSet[T comparable] struct {
	inner mapset.Set[T]
}

// NewSet returns a Set backed by github.com/deckarep/golang-set/v2.
func NewSet[T comparable]() Set[T] {
	return &goSet[T]{inner: mapset.NewThreadUnsafeSet[T]()}
}

// NewConcurrentSet returns a Set safe for concurrent use by multiple
// goroutines, backed by golang-set/v2's thread-safe implementation.
func NewConcurrentSet[T comparable]() Set[T] {
	return &goSet[T]{inner: mapset.NewSet[T]()}
}

func (s *goSet[T]) Add(item T)        { s.inner.Add(item) }
func (s *goSet[T]) Contains(item T) bool { return s.inner.Contains(item) }
func (s *goSet[T]) Len() int          { return s.inner.Cardinality() }
func (s *goSet[T]) ToSlice() []T      { return s.inner.ToSlice() }
