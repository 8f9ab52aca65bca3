// Package optional provides a nullable reference to a value owned elsewhere.
package optional

import (
	"fmt"

	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/failure"
)

// Ref is either empty or refers to a T. The zero value is empty.
type Ref[T any] struct {
	ptr *T
}

// Some returns a Ref to *p. A nil p yields an empty Ref.
func Some[T any](p *T) Ref[T] {
	return Ref[T]{ptr: p}
}

// None returns an empty Ref.
func None[T any]() Ref[T] {
	return Ref[T]{}
}

// Ok reports whether r refers to a value.
func (r Ref[T]) Ok() bool {
	return r.ptr != nil
}

// Ptr returns the referenced address, or nil.
func (r Ref[T]) Ptr() *T {
	return r.ptr
}

// Get returns the referenced address. Calling Get on an empty Ref is a
// violation.
func (r Ref[T]) Get() *T {
	if r.ptr == nil {
		failure.Report(failure.CodeWrongAlternative, "optional.Get", "empty reference")
	}
	return r.ptr
}

// Value returns a copy of the referenced value, or the zero T when empty.
func (r Ref[T]) Value() T {
	if r.ptr == nil {
		var zero T
		return zero
	}
	return *r.ptr
}

// ValueOr returns a copy of the referenced value, or def when empty.
func (r Ref[T]) ValueOr(def T) T {
	if r.ptr == nil {
		return def
	}
	return *r.ptr
}

func (r Ref[T]) String() string {
	if r.ptr == nil {
		return "none"
	}
	return fmt.Sprintf("some(%v)", *r.ptr)
}
