package variant

import (
	"fmt"
	"reflect"

	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/failure"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/resolve"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/storage"
)

// Void is the unit value standing in for an alternative with no payload.
type Void struct{}

func (Void) String() string { return "void" }

// Ref is a reference alternative: a non-owning pointer that is rebound, never
// written through, by assignment. Equality and ordering look at the
// referenced values.
type Ref[T any] struct {
	ptr *T
}

// Bind returns a Ref to *p. p must not be nil.
func Bind[T any](p *T) Ref[T] {
	if p == nil {
		failure.Report(failure.CodeNilReference, "variant.Bind", "%v", reflect.TypeFor[T]())
	}
	return Ref[T]{ptr: p}
}

// Ptr returns the bound address.
func (r Ref[T]) Ptr() *T {
	return r.ptr
}

// Value returns a copy of the referenced value.
func (r Ref[T]) Value() T {
	if r.ptr == nil {
		failure.Report(failure.CodeNilReference, "Ref.Value", "%v", reflect.TypeFor[T]())
	}
	return *r.ptr
}

// IsBound reports whether r refers to anything. Only the zero Ref is unbound.
func (r Ref[T]) IsBound() bool {
	return r.ptr != nil
}

// Rebind points r at *p without touching the previously referenced value.
func (r *Ref[T]) Rebind(p *T) {
	if p == nil {
		failure.Report(failure.CodeNilReference, "Ref.Rebind", "%v", reflect.TypeFor[T]())
	}
	r.ptr = p
}

func (r Ref[T]) String() string {
	if r.ptr == nil {
		return "ref(nil)"
	}
	return fmt.Sprintf("ref(%v)", *r.ptr)
}

func (Ref[T]) referent() reflect.Type {
	return reflect.TypeFor[T]()
}

func (Ref[T]) bind(ptr reflect.Value) reflect.Value {
	return reflect.ValueOf(Ref[T]{ptr: ptr.Interface().(*T)})
}

func (r Ref[T]) target() reflect.Value {
	if r.ptr == nil {
		failure.Report(failure.CodeNilReference, "Ref.target", "%v", reflect.TypeFor[T]())
	}
	return reflect.ValueOf(r.ptr).Elem()
}

type referent interface {
	referent() reflect.Type
	bind(ptr reflect.Value) reflect.Value
	target() reflect.Value
}

// Disposer is implemented by alternatives that release resources when they
// stop being the live alternative. Moving a value between containers does
// not dispose it.
type Disposer = storage.Disposer

// Pinned marks alternatives that cannot be moved once built. EmplaceInit
// constructs them directly in the container's storage.
type Pinned interface {
	Pinned()
}

// Relocator is implemented by alternatives that must fix themselves up after
// being moved into a container's storage from a temporary.
type Relocator interface {
	Relocate() error
}

// Assigner is implemented by alternatives that define how a new value is
// assigned into an already-live instance.
type Assigner[T any] interface {
	Assign(T)
}

func describe[T any]() resolve.Alternative {
	t := reflect.TypeFor[T]()
	var zero T
	switch r := any(zero).(type) {
	case Void:
		return resolve.Alternative{Type: t, Kind: resolve.Void}
	case referent:
		return resolve.Alternative{Type: t, Kind: resolve.Reference, Target: r.referent(), Bind: r.bind}
	}
	return resolve.Alternative{Type: t, Kind: resolve.Object}
}
