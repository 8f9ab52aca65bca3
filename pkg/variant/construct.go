package variant

import (
	"reflect"

	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/failure"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/resolve"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/pkg/optional"
)

// From builds a V holding the unique alternative x converts to without
// narrowing. The static type of x is what is resolved.
//
//	v, err := From[Of3[int, float64, string]](2.5)
func From[V any, P ptr[V], T any](x T) (V, error) {
	var v V
	err := construct(P(&v), "From", reflect.ValueOf(&x).Elem())
	return v, err
}

// MustFrom is like From but reports a resolution failure as a violation.
func MustFrom[V any, P ptr[V], T any](x T) V {
	v, err := From[V, P](x)
	if err != nil {
		failure.Report(failure.CodeUnresolved, "MustFrom", "%v", err)
	}
	return v
}

// At builds a V holding alternative i initialised from x. Explicit Go
// conversions, including narrowing ones, are allowed.
func At[V any, P ptr[V], T any](i int, x T) (V, error) {
	var v V
	c := P(&v)
	s := c.shape()
	from := reflect.ValueOf(&x).Elem()
	if err := s.Explicit(i, from.Type()); err != nil {
		return v, withOp(err, "At")
	}
	val, err := resolve.Build(s.Alts[i], from)
	if err != nil {
		return v, &ResolutionError{Op: "At", From: from.Type(), Candidates: []int{i}, Err: err}
	}
	initAt(c, i, val)
	return v, nil
}

// As builds a V holding x in the alternative declared as T. T must occur
// exactly once in V's alternative list.
func As[V any, P ptr[V], T any](x T) (V, error) {
	var v V
	c := P(&v)
	i, err := c.shape().Unique(reflect.TypeFor[T]())
	if err != nil {
		return v, withOp(err, "As")
	}
	if b, ok := any(x).(resolve.Binding); ok && !b.IsBound() {
		return v, &ResolutionError{Op: "As", From: reflect.TypeFor[T](), Candidates: []int{i}, Err: ErrNilReference}
	}
	initAt(c, i, reflect.ValueOf(&x).Elem())
	return v, nil
}

// Assign stores x into v. When x resolves to the live alternative the value
// is assigned in place (a Ref is rebound). Otherwise the live alternative is
// destroyed and replaced. On error v is unchanged.
func Assign[P container, T any](v P, x T) error {
	return assign(v, "Assign", reflect.ValueOf(&x).Elem())
}

// EmplaceAs replaces the live alternative of v with x in the alternative
// declared as T, which must occur exactly once.
func EmplaceAs[P container, T any](v P, x T) (*T, error) {
	i, err := v.shape().Unique(reflect.TypeFor[T]())
	if err != nil {
		return nil, withOp(err, "EmplaceAs")
	}
	if b, ok := any(x).(resolve.Binding); ok && !b.IsBound() {
		return nil, &ResolutionError{Op: "EmplaceAs", From: reflect.TypeFor[T](), Candidates: []int{i}, Err: ErrNilReference}
	}
	return emplace(v, i, x), nil
}

func uniqueIndex[T any](c container, op string) int {
	i, err := c.shape().Unique(reflect.TypeFor[T]())
	if err != nil {
		failure.Report(failure.CodeUnresolved, op, "%v", err)
	}
	return i
}

// TryGetAs returns the alternative declared as T if it is live. T must occur
// exactly once in the alternative list.
func TryGetAs[T any, P container](v P) optional.Ref[T] {
	return tryGet[T](v, uniqueIndex[T](v, "TryGetAs"))
}

// HoldsAlternative reports whether the live alternative of v is the one
// declared as T. T must occur exactly once in the alternative list.
func HoldsAlternative[T any, V any, P ptr[V]](v V) bool {
	c := P(&v)
	return c.active() == uniqueIndex[T](c, "HoldsAlternative")
}

// IndexOf returns the index of the alternative declared as T, or an error if
// T does not occur exactly once.
func IndexOf[V any, T any, P ptr[V]]() (int, error) {
	var v V
	i, err := P(&v).shape().Unique(reflect.TypeFor[T]())
	return i, withOp(err, "IndexOf")
}

// Len returns the number of alternatives of V.
func Len[V any, P ptr[V]]() int {
	var v V
	return P(&v).block().Len()
}

// Swap exchanges the contents of a and b.
func Swap[P container](a, b P) {
	swap(a, b)
}
