package variant

import (
	"cmp"
	"math"
	"reflect"

	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/failure"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/index"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/resolve"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/storage"
)

// Comparable is implemented by alternatives with their own ordering. Cmp
// returns < 0, 0 or > 0 as the receiver is less than, equal to or greater
// than other.
type Comparable[T any] interface {
	Cmp(other T) int
}

// Equaler is implemented by alternatives with their own equality.
type Equaler[T any] interface {
	Equal(other T) bool
}

func equal(a, b container) bool {
	i := a.active()
	if i != b.active() {
		return false
	}
	return equalValues(a.shape().Alts[i], storage.Value(a.block(), i), storage.Value(b.block(), i))
}

func compare(a, b container) int {
	if a.active() != b.active() {
		return index.Compare(a.tag(), b.tag())
	}
	i := a.active()
	alt := a.shape().Alts[i]
	r, ok := compareValues(alt, storage.Value(a.block(), i), storage.Value(b.block(), i))
	if !ok {
		failure.Report(failure.CodeUnordered, "Compare", "alternative %d (%v)", i, alt.Type)
	}
	return r
}

// foreign resolves x against c and builds the value it would be stored as.
func foreign[T any](c container, x T, op string) (int, reflect.Value) {
	s := c.shape()
	from := reflect.ValueOf(&x).Elem()
	i, err := s.Resolve(from.Type())
	if err != nil {
		failure.Report(failure.CodeUnresolved, op, "%v", err)
	}
	val, err := resolve.Build(s.Alts[i], from)
	if err != nil {
		failure.Report(failure.CodeNilReference, op, "%v", err)
	}
	return i, val
}

// EqualWith reports whether v holds the alternative x resolves to and that
// alternative equals x. x is never converted into a temporary container.
func EqualWith[V any, P ptr[V], T any](v V, x T) bool {
	c := P(&v)
	i, val := foreign(c, x, "EqualWith")
	if c.active() != i {
		return false
	}
	return equalValues(c.shape().Alts[i], storage.Value(c.block(), i), val)
}

// CompareWith orders v against the foreign value x. If v does not hold the
// alternative x resolves to, the alternative indices decide.
func CompareWith[V any, P ptr[V], T any](v V, x T) int {
	c := P(&v)
	j, val := foreign(c, x, "CompareWith")
	i := c.active()
	if i != j {
		return cmp.Compare(i, j)
	}
	alt := c.shape().Alts[i]
	r, ok := compareValues(alt, storage.Value(c.block(), i), val)
	if !ok {
		failure.Report(failure.CodeUnordered, "CompareWith", "alternative %d (%v)", i, alt.Type)
	}
	return r
}

func deref(alt resolve.Alternative, v reflect.Value) reflect.Value {
	if alt.Kind != resolve.Reference {
		return v
	}
	return v.Interface().(referent).target()
}

func equalValues(alt resolve.Alternative, x, y reflect.Value) bool {
	if alt.Kind == resolve.Void {
		return true
	}
	return valuesEqual(deref(alt, x), deref(alt, y))
}

func compareValues(alt resolve.Alternative, x, y reflect.Value) (int, bool) {
	if alt.Kind == resolve.Void {
		return 0, true
	}
	return valuesCompare(deref(alt, x), deref(alt, y))
}

// binaryMethod finds a method name(T) with a single result of kind out.
func binaryMethod(x reflect.Value, name string, out reflect.Kind) (reflect.Value, bool) {
	recv := x
	if x.CanAddr() {
		recv = x.Addr()
	}
	m := recv.MethodByName(name)
	if !m.IsValid() {
		return reflect.Value{}, false
	}
	mt := m.Type()
	if mt.NumIn() != 1 || mt.NumOut() != 1 || mt.Out(0).Kind() != out || !x.Type().AssignableTo(mt.In(0)) {
		return reflect.Value{}, false
	}
	return m, true
}

func valuesEqual(x, y reflect.Value) bool {
	if x.Kind() == reflect.Interface {
		if x.IsNil() || y.IsNil() {
			return x.IsNil() && y.IsNil()
		}
		if x.Elem().Type() != y.Elem().Type() {
			return false
		}
		return valuesEqual(x.Elem(), y.Elem())
	}
	if m, ok := binaryMethod(x, "Equal", reflect.Bool); ok {
		return m.Call([]reflect.Value{y})[0].Bool()
	}
	if m, ok := binaryMethod(x, "Cmp", reflect.Int); ok {
		return m.Call([]reflect.Value{y})[0].Int() == 0
	}
	if x.Type().Comparable() {
		return x.Equal(y)
	}
	return reflect.DeepEqual(x.Interface(), y.Interface())
}

func valuesCompare(x, y reflect.Value) (int, bool) {
	for _, name := range []string{"Cmp", "Compare"} {
		if m, ok := binaryMethod(x, name, reflect.Int); ok {
			return sign(m.Call([]reflect.Value{y})[0].Int()), true
		}
	}

	switch x.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(x.Int(), y.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(x.Uint(), y.Uint()), true
	case reflect.Float32, reflect.Float64:
		if math.IsNaN(x.Float()) || math.IsNaN(y.Float()) {
			return 0, false
		}
		return cmp.Compare(x.Float(), y.Float()), true
	case reflect.String:
		return cmp.Compare(x.String(), y.String()), true
	case reflect.Bool:
		return cmp.Compare(boolRank(x.Bool()), boolRank(y.Bool())), true
	case reflect.Interface:
		if x.IsNil() || y.IsNil() || x.Elem().Type() != y.Elem().Type() {
			return 0, false
		}
		return valuesCompare(x.Elem(), y.Elem())
	}
	return 0, false
}

func sign(n int64) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func swap(a, b container) {
	i, j := a.active(), b.active()
	checkMovable(a, i)
	checkMovable(b, j)
	if i == j {
		storage.Exchange(a.block(), b.block(), i)
		relocate(a.block(), i, "Swap")
		relocate(b.block(), i, "Swap")
		return
	}

	// Three-way exchange: a's value goes to a temporary, b's value moves
	// into a, and the temporary moves into b.
	src := storage.Value(a.block(), i)
	tmp := reflect.New(src.Type()).Elem()
	tmp.Set(src)
	storage.Release(a.block(), i)

	a.activate(j)
	storage.Move(a.block(), b.block(), j)
	relocate(a.block(), j, "Swap")

	b.activate(i)
	storage.Value(b.block(), i).Set(tmp)
	relocate(b.block(), i, "Swap")
}

// checkMovable rejects a swap that would move a Pinned live alternative.
func checkMovable(c container, i int) {
	if _, ok := c.block().Slot(i).(Pinned); ok {
		failure.Report(failure.CodePinned, "Swap", "alternative %d (%v)", i, c.shape().Alts[i].Type)
	}
}
