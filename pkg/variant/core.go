package variant

import (
	"fmt"
	"reflect"

	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/failure"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/index"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/resolve"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/storage"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/pkg/optional"
)

// container is implemented by pointers to the OfN types.
type container interface {
	shape() *resolve.Shape
	block() storage.Block
	tag() index.Tag
	active() int
	activate(i int)
}

// ptr is the constraint that lets free functions take an OfN by value and
// still reach its pointer methods.
type ptr[V any] interface {
	*V
	container
}

func shapeOf[V any](build func() []resolve.Alternative) *resolve.Shape {
	return resolve.Intern(reflect.TypeFor[V](), build)
}

func checkDefault(c container, op string) {
	if alt := c.shape().Alts[0]; alt.Kind == resolve.Reference {
		failure.Report(failure.CodeNoDefault, op, "alternative 0 is %v", alt.Type)
	}
}

func checkBound[T any](x T, op string) {
	if b, ok := any(x).(resolve.Binding); ok && !b.IsBound() {
		failure.Report(failure.CodeNilReference, op, "%v", reflect.TypeFor[T]())
	}
}

// replace destroys the live alternative and makes i active. Slot i is left
// at its zero value for the caller to fill.
func replace(c container, i int) {
	storage.Destroy(c.block(), c.active())
	c.activate(i)
}

func emplace[T any](c container, i int, x T) *T {
	checkBound(x, "Emplace")
	replace(c, i)
	p := storage.Construct(c.block(), i, x)
	relocate(c.block(), i, "Emplace")
	return p
}

func emplaceInit[T any](c container, i int, init func(*T) error) (*T, error) {
	if _, pinned := any((*T)(nil)).(Pinned); pinned {
		// No fallback: the old alternative is gone before init runs.
		replace(c, i)
		p := storage.Get[T](c.block(), i)
		if err := initInPlace(p, init); err != nil {
			failure.Report(failure.CodeConstructFailed, "EmplaceInit", "alternative %d (%v): %v", i, reflect.TypeFor[T](), err)
		}
		return p, nil
	}

	var tmp T
	if err := init(&tmp); err != nil {
		return nil, err
	}
	replace(c, i)
	p := storage.Construct(c.block(), i, tmp)
	relocate(c.block(), i, "EmplaceInit")
	return p, nil
}

func initInPlace[T any](p *T, init func(*T) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return init(p)
}

func relocate(b storage.Block, i int, op string) {
	r, ok := b.Slot(i).(Relocator)
	if !ok {
		return
	}
	if err := r.Relocate(); err != nil {
		failure.Report(failure.CodeRelocateFailed, op, "alternative %d: %v", i, err)
	}
}

// initAt fills a freshly zeroed container. Nothing live needs destroying.
func initAt(c container, i int, val reflect.Value) {
	c.activate(i)
	storage.Value(c.block(), i).Set(val)
}

func construct(c container, op string, from reflect.Value) error {
	s := c.shape()
	i, err := s.Resolve(from.Type())
	if err != nil {
		return withOp(err, op)
	}
	val, err := resolve.Build(s.Alts[i], from)
	if err != nil {
		return &ResolutionError{Op: op, From: from.Type(), Candidates: []int{i}, Err: err}
	}
	initAt(c, i, val)
	return nil
}

func assign(c container, op string, from reflect.Value) error {
	s := c.shape()
	i, err := s.Resolve(from.Type())
	if err != nil {
		return withOp(err, op)
	}
	val, err := resolve.Build(s.Alts[i], from)
	if err != nil {
		return &ResolutionError{Op: op, From: from.Type(), Candidates: []int{i}, Err: err}
	}

	if c.active() == i {
		assignThrough(c.block().Slot(i), val)
		return nil
	}
	replace(c, i)
	storage.Value(c.block(), i).Set(val)
	return nil
}

// assignThrough updates the live value in place. A Ref is simply rebound.
func assignThrough(slot interface{}, val reflect.Value) {
	dst := reflect.ValueOf(slot)
	if m := dst.MethodByName("Assign"); m.IsValid() {
		mt := m.Type()
		if mt.NumIn() == 1 && mt.NumOut() == 0 && val.Type().AssignableTo(mt.In(0)) {
			m.Call([]reflect.Value{val})
			return
		}
	}
	dst.Elem().Set(val)
}

func get[T any](c container, i int, op string) *T {
	if a := c.active(); a != i {
		failure.Report(failure.CodeWrongAlternative, op, "alternative %d requested, %d active", i, a)
	}
	return storage.Get[T](c.block(), i)
}

func tryGet[T any](c container, i int) optional.Ref[T] {
	if c.active() != i {
		return optional.None[T]()
	}
	return optional.Some(storage.Get[T](c.block(), i))
}

func format(c container) string {
	i := c.active()
	return fmt.Sprintf("variant(%d: %v)", i, storage.Value(c.block(), i).Interface())
}
