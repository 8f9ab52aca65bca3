// Package storage holds the untagged slot blocks behind the variant
// containers.
//
// A block has one inline slot per alternative and no record of which slot is
// live; that is the container's job. Construct, Destroy and Get assume the
// caller has already validated the index. The only check performed here is
// the type assertion on the slot pointer.
package storage

import (
	"reflect"

	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/failure"
)

// Block is a fixed set of typed slots.
type Block interface {
	// Slot returns a pointer to slot i as an interface value.
	Slot(i int) interface{}
	// Len returns the number of slots.
	Len() int
}

// Disposer is implemented by values that need to run teardown when their
// slot is destroyed.
type Disposer interface {
	Dispose()
}

// Construct builds slot i from v and returns a pointer to it.
func Construct[T any](b Block, i int, v T) *T {
	p := Get[T](b, i)
	*p = v
	return p
}

// Get returns a pointer to slot i, which must hold a T.
func Get[T any](b Block, i int) *T {
	p, ok := b.Slot(i).(*T)
	if !ok {
		failure.Report(failure.CodeWrongSlotType, "storage.Get",
			"slot %d is %T, not *%v", i, b.Slot(i), reflect.TypeFor[T]())
	}
	return p
}

// Destroy ends the lifetime of slot i: the value is disposed if it
// implements Disposer and the slot is reset to its zero value.
func Destroy(b Block, i int) {
	p := b.Slot(i)
	if d, ok := p.(Disposer); ok {
		d.Dispose()
	}
	reflect.ValueOf(p).Elem().SetZero()
}

// Release resets slot i without disposing it. Used for moved-from slots
// whose value lives on elsewhere.
func Release(b Block, i int) {
	reflect.ValueOf(b.Slot(i)).Elem().SetZero()
}

// Value returns the addressable reflect value of slot i.
func Value(b Block, i int) reflect.Value {
	return reflect.ValueOf(b.Slot(i)).Elem()
}

// Move transfers slot i of src into slot i of dst and releases the source.
func Move(dst, src Block, i int) {
	Value(dst, i).Set(Value(src, i))
	Release(src, i)
}

// Exchange swaps the values of slot i in a and b in place.
func Exchange(a, b Block, i int) {
	x, y := Value(a, i), Value(b, i)
	tmp := reflect.New(x.Type()).Elem()
	tmp.Set(x)
	x.Set(y)
	y.Set(tmp)
}

func outOfRange(op string, i, n int) {
	failure.Report(failure.CodeIndexRange, op, "slot %d of %d", i, n)
}

// Block1 stores a single alternative.
type Block1[A any] struct {
	a A
}

func (b *Block1[A]) Slot(i int) interface{} {
	if i == 0 {
		return &b.a
	}
	outOfRange("Block1.Slot", i, 1)
	return nil
}

func (b *Block1[A]) Len() int { return 1 }

// Block2 stores one of two alternatives.
type Block2[A, B any] struct {
	a A
	b B
}

func (b *Block2[A, B]) Slot(i int) interface{} {
	switch i {
	case 0:
		return &b.a
	case 1:
		return &b.b
	}
	outOfRange("Block2.Slot", i, 2)
	return nil
}

func (b *Block2[A, B]) Len() int { return 2 }

// Block3 stores one of three alternatives.
type Block3[A, B, C any] struct {
	a A
	b B
	c C
}

func (b *Block3[A, B, C]) Slot(i int) interface{} {
	switch i {
	case 0:
		return &b.a
	case 1:
		return &b.b
	case 2:
		return &b.c
	}
	outOfRange("Block3.Slot", i, 3)
	return nil
}

func (b *Block3[A, B, C]) Len() int { return 3 }

// Block4 stores one of four alternatives.
type Block4[A, B, C, D any] struct {
	a A
	b B
	c C
	d D
}

func (b *Block4[A, B, C, D]) Slot(i int) interface{} {
	switch i {
	case 0:
		return &b.a
	case 1:
		return &b.b
	case 2:
		return &b.c
	case 3:
		return &b.d
	}
	outOfRange("Block4.Slot", i, 4)
	return nil
}

func (b *Block4[A, B, C, D]) Len() int { return 4 }
