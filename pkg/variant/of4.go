package variant

import (
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/index"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/resolve"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/storage"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/pkg/optional"
)

// Of4 holds exactly one of four alternatives.
type Of4[A, B, C, D any] struct {
	idx   index.U8
	slots storage.Block4[A, B, C, D]
}

// New4 returns an Of4 holding the zero A.
func New4[A, B, C, D any]() Of4[A, B, C, D] {
	var v Of4[A, B, C, D]
	checkDefault(&v, "New4")
	return v
}

func (v *Of4[A, B, C, D]) shape() *resolve.Shape {
	return shapeOf[Of4[A, B, C, D]](func() []resolve.Alternative {
		return []resolve.Alternative{describe[A](), describe[B](), describe[C](), describe[D]()}
	})
}

func (v *Of4[A, B, C, D]) block() storage.Block { return &v.slots }

func (v *Of4[A, B, C, D]) tag() index.Tag { return v.idx }

func (v *Of4[A, B, C, D]) active() int { return v.idx.Int() }

func (v *Of4[A, B, C, D]) activate(i int) { v.idx = index.U8Of(i) }

// Index returns the index of the live alternative.
func (v Of4[A, B, C, D]) Index() int {
	return v.idx.Int()
}

// Emplace0 replaces the live alternative with x.
func (v *Of4[A, B, C, D]) Emplace0(x A) *A {
	return emplace(v, 0, x)
}

// EmplaceInit0 replaces the live alternative with a value built by init.
func (v *Of4[A, B, C, D]) EmplaceInit0(init func(*A) error) (*A, error) {
	return emplaceInit(v, 0, init)
}

// TryGet0 returns alternative 0 if it is live.
func (v *Of4[A, B, C, D]) TryGet0() optional.Ref[A] {
	return tryGet[A](v, 0)
}

// Get0 returns alternative 0, which must be live.
func (v *Of4[A, B, C, D]) Get0() *A {
	return get[A](v, 0, "Get0")
}

// Emplace1 replaces the live alternative with x.
func (v *Of4[A, B, C, D]) Emplace1(x B) *B {
	return emplace(v, 1, x)
}

// EmplaceInit1 is EmplaceInit0 for alternative 1.
func (v *Of4[A, B, C, D]) EmplaceInit1(init func(*B) error) (*B, error) {
	return emplaceInit(v, 1, init)
}

// TryGet1 returns alternative 1 if it is live.
func (v *Of4[A, B, C, D]) TryGet1() optional.Ref[B] {
	return tryGet[B](v, 1)
}

// Get1 returns alternative 1, which must be live.
func (v *Of4[A, B, C, D]) Get1() *B {
	return get[B](v, 1, "Get1")
}

// Emplace2 replaces the live alternative with x.
func (v *Of4[A, B, C, D]) Emplace2(x C) *C {
	return emplace(v, 2, x)
}

// EmplaceInit2 is EmplaceInit0 for alternative 2.
func (v *Of4[A, B, C, D]) EmplaceInit2(init func(*C) error) (*C, error) {
	return emplaceInit(v, 2, init)
}

// TryGet2 returns alternative 2 if it is live.
func (v *Of4[A, B, C, D]) TryGet2() optional.Ref[C] {
	return tryGet[C](v, 2)
}

// Get2 returns alternative 2, which must be live.
func (v *Of4[A, B, C, D]) Get2() *C {
	return get[C](v, 2, "Get2")
}

// Emplace3 replaces the live alternative with x.
func (v *Of4[A, B, C, D]) Emplace3(x D) *D {
	return emplace(v, 3, x)
}

// EmplaceInit3 is EmplaceInit0 for alternative 3.
func (v *Of4[A, B, C, D]) EmplaceInit3(init func(*D) error) (*D, error) {
	return emplaceInit(v, 3, init)
}

// TryGet3 returns alternative 3 if it is live.
func (v *Of4[A, B, C, D]) TryGet3() optional.Ref[D] {
	return tryGet[D](v, 3)
}

// Get3 returns alternative 3, which must be live.
func (v *Of4[A, B, C, D]) Get3() *D {
	return get[D](v, 3, "Get3")
}

// Match calls the function for the live alternative. Nil functions are
// skipped.
func (v *Of4[A, B, C, D]) Match(f0 func(*A), f1 func(*B), f2 func(*C), f3 func(*D)) {
	switch v.idx.Int() {
	case 0:
		if f0 != nil {
			f0(storage.Get[A](&v.slots, 0))
		}
	case 1:
		if f1 != nil {
			f1(storage.Get[B](&v.slots, 1))
		}
	case 2:
		if f2 != nil {
			f2(storage.Get[C](&v.slots, 2))
		}
	case 3:
		if f3 != nil {
			f3(storage.Get[D](&v.slots, 3))
		}
	}
}

// Equal reports whether v and o hold the same alternative with equal values.
func (v Of4[A, B, C, D]) Equal(o Of4[A, B, C, D]) bool {
	return equal(&v, &o)
}

// Compare orders by alternative index first, then by value.
func (v Of4[A, B, C, D]) Compare(o Of4[A, B, C, D]) int {
	return compare(&v, &o)
}

// Less reports whether v orders before o.
func (v Of4[A, B, C, D]) Less(o Of4[A, B, C, D]) bool {
	return compare(&v, &o) < 0
}

// Swap exchanges the contents of v and o.
func (v *Of4[A, B, C, D]) Swap(o *Of4[A, B, C, D]) {
	swap(v, o)
}

// String formats v as variant(index: value).
func (v Of4[A, B, C, D]) String() string {
	return format(&v)
}
