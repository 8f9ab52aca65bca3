package variant

import (
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/index"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/resolve"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/storage"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/pkg/optional"
)

// Of3 holds exactly one of three alternatives.
type Of3[A, B, C any] struct {
	idx   index.U8
	slots storage.Block3[A, B, C]
}

// New3 returns an Of3 holding the zero A.
func New3[A, B, C any]() Of3[A, B, C] {
	var v Of3[A, B, C]
	checkDefault(&v, "New3")
	return v
}

func (v *Of3[A, B, C]) shape() *resolve.Shape {
	return shapeOf[Of3[A, B, C]](func() []resolve.Alternative {
		return []resolve.Alternative{describe[A](), describe[B](), describe[C]()}
	})
}

func (v *Of3[A, B, C]) block() storage.Block { return &v.slots }

func (v *Of3[A, B, C]) tag() index.Tag { return v.idx }

func (v *Of3[A, B, C]) active() int { return v.idx.Int() }

func (v *Of3[A, B, C]) activate(i int) { v.idx = index.U8Of(i) }

// Index returns the index of the live alternative.
func (v Of3[A, B, C]) Index() int {
	return v.idx.Int()
}

// Emplace0 replaces the live alternative with x.
func (v *Of3[A, B, C]) Emplace0(x A) *A {
	return emplace(v, 0, x)
}

// EmplaceInit0 replaces the live alternative with a value built by init.
func (v *Of3[A, B, C]) EmplaceInit0(init func(*A) error) (*A, error) {
	return emplaceInit(v, 0, init)
}

// TryGet0 returns alternative 0 if it is live.
func (v *Of3[A, B, C]) TryGet0() optional.Ref[A] {
	return tryGet[A](v, 0)
}

// Get0 returns alternative 0, which must be live.
func (v *Of3[A, B, C]) Get0() *A {
	return get[A](v, 0, "Get0")
}

// Emplace1 replaces the live alternative with x.
func (v *Of3[A, B, C]) Emplace1(x B) *B {
	return emplace(v, 1, x)
}

// EmplaceInit1 is EmplaceInit0 for alternative 1.
func (v *Of3[A, B, C]) EmplaceInit1(init func(*B) error) (*B, error) {
	return emplaceInit(v, 1, init)
}

// TryGet1 returns alternative 1 if it is live.
func (v *Of3[A, B, C]) TryGet1() optional.Ref[B] {
	return tryGet[B](v, 1)
}

// Get1 returns alternative 1, which must be live.
func (v *Of3[A, B, C]) Get1() *B {
	return get[B](v, 1, "Get1")
}

// Emplace2 replaces the live alternative with x.
func (v *Of3[A, B, C]) Emplace2(x C) *C {
	return emplace(v, 2, x)
}

// EmplaceInit2 is EmplaceInit0 for alternative 2.
func (v *Of3[A, B, C]) EmplaceInit2(init func(*C) error) (*C, error) {
	return emplaceInit(v, 2, init)
}

// TryGet2 returns alternative 2 if it is live.
func (v *Of3[A, B, C]) TryGet2() optional.Ref[C] {
	return tryGet[C](v, 2)
}

// Get2 returns alternative 2, which must be live.
func (v *Of3[A, B, C]) Get2() *C {
	return get[C](v, 2, "Get2")
}

// Match calls the function for the live alternative. Nil functions are
// skipped.
func (v *Of3[A, B, C]) Match(f0 func(*A), f1 func(*B), f2 func(*C)) {
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
	}
}

// Equal reports whether v and o hold the same alternative with equal values.
func (v Of3[A, B, C]) Equal(o Of3[A, B, C]) bool {
	return equal(&v, &o)
}

// Compare orders by alternative index first, then by value.
func (v Of3[A, B, C]) Compare(o Of3[A, B, C]) int {
	return compare(&v, &o)
}

// Less reports whether v orders before o.
func (v Of3[A, B, C]) Less(o Of3[A, B, C]) bool {
	return compare(&v, &o) < 0
}

// Swap exchanges the contents of v and o.
func (v *Of3[A, B, C]) Swap(o *Of3[A, B, C]) {
	swap(v, o)
}

// String formats v as variant(index: value).
func (v Of3[A, B, C]) String() string {
	return format(&v)
}
