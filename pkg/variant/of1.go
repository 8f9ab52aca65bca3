package variant

import (
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/index"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/resolve"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/storage"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/pkg/optional"
)

// Of1 holds its single alternative. Its index takes no space.
type Of1[A any] struct {
	idx   index.Zero
	slots storage.Block1[A]
}

// New1 returns an Of1 holding the zero A.
func New1[A any]() Of1[A] {
	var v Of1[A]
	checkDefault(&v, "New1")
	return v
}

func (v *Of1[A]) shape() *resolve.Shape {
	return shapeOf[Of1[A]](func() []resolve.Alternative {
		return []resolve.Alternative{describe[A]()}
	})
}

func (v *Of1[A]) block() storage.Block { return &v.slots }

func (v *Of1[A]) tag() index.Tag { return v.idx }

func (v *Of1[A]) active() int { return v.idx.Int() }

func (v *Of1[A]) activate(i int) { v.idx = index.ZeroOf(i) }

// Index returns the index of the live alternative.
func (v Of1[A]) Index() int {
	return v.idx.Int()
}

// Emplace0 replaces the live alternative with x.
func (v *Of1[A]) Emplace0(x A) *A {
	return emplace(v, 0, x)
}

// EmplaceInit0 replaces the live alternative with a value built by init.
func (v *Of1[A]) EmplaceInit0(init func(*A) error) (*A, error) {
	return emplaceInit(v, 0, init)
}

// TryGet0 returns alternative 0 if it is live.
func (v *Of1[A]) TryGet0() optional.Ref[A] {
	return tryGet[A](v, 0)
}

// Get0 returns alternative 0, which must be live.
func (v *Of1[A]) Get0() *A {
	return get[A](v, 0, "Get0")
}

// Match calls the function for the live alternative. Nil functions are
// skipped.
func (v *Of1[A]) Match(f0 func(*A)) {
	switch v.idx.Int() {
	case 0:
		if f0 != nil {
			f0(storage.Get[A](&v.slots, 0))
		}
	}
}

// Equal reports whether v and o hold the same alternative with equal values.
func (v Of1[A]) Equal(o Of1[A]) bool {
	return equal(&v, &o)
}

// Compare orders by alternative index first, then by value.
func (v Of1[A]) Compare(o Of1[A]) int {
	return compare(&v, &o)
}

// Less reports whether v orders before o.
func (v Of1[A]) Less(o Of1[A]) bool {
	return compare(&v, &o) < 0
}

// Swap exchanges the contents of v and o.
func (v *Of1[A]) Swap(o *Of1[A]) {
	swap(v, o)
}

// String formats v as variant(index: value).
func (v Of1[A]) String() string {
	return format(&v)
}
