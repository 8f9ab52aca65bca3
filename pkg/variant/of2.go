package variant

import (
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/index"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/resolve"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/storage"
	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/pkg/optional"
)

// Of2 holds exactly one of two alternatives. The zero value holds the zero
// A. Copying an Of2 copies the live value; only Ref alternatives share
// what they point at.
type Of2[A, B any] struct {
	idx   index.U8
	slots storage.Block2[A, B]
}

// New2 returns an Of2 holding the zero A. It is the same as the zero value,
// except that a Ref first alternative, which has no default, is reported as a
// violation.
func New2[A, B any]() Of2[A, B] {
	var v Of2[A, B]
	checkDefault(&v, "New2")
	return v
}

func (v *Of2[A, B]) shape() *resolve.Shape {
	return shapeOf[Of2[A, B]](func() []resolve.Alternative {
		return []resolve.Alternative{describe[A](), describe[B]()}
	})
}

func (v *Of2[A, B]) block() storage.Block { return &v.slots }

func (v *Of2[A, B]) tag() index.Tag { return v.idx }

func (v *Of2[A, B]) active() int { return v.idx.Int() }

func (v *Of2[A, B]) activate(i int) { v.idx = index.U8Of(i) }

// Index returns the index of the live alternative.
func (v Of2[A, B]) Index() int {
	return v.idx.Int()
}

// Emplace0 destroys the live alternative and stores x as alternative 0.
// It returns a pointer to the stored value, valid until the alternative is
// replaced.
func (v *Of2[A, B]) Emplace0(x A) *A {
	return emplace(v, 0, x)
}

// EmplaceInit0 replaces the live alternative with a value built by init.
//
// When A can be moved, init runs on a temporary and an error leaves v
// untouched. A Pinned A is built in place after the old alternative is
// destroyed; a failure there is reported as a violation.
func (v *Of2[A, B]) EmplaceInit0(init func(*A) error) (*A, error) {
	return emplaceInit(v, 0, init)
}

// TryGet0 returns alternative 0 if it is live.
func (v *Of2[A, B]) TryGet0() optional.Ref[A] {
	return tryGet[A](v, 0)
}

// Get0 returns alternative 0, which must be live.
func (v *Of2[A, B]) Get0() *A {
	return get[A](v, 0, "Get0")
}

// Emplace1 destroys the live alternative and stores x as alternative 1.
func (v *Of2[A, B]) Emplace1(x B) *B {
	return emplace(v, 1, x)
}

// EmplaceInit1 is EmplaceInit0 for alternative 1.
func (v *Of2[A, B]) EmplaceInit1(init func(*B) error) (*B, error) {
	return emplaceInit(v, 1, init)
}

// TryGet1 returns alternative 1 if it is live.
func (v *Of2[A, B]) TryGet1() optional.Ref[B] {
	return tryGet[B](v, 1)
}

// Get1 returns alternative 1, which must be live.
func (v *Of2[A, B]) Get1() *B {
	return get[B](v, 1, "Get1")
}

// Match calls the function for the live alternative. Nil functions are
// skipped.
func (v *Of2[A, B]) Match(f0 func(*A), f1 func(*B)) {
	switch v.idx.Int() {
	case 0:
		if f0 != nil {
			f0(storage.Get[A](&v.slots, 0))
		}
	case 1:
		if f1 != nil {
			f1(storage.Get[B](&v.slots, 1))
		}
	}
}

// Equal reports whether v and o hold the same alternative with equal values.
func (v Of2[A, B]) Equal(o Of2[A, B]) bool {
	return equal(&v, &o)
}

// Compare orders by alternative index first, then by value.
func (v Of2[A, B]) Compare(o Of2[A, B]) int {
	return compare(&v, &o)
}

// Less reports whether v orders before o.
func (v Of2[A, B]) Less(o Of2[A, B]) bool {
	return compare(&v, &o) < 0
}

// Swap exchanges the contents of v and o.
func (v *Of2[A, B]) Swap(o *Of2[A, B]) {
	swap(v, o)
}

// String formats v as variant(index: value).
func (v Of2[A, B]) String() string {
	return format(&v)
}
