package variant

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tracker counts in-place assignments and disposals.
type tracker struct {
	id       int
	assigned *int
	disposed *int
}

func (t *tracker) Assign(o tracker) {
	*t.assigned++
	t.id = o.id
}

func (t *tracker) Dispose() {
	if t.disposed != nil {
		*t.disposed++
	}
}

type pinned struct {
	n int
}

func (*pinned) Pinned() {}

type relocating struct {
	self *relocating
	fail bool
}

func (r *relocating) Relocate() error {
	if r.fail {
		return errors.New("cannot relocate")
	}
	r.self = r
	return nil
}

var errBoom = errors.New("boom")

func TestZeroValueIsFirstAlternative(t *testing.T) {
	var v Of3[int, float64, string]
	assert.Equal(t, 0, v.Index())
	assert.Equal(t, 0, *v.Get0())

	n := New3[int, float64, string]()
	assert.True(t, v.Equal(n))
}

func TestNoDefaultForReference(t *testing.T) {
	violates(t, CodeNoDefault, func() {
		New2[Ref[int], int]()
	})
	assert.NotPanics(t, func() { New2[int, Ref[int]]() })
}

func TestFromSelectsBestAlternative(t *testing.T) {
	type V = Of3[int, float64, string]

	tests := []struct {
		name  string
		build func() (V, error)
		index int
	}{
		{"int", func() (V, error) { return From[V](7) }, 0},
		{"float", func() (V, error) { return From[V](2.5) }, 1},
		{"string", func() (V, error) { return From[V]("x") }, 2},
		{"int16 promotes", func() (V, error) { return From[V](int16(7)) }, 0},
		{"float32 promotes", func() (V, error) { return From[V](float32(1.5)) }, 1},
		{"uint32 promotes", func() (V, error) { return From[V](uint32(9)) }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.build()
			require.NoError(t, err)
			assert.Equal(t, tt.index, v.Index())
		})
	}
}

func TestFromClosestWidthWins(t *testing.T) {
	v, err := From[Of2[int64, int32]](int16(1))
	require.NoError(t, err)
	assert.Equal(t, 1, v.Index())

	w, err := From[Of2[float64, int64]](int32(1))
	require.NoError(t, err)
	assert.Equal(t, 1, w.Index())
	assert.Equal(t, int64(1), *w.Get1())
}

func TestFromRejectsNarrowing(t *testing.T) {
	_, err := From[Of1[int8]](int64(1))
	assert.ErrorIs(t, err, ErrNoAlternative)

	_, err = From[Of1[uint]](1)
	assert.ErrorIs(t, err, ErrNoAlternative)

	_, err = From[Of1[int]](1.0)
	assert.ErrorIs(t, err, ErrNoAlternative)

	_, err = From[Of2[int, string]]([]byte("x"))
	assert.ErrorIs(t, err, ErrNoAlternative)
}

func TestFromAmbiguous(t *testing.T) {
	_, err := From[Of2[int, int]](1)
	require.ErrorIs(t, err, ErrAmbiguous)

	var rerr *ResolutionError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "From", rerr.Op)
	if diff := cmp.Diff([]int{0, 1}, rerr.Candidates); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}

	// Equally good widenings tie as well.
	_, err = From[Of2[int32, uint32]](uint16(1))
	assert.ErrorIs(t, err, ErrAmbiguous)
}

func TestMustFrom(t *testing.T) {
	v := MustFrom[Of2[int, string]]("ok")
	assert.Equal(t, "ok", *v.Get1())

	violates(t, CodeUnresolved, func() {
		MustFrom[Of2[int, int]](1)
	})
}

func TestAt(t *testing.T) {
	v, err := At[Of2[int8, string]](0, 300)
	require.NoError(t, err)
	assert.Equal(t, int8(44), *v.Get0())

	_, err = At[Of2[int8, string]](1, 65)
	assert.ErrorIs(t, err, ErrNotAssignable)

	_, err = At[Of2[int8, string]](2, 1)
	assert.ErrorIs(t, err, ErrIndexRange)

	// By index, duplicate types are fine.
	d, err := At[Of2[int, int]](1, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Index())
	assert.Equal(t, 5, *d.Get1())
}

func TestAs(t *testing.T) {
	v, err := As[Of3[int, float64, int]](2.5)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Index())

	_, err = As[Of3[int, float64, int]](1)
	assert.ErrorIs(t, err, ErrNotUnique)

	_, err = As[Of3[int, float64, int]]("x")
	assert.ErrorIs(t, err, ErrNoAlternative)

	_, err = As[Of2[int, Ref[int]]](Ref[int]{})
	assert.ErrorIs(t, err, ErrNilReference)
}

func TestEmplace(t *testing.T) {
	var v Of2[int, string]
	p := v.Emplace1("hello")
	assert.Equal(t, 1, v.Index())
	assert.Same(t, p, v.Get1())

	q := v.Emplace0(3)
	assert.Equal(t, 0, v.Index())
	assert.Equal(t, 3, *q)
}

func TestEmplaceDisposesOldAlternative(t *testing.T) {
	var disposed int
	var v Of2[int, tracker]
	v.Emplace1(tracker{id: 1, disposed: &disposed})

	v.Emplace0(1)
	assert.Equal(t, 1, disposed)
	assert.Equal(t, 0, v.Index())
}

func TestEmplaceAs(t *testing.T) {
	var v Of3[int, string, float64]
	p, err := EmplaceAs(&v, "x")
	require.NoError(t, err)
	assert.Equal(t, 1, v.Index())
	assert.Same(t, p, v.Get1())

	_, err = EmplaceAs(&v, int8(1))
	assert.ErrorIs(t, err, ErrNoAlternative)
	assert.Equal(t, 1, v.Index())
}

func TestEmplaceInit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var v Of2[string, int]
		p, err := v.EmplaceInit1(func(p *int) error {
			*p = 42
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, v.Index())
		assert.Same(t, p, v.Get1())
		assert.Equal(t, 42, *p)
	})

	t.Run("error leaves container untouched", func(t *testing.T) {
		var v Of2[string, int]
		v.Emplace0("keep")
		p, err := v.EmplaceInit1(func(p *int) error {
			*p = 3
			return errBoom
		})
		assert.ErrorIs(t, err, errBoom)
		assert.Nil(t, p)
		assert.Equal(t, 0, v.Index())
		assert.Equal(t, "keep", *v.Get0())
	})

	t.Run("panic leaves container untouched", func(t *testing.T) {
		var v Of2[string, int]
		v.Emplace0("keep")
		assert.PanicsWithValue(t, "init", func() {
			v.EmplaceInit1(func(*int) error { panic("init") })
		})
		assert.Equal(t, 0, v.Index())
		assert.Equal(t, "keep", *v.Get0())
	})
}

func TestEmplaceInitPinned(t *testing.T) {
	var v Of2[int, pinned]
	p, err := v.EmplaceInit1(func(p *pinned) error {
		p.n = 7
		return nil
	})
	require.NoError(t, err)
	assert.Same(t, p, v.Get1())
	assert.Equal(t, 7, p.n)

	var w Of2[int, pinned]
	viol := violates(t, CodeConstructFailed, func() {
		w.EmplaceInit1(func(*pinned) error { return errBoom })
	})
	assert.Contains(t, viol.Detail, "boom")

	var x Of2[int, pinned]
	violates(t, CodeConstructFailed, func() {
		x.EmplaceInit1(func(*pinned) error { panic("init") })
	})
}

func TestRelocate(t *testing.T) {
	var v Of2[int, relocating]
	p, err := v.EmplaceInit1(func(*relocating) error { return nil })
	require.NoError(t, err)
	assert.Same(t, p, p.self)

	q := v.Emplace1(relocating{})
	assert.Same(t, q, q.self)

	var w Of2[int, relocating]
	violates(t, CodeRelocateFailed, func() {
		w.EmplaceInit1(func(r *relocating) error {
			r.fail = true
			return nil
		})
	})
}

func TestAssignThrough(t *testing.T) {
	var assigned, disposed int
	var v Of2[string, tracker]
	v.Emplace1(tracker{id: 1, assigned: &assigned, disposed: &disposed})
	p := v.Get1()

	require.NoError(t, Assign(&v, tracker{id: 2}))
	assert.Equal(t, 1, assigned)
	assert.Equal(t, 0, disposed)
	assert.Same(t, p, v.Get1())
	assert.Equal(t, 2, v.Get1().id)

	require.NoError(t, Assign(&v, "s"))
	assert.Equal(t, 1, disposed)
	assert.Equal(t, 0, v.Index())
	assert.Equal(t, "s", *v.Get0())
}

func TestAssignPlainValue(t *testing.T) {
	var v Of2[int, string]
	p := v.Get0()

	require.NoError(t, Assign(&v, 5))
	assert.Same(t, p, v.Get0())
	assert.Equal(t, 5, *p)

	require.NoError(t, Assign(&v, int8(6)))
	assert.Equal(t, 6, *p)

	err := Assign(&v, 1.5)
	assert.ErrorIs(t, err, ErrNoAlternative)
	assert.Equal(t, 0, v.Index())
	assert.Equal(t, 6, *p)
}

func TestReferenceRebind(t *testing.T) {
	x, y := 1, 2
	v, err := From[Of2[Ref[int], Ref[float64]]](&x)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Index())
	assert.Same(t, &x, v.Get0().Ptr())

	require.NoError(t, Assign(&v, &y))
	assert.Equal(t, 1, x, "old referent untouched")
	assert.Same(t, &y, v.Get0().Ptr())

	*v.Get0().Ptr() = 5
	assert.Equal(t, 5, y)

	f := 1.5
	require.NoError(t, Assign(&v, &f))
	assert.Equal(t, 1, v.Index())
	assert.Equal(t, 1.5, v.Get1().Value())
}

func TestReferenceRejectsValuesAndNil(t *testing.T) {
	_, err := From[Of2[Ref[int], Ref[float64]]](3)
	assert.ErrorIs(t, err, ErrNoAlternative)

	y := 2
	v, err := From[Of2[Ref[int], Ref[float64]]](&y)
	require.NoError(t, err)

	var np *int
	err = Assign(&v, np)
	assert.ErrorIs(t, err, ErrNilReference)
	assert.Same(t, &y, v.Get0().Ptr())

	violates(t, CodeNilReference, func() {
		v.Emplace0(Ref[int]{})
	})
}

func TestGetWrongAlternative(t *testing.T) {
	var v Of2[int, string]
	viol := violates(t, CodeWrongAlternative, func() {
		v.Get1()
	})
	assert.Equal(t, "Get1", viol.Op)
}

func TestTryGet(t *testing.T) {
	var v Of2[int, string]
	assert.False(t, v.TryGet1().Ok())

	got := v.TryGet0()
	require.True(t, got.Ok())
	assert.Same(t, v.Get0(), got.Get())

	v.Emplace1("x")
	assert.False(t, v.TryGet0().Ok())
	assert.Equal(t, "x", v.TryGet1().Value())
}

func TestByTypeAccess(t *testing.T) {
	v := MustFrom[Of3[int, string, float64]]("x")

	assert.Equal(t, "x", TryGetAs[string](&v).Value())
	assert.False(t, TryGetAs[int](&v).Ok())
	assert.True(t, HoldsAlternative[string](v))
	assert.False(t, HoldsAlternative[float64](v))

	violates(t, CodeUnresolved, func() {
		HoldsAlternative[int8](v)
	})
}

func TestIndexOf(t *testing.T) {
	i, err := IndexOf[Of3[int, float64, string], float64]()
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = IndexOf[Of2[int, int], int]()
	var rerr *ResolutionError
	require.ErrorAs(t, err, &rerr)
	assert.ErrorIs(t, err, ErrNotUnique)
	assert.Equal(t, "IndexOf", rerr.Op)

	_, err = IndexOf[Of2[int, int], string]()
	assert.ErrorIs(t, err, ErrNoAlternative)
}

func TestLen(t *testing.T) {
	assert.Equal(t, 1, Len[Of1[int]]())
	assert.Equal(t, 2, Len[Of2[int, int]]())
	assert.Equal(t, 3, Len[Of3[int, int, int]]())
	assert.Equal(t, 4, Len[Of4[int, int, int, int]]())
}

func TestMatch(t *testing.T) {
	var v Of3[int, string, float64]
	v.Emplace1("hi")

	var got string
	v.Match(nil, func(s *string) { got = *s }, func(*float64) { t.Fatal("wrong arm") })
	assert.Equal(t, "hi", got)

	assert.NotPanics(t, func() { v.Match(nil, nil, nil) })
}

func TestVoid(t *testing.T) {
	var v Of2[Void, int]
	assert.Equal(t, "variant(0: void)", v.String())

	v.Emplace1(3)
	require.NoError(t, Assign(&v, Void{}))
	assert.Equal(t, 0, v.Index())
}

func TestString(t *testing.T) {
	v := MustFrom[Of2[int, float64]](3.14)
	assert.Equal(t, "variant(1: 3.14)", v.String())

	x := 4
	r := MustFrom[Of1[Ref[int]]](&x)
	assert.Equal(t, "variant(0: ref(4))", r.String())
}

func TestAllFourSlots(t *testing.T) {
	var v Of4[int, string, float64, bool]
	v.Emplace1("s")
	assert.Equal(t, 1, v.Index())
	v.Emplace2(1.5)
	assert.Equal(t, 2, v.Index())
	v.Emplace3(true)
	assert.Equal(t, 3, v.Index())
	assert.True(t, *v.Get3())

	var hits []int
	v.Match(
		func(*int) { hits = append(hits, 0) },
		func(*string) { hits = append(hits, 1) },
		func(*float64) { hits = append(hits, 2) },
		func(*bool) { hits = append(hits, 3) },
	)
	assert.Equal(t, []int{3}, hits)
}

func TestCopyIsIndependent(t *testing.T) {
	a := MustFrom[Of2[int, string]]("a")
	b := a
	*b.Get1() = "b"
	assert.Equal(t, "a", *a.Get1())
}

// liveCount returns how many TryGetK report a value, and the last such K.
func liveCount(v *Of4[int, string, float64, tracker]) (n, k int) {
	k = -1
	oks := []bool{v.TryGet0().Ok(), v.TryGet1().Ok(), v.TryGet2().Ok(), v.TryGet3().Ok()}
	for i, ok := range oks {
		if ok {
			n++
			k = i
		}
	}
	return n, k
}

func TestExactlyOneAlternativeLive(t *testing.T) {
	type V = Of4[int, string, float64, tracker]
	var assigned int
	var other V
	other.Emplace1("other")

	steps := []struct {
		name  string
		op    func(t *testing.T, v *V)
		index int
	}{
		{"from", func(t *testing.T, v *V) {
			var err error
			*v, err = From[V](2.5)
			require.NoError(t, err)
		}, 2},
		{"assign through", func(t *testing.T, v *V) { require.NoError(t, Assign(v, 3.5)) }, 2},
		{"assign replace", func(t *testing.T, v *V) { require.NoError(t, Assign(v, "s")) }, 1},
		{"emplace", func(t *testing.T, v *V) { v.Emplace3(tracker{assigned: &assigned}) }, 3},
		{"assign tracker through", func(t *testing.T, v *V) { require.NoError(t, Assign(v, tracker{id: 1})) }, 3},
		{"failed emplace init", func(t *testing.T, v *V) {
			_, err := v.EmplaceInit0(func(*int) error { return errBoom })
			require.ErrorIs(t, err, errBoom)
		}, 3},
		{"emplace init", func(t *testing.T, v *V) {
			_, err := v.EmplaceInit0(func(p *int) error { *p = 1; return nil })
			require.NoError(t, err)
		}, 0},
		{"swap different", func(t *testing.T, v *V) { v.Swap(&other) }, 1},
		{"swap same", func(t *testing.T, v *V) {
			other.Emplace1("again")
			v.Swap(&other)
		}, 1},
		{"failed assign", func(t *testing.T, v *V) { require.Error(t, Assign(v, []byte("x"))) }, 1},
	}

	var v V
	for _, step := range steps {
		step.op(t, &v)
		n, k := liveCount(&v)
		require.Equal(t, 1, n, step.name)
		require.Equal(t, step.index, v.Index(), step.name)
		require.Equal(t, v.Index(), k, step.name)
		require.GreaterOrEqual(t, v.Index(), 0, step.name)
		require.Less(t, v.Index(), Len[V](), step.name)
	}
	assert.Equal(t, 1, assigned)
	assert.Equal(t, "again", *v.Get1())
	assert.Equal(t, "other", *other.Get1())
}
