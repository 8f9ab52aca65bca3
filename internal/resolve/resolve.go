// Package resolve selects the alternative a source value initialises.
//
// Every alternative contributes one acceptor. An acceptor matches a source
// type only through a conversion that cannot lose range, precision or sign,
// and reports how good the match is. The single best acceptor wins; a tie at
// the top is rejected rather than broken by declaration order.
package resolve

import (
	"fmt"
	"reflect"
	"sync"
)

// Kind classifies an alternative.
type Kind uint8

const (
	// Object alternatives hold their value inline.
	Object Kind = iota
	// Reference alternatives hold a non-owning, rebindable pointer.
	Reference
	// Void alternatives hold the unit value.
	Void
)

func (k Kind) String() string {
	switch k {
	case Object:
		return "object"
	case Reference:
		return "reference"
	case Void:
		return "void"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Alternative describes one slot of a container.
type Alternative struct {
	// Type is the declared slot type.
	Type reflect.Type
	Kind Kind
	// Target is the referenced type of a Reference alternative.
	Target reflect.Type
	// Bind wraps a non-nil *Target into a value of Type. Reference only.
	Bind func(ptr reflect.Value) reflect.Value
}

// Binding is implemented by reference alternative types.
type Binding interface {
	IsBound() bool
}

// Tier orders acceptor matches; lower is better.
type Tier uint8

const (
	Exact Tier = iota
	Assignable
	Promote
	Convert
	Interface
)

// Rank is the quality of a match. Distance breaks ties within a tier and is
// the number of bits a numeric value is widened by.
type Rank struct {
	Tier     Tier
	Distance int
}

// Less reports whether r is a strictly better match than o.
func (r Rank) Less(o Rank) bool {
	if r.Tier != o.Tier {
		return r.Tier < o.Tier
	}
	return r.Distance < o.Distance
}

// Candidate is an alternative whose acceptor matched.
type Candidate struct {
	Index int
	Rank  Rank
}

type resolution struct {
	index int
	cands []int
	err   error
}

// Shape is the ordered alternative list of a container type.
type Shape struct {
	Alts []Alternative

	mu    sync.RWMutex
	cache map[reflect.Type]resolution
}

// NewShape returns a shape over alts.
func NewShape(alts ...Alternative) *Shape {
	return &Shape{
		Alts:  alts,
		cache: make(map[reflect.Type]resolution),
	}
}

// Len returns the number of alternatives.
func (s *Shape) Len() int {
	return len(s.Alts)
}

var registry = struct {
	sync.RWMutex
	shapes map[reflect.Type]*Shape
}{shapes: make(map[reflect.Type]*Shape)}

// Intern returns the shape registered for key, calling build the first time
// key is seen.
func Intern(key reflect.Type, build func() []Alternative) *Shape {
	registry.RLock()
	s, ok := registry.shapes[key]
	registry.RUnlock()
	if ok {
		return s
	}

	registry.Lock()
	defer registry.Unlock()
	if s, ok = registry.shapes[key]; ok {
		return s
	}
	s = NewShape(build()...)
	registry.shapes[key] = s
	return s
}

// Candidates returns every alternative that accepts from, in index order.
func (s *Shape) Candidates(from reflect.Type) []Candidate {
	var out []Candidate
	for i, alt := range s.Alts {
		if r, ok := Accept(alt, from); ok {
			out = append(out, Candidate{Index: i, Rank: r})
		}
	}
	return out
}

// Resolve returns the index of the unique best alternative for from.
func (s *Shape) Resolve(from reflect.Type) (int, error) {
	s.mu.RLock()
	res, ok := s.cache[from]
	s.mu.RUnlock()
	if !ok {
		res = s.resolve(from)
		s.mu.Lock()
		s.cache[from] = res
		s.mu.Unlock()
	}
	if res.err != nil {
		return -1, &ResolutionError{Op: "resolve", From: from, Candidates: res.cands, Err: res.err}
	}
	return res.index, nil
}

func (s *Shape) resolve(from reflect.Type) resolution {
	cands := s.Candidates(from)
	if len(cands) == 0 {
		return resolution{index: -1, err: ErrNoAlternative}
	}

	best := cands[0]
	tied := []int{best.Index}
	for _, c := range cands[1:] {
		switch {
		case c.Rank.Less(best.Rank):
			best = c
			tied = []int{c.Index}
		case c.Rank == best.Rank:
			tied = append(tied, c.Index)
		}
	}
	if len(tied) > 1 {
		return resolution{index: -1, cands: tied, err: ErrAmbiguous}
	}
	return resolution{index: best.Index}
}

// Unique returns the index of the only alternative declared as t.
func (s *Shape) Unique(t reflect.Type) (int, error) {
	found := -1
	var dups []int
	for i, alt := range s.Alts {
		if alt.Type != t {
			continue
		}
		dups = append(dups, i)
		if found < 0 {
			found = i
		}
	}
	switch len(dups) {
	case 0:
		return -1, &ResolutionError{Op: "unique", From: t, Err: ErrNoAlternative}
	case 1:
		return found, nil
	default:
		return -1, &ResolutionError{Op: "unique", From: t, Candidates: dups, Err: ErrNotUnique}
	}
}

// Explicit checks that from can initialise alternative i when it is chosen
// by index. Explicit selection also admits Go conversions that may narrow.
func (s *Shape) Explicit(i int, from reflect.Type) error {
	if i < 0 || i >= len(s.Alts) {
		return &ResolutionError{Op: "explicit", From: from, Err: ErrIndexRange}
	}
	alt := s.Alts[i]
	if _, ok := Accept(alt, from); ok {
		return nil
	}
	if alt.Kind == Object && explicitConvertible(from, alt.Type) {
		return nil
	}
	return &ResolutionError{Op: "explicit", From: from, Candidates: []int{i}, Err: ErrNotAssignable}
}

// Build produces the value of alt from v. v must have been accepted by alt,
// implicitly or explicitly.
func Build(alt Alternative, v reflect.Value) (reflect.Value, error) {
	switch alt.Kind {
	case Reference:
		if v.Type() == alt.Type {
			if b, ok := v.Interface().(Binding); ok && !b.IsBound() {
				return reflect.Value{}, ErrNilReference
			}
			return v, nil
		}
		if v.IsNil() {
			return reflect.Value{}, ErrNilReference
		}
		return alt.Bind(v), nil
	case Void:
		return reflect.Zero(alt.Type), nil
	}

	out := reflect.New(alt.Type).Elem()
	if v.Type().AssignableTo(alt.Type) {
		out.Set(v)
	} else {
		out.Set(v.Convert(alt.Type))
	}
	return out, nil
}

// Accept is the acceptor of alt.
func Accept(alt Alternative, from reflect.Type) (Rank, bool) {
	if from == alt.Type {
		return Rank{Tier: Exact}, true
	}

	switch alt.Kind {
	case Void:
		return Rank{}, false
	case Reference:
		// A non-pointer source would bind a temporary copy.
		if from == reflect.PointerTo(alt.Target) {
			return Rank{Tier: Exact}, true
		}
		return Rank{}, false
	}

	to := alt.Type
	if to.Kind() == reflect.Interface {
		if from.Implements(to) {
			return Rank{Tier: Interface}, true
		}
		return Rank{}, false
	}
	if from.AssignableTo(to) {
		return Rank{Tier: Assignable}, true
	}
	return widen(from, to)
}

func explicitConvertible(from, to reflect.Type) bool {
	if !from.ConvertibleTo(to) {
		return false
	}
	// int -> string yields a rune, and slice -> array can panic on length.
	if to.Kind() == reflect.String && isInteger(from.Kind()) {
		return false
	}
	if from.Kind() == reflect.Slice && (to.Kind() == reflect.Array || to.Kind() == reflect.Pointer) {
		return false
	}
	return true
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}
