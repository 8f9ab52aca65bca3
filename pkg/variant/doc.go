// Package variant provides tagged unions over a fixed list of alternative
// types: Of1, Of2, Of3 and Of4.
//
// A container always holds exactly one live alternative. Its zero value holds
// the zero value of the first alternative. Alternatives come in three
// flavours:
//
//   - object alternatives store their value inline;
//   - reference alternatives, written Ref[T], store a non-owning rebindable
//     pointer;
//   - void alternatives, written Void, store the unit value.
//
// Converting construction and assignment (From, Assign) pick the alternative
// through a non-narrowing best-match rule: the value must convert to exactly
// one alternative better than to any other, without loss of range, precision
// or sign. Ties are rejected with ErrAmbiguous:
//
//	v, err := variant.From[variant.Of3[int, float64, byte]](3.14) // alternative 1
//	_, err = variant.From[variant.Of2[int, int]](1)                 // ErrAmbiguous
//
// Explicit selection by index (At) or by type (As, EmplaceAs) bypasses the
// resolver.
//
// Replacing the live alternative never leaves a container without one. A
// fallible in-place initialiser runs on a temporary first, so a failure
// leaves the container untouched. When no such fallback exists (Pinned
// alternatives) a failure after the old value is gone is reported to the
// failure handler, which does not return.
//
// Ordering is index first: containers holding different alternatives compare
// by alternative index, whatever their values.
package variant
