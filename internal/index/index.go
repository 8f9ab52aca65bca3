// Package index provides the discriminant types of the variant containers.
// The width of a discriminant is the smallest unsigned integer that can
// enumerate the alternatives; a single alternative needs no storage at all.
package index

import (
	"math"

	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/failure"
)

// Tag is an alternative index.
type Tag interface {
	Int() int
}

// Zero is the index of a container with a single alternative. It occupies
// no space and is always 0.
type Zero struct{}

func (Zero) Int() int { return 0 }

// ZeroOf returns the Zero tag. Any i other than 0 is a violation.
func ZeroOf(i int) Zero {
	if i != 0 {
		failure.Report(failure.CodeIndexRange, "index.ZeroOf", "%d", i)
	}
	return Zero{}
}

// U8 indexes up to 256 alternatives.
type U8 uint8

func (t U8) Int() int { return int(t) }

// U8Of converts i, which must be in [0, 256).
func U8Of(i int) U8 {
	if i < 0 || i > math.MaxUint8 {
		failure.Report(failure.CodeIndexRange, "index.U8Of", "%d", i)
	}
	return U8(i)
}

// U16 indexes up to 65536 alternatives.
type U16 uint16

func (t U16) Int() int { return int(t) }

// U16Of converts i, which must be in [0, 65536).
func U16Of(i int) U16 {
	if i < 0 || i > math.MaxUint16 {
		failure.Report(failure.CodeIndexRange, "index.U16Of", "%d", i)
	}
	return U16(i)
}

// Bits returns the storage width in bits of an index over n alternatives.
func Bits(n int) int {
	switch {
	case n <= 1:
		return 0
	case n <= math.MaxUint8+1:
		return 8
	case n <= math.MaxUint16+1:
		return 16
	default:
		return 32
	}
}

// Compare orders two tags by their integer value.
func Compare(a, b Tag) int {
	x, y := a.Int(), b.Int()
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// Is reports whether t denotes i.
func Is(t Tag, i int) bool {
	return t.Int() == i
}
