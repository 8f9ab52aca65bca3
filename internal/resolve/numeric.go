package resolve

import (
	"reflect"
	"strconv"
)

type numClass uint8

const (
	signedClass numClass = iota
	unsignedClass
	floatClass
	complexClass
)

type numeric struct {
	class numClass
	bits  int
}

// mantissa is the number of integer bits a value of n represents exactly.
func (n numeric) mantissa() int {
	switch {
	case n.class == floatClass && n.bits == 32, n.class == complexClass && n.bits == 64:
		return 24
	case n.class == floatClass, n.class == complexClass:
		return 53
	default:
		return n.bits
	}
}

// component is the width of one real component.
func (n numeric) component() int {
	if n.class == complexClass {
		return n.bits / 2
	}
	return n.bits
}

// numericOf classifies the predeclared numeric types. Defined types are
// excluded: converting to or from them needs an explicit conversion in Go.
func numericOf(t reflect.Type) (numeric, bool) {
	if t.PkgPath() != "" || t.Name() == "" || t.Name() != t.Kind().String() {
		return numeric{}, false
	}
	switch t.Kind() {
	case reflect.Int:
		return numeric{signedClass, strconv.IntSize}, true
	case reflect.Int8:
		return numeric{signedClass, 8}, true
	case reflect.Int16:
		return numeric{signedClass, 16}, true
	case reflect.Int32:
		return numeric{signedClass, 32}, true
	case reflect.Int64:
		return numeric{signedClass, 64}, true
	case reflect.Uint:
		return numeric{unsignedClass, strconv.IntSize}, true
	case reflect.Uint8:
		return numeric{unsignedClass, 8}, true
	case reflect.Uint16:
		return numeric{unsignedClass, 16}, true
	case reflect.Uint32:
		return numeric{unsignedClass, 32}, true
	case reflect.Uint64:
		return numeric{unsignedClass, 64}, true
	case reflect.Float32:
		return numeric{floatClass, 32}, true
	case reflect.Float64:
		return numeric{floatClass, 64}, true
	case reflect.Complex64:
		return numeric{complexClass, 64}, true
	case reflect.Complex128:
		return numeric{complexClass, 128}, true
	}
	return numeric{}, false
}

// widen ranks a non-narrowing numeric conversion from -> to.
func widen(from, to reflect.Type) (Rank, bool) {
	f, ok := numericOf(from)
	if !ok {
		return Rank{}, false
	}
	t, ok := numericOf(to)
	if !ok {
		return Rank{}, false
	}

	switch {
	case f.class == t.class:
		if t.bits >= f.bits {
			return Rank{Tier: Promote, Distance: t.bits - f.bits}, true
		}
	case f.class == unsignedClass && t.class == signedClass:
		if t.bits > f.bits {
			return Rank{Tier: Promote, Distance: t.bits - f.bits}, true
		}
	case f.class == signedClass || f.class == unsignedClass:
		// Integer to float or complex: every value must be exact.
		if t.class != signedClass && t.class != unsignedClass && t.mantissa() >= f.bits {
			return Rank{Tier: Convert, Distance: t.component() - f.bits}, true
		}
	case f.class == floatClass && t.class == complexClass:
		if t.component() >= f.bits {
			return Rank{Tier: Convert, Distance: t.component() - f.bits}, true
		}
	}
	return Rank{}, false
}
