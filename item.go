// Copyright 2024 The libcbor Authors. All rights reserved.
// Use of this source code is governed by a MIT license
// license that can be found in the LICENSE file.

// Package cbor decodes and encodes values in the Concise Binary Object
// Representation (RFC 8949) and represents them as an in-memory,
// reference-counted item tree that can be inspected, mutated, copied
// and re-encoded without losing the shape (definite vs. indefinite
// length, integer width) of the wire bytes it came from.
package cbor

// MajorType is the top 3 bits of a CBOR head byte; it selects an
// Item's broad kind.
type MajorType uint8

// The eight CBOR major types.
const (
	MajorUnsignedInt MajorType = 0
	MajorNegativeInt MajorType = 1
	MajorByteString  MajorType = 2
	MajorTextString  MajorType = 3
	MajorArray       MajorType = 4
	MajorMap         MajorType = 5
	MajorTag         MajorType = 6
	MajorFloatSimple MajorType = 7
)

func (m MajorType) String() string {
	switch m {
	case MajorUnsignedInt:
		return "unsigned-int"
	case MajorNegativeInt:
		return "negative-int"
	case MajorByteString:
		return "byte-string"
	case MajorTextString:
		return "text-string"
	case MajorArray:
		return "array"
	case MajorMap:
		return "map"
	case MajorTag:
		return "tag"
	case MajorFloatSimple:
		return "float-or-simple"
	default:
		return "unknown-major-type"
	}
}

// WidthHint records how many follow-on bytes a definite integer head
// used on the wire (0, 1, 2, 4 or 8), so a decoded item re-encodes to
// identical bytes even when its value would fit in fewer of them. The
// library is representation-faithful, not canonical: it never
// reshrinks a width it read off the wire.
type WidthHint uint8

const (
	// WidthImmediate means the value is carried directly in the head's
	// additional-information bits (AI < 24); there is no follow-on.
	WidthImmediate WidthHint = iota
	Width1
	Width2
	Width4
	Width8
)

// FloatKind distinguishes the eight payload shapes major type 7 can
// take.
type FloatKind uint8

const (
	KindFloat16 FloatKind = iota
	KindFloat32
	KindFloat64
	KindFalse
	KindTrue
	KindNull
	KindUndefined
	KindSimple
)

// Pair is one (key, value) entry of a Map item. Map insertion order is
// preserved; equal keys are neither rejected nor deduplicated.
type Pair struct {
	Key   *Item
	Value *Item
}

// Item is a node in the CBOR value tree: a tagged union over the
// eight major types, reference counted, with type-specific payload
// fields below. Only the fields relevant to Major are meaningful; the
// rest are zero. Accessors that presume a variant report a mismatch
// through their ok result rather than panicking (IsDefinite is the one
// exception and panics), and the mutators return ErrWrongMajorType or
// ErrNotDefinite.
//
// Every parent-to-child edge owns exactly one reference count on the
// child. Constructors and mutators that accept a child Item take
// ownership of the single reference the caller is holding - they do
// not retain() it first. A caller that wants to keep its own handle
// after handing an Item to a container must call Retain on it before
// doing so. This mirrors the "moved" reference in
// original_source/test/copy_test.c's cbor_move() idiom, and is the
// reason constructors never retain a child themselves.
type Item struct {
	major    MajorType
	refcount int64

	// MajorUnsignedInt / MajorNegativeInt.
	// Logical value is intValue for unsigned, -1-intValue for negative.
	intValue uint64
	intWidth WidthHint

	// MajorByteString / MajorTextString.
	strDefinite bool
	strLenWidth WidthHint // wire width of the definite-length head; unused when indefinite
	bytes       []byte    // owned copy, definite shape only
	chunks      []*Item   // indefinite shape only; each a definite string of the same major type

	// MajorArray.
	arrDefinite bool
	arrLenWidth WidthHint // wire width of the definite-length head; unused when indefinite
	arrCap      int
	elements    []*Item

	// MajorMap.
	mapDefinite bool
	mapLenWidth WidthHint // wire width of the definite-length head; unused when indefinite
	mapCap      int
	pairs       []Pair

	// MajorTag.
	tagNumber uint64
	tagWidth  WidthHint
	tagChild  *Item

	// MajorFloatSimple.
	floatKind FloatKind
	bits      uint64 // raw IEEE-754 bits for the float kinds; 0 for the other kinds
	simple    byte   // KindSimple payload byte
}

// Major returns the item's major type.
func (it *Item) Major() MajorType { return it.major }

// Refcount returns the item's current reference count. Intended for
// tests and diagnostics; ordinary code should not branch on it.
func (it *Item) Refcount() int64 {
	return loadRefcount(it)
}
