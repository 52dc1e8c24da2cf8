// Copyright 2024 The libcbor Authors. All rights reserved.
// Use of this source code is governed by a MIT license
// license that can be found in the LICENSE file.

package cbor

import "github.com/x448/float16"

// UintValue returns an unsigned-int item's logical value and its wire
// width hint. ok is false if it is not MajorUnsignedInt.
func (it *Item) UintValue() (value uint64, width WidthHint, ok bool) {
	if it.major != MajorUnsignedInt {
		return 0, 0, false
	}
	return it.intValue, it.intWidth, true
}

// NegIntMagnitude returns a negative-int item's magnitude m (logical
// value -1-m) and its wire width hint. ok is false if it is not
// MajorNegativeInt.
func (it *Item) NegIntMagnitude() (magnitude uint64, width WidthHint, ok bool) {
	if it.major != MajorNegativeInt {
		return 0, 0, false
	}
	return it.intValue, it.intWidth, true
}

// NegIntValue returns a negative-int item's logical (negative) value
// as an int64. Magnitudes that don't fit in int64 (m >= 2^63) can't be
// represented this way; use NegIntMagnitude for those.
func (it *Item) NegIntValue() (value int64, ok bool) {
	m, _, ok := it.NegIntMagnitude()
	if !ok {
		return 0, false
	}
	return -1 - int64(m), true
}

// IsDefinite reports whether a byte string, text string, array or map
// item has a definite (announced) length. Panics if called on an item
// whose major type has no definite/indefinite distinction; callers
// unsure of the major type should check Major first.
func (it *Item) IsDefinite() bool {
	switch it.major {
	case MajorByteString, MajorTextString:
		return it.strDefinite
	case MajorArray:
		return it.arrDefinite
	case MajorMap:
		return it.mapDefinite
	default:
		panic("cbor: IsDefinite called on an item with no definite/indefinite shape")
	}
}

// StringBytes returns the owned byte content of a definite byte or
// text string. ok is false if it is not a definite string of either
// text or byte major type.
func (it *Item) StringBytes() (data []byte, ok bool) {
	if (it.major != MajorByteString && it.major != MajorTextString) || !it.strDefinite {
		return nil, false
	}
	return it.bytes, true
}

// StringText is a convenience over StringBytes for a definite text
// string, returning a copy of its content as a string.
func (it *Item) StringText() (s string, ok bool) {
	if it.major != MajorTextString || !it.strDefinite {
		return "", false
	}
	return string(it.bytes), true
}

// Chunks returns the ordered chunk items of an indefinite byte or text
// string. ok is false if it is not an indefinite string.
func (it *Item) Chunks() (chunks []*Item, ok bool) {
	if (it.major != MajorByteString && it.major != MajorTextString) || it.strDefinite {
		return nil, false
	}
	return it.chunks, true
}

// ChunkCount returns the number of chunks an indefinite byte or text
// string currently holds.
func (it *Item) ChunkCount() int {
	return len(it.chunks)
}

// ArrayLen returns the number of elements currently held by an array
// (its "fill", in terms).
func (it *Item) ArrayLen() int {
	return len(it.elements)
}

// ArrayCap returns a definite array's declared capacity, or 0 for an
// indefinite array (which has none).
func (it *Item) ArrayCap() int {
	return it.arrCap
}

// ArrayGet returns the i'th element of an array. ok is false if it is
// not an array or i is out of range.
func (it *Item) ArrayGet(i int) (elem *Item, ok bool) {
	if it.major != MajorArray || i < 0 || i >= len(it.elements) {
		return nil, false
	}
	return it.elements[i], true
}

// MapLen returns the number of pairs currently held by a map.
func (it *Item) MapLen() int {
	return len(it.pairs)
}

// MapCap returns a definite map's declared pair capacity, or 0 for an
// indefinite map.
func (it *Item) MapCap() int {
	return it.mapCap
}

// MapGet returns the i'th (key, value) pair of a map. ok is false if
// it is not a map or i is out of range.
func (it *Item) MapGet(i int) (pair Pair, ok bool) {
	if it.major != MajorMap || i < 0 || i >= len(it.pairs) {
		return Pair{}, false
	}
	return it.pairs[i], true
}

// TagNumber returns a tag item's 64-bit tag number. ok is false if it
// is not MajorTag.
func (it *Item) TagNumber() (tagNumber uint64, ok bool) {
	if it.major != MajorTag {
		return 0, false
	}
	return it.tagNumber, true
}

// TagChild returns a tag item's single child. ok is false if it is not
// MajorTag.
func (it *Item) TagChild() (child *Item, ok bool) {
	if it.major != MajorTag {
		return nil, false
	}
	return it.tagChild, true
}

// FloatKindOf returns which of the eight major-7 payload shapes this
// item holds. ok is false if it is not MajorFloatSimple.
func (it *Item) FloatKindOf() (kind FloatKind, ok bool) {
	if it.major != MajorFloatSimple {
		return 0, false
	}
	return it.floatKind, true
}

// Float16Value returns a half-precision float item's value, expanded
// to a float32. ok is false if the item isn't KindFloat16.
func (it *Item) Float16Value() (value float32, ok bool) {
	if it.major != MajorFloatSimple || it.floatKind != KindFloat16 {
		return 0, false
	}
	return float16.Frombits(uint16(it.bits)).Float32(), true
}

// Float16Bits returns a half-precision float item's raw 16-bit
// IEEE-754 pattern, exactly as read off the wire.
func (it *Item) Float16Bits() (bits uint16, ok bool) {
	if it.major != MajorFloatSimple || it.floatKind != KindFloat16 {
		return 0, false
	}
	return uint16(it.bits), true
}

// Float32Value returns a single-precision float item's value.
func (it *Item) Float32Value() (value float32, ok bool) {
	if it.major != MajorFloatSimple || it.floatKind != KindFloat32 {
		return 0, false
	}
	return bitsToFloat32(uint32(it.bits)), true
}

// Float64Value returns a double-precision float item's value.
func (it *Item) Float64Value() (value float64, ok bool) {
	if it.major != MajorFloatSimple || it.floatKind != KindFloat64 {
		return 0, false
	}
	return bitsToFloat64(it.bits), true
}

// BoolValue returns a boolean item's value.
func (it *Item) BoolValue() (value bool, ok bool) {
	if it.major != MajorFloatSimple {
		return false, false
	}
	switch it.floatKind {
	case KindTrue:
		return true, true
	case KindFalse:
		return false, true
	default:
		return false, false
	}
}

// IsNull reports whether the item is the CBOR null simple value.
func (it *Item) IsNull() bool {
	return it.major == MajorFloatSimple && it.floatKind == KindNull
}

// IsUndefined reports whether the item is the CBOR undefined simple
// value.
func (it *Item) IsUndefined() bool {
	return it.major == MajorFloatSimple && it.floatKind == KindUndefined
}

// SimpleValue returns the raw byte of a "other" simple-value item (one
// built with NewSimple, or decoded as such).
func (it *Item) SimpleValue() (b byte, ok bool) {
	if it.major != MajorFloatSimple || it.floatKind != KindSimple {
		return 0, false
	}
	return it.simple, true
}
