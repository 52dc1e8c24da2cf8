// Copyright 2024 The libcbor Authors. All rights reserved.
// Use of this source code is governed by a MIT license
// license that can be found in the LICENSE file.

package cbor

import "github.com/x448/float16"

func newItem(major MajorType) (*Item, error) {
	if !allocate() {
		return nil, ErrOutOfMemory
	}
	return &Item{major: major, refcount: 1}, nil
}

// NewUint8 builds an unsigned-int item whose head would use a 1-byte
// follow-on width on the wire, the same distinction
// original_source/test/copy_test.c draws between cbor_build_uint8 and
// cbor_build_uint16/32/64.
func NewUint8(v uint8) (*Item, error) { return newUint(uint64(v), Width1) }

// NewUint16 builds an unsigned-int item with a 2-byte width hint.
func NewUint16(v uint16) (*Item, error) { return newUint(uint64(v), Width2) }

// NewUint32 builds an unsigned-int item with a 4-byte width hint.
func NewUint32(v uint32) (*Item, error) { return newUint(uint64(v), Width4) }

// NewUint64 builds an unsigned-int item with an 8-byte width hint.
func NewUint64(v uint64) (*Item, error) { return newUint(v, Width8) }

// NewUintCompact builds an unsigned-int item using the narrowest width
// hint that can carry v, including the immediate (AI < 24, no
// follow-on bytes) form for v < 24. Decoded items never use this path;
// it exists for callers hand-building a tree who want canonical-sized
// heads rather than a specific fixed width.
func NewUintCompact(v uint64) (*Item, error) {
	return newUint(v, widthFor(v))
}

func newUint(v uint64, width WidthHint) (*Item, error) {
	it, err := newItem(MajorUnsignedInt)
	if err != nil {
		return nil, err
	}
	it.intValue = v
	it.intWidth = width
	return it, nil
}

func widthFor(v uint64) WidthHint {
	switch {
	case v < 24:
		return WidthImmediate
	case v <= 0xFF:
		return Width1
	case v <= 0xFFFF:
		return Width2
	case v <= 0xFFFFFFFF:
		return Width4
	default:
		return Width8
	}
}

// NewNegInt8 builds a negative-int item from its magnitude m (logical
// value -1-m) with a 1-byte width hint.
func NewNegInt8(m uint8) (*Item, error) { return newNegInt(uint64(m), Width1) }

// NewNegInt16 builds a negative-int item with a 2-byte width hint.
func NewNegInt16(m uint16) (*Item, error) { return newNegInt(uint64(m), Width2) }

// NewNegInt32 builds a negative-int item with a 4-byte width hint.
func NewNegInt32(m uint32) (*Item, error) { return newNegInt(uint64(m), Width4) }

// NewNegInt64 builds a negative-int item with an 8-byte width hint.
func NewNegInt64(m uint64) (*Item, error) { return newNegInt(m, Width8) }

// NewNegIntCompact builds a negative-int item from its magnitude using
// the narrowest width hint that can carry it.
func NewNegIntCompact(m uint64) (*Item, error) {
	return newNegInt(m, widthFor(m))
}

func newNegInt(m uint64, width WidthHint) (*Item, error) {
	it, err := newItem(MajorNegativeInt)
	if err != nil {
		return nil, err
	}
	it.intValue = m
	it.intWidth = width
	return it, nil
}

// NewDefiniteByteString builds a definite-length byte string owning a
// copy of data.
func NewDefiniteByteString(data []byte) (*Item, error) {
	it, err := newItem(MajorByteString)
	if err != nil {
		return nil, err
	}
	it.strDefinite = true
	it.strLenWidth = widthFor(uint64(len(data)))
	if len(data) > 0 {
		it.bytes = append([]byte(nil), data...)
	}
	return it, nil
}

// NewIndefiniteByteString builds an empty indefinite-length byte
// string; chunks are appended with BytestringAddChunk.
func NewIndefiniteByteString() (*Item, error) {
	it, err := newItem(MajorByteString)
	if err != nil {
		return nil, err
	}
	it.strDefinite = false
	return it, nil
}

// NewDefiniteString builds a definite-length text string owning a copy
// of s. Content is assumed to be UTF-8; this library defers validation
// to the caller.
func NewDefiniteString(s string) (*Item, error) {
	it, err := newItem(MajorTextString)
	if err != nil {
		return nil, err
	}
	it.strDefinite = true
	it.strLenWidth = widthFor(uint64(len(s)))
	if len(s) > 0 {
		it.bytes = []byte(s)
	}
	return it, nil
}

// NewIndefiniteString builds an empty indefinite-length text string;
// chunks are appended with StringAddChunk.
func NewIndefiniteString() (*Item, error) {
	it, err := newItem(MajorTextString)
	if err != nil {
		return nil, err
	}
	it.strDefinite = false
	return it, nil
}

// NewDefiniteArray builds a fixed-capacity array. Pushing beyond cap
// returns ErrContainerFull rather than growing.
func NewDefiniteArray(cap int) (*Item, error) {
	it, err := newItem(MajorArray)
	if err != nil {
		return nil, err
	}
	it.arrDefinite = true
	it.arrCap = cap
	it.arrLenWidth = widthFor(uint64(cap))
	// elements is left nil and grows on demand; cap is enforced as a
	// logical limit in ArrayPush, not as an eager allocation, so a
	// decoded header's declared length can't be used to force a large
	// up-front allocation before any element has actually arrived.
	return it, nil
}

// NewIndefiniteArray builds an empty, growable array.
func NewIndefiniteArray() (*Item, error) {
	it, err := newItem(MajorArray)
	if err != nil {
		return nil, err
	}
	it.arrDefinite = false
	return it, nil
}

// NewDefiniteMap builds a fixed-capacity map of cap pairs. Adding
// beyond cap returns ErrContainerFull rather than growing.
func NewDefiniteMap(cap int) (*Item, error) {
	it, err := newItem(MajorMap)
	if err != nil {
		return nil, err
	}
	it.mapDefinite = true
	it.mapCap = cap
	it.mapLenWidth = widthFor(uint64(cap))
	// pairs is left nil and grows on demand; see the comment in
	// NewDefiniteArray.
	return it, nil
}

// NewIndefiniteMap builds an empty, growable map.
func NewIndefiniteMap() (*Item, error) {
	it, err := newItem(MajorMap)
	if err != nil {
		return nil, err
	}
	it.mapDefinite = false
	return it, nil
}

// NewTag wraps child in a tag item carrying tagNumber. Ownership of
// child's single reference transfers to the tag; Retain child first if the caller
// needs to keep using it independently.
func NewTag(tagNumber uint64, child *Item) (*Item, error) {
	it, err := newItem(MajorTag)
	if err != nil {
		return nil, err
	}
	it.tagNumber = tagNumber
	it.tagWidth = widthFor(tagNumber)
	it.tagChild = child
	return it, nil
}

// NewFloat16 builds a half-precision float item from a float32 value,
// down-converting via x448/float16 the way the reference C library's
// cbor_build_float2(float) does.
func NewFloat16(v float32) (*Item, error) {
	return newFloatBits(KindFloat16, uint64(float16.Fromfloat32(v).Bits()))
}

// NewFloat16Bits builds a half-precision float item from its raw
// 16-bit IEEE-754 pattern, preserving exact bits (e.g. a specific NaN
// payload) that a float32 round-trip through NewFloat16 might not.
func NewFloat16Bits(bits uint16) (*Item, error) {
	return newFloatBits(KindFloat16, uint64(bits))
}

// NewFloat32 builds a single-precision float item.
func NewFloat32(v float32) (*Item, error) {
	return newFloatBits(KindFloat32, uint64(float32bits(v)))
}

// NewFloat64 builds a double-precision float item.
func NewFloat64(v float64) (*Item, error) {
	return newFloatBits(KindFloat64, float64bits(v))
}

func newFloatBits(kind FloatKind, bits uint64) (*Item, error) {
	it, err := newItem(MajorFloatSimple)
	if err != nil {
		return nil, err
	}
	it.floatKind = kind
	it.bits = bits
	return it, nil
}

// NewBool builds a boolean simple-value item.
func NewBool(b bool) (*Item, error) {
	kind := KindFalse
	if b {
		kind = KindTrue
	}
	return newFloatBits(kind, 0)
}

// NewNull builds the CBOR null simple-value item.
func NewNull() (*Item, error) { return newFloatBits(KindNull, 0) }

// NewUndefined builds the CBOR undefined simple-value item.
func NewUndefined() (*Item, error) { return newFloatBits(KindUndefined, 0) }

// NewSimple builds a 1-byte simple-value item out of the "other"
// range (0-19 immediate, or 32-255 via the 1-byte follow-on form).
// Bool/null/undefined have their own constructors and dedicated AI
// values; use those instead of NewSimple(20|21|22|23).
func NewSimple(b byte) (*Item, error) {
	it, err := newFloatBits(KindSimple, 0)
	if err != nil {
		return nil, err
	}
	it.simple = b
	return it, nil
}
