// Copyright 2024 The libcbor Authors. All rights reserved.
// Use of this source code is governed by a MIT license
// license that can be found in the LICENSE file.

package cbor

// DecodeToken reads exactly one CBOR token from the front of buf and
// reports how many bytes it consumed. It is pure with respect to buf:
// it never reads past len(buf) and never retains it past the call.
// All decoder state lives in the caller's advancing
// cursor; calling DecodeToken again on buf[n:] continues where the
// previous call left off.
//
// For TokByteStringChunk and TokTextStringChunk, consumed covers only
// the head - the announced-length payload bytes that follow are not
// part of the token and must be sliced separately with
// ReadChunkBytes(buf[consumed:], tok.Uint).
//
// Boundary checks follow the same discipline throughout: every
// multi-byte read is bounds checked before it happens, and a too-short
// buffer reports NotEnoughDataError with a precise hint rather than
// indexing out of range.
func DecodeToken(buf []byte) (Token, int, error) {
	if len(buf) < 1 {
		return Token{}, 0, &NotEnoughDataError{Hint: 1}
	}
	head := buf[0]
	major := MajorType(head >> 5)
	ai := head & 0x1F

	switch {
	case ai < 24:
		return decodeImmediate(major, ai)
	case ai == 24:
		return decodeFollowOn(buf, major, 1, Width1)
	case ai == 25:
		return decodeFollowOn(buf, major, 2, Width2)
	case ai == 26:
		return decodeFollowOn(buf, major, 4, Width4)
	case ai == 27:
		return decodeFollowOn(buf, major, 8, Width8)
	case ai == 31:
		return decodeIndefiniteOrBreak(major)
	default: // 28, 29, 30: reserved.
		return Token{}, 0, ErrMalformed
	}
}

func decodeImmediate(major MajorType, ai byte) (Token, int, error) {
	if major == MajorFloatSimple {
		switch ai {
		case 20:
			return Token{Kind: TokBool, Bool: false}, 1, nil
		case 21:
			return Token{Kind: TokBool, Bool: true}, 1, nil
		case 22:
			return Token{Kind: TokNull}, 1, nil
		case 23:
			return Token{Kind: TokUndefined}, 1, nil
		default: // 0..19
			return Token{Kind: TokSimple, Simple: ai}, 1, nil
		}
	}
	return headToken(major, uint64(ai), WidthImmediate), 1, nil
}

func decodeFollowOn(buf []byte, major MajorType, n int, width WidthHint) (Token, int, error) {
	needed := 1 + n
	if len(buf) < needed {
		return Token{}, 0, &NotEnoughDataError{Hint: needed - len(buf)}
	}
	val := beUint(buf[1:needed])

	if major == MajorFloatSimple {
		switch n {
		case 1:
			// Values below 32 have a 1-byte head form of their own and
			// are not well-formed in the follow-on form.
			if val < 32 {
				return Token{}, 0, ErrMalformed
			}
			return Token{Kind: TokSimple, Simple: byte(val)}, needed, nil
		case 2:
			return Token{Kind: TokFloat16, Bits: val}, needed, nil
		case 4:
			return Token{Kind: TokFloat32, Bits: val}, needed, nil
		case 8:
			return Token{Kind: TokFloat64, Bits: val}, needed, nil
		}
	}
	return headToken(major, val, width), needed, nil
}

func headToken(major MajorType, val uint64, width WidthHint) Token {
	switch major {
	case MajorUnsignedInt:
		return Token{Kind: TokUnsigned, Uint: val, Width: width}
	case MajorNegativeInt:
		return Token{Kind: TokNegative, Uint: val, Width: width}
	case MajorByteString:
		return Token{Kind: TokByteStringChunk, Uint: val, Width: width}
	case MajorTextString:
		return Token{Kind: TokTextStringChunk, Uint: val, Width: width}
	case MajorArray:
		return Token{Kind: TokArrayHeader, Uint: val, Width: width}
	case MajorMap:
		return Token{Kind: TokMapHeader, Uint: val, Width: width}
	case MajorTag:
		return Token{Kind: TokTag, Uint: val, Width: width}
	default:
		return Token{}
	}
}

func decodeIndefiniteOrBreak(major MajorType) (Token, int, error) {
	switch major {
	case MajorByteString:
		return Token{Kind: TokByteStringIndefiniteStart}, 1, nil
	case MajorTextString:
		return Token{Kind: TokTextStringIndefiniteStart}, 1, nil
	case MajorArray:
		return Token{Kind: TokArrayIndefiniteStart}, 1, nil
	case MajorMap:
		return Token{Kind: TokMapIndefiniteStart}, 1, nil
	case MajorFloatSimple:
		return Token{Kind: TokBreak}, 1, nil
	default: // major 0, 1 or 6 with AI 31: not a legal indefinite form.
		return Token{}, 0, ErrMalformed
	}
}

// ReadChunkBytes slices n raw payload bytes from the front of buf, the
// companion call to DecodeToken's TokByteStringChunk/TokTextStringChunk
// result. It copies nothing; the returned slice aliases buf.
func ReadChunkBytes(buf []byte, n uint64) ([]byte, error) {
	if n > uint64(len(buf)) {
		return nil, &NotEnoughDataError{Hint: int(n - uint64(len(buf)))}
	}
	return buf[:n], nil
}

// beUint decodes a big-endian unsigned integer from a 1, 2, 4 or
// 8-byte slice. The caller guarantees len(b) is one of those sizes.
func beUint(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}
