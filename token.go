// Copyright 2024 The libcbor Authors. All rights reserved.
// Use of this source code is governed by a MIT license
// license that can be found in the LICENSE file.

package cbor

// TokenKind identifies the syntactic shape of one decoded Token.
type TokenKind uint8

const (
	TokUnsigned TokenKind = iota
	TokNegative
	TokByteStringChunk
	TokTextStringChunk
	TokByteStringIndefiniteStart
	TokTextStringIndefiniteStart
	TokArrayHeader
	TokArrayIndefiniteStart
	TokMapHeader
	TokMapIndefiniteStart
	TokTag
	TokFloat16
	TokFloat32
	TokFloat64
	TokBool
	TokNull
	TokUndefined
	TokSimple
	TokBreak
)

// Token is the unit the streaming decoder produces: one syntactic
// element of the wire grammar. Which fields are
// meaningful depends on Kind:
//
//   - TokUnsigned/TokNegative: Uint (value or magnitude), Width.
//   - TokByteStringChunk/TokTextStringChunk: Uint holds the announced
//     chunk length; the raw bytes themselves are not part of the
//     token and must be read separately from the remainder of the
//     buffer (see ReadChunkBytes).
//   - TokArrayHeader/TokMapHeader: Uint holds the declared length (of
//     elements for an array, of pairs for a map).
//   - TokTag: Uint holds the 64-bit tag number.
//   - TokFloat16/TokFloat32/TokFloat64: Bits holds the raw IEEE-754
//     pattern.
//   - TokBool: Bool holds the value.
//   - TokSimple: Simple holds the raw byte.
//   - all others carry no payload beyond Kind.
type Token struct {
	Kind   TokenKind
	Uint   uint64
	Width  WidthHint
	Bits   uint64
	Bool   bool
	Simple byte
}
