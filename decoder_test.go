// Copyright 2024 The libcbor Authors. All rights reserved.
// Use of this source code is governed by a MIT license
// license that can be found in the LICENSE file.

package cbor

import "testing"

func TestDecodeTokenImmediateAndFollowOn(t *testing.T) {
	tests := []struct {
		name     string
		in       []byte
		wantKind TokenKind
		wantUint uint64
		wantN    int
	}{
		{"small unsigned", []byte{0x0A}, TokUnsigned, 10, 1},
		{"negative int 16-bit", []byte{0x39, 0x01, 0xF4}, TokNegative, 500, 3},
		{"array header", []byte{0x83}, TokArrayHeader, 3, 1},
		{"map header", []byte{0xA1}, TokMapHeader, 1, 1},
		{"tag", []byte{0xCA}, TokTag, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, n, err := DecodeToken(tt.in)
			if err != nil {
				t.Fatalf("DecodeToken(% x) failed: %v", tt.in, err)
			}
			if tok.Kind != tt.wantKind || tok.Uint != tt.wantUint || n != tt.wantN {
				t.Errorf("DecodeToken(% x) = (kind=%v uint=%d, %d), want (kind=%v uint=%d, %d)",
					tt.in, tok.Kind, tok.Uint, n, tt.wantKind, tt.wantUint, tt.wantN)
			}
		})
	}
}

func TestDecodeTokenByteStringChunkHeader(t *testing.T) {
	tok, n, err := DecodeToken([]byte{0x43, 0x61, 0x62, 0x63})
	if err != nil {
		t.Fatalf("DecodeToken failed: %v", err)
	}
	if tok.Kind != TokByteStringChunk || tok.Uint != 3 || n != 1 {
		t.Fatalf("DecodeToken = (%v, %d, %d), want (TokByteStringChunk, 3, 1)", tok.Kind, tok.Uint, n)
	}
	data, err := ReadChunkBytes([]byte{0x61, 0x62, 0x63}, tok.Uint)
	if err != nil || string(data) != "abc" {
		t.Errorf("ReadChunkBytes = (%q, %v), want (\"abc\", nil)", data, err)
	}
}

func TestDecodeTokenTruncated(t *testing.T) {
	// Byte-string head announcing a 2-byte length, with only 1 of those bytes present.
	_, _, err := DecodeToken([]byte{0x59, 0x00})
	if !IsNotEnoughData(err) {
		t.Fatalf("DecodeToken on a short head = %v, want a *NotEnoughDataError", err)
	}
	_, err = ReadChunkBytes([]byte{0x61, 0x62}, 3)
	e, ok := err.(*NotEnoughDataError)
	if !ok || e.Hint != 1 {
		t.Errorf("ReadChunkBytes error = %v, want a *NotEnoughDataError with Hint 1", err)
	}
}

func TestDecodeTokenMalformedReservedAI(t *testing.T) {
	_, _, err := DecodeToken([]byte{0x1C})
	if err != ErrMalformed {
		t.Errorf("DecodeToken(0x1c) = %v, want %v", err, ErrMalformed)
	}
}

func TestDecodeTokenIndefiniteStartsAndBreak(t *testing.T) {
	tests := []struct {
		name     string
		in       byte
		wantKind TokenKind
	}{
		{"indefinite bytestring", 0x5F, TokByteStringIndefiniteStart},
		{"indefinite textstring", 0x7F, TokTextStringIndefiniteStart},
		{"indefinite array", 0x9F, TokArrayIndefiniteStart},
		{"indefinite map", 0xBF, TokMapIndefiniteStart},
		{"break", 0xFF, TokBreak},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, n, err := DecodeToken([]byte{tt.in})
			if err != nil || tok.Kind != tt.wantKind || n != 1 {
				t.Errorf("DecodeToken(%#x) = (%v, %d, %v), want (%v, 1, nil)", tt.in, tok.Kind, n, err, tt.wantKind)
			}
		})
	}
}

func TestDecodeTokenReservedIndefiniteMajorType(t *testing.T) {
	// Major type 0 (unsigned int) with AI 31 is not a legal indefinite form.
	_, _, err := DecodeToken([]byte{0x1F})
	if err != ErrMalformed {
		t.Errorf("DecodeToken(0x1f) = %v, want %v", err, ErrMalformed)
	}
}

func TestDecodeTokenFloats(t *testing.T) {
	tests := []struct {
		name     string
		in       []byte
		wantKind TokenKind
		wantBits uint64
	}{
		{"float16", []byte{0xF9, 0x3C, 0x00}, TokFloat16, 0x3C00},
		{"float32", []byte{0xFA, 0x3F, 0x80, 0x00, 0x00}, TokFloat32, 0x3F800000},
		{"float64", []byte{0xFB, 0x3F, 0xF0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, TokFloat64, 0x3FF0000000000000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, _, err := DecodeToken(tt.in)
			if err != nil || tok.Kind != tt.wantKind || tok.Bits != tt.wantBits {
				t.Errorf("DecodeToken(% x) = (%v, %#x, %v), want (%v, %#x, nil)",
					tt.in, tok.Kind, tok.Bits, err, tt.wantKind, tt.wantBits)
			}
		})
	}
}

func TestDecodeTokenSimpleAndControlValues(t *testing.T) {
	tests := []struct {
		name     string
		in       []byte
		wantKind TokenKind
	}{
		{"false", []byte{0xF4}, TokBool},
		{"true", []byte{0xF5}, TokBool},
		{"null", []byte{0xF6}, TokNull},
		{"undefined", []byte{0xF7}, TokUndefined},
		{"simple immediate", []byte{0xE0}, TokSimple},
		{"simple follow-on", []byte{0xF8, 0x20}, TokSimple},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, _, err := DecodeToken(tt.in)
			if err != nil || tok.Kind != tt.wantKind {
				t.Errorf("DecodeToken(% x) = (%v, %v), want (%v, nil)", tt.in, tok.Kind, err, tt.wantKind)
			}
		})
	}
}
