// Copyright 2024 The libcbor Authors. All rights reserved.
// Use of this source code is governed by a MIT license
// license that can be found in the LICENSE file.

package cbor

import "testing"

// FuzzDecode feeds arbitrary bytes to Decode. It must never panic, and
// whenever it succeeds, re-encoding the result must reproduce exactly
// the bytes Decode consumed.
func FuzzDecode(f *testing.F) {
	seeds := [][]byte{
		{0x0A},
		{0x39, 0x01, 0xF4},
		{0x43, 0x61, 0x62, 0x63},
		{0x7F, 0x63, 0x61, 0x62, 0x63, 0xFF},
		{0xA1, 0x18, 0x2A, 0x18, 0x2B},
		{0xCA, 0x18, 0x2A},
		{0xF9, 0x3C, 0x00},
		{0x9F, 0xBF, 0x01, 0x02, 0xFF, 0xFF},
		{0x1C},
		{0x43, 0x61, 0x62},
		{0xFF},
		{},
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, in []byte) {
		item, n, err := Decode(in)
		if err != nil {
			if item != nil {
				t.Fatalf("Decode returned a non-nil item alongside error %v", err)
			}
			return
		}
		defer Release(item)

		if n < 0 || n > len(in) {
			t.Fatalf("Decode consumed %d bytes, input is %d long", n, len(in))
		}

		out, err := Encode(item)
		if err != nil {
			t.Fatalf("Encode of a freshly decoded item failed: %v", err)
		}
		if len(out) != n {
			t.Fatalf("Encode produced %d bytes, Decode consumed %d", len(out), n)
		}
		for i := range out {
			if out[i] != in[i] {
				t.Fatalf("Encode output diverges from input at byte %d: got %#x, want %#x", i, out[i], in[i])
			}
		}
	})
}
