// Copyright 2024 The libcbor Authors. All rights reserved.
// Use of this source code is governed by a MIT license
// license that can be found in the LICENSE file.

package cbor

import "testing"

// TestDeepCopyExhaustive mirrors original_source/test/copy_test.c's
// per-type coverage: every width of uint/negint, both string shapes
// for both string major types, both array/map shapes, a tag, and all
// three float widths.
func TestDeepCopyExhaustive(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Item, error)
	}{
		{"uint8", func() (*Item, error) { return NewUint8(1) }},
		{"uint16", func() (*Item, error) { return NewUint16(1) }},
		{"uint32", func() (*Item, error) { return NewUint32(1) }},
		{"uint64", func() (*Item, error) { return NewUint64(1) }},
		{"negint8", func() (*Item, error) { return NewNegInt8(1) }},
		{"negint16", func() (*Item, error) { return NewNegInt16(1) }},
		{"negint32", func() (*Item, error) { return NewNegInt32(1) }},
		{"negint64", func() (*Item, error) { return NewNegInt64(1) }},
		{"definite byte string", func() (*Item, error) { return NewDefiniteByteString([]byte("abc")) }},
		{"indefinite byte string", func() (*Item, error) {
			it, err := NewIndefiniteByteString()
			if err != nil {
				return nil, err
			}
			chunk, err := NewDefiniteByteString([]byte("abc"))
			if err != nil {
				return nil, err
			}
			if err := it.BytestringAddChunk(chunk); err != nil {
				return nil, err
			}
			return it, nil
		}},
		{"definite text string", func() (*Item, error) { return NewDefiniteString("abc") }},
		{"indefinite text string", func() (*Item, error) {
			it, err := NewIndefiniteString()
			if err != nil {
				return nil, err
			}
			chunk, err := NewDefiniteString("abc")
			if err != nil {
				return nil, err
			}
			if err := it.StringAddChunk(chunk); err != nil {
				return nil, err
			}
			return it, nil
		}},
		{"definite array", func() (*Item, error) {
			it, err := NewDefiniteArray(1)
			if err != nil {
				return nil, err
			}
			child, _ := NewUintCompact(1)
			if err := it.ArrayPush(child); err != nil {
				return nil, err
			}
			return it, nil
		}},
		{"indefinite array", func() (*Item, error) {
			it, err := NewIndefiniteArray()
			if err != nil {
				return nil, err
			}
			child, _ := NewUintCompact(1)
			if err := it.ArrayPush(child); err != nil {
				return nil, err
			}
			return it, nil
		}},
		{"definite map", func() (*Item, error) {
			it, err := NewDefiniteMap(1)
			if err != nil {
				return nil, err
			}
			key, _ := NewUintCompact(1)
			value, _ := NewUintCompact(2)
			if err := it.MapAdd(key, value); err != nil {
				return nil, err
			}
			return it, nil
		}},
		{"indefinite map", func() (*Item, error) {
			it, err := NewIndefiniteMap()
			if err != nil {
				return nil, err
			}
			key, _ := NewUintCompact(1)
			value, _ := NewUintCompact(2)
			if err := it.MapAdd(key, value); err != nil {
				return nil, err
			}
			return it, nil
		}},
		{"tag", func() (*Item, error) {
			child, _ := NewUintCompact(1)
			return NewTag(10, child)
		}},
		{"float16", func() (*Item, error) { return NewFloat16(1.5) }},
		{"float32", func() (*Item, error) { return NewFloat32(1.5) }},
		{"float64", func() (*Item, error) { return NewFloat64(1.5) }},
		{"bool", func() (*Item, error) { return NewBool(true) }},
		{"null", func() (*Item, error) { return NewNull() }},
		{"undefined", func() (*Item, error) { return NewUndefined() }},
		{"simple", func() (*Item, error) { return NewSimple(32) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original, err := tt.build()
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}
			defer Release(original)

			cp, err := DeepCopy(original)
			if err != nil {
				t.Fatalf("DeepCopy failed: %v", err)
			}
			defer Release(cp)

			if cp == original {
				t.Fatal("DeepCopy returned the same pointer as the source")
			}
			if !StructuralEqual(original, cp) {
				t.Error("StructuralEqual(original, copy) = false")
			}
			if got := cp.Refcount(); got != 1 {
				t.Errorf("copy refcount = %d, want 1", got)
			}
			if got := original.Refcount(); got != 1 {
				t.Errorf("source refcount after DeepCopy = %d, want 1 (unchanged)", got)
			}
		})
	}
}

func TestDeepCopyIndependentStorage(t *testing.T) {
	original, err := NewDefiniteByteString([]byte("abc"))
	if err != nil {
		t.Fatalf("NewDefiniteByteString failed: %v", err)
	}
	defer Release(original)

	cp, err := DeepCopy(original)
	if err != nil {
		t.Fatalf("DeepCopy failed: %v", err)
	}
	defer Release(cp)

	originalData, _ := original.StringBytes()
	copyData, _ := cp.StringBytes()
	if &originalData[0] == &copyData[0] {
		t.Error("DeepCopy shares backing storage with the source")
	}
}

// TestDeepCopyAllocationFailureCleanup mirrors copy_test.c's
// WITH_MOCK_MALLOC failure-injection shape: fail the N'th allocation
// inside a multi-node copy and confirm nothing leaks and the source is
// untouched.
func TestDeepCopyAllocationFailureCleanup(t *testing.T) {
	build := func() (*Item, error) {
		it, err := NewIndefiniteArray()
		if err != nil {
			return nil, err
		}
		for i := 0; i < 3; i++ {
			child, err := NewUintCompact(uint64(i))
			if err != nil {
				return nil, err
			}
			if err := it.ArrayPush(child); err != nil {
				return nil, err
			}
		}
		return it, nil
	}

	// Allocation 1 is the array's own skeleton; 2, 3, 4 are its three
	// elements' skeletons, in push order.
	for n := 1; n <= 4; n++ {
		original, err := build()
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}

		SetAllocator(CountingFailure(n))
		cp, err := DeepCopy(original)
		ResetAllocator()

		if err != ErrOutOfMemory {
			t.Errorf("failing allocation #%d: DeepCopy err = %v, want %v", n, err, ErrOutOfMemory)
		}
		if cp != nil {
			t.Errorf("failing allocation #%d: DeepCopy returned a non-nil item", n)
		}
		if got := original.Refcount(); got != 1 {
			t.Errorf("failing allocation #%d: source refcount = %d, want 1 (unchanged)", n, got)
		}
		for i := 0; i < original.ArrayLen(); i++ {
			elem, _ := original.ArrayGet(i)
			if got := elem.Refcount(); got != 1 {
				t.Errorf("failing allocation #%d: element %d refcount = %d, want 1", n, i, got)
			}
		}

		Release(original)
	}
}

func TestDeepCopyNil(t *testing.T) {
	cp, err := DeepCopy(nil)
	if cp != nil || err != nil {
		t.Errorf("DeepCopy(nil) = (%v, %v), want (nil, nil)", cp, err)
	}
}
