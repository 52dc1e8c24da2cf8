// Copyright 2024 The libcbor Authors. All rights reserved.
// Use of this source code is governed by a MIT license
// license that can be found in the LICENSE file.

package cbor

import "bytes"

// copyFrame is one entry of DeepCopy's explicit stack: the original
// item being cloned, the clone under construction, and how far
// through the original's children the clone has gotten.
type copyFrame struct {
	orig       *Item
	result     *Item
	idx        int
	pendingKey *Item // map frames only
}

// DeepCopy clones item's whole subtree into freshly allocated storage:
// the result shares no backing array, byte slice or child Item with
// the original, and starts at refcount 1 (original_source's
// cbor_copy, grounded here via test/copy_test.c's exhaustive
// per-type shape). The walk is iterative, mirroring Release and the
// encoder, so cloning a deep tree can't overflow the goroutine stack.
//
// If the active allocator refuses a request partway through, every
// clone built so far - including the partially filled container
// belonging to each still-open frame - is released before DeepCopy
// returns the error, leaving no leaked Items behind.
func DeepCopy(item *Item) (*Item, error) {
	if item == nil {
		return nil, nil
	}

	root, err := copySkeleton(item)
	if err != nil {
		return nil, err
	}
	if childCount(item) == 0 {
		return root, nil
	}

	stack := []*copyFrame{{orig: item, result: root}}

	cleanup := func() {
		for _, f := range stack {
			Release(f.result)
			Release(f.pendingKey)
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if top.idx >= childCount(top.orig) {
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return top.result, nil
			}
			parent := stack[len(stack)-1]
			if err := attachCopy(parent, top.result); err != nil {
				Release(top.result)
				cleanup()
				return nil, err
			}
			parent.idx++
			continue
		}

		childOrig := childAt(top.orig, top.idx)
		childResult, err := copySkeleton(childOrig)
		if err != nil {
			cleanup()
			return nil, err
		}

		if childCount(childOrig) == 0 {
			if err := attachCopy(top, childResult); err != nil {
				Release(childResult)
				cleanup()
				return nil, err
			}
			top.idx++
			continue
		}

		stack = append(stack, &copyFrame{orig: childOrig, result: childResult})
	}

	// Unreachable: the loop above always returns once the root frame's
	// pop branch runs with an empty stack.
	return nil, ErrMalformed
}

// copySkeleton allocates a clone of orig's own scalar/leaf fields,
// with none of its children attached yet.
func copySkeleton(orig *Item) (*Item, error) {
	it, err := newItem(orig.major)
	if err != nil {
		return nil, err
	}
	switch orig.major {
	case MajorUnsignedInt, MajorNegativeInt:
		it.intValue = orig.intValue
		it.intWidth = orig.intWidth

	case MajorByteString, MajorTextString:
		it.strDefinite = orig.strDefinite
		it.strLenWidth = orig.strLenWidth
		if orig.strDefinite && len(orig.bytes) > 0 {
			it.bytes = append([]byte(nil), orig.bytes...)
		}

	case MajorArray:
		it.arrDefinite = orig.arrDefinite
		it.arrLenWidth = orig.arrLenWidth
		it.arrCap = orig.arrCap

	case MajorMap:
		it.mapDefinite = orig.mapDefinite
		it.mapLenWidth = orig.mapLenWidth
		it.mapCap = orig.mapCap

	case MajorTag:
		it.tagNumber = orig.tagNumber
		it.tagWidth = orig.tagWidth

	case MajorFloatSimple:
		it.floatKind = orig.floatKind
		it.bits = orig.bits
		it.simple = orig.simple
	}
	return it, nil
}

// childCount reports how many child items orig has, counting a map's
// keys and values separately so childAt can address them by a single
// flat index.
func childCount(orig *Item) int {
	switch orig.major {
	case MajorByteString, MajorTextString:
		if orig.strDefinite {
			return 0
		}
		return len(orig.chunks)
	case MajorArray:
		return len(orig.elements)
	case MajorMap:
		return len(orig.pairs) * 2
	case MajorTag:
		return 1
	default:
		return 0
	}
}

func childAt(orig *Item, idx int) *Item {
	switch orig.major {
	case MajorByteString, MajorTextString:
		return orig.chunks[idx]
	case MajorArray:
		return orig.elements[idx]
	case MajorMap:
		pair := orig.pairs[idx/2]
		if idx%2 == 0 {
			return pair.Key
		}
		return pair.Value
	case MajorTag:
		return orig.tagChild
	default:
		return nil
	}
}

// attachCopy adds child, itself already a finished clone, as the next
// piece of f.result, following the same per-major-type rules as the
// builder's attach.
func attachCopy(f *copyFrame, child *Item) error {
	switch f.orig.major {
	case MajorByteString, MajorTextString:
		f.result.chunks = append(f.result.chunks, child)
		return nil

	case MajorArray:
		return f.result.ArrayPush(child)

	case MajorMap:
		if f.idx%2 == 0 {
			f.pendingKey = child
			return nil
		}
		err := f.result.MapAdd(f.pendingKey, child)
		f.pendingKey = nil
		return err

	case MajorTag:
		f.result.tagChild = child
		return nil

	default:
		return ErrMalformed
	}
}

// StructuralEqual reports whether a and b represent the same CBOR
// value in the same wire shape: same major type, same definite/
// indefinite-ness, same stored width hints, same content, and - for
// floats - bitwise identical IEEE-754 patterns rather than numeric
// equality (so two differently-encoded NaNs compare unequal, matching
// representation-faithful comparison). Map key/value
// order matters; map keys are not reordered or deduplicated.
func StructuralEqual(a, b *Item) bool {
	type pair struct{ a, b *Item }
	stack := []pair{{a, b}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := p.a, p.b

		if x == nil || y == nil {
			if x != y {
				return false
			}
			continue
		}
		if x.major != y.major {
			return false
		}

		switch x.major {
		case MajorUnsignedInt, MajorNegativeInt:
			if x.intValue != y.intValue || x.intWidth != y.intWidth {
				return false
			}

		case MajorByteString, MajorTextString:
			if x.strDefinite != y.strDefinite {
				return false
			}
			if x.strDefinite {
				if x.strLenWidth != y.strLenWidth || !bytes.Equal(x.bytes, y.bytes) {
					return false
				}
				continue
			}
			if len(x.chunks) != len(y.chunks) {
				return false
			}
			for i := range x.chunks {
				stack = append(stack, pair{x.chunks[i], y.chunks[i]})
			}

		case MajorArray:
			if x.arrDefinite != y.arrDefinite {
				return false
			}
			if x.arrDefinite && x.arrLenWidth != y.arrLenWidth {
				return false
			}
			if len(x.elements) != len(y.elements) {
				return false
			}
			for i := range x.elements {
				stack = append(stack, pair{x.elements[i], y.elements[i]})
			}

		case MajorMap:
			if x.mapDefinite != y.mapDefinite {
				return false
			}
			if x.mapDefinite && x.mapLenWidth != y.mapLenWidth {
				return false
			}
			if len(x.pairs) != len(y.pairs) {
				return false
			}
			for i := range x.pairs {
				stack = append(stack, pair{x.pairs[i].Key, y.pairs[i].Key})
				stack = append(stack, pair{x.pairs[i].Value, y.pairs[i].Value})
			}

		case MajorTag:
			if x.tagNumber != y.tagNumber || x.tagWidth != y.tagWidth {
				return false
			}
			stack = append(stack, pair{x.tagChild, y.tagChild})

		case MajorFloatSimple:
			if x.floatKind != y.floatKind || x.bits != y.bits || x.simple != y.simple {
				return false
			}
		}
	}
	return true
}
