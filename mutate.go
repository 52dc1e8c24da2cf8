// Copyright 2024 The libcbor Authors. All rights reserved.
// Use of this source code is governed by a MIT license
// license that can be found in the LICENSE file.

package cbor

// ArrayPush appends child to an array. A definite array rejects the
// push with ErrContainerFull once its declared capacity is reached,
// leaving both items' refcounts unchanged; an indefinite array always
// grows via Go's append (geometric growth), avoiding the reference
// C library's documented grow-by-one-element performance bug. Ownership
// of child's single reference transfers to the array on success.
func (it *Item) ArrayPush(child *Item) error {
	if it.major != MajorArray {
		return ErrWrongMajorType
	}
	if it.arrDefinite && len(it.elements) >= it.arrCap {
		return ErrContainerFull
	}
	it.elements = append(it.elements, child)
	return nil
}

// MapAdd appends a (key, value) pair to a map. A definite map rejects
// the add with ErrContainerFull once its declared pair capacity is
// reached. Ownership of both key's and value's single reference
// transfers to the map on success.
func (it *Item) MapAdd(key, value *Item) error {
	if it.major != MajorMap {
		return ErrWrongMajorType
	}
	if it.mapDefinite && len(it.pairs) >= it.mapCap {
		return ErrContainerFull
	}
	it.pairs = append(it.pairs, Pair{Key: key, Value: value})
	return nil
}

// BytestringAddChunk appends a definite byte-string chunk to an
// indefinite byte string. Returns ErrNotDefinite if it isn't an
// indefinite byte string, or ErrNestedIndefiniteStringChunk if chunk
// isn't itself a definite byte string.
func (it *Item) BytestringAddChunk(chunk *Item) error {
	if it.major != MajorByteString || it.strDefinite {
		return ErrNotDefinite
	}
	if chunk.major != MajorByteString || !chunk.strDefinite {
		return ErrNestedIndefiniteStringChunk
	}
	it.chunks = append(it.chunks, chunk)
	return nil
}

// StringAddChunk appends a definite text-string chunk to an
// indefinite text string. Returns ErrNotDefinite if it isn't an
// indefinite text string, or ErrNestedIndefiniteStringChunk if chunk
// isn't itself a definite text string.
func (it *Item) StringAddChunk(chunk *Item) error {
	if it.major != MajorTextString || it.strDefinite {
		return ErrNotDefinite
	}
	if chunk.major != MajorTextString || !chunk.strDefinite {
		return ErrNestedIndefiniteStringChunk
	}
	it.chunks = append(it.chunks, chunk)
	return nil
}
