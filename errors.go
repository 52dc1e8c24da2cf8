// Copyright 2024 The libcbor Authors. All rights reserved.
// Use of this source code is governed by a MIT license
// license that can be found in the LICENSE file.

package cbor

import (
	"errors"
	"fmt"
)

// Errors returned by item constructors and mutators.
var (
	// ErrOutOfMemory is returned when the active allocator refuses a
	// request. No partial item state is ever returned alongside it.
	ErrOutOfMemory = errors.New("cbor: out of memory")

	// ErrContainerFull is returned by a mutator that would push a
	// definite-length array or map beyond its declared capacity.
	ErrContainerFull = errors.New("cbor: container full")

	// ErrMalformed is returned by the decoder when it encounters a
	// reserved additional-information value (28-30 in any major type),
	// AI 31 on a major type with no indefinite form (0, 1 or 6), or a
	// 1-byte simple value below 32.
	ErrMalformed = errors.New("cbor: malformed item head")

	// ErrUnexpectedBreak is returned by the builder when a break (0xFF)
	// appears while no container is open or while the innermost open
	// container or tag is not indefinite-length.
	ErrUnexpectedBreak = errors.New("cbor: unexpected break outside indefinite container")

	// ErrNestedIndefiniteStringChunk is returned when a chunk offered to
	// an indefinite byte/text string is itself indefinite-length, or of
	// the wrong major type.
	ErrNestedIndefiniteStringChunk = errors.New("cbor: indefinite-length or mismatched chunk inside string")

	// ErrMapOddCount is returned by the builder when a break closes an
	// indefinite-length map that holds a key with no value after it
	// (e.g. 0xBF 0x01 0xFF).
	ErrMapOddCount = errors.New("cbor: map has an odd number of attached items")

	// ErrDepthExceeded is returned by the builder when nesting exceeds
	// the configured maximum (DefaultMaxDepth unless overridden).
	ErrDepthExceeded = errors.New("cbor: maximum nesting depth exceeded")

	// ErrWrongMajorType is returned by ArrayPush or MapAdd when called
	// on an Item of a different major type. Contract violation, not a
	// wire error.
	ErrWrongMajorType = errors.New("cbor: accessor called on item of wrong major type")

	// ErrNotDefinite is returned by BytestringAddChunk and
	// StringAddChunk when the receiver is not an indefinite string of
	// the matching major type.
	ErrNotDefinite = errors.New("cbor: item does not have the expected definite/indefinite shape")
)

// NotEnoughDataError is returned by the decoder when the supplied
// buffer is shorter than the head+payload of the next token.
type NotEnoughDataError struct {
	// Hint is the number of additional bytes that would let decoding
	// proceed, when cheaply computable; otherwise 1.
	Hint int
}

func (e *NotEnoughDataError) Error() string {
	return fmt.Sprintf("cbor: not enough data, need %d more byte(s)", e.Hint)
}

// BufferTooSmallError is returned by the encoder when the output
// buffer cannot hold the encoded item.
type BufferTooSmallError struct {
	// Needed is the exact number of bytes the encoding requires.
	Needed int
}

func (e *BufferTooSmallError) Error() string {
	return fmt.Sprintf("cbor: output buffer too small, need %d byte(s)", e.Needed)
}

// IsNotEnoughData reports whether err is a *NotEnoughDataError,
// unwrapping as errors.As does.
func IsNotEnoughData(err error) bool {
	var e *NotEnoughDataError
	return errors.As(err, &e)
}

// IsBufferTooSmall reports whether err is a *BufferTooSmallError.
func IsBufferTooSmall(err error) bool {
	var e *BufferTooSmallError
	return errors.As(err, &e)
}
