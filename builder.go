// Copyright 2024 The libcbor Authors. All rights reserved.
// Use of this source code is governed by a MIT license
// license that can be found in the LICENSE file.

package cbor

// DefaultMaxDepth bounds how deeply Decode will follow nested
// containers and tags before giving up with ErrDepthExceeded, unless
// DecodeOptions.MaxDepth overrides it.
const DefaultMaxDepth = 2048

// DecodeOptions configures Decode.
type DecodeOptions struct {
	// MaxDepth caps how many container/tag frames may be open at once.
	// Zero means DefaultMaxDepth.
	MaxDepth int
}

// frame is one entry of the builder's explicit stack: a
// partially-filled container (or tag) item, how many more children it
// expects, and - for maps - which half of the next pair is due.
type frame struct {
	container  *Item
	remaining  int64 // -1 means indefinite (no count, closed only by Break).
	wantKey    bool  // map frames only: true when the next attach is a key.
	pendingKey *Item // map frames only: the key awaiting its value.
}

func (f *frame) indefinite() bool { return f.remaining < 0 }

// Decode decodes exactly one top-level CBOR item from the front of
// buf using DefaultMaxDepth, and reports how many bytes it consumed.
func Decode(buf []byte) (*Item, int, error) {
	return DecodeWithOptions(buf, DecodeOptions{})
}

// DecodeWithOptions is Decode with an explicit depth bound.
//
// It assembles tokens from DecodeToken into an Item tree with an
// explicit frame stack, driven one syntactic token at a time rather
// than one structured header at a time. On any error,
// every item already constructed during this call is released and nil
// is returned; the caller's buffer is never mutated and, since no
// bytes are consumed on error, the caller's own cursor convention is
// unaffected.
func DecodeWithOptions(buf []byte, opts DecodeOptions) (*Item, int, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var stack []*frame
	cursor := 0

	cleanup := func() {
		for _, f := range stack {
			Release(f.container)
			Release(f.pendingKey)
		}
	}

	for {
		tok, n, err := DecodeToken(buf[cursor:])
		if err != nil {
			cleanup()
			return nil, 0, err
		}
		cursor += n

		switch {
		case tok.Kind == TokBreak:
			item, done, berr := closeBreak(&stack)
			if berr != nil {
				cleanup()
				return nil, 0, berr
			}
			if done {
				return item, cursor, nil
			}

		case isStartKind(tok.Kind):
			if topIsChunkFrame(stack) {
				cleanup()
				return nil, 0, ErrNestedIndefiniteStringChunk
			}
			if len(stack) >= maxDepth {
				cleanup()
				return nil, 0, ErrDepthExceeded
			}
			newFrame, serr := startFrame(tok)
			if serr != nil {
				cleanup()
				return nil, 0, serr
			}
			stack = append(stack, newFrame)
			item, done, rerr := resolveCompletions(&stack)
			if rerr != nil {
				cleanup()
				return nil, 0, rerr
			}
			if done {
				return item, cursor, nil
			}

		default:
			leaf, lerr := buildLeaf(tok, buf, &cursor)
			if lerr != nil {
				cleanup()
				return nil, 0, lerr
			}
			if len(stack) == 0 {
				return leaf, cursor, nil
			}
			if aerr := attach(stack[len(stack)-1], leaf); aerr != nil {
				Release(leaf)
				cleanup()
				return nil, 0, aerr
			}
			item, done, rerr := resolveCompletions(&stack)
			if rerr != nil {
				cleanup()
				return nil, 0, rerr
			}
			if done {
				return item, cursor, nil
			}
		}
	}
}

// closeBreak handles a TokBreak: it must close the innermost
// indefinite-length frame and propagate that completion upward exactly
// like any other finished container.
func closeBreak(stack *[]*frame) (*Item, bool, error) {
	if len(*stack) == 0 {
		return nil, false, ErrUnexpectedBreak
	}
	top := (*stack)[len(*stack)-1]
	if !top.indefinite() {
		return nil, false, ErrUnexpectedBreak
	}
	if top.container.major == MajorMap && !top.wantKey {
		return nil, false, ErrMapOddCount
	}
	*stack = (*stack)[:len(*stack)-1]
	completed := top.container

	if len(*stack) == 0 {
		return completed, true, nil
	}
	if err := attach((*stack)[len(*stack)-1], completed); err != nil {
		Release(completed)
		return nil, false, err
	}
	return resolveCompletions(stack)
}

// resolveCompletions pops and finalizes every definite frame at the
// top of the stack that has received all its declared children,
// attaching each one into its parent in turn. It returns the top-level
// item (and true) once doing so empties the stack; otherwise it
// returns (nil, false, nil) and decoding continues with more tokens.
func resolveCompletions(stack *[]*frame) (*Item, bool, error) {
	for len(*stack) > 0 {
		top := (*stack)[len(*stack)-1]
		if top.indefinite() || top.remaining != 0 {
			return nil, false, nil
		}
		*stack = (*stack)[:len(*stack)-1]
		completed := top.container
		if len(*stack) == 0 {
			return completed, true, nil
		}
		if err := attach((*stack)[len(*stack)-1], completed); err != nil {
			Release(completed)
			return nil, false, err
		}
	}
	return nil, false, nil
}

func isStartKind(k TokenKind) bool {
	switch k {
	case TokArrayHeader, TokArrayIndefiniteStart,
		TokMapHeader, TokMapIndefiniteStart,
		TokTag,
		TokByteStringIndefiniteStart, TokTextStringIndefiniteStart:
		return true
	default:
		return false
	}
}

func topIsChunkFrame(stack []*frame) bool {
	if len(stack) == 0 {
		return false
	}
	top := stack[len(stack)-1]
	major := top.container.major
	return (major == MajorByteString || major == MajorTextString) && top.indefinite()
}

func startFrame(tok Token) (*frame, error) {
	switch tok.Kind {
	case TokArrayHeader:
		it, err := NewDefiniteArray(int(tok.Uint))
		if err != nil {
			return nil, err
		}
		it.arrLenWidth = tok.Width
		return &frame{container: it, remaining: int64(tok.Uint)}, nil

	case TokArrayIndefiniteStart:
		it, err := NewIndefiniteArray()
		if err != nil {
			return nil, err
		}
		return &frame{container: it, remaining: -1}, nil

	case TokMapHeader:
		it, err := NewDefiniteMap(int(tok.Uint))
		if err != nil {
			return nil, err
		}
		it.mapLenWidth = tok.Width
		return &frame{container: it, remaining: int64(tok.Uint) * 2, wantKey: true}, nil

	case TokMapIndefiniteStart:
		it, err := NewIndefiniteMap()
		if err != nil {
			return nil, err
		}
		return &frame{container: it, remaining: -1, wantKey: true}, nil

	case TokTag:
		it, err := newItem(MajorTag)
		if err != nil {
			return nil, err
		}
		it.tagNumber = tok.Uint
		it.tagWidth = tok.Width
		return &frame{container: it, remaining: 1}, nil

	case TokByteStringIndefiniteStart:
		it, err := NewIndefiniteByteString()
		if err != nil {
			return nil, err
		}
		return &frame{container: it, remaining: -1}, nil

	case TokTextStringIndefiniteStart:
		it, err := NewIndefiniteString()
		if err != nil {
			return nil, err
		}
		return &frame{container: it, remaining: -1}, nil

	default:
		return nil, ErrMalformed
	}
}

// attach adds item as the next child of f's container, per the rules
// of the container's major type, and decrements f's remaining count
// when the frame is definite.
func attach(f *frame, item *Item) error {
	switch f.container.major {
	case MajorByteString, MajorTextString:
		if item.major != f.container.major || !item.IsDefinite() {
			return ErrNestedIndefiniteStringChunk
		}
		f.container.chunks = append(f.container.chunks, item)
		return nil

	case MajorArray:
		if err := f.container.ArrayPush(item); err != nil {
			return err
		}
		if !f.indefinite() {
			f.remaining--
		}
		return nil

	case MajorMap:
		if f.wantKey {
			f.pendingKey = item
			f.wantKey = false
		} else {
			if err := f.container.MapAdd(f.pendingKey, item); err != nil {
				return err
			}
			f.pendingKey = nil
			f.wantKey = true
		}
		if !f.indefinite() {
			f.remaining--
		}
		return nil

	case MajorTag:
		f.container.tagChild = item
		f.remaining = 0
		return nil

	default:
		return ErrMalformed
	}
}

// buildLeaf constructs the Item for a token that carries no children
// of its own. For the two string-chunk kinds, it also reads and
// advances past the chunk's raw payload bytes.
func buildLeaf(tok Token, buf []byte, cursor *int) (*Item, error) {
	switch tok.Kind {
	case TokUnsigned:
		return newUint(tok.Uint, tok.Width)

	case TokNegative:
		return newNegInt(tok.Uint, tok.Width)

	case TokByteStringChunk:
		data, err := ReadChunkBytes(buf[*cursor:], tok.Uint)
		if err != nil {
			return nil, err
		}
		it, err := NewDefiniteByteString(data)
		if err != nil {
			return nil, err
		}
		it.strLenWidth = tok.Width
		*cursor += len(data)
		return it, nil

	case TokTextStringChunk:
		data, err := ReadChunkBytes(buf[*cursor:], tok.Uint)
		if err != nil {
			return nil, err
		}
		it, err := NewDefiniteString(string(data))
		if err != nil {
			return nil, err
		}
		it.strLenWidth = tok.Width
		*cursor += len(data)
		return it, nil

	case TokFloat16:
		return newFloatBits(KindFloat16, tok.Bits)
	case TokFloat32:
		return newFloatBits(KindFloat32, tok.Bits)
	case TokFloat64:
		return newFloatBits(KindFloat64, tok.Bits)
	case TokBool:
		return NewBool(tok.Bool)
	case TokNull:
		return NewNull()
	case TokUndefined:
		return NewUndefined()
	case TokSimple:
		return NewSimple(tok.Simple)

	default:
		return nil, ErrMalformed
	}
}
