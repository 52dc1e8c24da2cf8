// Copyright 2024 The libcbor Authors. All rights reserved.
// Use of this source code is governed by a MIT license
// license that can be found in the LICENSE file.

package cbor

import "sync/atomic"

func loadRefcount(it *Item) int64 {
	return atomic.LoadInt64(&it.refcount)
}

// Retain increments item's reference count and returns it, so it can
// be used inline: child := Retain(shared). Safe to call concurrently
// with another goroutine's Retain/Release on the same Item, since the
// refcount field is only ever touched through atomic ops.
func Retain(item *Item) *Item {
	if item == nil {
		return nil
	}
	atomic.AddInt64(&item.refcount, 1)
	return item
}

// Release decrements item's reference count. When it reaches zero,
// every child edge is released in turn and the item is dropped. The
// walk is iterative (an explicit worklist, not recursion) so releasing
// a deeply nested tree can't overflow the goroutine stack, mirroring
// the explicit stacks the Decoder and Encoder use for the same reason.
//
// Release is idempotent against the caller's own view: once called, the
// caller must treat item as gone, matching the reference C library's
// cbor_decref(&item) contract. Calling it again on the same pointer,
// or using the Item afterward, is a caller bug with unspecified
// behavior, just as retaining an already-freed item is.
func Release(item *Item) {
	if item == nil {
		return
	}
	if atomic.AddInt64(&item.refcount, -1) > 0 {
		return
	}
	releaseChildren(item)
}

// releaseChildren walks the subtree rooted at a just-freed item,
// decrementing each child's refcount and queuing any that themselves
// hit zero, until the worklist is empty.
func releaseChildren(root *Item) {
	stack := []*Item{root}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch it.major {
		case MajorByteString, MajorTextString:
			for _, c := range it.chunks {
				enqueueIfZero(&stack, c)
			}
		case MajorArray:
			for _, c := range it.elements {
				enqueueIfZero(&stack, c)
			}
		case MajorMap:
			for _, p := range it.pairs {
				enqueueIfZero(&stack, p.Key)
				enqueueIfZero(&stack, p.Value)
			}
		case MajorTag:
			enqueueIfZero(&stack, it.tagChild)
		}
	}
}

func enqueueIfZero(stack *[]*Item, child *Item) {
	if child == nil {
		return
	}
	if atomic.AddInt64(&child.refcount, -1) == 0 {
		*stack = append(*stack, child)
	}
}
