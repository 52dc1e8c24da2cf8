// Copyright 2024 The libcbor Authors. All rights reserved.
// Use of this source code is governed by a MIT license
// license that can be found in the LICENSE file.

package cbor

import "sync/atomic"

// Allocator mirrors the process-wide {malloc, realloc, free} hook the
// reference C library exposes as its sole configuration surface. Go's
// runtime already owns memory management, so there
// is nothing for Free to do; Allocate stands in for every heap
// acquisition an item constructor, mutator or deep copy makes, and
// returning false simulates the host allocator failing that specific
// call. This is what lets tests exercise the partial-failure-cleanup
// invariant the way original_source/test/copy_test.c's
// WITH_FAILING_MALLOC and WITH_MOCK_MALLOC do.
type Allocator struct {
	// Allocate is consulted before every allocation the core package
	// performs. A nil Allocate always succeeds.
	Allocate func() bool
}

var (
	defaultAllocator = Allocator{}
	activeAllocator  atomic.Value // Allocator
)

func init() {
	activeAllocator.Store(defaultAllocator)
}

// SetAllocator installs the process-wide allocator hook. It is meant
// to be called once, before any Item exists, matching the reference
// library's contract; nothing prevents calling it later, but doing so
// races with any allocation already in flight on another goroutine.
func SetAllocator(a Allocator) {
	activeAllocator.Store(a)
}

// ResetAllocator restores the default, always-succeeding allocator.
func ResetAllocator() {
	activeAllocator.Store(defaultAllocator)
}

// allocate reports whether the next allocation should proceed. Every
// constructor and DeepCopy's per-node skeleton allocation calls this
// first, via newItem, and returns ErrOutOfMemory without allocating or
// mutating anything when it reports false. Container growth (appending
// an element, pair or chunk to an already-allocated Item) does not
// consult it: Go's slice growth cannot be made to fail on demand the
// way a C realloc hook can, so the injectable failure surface is the
// per-item allocation only.
func allocate() bool {
	a := activeAllocator.Load().(Allocator)
	if a.Allocate == nil {
		return true
	}
	return a.Allocate()
}

// CountingFailure returns an Allocator that succeeds on every call
// except the n'th (1-indexed), which fails. It is a small convenience
// for tests that need to fail one specific allocation deep inside a
// multi-step construction, mirroring WITH_MOCK_MALLOC's numbered-call
// failure injection.
func CountingFailure(n int) Allocator {
	var calls int64
	return Allocator{
		Allocate: func() bool {
			c := atomic.AddInt64(&calls, 1)
			return c != int64(n)
		},
	}
}

// AlwaysFail is an Allocator that fails every allocation, mirroring
// WITH_FAILING_MALLOC.
var AlwaysFail = Allocator{Allocate: func() bool { return false }}
