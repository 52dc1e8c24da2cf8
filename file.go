// Copyright 2024 The libcbor Authors. All rights reserved.
// Use of this source code is governed by a MIT license
// license that can be found in the LICENSE file.

package cbor

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// File is a memory-mapped CBOR file opened with OpenFile. It is a
// thin convenience over Decode for the common case of a CBOR document
// that lives on disk; nothing in the core item/decoder/builder/
// encoder/copy model depends on it.
type File struct {
	Root *Item

	data mmap.MMap
	f    *os.File
}

// Options configures OpenFile and OpenBytes.
type Options struct {
	// MaxDepth bounds container/tag nesting, as DecodeOptions.MaxDepth
	// does. Zero means DefaultMaxDepth.
	MaxDepth int
}

// OpenFile memory-maps name and decodes exactly one top-level CBOR
// item from it: mmap first, decode second. Decode copies every string
// payload into item-owned storage (per the item model's ownership
// invariants), so the mapping is only needed for the duration of the
// decode itself; it stays open for the lifetime of the returned File
// purely so Close has a single place to release both the item tree and
// the mapping together.
//
// Trailing bytes after the first item are ignored; use Close when
// done with the File to unmap it and release Root.
func OpenFile(name string, opts *Options) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	root, _, err := decodeOptions(data, opts)
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, err
	}

	return &File{Root: root, data: data, f: f}, nil
}

// OpenBytes decodes exactly one top-level CBOR item from data without
// touching the filesystem, for callers who already have the bytes in
// memory (e.g. received over a network connection).
func OpenBytes(data []byte, opts *Options) (*Item, error) {
	root, _, err := decodeOptions(data, opts)
	return root, err
}

func decodeOptions(data []byte, opts *Options) (*Item, int, error) {
	if opts == nil || opts.MaxDepth == 0 {
		return Decode(data)
	}
	return DecodeWithOptions(data, DecodeOptions{MaxDepth: opts.MaxDepth})
}

// Close releases File's item tree and unmaps its backing memory.
func (file *File) Close() error {
	Release(file.Root)
	file.Root = nil

	if file.data != nil {
		_ = file.data.Unmap()
	}
	if file.f != nil {
		return file.f.Close()
	}
	return nil
}
