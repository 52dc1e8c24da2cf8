// Copyright 2024 The libcbor Authors. All rights reserved.
// Use of this source code is governed by a MIT license
// license that can be found in the LICENSE file.

package cbor

import "math"

func float32bits(v float32) uint32 { return math.Float32bits(v) }
func float64bits(v float64) uint64 { return math.Float64bits(v) }

func bitsToFloat32(bits uint32) float32 { return math.Float32frombits(bits) }
func bitsToFloat64(bits uint64) float64 { return math.Float64frombits(bits) }
