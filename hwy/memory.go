// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hwy

import "unsafe"

// VectorAlignment is the byte alignment of buffers returned by
// AlignedFloat64s. One cache line; also satisfies every vector width up to
// AVX-512.
const VectorAlignment = 64

// AlignedFloat64s returns a zeroed slice of n float64 values whose first
// element is VectorAlignment-byte aligned. The slice is carved out of a
// slightly larger allocation, so cap may exceed n.
func AlignedFloat64s(n int) []float64 {
	if n <= 0 {
		return nil
	}
	const pad = VectorAlignment / 8
	buf := make([]float64, n+pad)
	off := 0
	if rem := uintptr(unsafe.Pointer(&buf[0])) % VectorAlignment; rem != 0 {
		off = int((VectorAlignment - rem) / 8)
	}
	return buf[off : off+n : len(buf)]
}

// IsAligned reports whether the first element of s sits on an align-byte
// boundary. Empty slices are considered aligned.
func IsAligned(s []float64, align int) bool {
	if len(s) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&s[0]))%uintptr(align) == 0
}
