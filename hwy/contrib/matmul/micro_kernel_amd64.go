//go:build amd64 && goexperiment.simd

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

package matmul

import (
	"simd/archsimd"

	"github.com/hwy-lab/dgemm/hwy"
)

// vectorMicroKernel returns the archsimd kernel when the CPU has AVX2 or
// AVX-512, and nil otherwise.
func vectorMicroKernel() func(packedA, packedB, c []float64, n, ir, jr, kc int) {
	switch hwy.CurrentLevel() {
	case hwy.DispatchAVX2, hwy.DispatchAVX512:
		return microKernel4x4AVX2
	}
	return nil
}

// microKernel4x4AVX2 keeps each row of the 4×4 block of C in one
// Float64x4 accumulator and applies kc fused multiply-adds per row.
func microKernel4x4AVX2(packedA, packedB, c []float64, n, ir, jr, kc int) {
	pa := packedA[:kc*4]
	pb := packedB[:kc*4]

	row0 := c[ir*n+jr:][:4]
	row1 := c[(ir+1)*n+jr:][:4]
	row2 := c[(ir+2)*n+jr:][:4]
	row3 := c[(ir+3)*n+jr:][:4]

	acc0 := archsimd.LoadFloat64x4Slice(row0)
	acc1 := archsimd.LoadFloat64x4Slice(row1)
	acc2 := archsimd.LoadFloat64x4Slice(row2)
	acc3 := archsimd.LoadFloat64x4Slice(row3)

	for p := 0; p < len(pa); p += 4 {
		vB := archsimd.LoadFloat64x4Slice(pb[p:])

		acc0 = archsimd.BroadcastFloat64x4(pa[p]).MulAdd(vB, acc0)
		acc1 = archsimd.BroadcastFloat64x4(pa[p+1]).MulAdd(vB, acc1)
		acc2 = archsimd.BroadcastFloat64x4(pa[p+2]).MulAdd(vB, acc2)
		acc3 = archsimd.BroadcastFloat64x4(pa[p+3]).MulAdd(vB, acc3)
	}

	acc0.StoreSlice(row0)
	acc1.StoreSlice(row1)
	acc2.StoreSlice(row2)
	acc3.StoreSlice(row3)
}
