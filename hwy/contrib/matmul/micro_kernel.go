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

import "github.com/hwy-lab/dgemm/hwy"

// microKernel4x4Vec updates the 4×4 block of C whose top-left corner is
// (ir, jr) with kc steps of a rank-1 update taken from one packed A group
// and one packed B group. The block is held in eight two-lane accumulators
// (4 rows × 2 column pairs) for the whole reduction.
func microKernel4x4Vec(packedA, packedB, c []float64, n, ir, jr, kc int) {
	pa := packedA[:kc*4]
	pb := packedB[:kc*4]

	row0 := c[ir*n+jr:][:4]
	row1 := c[(ir+1)*n+jr:][:4]
	row2 := c[(ir+2)*n+jr:][:4]
	row3 := c[(ir+3)*n+jr:][:4]

	acc00 := hwy.LoadFloat64x2(row0)
	acc01 := hwy.LoadFloat64x2(row0[2:])
	acc10 := hwy.LoadFloat64x2(row1)
	acc11 := hwy.LoadFloat64x2(row1[2:])
	acc20 := hwy.LoadFloat64x2(row2)
	acc21 := hwy.LoadFloat64x2(row2[2:])
	acc30 := hwy.LoadFloat64x2(row3)
	acc31 := hwy.LoadFloat64x2(row3[2:])

	for p := 0; p < len(pa); p += 4 {
		vB0 := hwy.LoadFloat64x2(pb[p:])
		vB1 := hwy.LoadFloat64x2(pb[p+2:])

		vA0 := hwy.BroadcastFloat64x2(pa[p])
		vA1 := hwy.BroadcastFloat64x2(pa[p+1])
		vA2 := hwy.BroadcastFloat64x2(pa[p+2])
		vA3 := hwy.BroadcastFloat64x2(pa[p+3])

		acc00 = vA0.MulAdd(vB0, acc00)
		acc01 = vA0.MulAdd(vB1, acc01)
		acc10 = vA1.MulAdd(vB0, acc10)
		acc11 = vA1.MulAdd(vB1, acc11)
		acc20 = vA2.MulAdd(vB0, acc20)
		acc21 = vA2.MulAdd(vB1, acc21)
		acc30 = vA3.MulAdd(vB0, acc30)
		acc31 = vA3.MulAdd(vB1, acc31)
	}

	acc00.Store(row0)
	acc01.Store(row0[2:])
	acc10.Store(row1)
	acc11.Store(row1[2:])
	acc20.Store(row2)
	acc21.Store(row2[2:])
	acc30.Store(row3)
	acc31.Store(row3[2:])
}

// microKernel4x4Scalar is the portable form of microKernel4x4Vec.
func microKernel4x4Scalar(packedA, packedB, c []float64, n, ir, jr, kc int) {
	pa := packedA[:kc*4]
	pb := packedB[:kc*4]
	for r := range 4 {
		row := c[(ir+r)*n+jr:][:4]
		for col := range 4 {
			sum := row[col]
			for p := 0; p < len(pa); p += 4 {
				sum += pa[p+r] * pb[p+col]
			}
			row[col] = sum
		}
	}
}
