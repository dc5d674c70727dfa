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

import "fmt"

// The micro-kernel consumes operands as groups of four interleaved streams:
// for group g and reduction step k the four values sit at
// packed[g*kLen*4 + k*4 + r], r in [0, 4). One 4×4 output block then reads
// A and B strictly sequentially.

// PackLHS4 packs rows [rowStart, rowStart+rows) × columns
// [kStart, kStart+kLen) of the row-major n×n matrix A. Each group of four
// rows becomes kLen quads holding A[row+0..3][k].
//
// rows must be a multiple of 4, the region must lie inside the matrix and
// packed must hold at least rows*kLen values; violations panic.
func PackLHS4(a, packed []float64, n, rowStart, kStart, rows, kLen int) {
	checkPack("PackLHS4", len(a), len(packed), n, rowStart, kStart, rows, kLen)

	idx := 0
	for g := 0; g < rows; g += 4 {
		r0 := a[(rowStart+g)*n+kStart:][:kLen]
		r1 := a[(rowStart+g+1)*n+kStart:][:kLen]
		r2 := a[(rowStart+g+2)*n+kStart:][:kLen]
		r3 := a[(rowStart+g+3)*n+kStart:][:kLen]
		dst := packed[idx : idx+kLen*4]
		for k := range kLen {
			q := dst[k*4 : k*4+4]
			q[0] = r0[k]
			q[1] = r1[k]
			q[2] = r2[k]
			q[3] = r3[k]
		}
		idx += kLen * 4
	}
}

// PackRHS4 packs rows [kStart, kStart+kLen) × columns [colStart,
// colStart+cols) of the row-major n×n matrix B. Each group of four columns
// becomes kLen quads holding B[k][col+0..3].
//
// cols must be a multiple of 4, the region must lie inside the matrix and
// packed must hold at least cols*kLen values; violations panic.
func PackRHS4(b, packed []float64, n, kStart, colStart, cols, kLen int) {
	checkPack("PackRHS4", len(b), len(packed), n, colStart, kStart, cols, kLen)

	idx := 0
	for g := 0; g < cols; g += 4 {
		dst := packed[idx : idx+kLen*4]
		for k := range kLen {
			src := b[(kStart+k)*n+colStart+g:][:4]
			copy(dst[k*4:k*4+4], src)
		}
		idx += kLen * 4
	}
}

// checkPack guards the packing routines. span is the packed dimension
// (rows of A or columns of B) and start its offset.
func checkPack(name string, srcLen, packedLen, n, start, kStart, span, kLen int) {
	if span%4 != 0 {
		panic(fmt.Sprintf("matmul: %s: %d is not a multiple of 4", name, span))
	}
	if start < 0 || kStart < 0 || span < 0 || kLen < 0 || start+span > n || kStart+kLen > n {
		panic(fmt.Sprintf("matmul: %s: region [%d,+%d)x[%d,+%d) outside %dx%d matrix", name, start, span, kStart, kLen, n, n))
	}
	if srcLen < n*n {
		panic(fmt.Sprintf("matmul: %s: source slice too short (%d < %d)", name, srcLen, n*n))
	}
	if packedLen < span*kLen {
		panic(fmt.Sprintf("matmul: %s: packed buffer too short (%d < %d)", name, packedLen, span*kLen))
	}
}
