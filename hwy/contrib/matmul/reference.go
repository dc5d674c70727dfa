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

// Reference computes C += A * B for n×n row-major matrices with the
// textbook i-j-k loop. Each dot product is summed in increasing k into a
// local accumulator and then added to C, so the result is reproducible bit
// for bit.
//
// Reference panics if any slice holds fewer than n*n values.
func Reference(a, b, c []float64, n int) {
	if n <= 0 {
		return
	}
	mustOperands(a, b, c, n)
	referenceRows(a, b, c, n, 0, n)
}

// referenceRows runs the reference kernel on output rows [rowStart, rowEnd).
// It is the unit of work of the parallel strategies.
func referenceRows(a, b, c []float64, n, rowStart, rowEnd int) {
	for i := rowStart; i < rowEnd; i++ {
		aRow := a[i*n : i*n+n]
		cRow := c[i*n : i*n+n]
		for j := range cRow {
			var sum float64
			for k, aik := range aRow {
				sum += aik * b[k*n+j]
			}
			cRow[j] += sum
		}
	}
}

// dotAccumulate adds the partial dot product of row i of A and column j of
// B over [k0, k1) to C[i][j], starting from the value already in C. The
// blocked driver uses it for tile edges the micro-kernel cannot cover.
func dotAccumulate(a, b, c []float64, n, i, j, k0, k1 int) {
	cij := c[i*n+j]
	aRow := a[i*n : i*n+n]
	for k := k0; k < k1; k++ {
		cij += aRow[k] * b[k*n+j]
	}
	c[i*n+j] = cij
}
