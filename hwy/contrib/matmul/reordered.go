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

// Reordered computes C += A * B with the i-k-j loop order: A[i][k] stays in
// a register while row k of B streams into row i of C, so every inner-loop
// access is unit stride. Results agree with Reference up to rounding.
//
// Reordered panics if any slice holds fewer than n*n values.
func Reordered(a, b, c []float64, n int) {
	if n <= 0 {
		return
	}
	mustOperands(a, b, c, n)
	for i := range n {
		cRow := c[i*n : i*n+n]
		for k := range n {
			aik := a[i*n+k]
			bRow := b[k*n : k*n+n]
			for j, bkj := range bRow {
				cRow[j] += aik * bkj
			}
		}
	}
}
