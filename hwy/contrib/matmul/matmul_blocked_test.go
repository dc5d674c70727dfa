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
	"fmt"
	"testing"
)

func TestBlockedBlockSizes(t *testing.T) {
	for _, n := range []int{1, 4, 5, 8, 13, 64} {
		a, b, want := randomOperands(n, uint64(100+n))
		Reference(a, b, want, n)

		for _, bs := range []int{1, 2, 3, 4, 5, 6, 7, 8, 12, 16, 32, 100} {
			t.Run(fmt.Sprintf("n=%d/bs=%d", n, bs), func(t *testing.T) {
				c := make(Matrix, n*n)
				if err := BlockedMatMul(a, b, c, n, bs); err != nil {
					t.Fatal(err)
				}
				if d := MaxRelDiff(c, want); !(d <= relTol) {
					t.Errorf("max relative difference %g > %g", d, relTol)
				}
			})
		}
	}
}

// n=6 with 4-wide tiles leaves a 2-row remainder, a 2-column remainder and
// a 2×2 corner in the first tile, plus 2×2 edge tiles.
func TestBlockedRemainderCoverage(t *testing.T) {
	const n, bs = 6, 4

	a := make(Matrix, n*n)
	b := make(Matrix, n*n)
	c := make(Matrix, n*n)
	a.FillOnes()
	b.FillOnes()
	if err := BlockedMatMul(a, b, c, n, bs); err != nil {
		t.Fatal(err)
	}
	for i := range n {
		for j := range n {
			if got := c[i*n+j]; got != n {
				t.Errorf("c[%d][%d] = %v, want %d", i, j, got, n)
			}
		}
	}

	ra, rb, want := randomOperands(n, 6)
	Reference(ra, rb, want, n)
	got := make(Matrix, n*n)
	if err := BlockedMatMul(ra, rb, got, n, bs); err != nil {
		t.Fatal(err)
	}
	if d := MaxRelDiff(got, want); !(d <= relTol) {
		t.Errorf("random operands: max relative difference %g > %g", d, relTol)
	}
}

func TestBlockedRowAndColumnPatterns(t *testing.T) {
	// A[i][k] = i+1 and B[k][j] = j+1 give C[i][j] = n*(i+1)*(j+1), which
	// catches a remainder element being written to the wrong row or column.
	const n = 7
	a := make(Matrix, n*n)
	b := make(Matrix, n*n)
	for i := range n {
		for k := range n {
			a[i*n+k] = float64(i + 1)
			b[i*n+k] = float64(k + 1)
		}
	}
	for _, bs := range []int{4, 5, 6, 7} {
		c := make(Matrix, n*n)
		if err := BlockedMatMul(a, b, c, n, bs); err != nil {
			t.Fatal(err)
		}
		for i := range n {
			for j := range n {
				want := float64(n * (i + 1) * (j + 1))
				if got := c[i*n+j]; got != want {
					t.Errorf("bs=%d: c[%d][%d] = %v, want %v", bs, i, j, got, want)
				}
			}
		}
	}
}

func TestBlockedScalarKernel(t *testing.T) {
	saved := MicroKernel4x4
	MicroKernel4x4 = microKernel4x4Scalar
	t.Cleanup(func() { MicroKernel4x4 = saved })

	const n = 13
	a, b, want := randomOperands(n, 13)
	Reference(a, b, want, n)
	c := make(Matrix, n*n)
	if err := BlockedMatMul(a, b, c, n, 8); err != nil {
		t.Fatal(err)
	}
	if d := MaxRelDiff(c, want); !(d <= relTol) {
		t.Errorf("max relative difference %g > %g", d, relTol)
	}
}

func TestBlockedPanicIsExecutionError(t *testing.T) {
	saved := MicroKernel4x4
	MicroKernel4x4 = func(_, _, _ []float64, _, _, _, _ int) { panic("kernel fault") }
	t.Cleanup(func() { MicroKernel4x4 = saved })

	const n = 8
	a, b, c := randomOperands(n, 1)
	err := BlockedMatMul(a, b, c, n, 4)
	if !IsExecution(err) {
		t.Fatalf("BlockedMatMul error = %v, want execution error", err)
	}
}
