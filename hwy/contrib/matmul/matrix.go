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
	"math"
	"math/rand/v2"
)

// MaxElements bounds the size of a single matrix (n*n values, 16 GiB of
// float64). Larger requests fail with KindAllocation instead of asking the
// runtime for the memory.
const MaxElements = 1 << 31

// Matrix is a square n×n matrix stored row-major: element (row, col) lives
// at index row*n+col.
type Matrix []float64

// NewMatrix allocates a zeroed n×n matrix.
func NewMatrix(n int) (m Matrix, err error) {
	if n <= 0 {
		return nil, newInvalidConfig("alloc", "matrix size must be positive, got %d", n)
	}
	if n > MaxElements/n {
		return nil, newAllocation("alloc", nil, "%dx%d matrix exceeds %d elements", n, n, MaxElements)
	}
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, newAllocation("alloc", panicCause(r), "%dx%d matrix", n, n)
		}
	}()
	return make(Matrix, n*n), nil
}

// Dim returns n for an n×n matrix, or -1 if len(m) is not a perfect square.
func (m Matrix) Dim() int {
	n := int(math.Sqrt(float64(len(m))))
	for n*n > len(m) {
		n--
	}
	for (n+1)*(n+1) <= len(m) {
		n++
	}
	if n*n != len(m) {
		return -1
	}
	return n
}

// Zero sets every element to 0.
func (m Matrix) Zero() {
	clear(m)
}

// FillOnes sets every element to 1.
func (m Matrix) FillOnes() {
	for i := range m {
		m[i] = 1
	}
}

// Identity overwrites m with the n×n identity.
func (m Matrix) Identity(n int) {
	clear(m)
	for i := range n {
		m[i*n+i] = 1
	}
}

// FillRandom sets every element to 1/r for a random non-zero 31-bit r, so
// all values are positive and at most 1.
func FillRandom(m Matrix, rng *rand.Rand) {
	for i := range m {
		var r int32
		for r == 0 {
			r = rng.Int32()
		}
		m[i] = 1 / float64(r)
	}
}

// MaxRelDiff returns the largest element-wise relative difference
// |got-want| / max(|got|, |want|). Equal elements, including two zeros or
// two infinities of the same sign, count as equal. Slices of different
// length give +Inf, and so does any pair of differing elements whose
// difference is not finite (a NaN on either side, or opposite infinities),
// so the result never compares below a tolerance for such inputs.
func MaxRelDiff(got, want []float64) float64 {
	if len(got) != len(want) {
		return math.Inf(1)
	}
	var worst float64
	for i, g := range got {
		w := want[i]
		if g == w {
			continue
		}
		diff := math.Abs(g - w)
		if math.IsNaN(diff) || math.IsInf(diff, 0) {
			return math.Inf(1)
		}
		scale := max(math.Abs(g), math.Abs(w))
		worst = max(worst, diff/scale)
	}
	return worst
}

// AllClose reports whether MaxRelDiff(got, want) <= tol.
func AllClose(got, want []float64, tol float64) bool {
	return MaxRelDiff(got, want) <= tol
}

// checkOperands validates n and the operand lengths shared by every
// strategy.
func checkOperands(op string, a, b, c []float64, n int) error {
	if n <= 0 {
		return newInvalidConfig(op, "matrix size must be positive, got %d", n)
	}
	if n > MaxElements/n {
		return newInvalidConfig(op, "matrix size %d too large", n)
	}
	need := n * n
	for _, s := range []struct {
		name string
		len  int
	}{{"A", len(a)}, {"B", len(b)}, {"C", len(c)}} {
		if s.len < need {
			return newInvalidConfig(op, "%s has %d elements, need %d for n=%d", s.name, s.len, need, n)
		}
	}
	return nil
}

// mustOperands panics on short operands, for the raw kernels that have no
// error return.
func mustOperands(a, b, c []float64, n int) {
	need := n * n
	if len(a) < need {
		panic(fmt.Sprintf("matmul: A slice too short (%d < %d)", len(a), need))
	}
	if len(b) < need {
		panic(fmt.Sprintf("matmul: B slice too short (%d < %d)", len(b), need))
	}
	if len(c) < need {
		panic(fmt.Sprintf("matmul: C slice too short (%d < %d)", len(c), need))
	}
}
