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
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMatrix(t *testing.T) {
	m, err := NewMatrix(5)
	require.NoError(t, err)
	require.Len(t, m, 25)
	require.Equal(t, 5, m.Dim())
	for _, v := range m {
		require.Zero(t, v)
	}

	_, err = NewMatrix(0)
	require.True(t, IsInvalidConfig(err), "n=0: got %v", err)

	_, err = NewMatrix(1 << 20)
	require.True(t, IsAllocation(err), "oversized: got %v", err)
}

func TestMatrixDim(t *testing.T) {
	require.Equal(t, 0, Matrix{}.Dim())
	require.Equal(t, 1, make(Matrix, 1).Dim())
	require.Equal(t, 7, make(Matrix, 49).Dim())
	require.Equal(t, -1, make(Matrix, 50).Dim())
}

func TestMatrixFill(t *testing.T) {
	const n = 4
	m := make(Matrix, n*n)
	m.FillOnes()
	for _, v := range m {
		require.Equal(t, 1.0, v)
	}

	m.Identity(n)
	for i := range n {
		for j := range n {
			want := 0.0
			if i == j {
				want = 1
			}
			require.Equal(t, want, m[i*n+j], "identity[%d][%d]", i, j)
		}
	}

	m.Zero()
	for _, v := range m {
		require.Zero(t, v)
	}
}

func TestFillRandom(t *testing.T) {
	m := make(Matrix, 1000)
	FillRandom(m, rand.New(rand.NewPCG(1, 2)))
	for i, v := range m {
		if !(v > 0 && v <= 1) {
			t.Fatalf("m[%d] = %v, want in (0, 1]", i, v)
		}
	}

	// Same seed, same values.
	again := make(Matrix, 1000)
	FillRandom(again, rand.New(rand.NewPCG(1, 2)))
	require.Equal(t, m, again)
}

func TestMaxRelDiff(t *testing.T) {
	require.Zero(t, MaxRelDiff([]float64{0, 1, -2}, []float64{0, 1, -2}))
	require.InDelta(t, 0.5, MaxRelDiff([]float64{1, 2}, []float64{1, 4}), 1e-15)
	require.Equal(t, 1.0, MaxRelDiff([]float64{0}, []float64{3}))
	require.True(t, math.IsInf(MaxRelDiff([]float64{1}, []float64{1, 2}), 1))

	require.True(t, AllClose([]float64{1, 1 + 1e-12}, []float64{1, 1}, 1e-9))
	require.False(t, AllClose([]float64{1, 1.1}, []float64{1, 1}, 1e-9))
}

func TestMaxRelDiffNonFinite(t *testing.T) {
	inf, nan := math.Inf(1), math.NaN()
	for _, tc := range []struct {
		name      string
		got, want []float64
	}{
		{"NaN result", []float64{1, nan}, []float64{1, 2}},
		{"NaN reference", []float64{1, 2}, []float64{1, nan}},
		{"both NaN", []float64{nan}, []float64{nan}},
		{"opposite infinities", []float64{inf}, []float64{-inf}},
		{"infinity against finite", []float64{3, inf}, []float64{3, 4}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.True(t, math.IsInf(MaxRelDiff(tc.got, tc.want), 1))
			require.False(t, AllClose(tc.got, tc.want, relTol))
		})
	}

	// Matching infinities are equal elements, not a failure.
	require.Zero(t, MaxRelDiff([]float64{inf, -inf, 1}, []float64{inf, -inf, 1}))
}
