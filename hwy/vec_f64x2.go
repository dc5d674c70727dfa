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

// Float64x2 is a pair of float64 lanes, the unit of the 4×4 micro-kernels.
//
// The kernels keep eight of these as locals across the reduction loop, the
// same dataflow as eight 128-bit accumulator registers.
type Float64x2 [2]float64

// LoadFloat64x2 loads src[0] and src[1].
// Panics if len(src) < 2.
func LoadFloat64x2(src []float64) Float64x2 {
	_ = src[1] // bounds check hint
	return Float64x2{src[0], src[1]}
}

// BroadcastFloat64x2 returns a vector with both lanes set to v.
// This is the loaddup of the packed-panel kernels.
func BroadcastFloat64x2(v float64) Float64x2 {
	return Float64x2{v, v}
}

// ZeroFloat64x2 returns a vector with both lanes zero.
func ZeroFloat64x2() Float64x2 {
	return Float64x2{}
}

// Store writes both lanes to dst[0] and dst[1].
// Panics if len(dst) < 2.
func (v Float64x2) Store(dst []float64) {
	_ = dst[1] // bounds check hint
	dst[0] = v[0]
	dst[1] = v[1]
}

// Add returns v + o lane-wise.
func (v Float64x2) Add(o Float64x2) Float64x2 {
	return Float64x2{v[0] + o[0], v[1] + o[1]}
}

// Mul returns v * o lane-wise.
func (v Float64x2) Mul(o Float64x2) Float64x2 {
	return Float64x2{v[0] * o[0], v[1] * o[1]}
}

// MulAdd returns v*b + acc lane-wise.
//
// The product is rounded before the add, matching a separate mul/add pair
// rather than a fused operation, so results do not depend on whether the
// target has FMA.
func (v Float64x2) MulAdd(b, acc Float64x2) Float64x2 {
	return Float64x2{
		float64(v[0]*b[0]) + acc[0],
		float64(v[1]*b[1]) + acc[1],
	}
}

// ReduceSum returns the sum of both lanes.
func (v Float64x2) ReduceSum() float64 {
	return v[0] + v[1]
}
