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

// MicroKernel4x4 accumulates a packed kc-step product into the 4×4 block of
// C at (ir, jr). packedA and packedB point at the start of one group as laid
// out by PackLHS4 and PackRHS4.
//
// It is bound at init to the archsimd kernel on AVX2 and AVX-512 builds
// with GOEXPERIMENT=simd, to the scalar kernel when the dispatch level is
// scalar (for example with HWY_NO_SIMD set), and otherwise to the portable
// two-lane kernel.
var MicroKernel4x4 func(packedA, packedB, c []float64, n, ir, jr, kc int)

func init() {
	if hwy.CurrentLevel() == hwy.DispatchScalar {
		MicroKernel4x4 = microKernel4x4Scalar
		return
	}
	if k := vectorMicroKernel(); k != nil {
		MicroKernel4x4 = k
		return
	}
	MicroKernel4x4 = microKernel4x4Vec
}
