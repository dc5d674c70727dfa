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

// Package matmul multiplies dense square float64 matrices stored row-major,
// always accumulating into the output: every strategy computes C += A * B.
//
// Example usage:
//
//	a, _ := matmul.NewMatrix(n)
//	b, _ := matmul.NewMatrix(n)
//	c, _ := matmul.NewMatrix(n)
//	matmul.FillRandom(a, rng)
//	matmul.FillRandom(b, rng)
//
//	if err := matmul.Multiply(matmul.DefaultConfig(n), a, b, c, n); err != nil {
//		return err
//	}
//
// Available strategies, all behind the Strategy interface:
//   - ReferenceStrategy: i-j-k loop, the correctness baseline
//   - ReorderedStrategy: i-k-j loop with unit-stride inner access
//   - BlockedStrategy: cache tiling with packed operands and a 4x4
//     two-lane micro-kernel (scalar when HWY_NO_SIMD is set)
//   - StaticThreads: one goroutine per balanced row range
//   - PooledThreads: the same ranges on a persistent worker pool
//   - WorkStealing: one task per row on a work-stealing scheduler
//
// Failures are reported as *Error values; use errors.Is with ErrInvalidConfig,
// ErrAllocation, ErrWorkerSpawn or ErrExecution to classify them.
package matmul
