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

import "k8s.io/klog/v2"

// tile is one (row, col, reduction) block of the blocked loop nest. Its
// extents are clipped to the matrix, so edge tiles may be smaller than the
// block size.
type tile struct {
	row, col, red int // top-left corner in C and first reduction index
	m, n, k       int // extents
}

// BlockedMatMul computes C += A * B for n×n row-major matrices by tiling all
// three loops with edge blockSize.
//
// Within a tile the largest 4-aligned sub-block (M&^3 rows by N&^3 columns)
// is packed and handed to MicroKernel4x4 one 4×4 block at a time. The
// leftover rows are then finished over the tile's full column range, and
// the leftover columns over the 4-aligned rows only, so each element of the
// corner is updated exactly once.
//
// A blockSize below 4 is accepted but leaves no 4×4 sub-block, so every
// element goes through the scalar edge path.
//
// Packing buffers come from a pool and are returned before BlockedMatMul
// returns. A panic inside a tile is recovered and reported as
// KindExecution.
func BlockedMatMul(a, b, c []float64, n, blockSize int) (err error) {
	const op = "blocked"
	if err := checkOperands(op, a, b, c, n); err != nil {
		return err
	}
	if blockSize <= 0 {
		return newInvalidConfig(op, "block size must be positive, got %d", blockSize)
	}
	if blockSize < 4 {
		klog.Warningf("matmul: block size %d is below the 4x4 micro-tile; running the scalar edge path only", blockSize)
	}

	step := min(blockSize, n)
	s, err := acquireScratch(op, step)
	if err != nil {
		return err
	}
	defer releaseScratch(s)

	defer func() {
		if r := recover(); r != nil {
			klog.Errorf("matmul: blocked n=%d block=%d: tile panicked: %v", n, blockSize, r)
			err = newExecution(op, panicCause(r), "tile panicked")
		}
	}()

	klog.V(2).Infof("matmul: blocked n=%d block=%d", n, step)
	for i0 := 0; i0 < n; i0 += step {
		for j0 := 0; j0 < n; j0 += step {
			for k0 := 0; k0 < n; k0 += step {
				blockKernel(a, b, c, n, tile{
					row: i0, col: j0, red: k0,
					m: min(step, n-i0),
					n: min(step, n-j0),
					k: min(step, n-k0),
				}, s)
			}
		}
	}
	return nil
}

// blockKernel accumulates one tile's contribution into C.
func blockKernel(a, b, c []float64, n int, t tile, s *scratch) {
	m4 := t.m &^ 3
	n4 := t.n &^ 3
	kEnd := t.red + t.k

	if m4 > 0 && n4 > 0 {
		PackLHS4(a, s.a, n, t.row, t.red, m4, t.k)
		PackRHS4(b, s.b, n, t.red, t.col, n4, t.k)
		panel := t.k * 4
		for ir := 0; ir < m4; ir += 4 {
			pa := s.a[(ir/4)*panel:]
			for jr := 0; jr < n4; jr += 4 {
				MicroKernel4x4(pa, s.b[(jr/4)*panel:], c, n, t.row+ir, t.col+jr, t.k)
			}
		}
	}

	// Rows below the aligned block, across every column of the tile.
	for i := t.row + m4; i < t.row+t.m; i++ {
		for j := t.col; j < t.col+t.n; j++ {
			dotAccumulate(a, b, c, n, i, j, t.red, kEnd)
		}
	}

	// Columns right of the aligned block, aligned rows only.
	for i := t.row; i < t.row+m4; i++ {
		for j := t.col + n4; j < t.col+t.n; j++ {
			dotAccumulate(a, b, c, n, i, j, t.red, kEnd)
		}
	}
}
