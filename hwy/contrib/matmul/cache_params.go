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

import "math"

// DefaultL1Bytes is the L1 data cache size assumed when the caller does not
// know the real one. 32KB is typical for x86 and most Arm cores.
const DefaultL1Bytes = 32 * 1024

// BlockSizeForL1 returns the largest tile edge, a multiple of the 4-wide
// micro-tile, for which one tile each of A, B and C fits in l1Bytes:
// 3 * bs * bs * 8 <= l1Bytes. Values <= 0 use DefaultL1Bytes.
//
// For a 32KB cache this gives 36. The result is never below 4.
func BlockSizeForL1(l1Bytes int) int {
	if l1Bytes <= 0 {
		l1Bytes = DefaultL1Bytes
	}
	bs := int(math.Sqrt(float64(l1Bytes) / (3 * 8)))
	bs &^= 3
	return max(bs, 4)
}

// packedPanelSize returns the scratch elements one packed operand needs for
// a tile edge: the micro-tile aligned span times the reduction depth.
func packedPanelSize(edge int) int {
	return (edge &^ 3) * edge
}
