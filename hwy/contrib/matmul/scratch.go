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
	"sync"

	"github.com/hwy-lab/dgemm/hwy"
)

// scratch holds the packed A and B panels for one blocked run. Both are
// 64-byte aligned and reused tile after tile.
type scratch struct {
	a, b []float64
}

var scratchPool = sync.Pool{
	New: func() any { return new(scratch) },
}

// acquireScratch returns packing buffers for tiles of at most edge×edge.
// The caller must hand them back with releaseScratch.
func acquireScratch(op string, edge int) (s *scratch, err error) {
	need := packedPanelSize(edge)
	if need > MaxElements {
		return nil, newAllocation(op, nil, "scratch for block edge %d exceeds %d elements", edge, MaxElements)
	}

	s = scratchPool.Get().(*scratch)
	defer func() {
		if r := recover(); r != nil {
			scratchPool.Put(s)
			s, err = nil, newAllocation(op, panicCause(r), "scratch for block edge %d", edge)
		}
	}()
	s.a = growAligned(s.a, need)
	s.b = growAligned(s.b, need)
	return s, nil
}

func releaseScratch(s *scratch) {
	scratchPool.Put(s)
}

// growAligned returns buf resliced to n, or a fresh aligned buffer if buf is
// too small. Reslicing keeps the original start, so alignment is preserved.
func growAligned(buf []float64, n int) []float64 {
	if cap(buf) >= n {
		return buf[:n]
	}
	return hwy.AlignedFloat64s(n)
}
