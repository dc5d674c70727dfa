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

import "github.com/hwy-lab/dgemm/hwy/contrib/workerpool"

// RowRange is a half-open range [Start, End) of output rows.
type RowRange = workerpool.Range

// PartitionRows assigns the n output rows to threads workers: exactly
// threads contiguous, non-overlapping ranges that together cover [0, n)
// once. Range sizes differ by at most one, so when threads > n some ranges
// are empty. Returns nil if threads <= 0.
func PartitionRows(n, threads int) []RowRange {
	return workerpool.Split(n, threads)
}
