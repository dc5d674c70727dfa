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

	"github.com/google/go-cmp/cmp"
)

func TestPartitionRowsCompleteness(t *testing.T) {
	for _, n := range []int{1, 2, 5, 13, 64} {
		for _, threads := range []int{1, 2, 3, 7, n} {
			t.Run(fmt.Sprintf("n=%d/T=%d", n, threads), func(t *testing.T) {
				ranges := PartitionRows(n, threads)
				if len(ranges) != threads {
					t.Fatalf("got %d ranges, want %d", len(ranges), threads)
				}
				owner := make([]int, n)
				for i := range owner {
					owner[i] = -1
				}
				for w, r := range ranges {
					if r.Start > r.End {
						t.Fatalf("range %d inverted: %v", w, r)
					}
					for row := r.Start; row < r.End; row++ {
						if owner[row] != -1 {
							t.Fatalf("row %d assigned to %d and %d", row, owner[row], w)
						}
						owner[row] = w
					}
				}
				for row, w := range owner {
					if w == -1 {
						t.Errorf("row %d unassigned", row)
					}
				}
			})
		}
	}
}

func TestPartitionRowsLayout(t *testing.T) {
	want := []RowRange{{Start: 0, End: 3}, {Start: 3, End: 6}, {Start: 6, End: 10}}
	if diff := cmp.Diff(want, PartitionRows(10, 3)); diff != "" {
		t.Errorf("PartitionRows(10, 3) mismatch (-want +got):\n%s", diff)
	}

	// More threads than rows: some workers get nothing.
	want = []RowRange{{Start: 0, End: 0}, {Start: 0, End: 1}, {Start: 1, End: 1}, {Start: 1, End: 2}}
	if diff := cmp.Diff(want, PartitionRows(2, 4)); diff != "" {
		t.Errorf("PartitionRows(2, 4) mismatch (-want +got):\n%s", diff)
	}

	if got := PartitionRows(10, 0); got != nil {
		t.Errorf("PartitionRows(10, 0) = %v, want nil", got)
	}
}
