// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

// Range is a half-open interval [Start, End) of indices.
type Range struct {
	Start, End int
}

// Len returns the number of indices in r.
func (r Range) Len() int {
	return r.End - r.Start
}

// Empty reports whether r covers no indices.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

// Split divides [0, n) into exactly parts contiguous ranges whose sizes
// differ by at most one. Range i is [i*n/parts, (i+1)*n/parts), so when
// parts > n some ranges are empty. Returns nil if parts <= 0 or n < 0.
func Split(n, parts int) []Range {
	if parts <= 0 || n < 0 {
		return nil
	}
	out := make([]Range, parts)
	for i := range parts {
		out[i] = Range{
			Start: i * n / parts,
			End:   (i + 1) * n / parts,
		}
	}
	return out
}
