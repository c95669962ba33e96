/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package sorting

import (
	"sort"

	"github.com/google/tablekit/core/columns"
)

// SortedIndices returns the permutation of row indices that orders rows by
// cmp in the given direction. The sort is stable: rows that compare equal
// keep their original relative order in both directions. With None the
// identity permutation is returned.
func SortedIndices(rows []columns.Row, cmp RowComparator, dir Direction) []int {
	indices := make([]int, len(rows))
	for i := range indices {
		indices[i] = i
	}
	if dir == None || cmp == nil {
		return indices
	}

	sort.SliceStable(indices, func(i, j int) bool {
		c := cmp(rows[indices[i]], rows[indices[j]])
		if dir == Descending {
			return c > 0
		}
		return c < 0
	})
	return indices
}

// StableSort returns a sorted copy of rows; rows itself is not modified.
func StableSort(rows []columns.Row, cmp RowComparator, dir Direction) []columns.Row {
	indices := SortedIndices(rows, cmp, dir)
	out := make([]columns.Row, len(indices))
	for i, idx := range indices {
		out[i] = rows[idx]
	}
	return out
}
