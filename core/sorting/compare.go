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

// Package sorting holds the named comparators used to order table rows, the
// per-table registry that resolves them, and the single-column sort state.
package sorting

import (
	"math"
	"strings"

	"github.com/google/tablekit/core/columns"
)

// Comparator orders two cell values extracted by a column accessor.
// Returns -1 if a < b, 0 if equal, 1 if a > b. Comparators never panic on
// malformed values; they order them at one end instead.
type Comparator func(a, b any) int

// RowComparator orders two rows for one column.
type RowComparator func(a, b columns.Row) int

// Bind combines a column's accessor with a comparator.
func Bind(col *columns.Column, cmp Comparator) RowComparator {
	return func(a, b columns.Row) int {
		return cmp(col.Value(a), col.Value(b))
	}
}

// Generic is the default comparator. Values are normalised first and then
// ordered null < number < text: nulls (nil, blank strings) sort before any
// defined value, numbers and numeric strings compare numerically, and
// everything else compares lexicographically by its string form.
func Generic(a, b any) int {
	return CompareCells(columns.Normalize(a), columns.Normalize(b))
}

// CompareCells is the total order behind Generic.
func CompareCells(a, b columns.Cell) int {
	if a.Kind != b.Kind {
		return compareInts(int(a.Kind), int(b.Kind))
	}
	switch a.Kind {
	case columns.KindNull:
		return 0
	case columns.KindNumber:
		return compareFloat64s(a.Number, b.Number)
	default:
		return strings.Compare(a.Text, b.Text)
	}
}

func compareInts(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// compareFloat64s compares two float64 values with NaN handling.
// NaN values are considered greater than all other values (sort to end).
func compareFloat64s(a, b float64) int {
	aNaN := math.IsNaN(a)
	bNaN := math.IsNaN(b)

	if aNaN && bNaN {
		return 0
	}
	if aNaN {
		return 1
	}
	if bNaN {
		return -1
	}

	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
