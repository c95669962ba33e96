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

package paging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// labels renders markers as "1 ... 4 5 6 ... 10".
func labels(markers []Marker) string {
	parts := make([]string, len(markers))
	for i, m := range markers {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

func TestComputePageWindow(t *testing.T) {
	testCases := []struct {
		name                   string
		current, total, maxVis int
		want                   string
	}{
		{"centred window", 5, 10, 5, "1 ... 4 5 6 ... 10"},
		{"small total", 1, 3, 5, "1 2 3"},
		{"exactly max", 3, 5, 5, "1 2 3 4 5"},
		{"single page", 1, 1, 5, "1"},
		{"first page", 1, 10, 5, "1 2 3 4 ... 10"},
		{"second page", 2, 10, 5, "1 2 3 4 ... 10"},
		{"third page", 3, 10, 5, "1 2 3 4 ... 10"},
		{"fourth page", 4, 10, 5, "1 ... 3 4 5 ... 10"},
		{"third from last", 8, 10, 5, "1 ... 7 8 9 10"},
		{"second to last", 9, 10, 5, "1 ... 7 8 9 10"},
		{"last page", 10, 10, 5, "1 ... 7 8 9 10"},
		{"wider window", 6, 20, 7, "1 ... 4 5 6 7 8 ... 20"},
		{"even max near start", 1, 20, 6, "1 2 3 4 5 ... 20"},
		{"max of two", 5, 10, 2, "1 ... 5 ... 10"},
		{"current below range is clamped", 0, 10, 5, "1 2 3 4 ... 10"},
		{"current above range is clamped", 99, 10, 5, "1 ... 7 8 9 10"},
		{"zero max uses default", 5, 10, 0, "1 ... 4 5 6 ... 10"},
		{"zero total", 1, 0, 5, "1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputePageWindow(tc.current, tc.total, tc.maxVis)
			assert.Equal(t, tc.want, labels(got))
		})
	}
}

func TestComputePageWindowExactMarkers(t *testing.T) {
	got := ComputePageWindow(5, 10, 5)
	want := []Marker{
		PageMarker(1), EllipsisMarker(), PageMarker(4), PageMarker(5), PageMarker(6), EllipsisMarker(), PageMarker(10),
	}
	assert.Equal(t, want, got)
}

func TestComputePageWindowNeverDuplicatesLastPage(t *testing.T) {
	for total := 1; total <= 30; total++ {
		for maxVis := 1; maxVis <= 9; maxVis++ {
			for current := 1; current <= total; current++ {
				markers := ComputePageWindow(current, total, maxVis)
				seen := map[int]bool{}
				for _, m := range markers {
					if m.Ellipsis {
						continue
					}
					require.False(t, seen[m.Page], "page %d repeated for current=%d total=%d max=%d", m.Page, current, total, maxVis)
					seen[m.Page] = true
				}
				require.True(t, seen[1])
				require.True(t, seen[total])
				require.Equal(t, total, markers[len(markers)-1].Page)
			}
		}
	}
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 1, PageCount(0, 10))
	assert.Equal(t, 1, PageCount(10, 10))
	assert.Equal(t, 2, PageCount(11, 10))
	assert.Equal(t, 3, PageCount(25, 10))
	assert.Equal(t, 1, PageCount(25, 0))
}

func TestClampIndex(t *testing.T) {
	assert.Equal(t, 0, ClampIndex(-3, 5))
	assert.Equal(t, 4, ClampIndex(9, 5))
	assert.Equal(t, 2, ClampIndex(2, 5))
	assert.Equal(t, 0, ClampIndex(2, 0))
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 1, floorDiv(3, 2))
	assert.Equal(t, 0, floorDiv(0, 2))
	assert.Equal(t, -1, floorDiv(-1, 2))
	assert.Equal(t, -1, floorDiv(-2, 2))
}

func TestNewControls(t *testing.T) {
	t.Run("single page disables both directions", func(t *testing.T) {
		for _, idx := range []int{-1, 0, 3} {
			c := NewControls(idx, 1, 5)
			assert.False(t, c.CanPrevious)
			assert.False(t, c.CanNext)
			assert.True(t, c.Single())
			require.Len(t, c.Items, 1)
			assert.True(t, c.Items[0].Active)
		}
	})

	t.Run("middle page", func(t *testing.T) {
		c := NewControls(4, 10, 5)
		assert.True(t, c.CanPrevious)
		assert.True(t, c.CanNext)
		require.Len(t, c.Items, 7)

		var active []int
		for _, item := range c.Items {
			if item.Ellipsis {
				assert.Equal(t, -1, item.TargetIndex)
				assert.False(t, item.Active)
				continue
			}
			assert.Equal(t, item.Page-1, item.TargetIndex)
			if item.Active {
				active = append(active, item.Page)
			}
		}
		assert.Equal(t, []int{5}, active)
	})

	t.Run("edges", func(t *testing.T) {
		first := NewControls(0, 3, 5)
		assert.False(t, first.CanPrevious)
		assert.True(t, first.CanNext)

		last := NewControls(2, 3, 5)
		assert.True(t, last.CanPrevious)
		assert.False(t, last.CanNext)
	})
}
