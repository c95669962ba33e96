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

// Package paging computes page counts and the window of page markers shown
// by a pagination control.
package paging

import "strconv"

// DefaultMaxVisible is the number of page markers shown when none is configured.
const DefaultMaxVisible = 5

// EllipsisLabel is the label of an ellipsis marker.
const EllipsisLabel = "..."

// Marker is one entry of a pagination control: a 1-based page number or an
// ellipsis placeholder.
type Marker struct {
	Page     int
	Ellipsis bool
}

// PageMarker returns the marker for 1-based page n.
func PageMarker(n int) Marker {
	return Marker{Page: n}
}

// EllipsisMarker returns an ellipsis marker.
func EllipsisMarker() Marker {
	return Marker{Ellipsis: true}
}

// String returns the page number, or "..." for an ellipsis.
func (m Marker) String() string {
	if m.Ellipsis {
		return EllipsisLabel
	}
	return strconv.Itoa(m.Page)
}

// PageCount returns ceil(totalRows/pageSize), and at least 1.
func PageCount(totalRows, pageSize int) int {
	if pageSize < 1 || totalRows <= 0 {
		return 1
	}
	return (totalRows + pageSize - 1) / pageSize
}

// ClampIndex clamps a 0-based page index into [0, pageCount-1].
func ClampIndex(index, pageCount int) int {
	if pageCount < 1 {
		pageCount = 1
	}
	if index < 0 {
		return 0
	}
	if index > pageCount-1 {
		return pageCount - 1
	}
	return index
}

// ComputePageWindow returns the markers to show for 1-based currentPage out
// of totalPages with at most maxVisible page numbers.
//
// When everything fits, all pages are listed. Otherwise page 1 and the last
// page are always shown and the remaining slots form a window centred on the
// current page, anchored to the start or end when the current page is near
// either, with an ellipsis standing in for each elided run.
//
// totalPages below 1 is treated as 1, currentPage is clamped into range and a
// maxVisible below 1 uses DefaultMaxVisible.
func ComputePageWindow(currentPage, totalPages, maxVisible int) []Marker {
	if totalPages < 1 {
		totalPages = 1
	}
	if maxVisible < 1 {
		maxVisible = DefaultMaxVisible
	}
	currentPage = ClampIndex(currentPage-1, totalPages) + 1

	if totalPages <= maxVisible {
		pages := make([]Marker, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			pages = append(pages, PageMarker(i))
		}
		return pages
	}

	// Two slots are reserved for the first and last page.
	halfVisible := floorDiv(maxVisible-2, 2)

	pages := make([]Marker, 0, maxVisible+2)
	pages = append(pages, PageMarker(1))

	rangeStart := max(2, currentPage-halfVisible)
	rangeEnd := min(totalPages-1, currentPage+halfVisible)

	if currentPage <= halfVisible+1 {
		rangeEnd = min(totalPages-1, maxVisible-1)
	}
	if currentPage >= totalPages-halfVisible {
		rangeStart = max(2, totalPages-maxVisible+2)
	}

	if rangeStart > 2 {
		pages = append(pages, EllipsisMarker())
	}
	for i := rangeStart; i <= rangeEnd; i++ {
		pages = append(pages, PageMarker(i))
	}
	if rangeEnd < totalPages-1 {
		pages = append(pages, EllipsisMarker())
	}

	if !containsPage(pages, totalPages) {
		pages = append(pages, PageMarker(totalPages))
	}
	return pages
}

func containsPage(markers []Marker, page int) bool {
	for _, m := range markers {
		if !m.Ellipsis && m.Page == page {
			return true
		}
	}
	return false
}

// floorDiv divides rounding towards negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
