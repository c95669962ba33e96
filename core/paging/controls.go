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

// ControlItem is one rendered entry of a pagination control.
type ControlItem struct {
	Marker
	// Active marks the current page.
	Active bool
	// TargetIndex is the 0-based page index a click selects, -1 for an ellipsis.
	TargetIndex int
}

// Controls is everything a pagination control needs to render, independent
// of any markup.
type Controls struct {
	PageIndex   int
	PageCount   int
	CanPrevious bool
	CanNext     bool
	Items       []ControlItem
}

// NewControls builds the controls for a 0-based pageIndex.
func NewControls(pageIndex, pageCount, maxVisible int) Controls {
	if pageCount < 1 {
		pageCount = 1
	}
	pageIndex = ClampIndex(pageIndex, pageCount)
	current := pageIndex + 1

	markers := ComputePageWindow(current, pageCount, maxVisible)
	items := make([]ControlItem, len(markers))
	for i, m := range markers {
		item := ControlItem{Marker: m, TargetIndex: -1}
		if !m.Ellipsis {
			item.TargetIndex = m.Page - 1
			item.Active = m.Page == current
		}
		items[i] = item
	}

	return Controls{
		PageIndex:   pageIndex,
		PageCount:   pageCount,
		CanPrevious: pageIndex > 0,
		CanNext:     pageIndex < pageCount-1,
		Items:       items,
	}
}

// Single reports whether there is only one page, in which case a control is
// usually not shown at all.
func (c Controls) Single() bool {
	return c.PageCount <= 1
}
