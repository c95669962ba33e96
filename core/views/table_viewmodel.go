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

package views

import (
	"fmt"
	"slices"

	"github.com/google/safehtml"

	"github.com/google/tablekit/core/presets"
	"github.com/google/tablekit/core/query"
	"github.com/google/tablekit/core/sorting"
	"github.com/google/tablekit/core/tables"
)

// PageSizeChoices are the page sizes offered besides the table's own.
var PageSizeChoices = []int{10, 25, 50, 100}

// TableViewModel contains the data from the table formatted for template consumption
type TableViewModel struct {
	Title       string
	Description string
	Table       string       // Table name
	CurrentURL  safehtml.URL // Current URL, used by the page size and preset forms

	Headers []HeaderViewModel
	Rows    [][]string // Display strings, row by row in header order

	// Row range info
	TotalRows int
	FirstRow  int // 1-based, 0 when empty
	LastRow   int
	Summary   string // e.g. "Rows 11-20 of 42"

	Pagination PaginationViewModel
	PageSizes  []PageSizeOption
	Presets    []PresetOption // Empty hides the sort panel

	Notices []string // Parts of the request that were rejected
}

// HeaderViewModel is one column header.
type HeaderViewModel struct {
	ID        string
	Label     string
	Sortable  bool
	Indicator string       // ▲, ▼ or empty
	AriaSort  string       // "ascending", "descending" or "none"
	ToggleURL safehtml.URL // URL of the header click, empty when not sortable
}

// PaginationViewModel is the pagination control.
type PaginationViewModel struct {
	Show      bool // False when everything fits on one page
	PageIndex int  // 0-based
	PageCount int
	Previous  LinkViewModel
	Next      LinkViewModel
	Items     []PageItemViewModel
}

// LinkViewModel is a link that may be disabled.
type LinkViewModel struct {
	Enabled bool
	URL     safehtml.URL
}

// PageItemViewModel is one page button or ellipsis.
type PageItemViewModel struct {
	Label      string
	IsEllipsis bool
	IsActive   bool
	URL        safehtml.URL // Empty for ellipses
}

// PageSizeOption is one entry of the page size selector.
type PageSizeOption struct {
	Size     int
	Selected bool
	URL      safehtml.URL
}

// PresetOption is one entry of the sort panel.
type PresetOption struct {
	Label    string
	Value    string
	Selected bool
	URL      safehtml.URL
}

// BuildViewModel builds the view model of the controller's current page. The
// controller must already reflect q. Links are derived from q so every other
// parameter survives a click.
func BuildViewModel(title, description string, c *tables.Controller, q *query.Query, presetOptions []presets.Option) TableViewModel {
	page := c.Page()

	vm := TableViewModel{
		Title:       title,
		Description: description,
		Table:       q.Table,
		CurrentURL:  q.ToSafeURL(),
		Rows:        page.Strings(),
		TotalRows:   page.TotalRows,
		FirstRow:    page.FirstRow,
		LastRow:     page.LastRow,
	}

	if page.TotalRows == 0 {
		vm.Summary = "No rows"
	} else {
		vm.Summary = fmt.Sprintf("Rows %d-%d of %d", page.FirstRow, page.LastRow, page.TotalRows)
	}

	for i := range page.Columns {
		col := &page.Columns[i]
		dir := page.Sort.DirectionOf(col.ID)
		h := HeaderViewModel{
			ID:        col.ID,
			Label:     col.DisplayName(),
			Sortable:  c.CanSort(col.ID),
			Indicator: dir.Indicator(),
			AriaSort:  ariaSort(dir),
		}
		if h.Sortable {
			h.ToggleURL = q.WithSortToggled(col.ID)
		}
		vm.Headers = append(vm.Headers, h)
	}

	vm.Pagination = buildPagination(c, q)
	if c.PaginationEnabled() {
		vm.PageSizes = buildPageSizes(c.Pagination().PageSize, q)
	}
	vm.Presets = buildPresets(presetOptions, page.Sort, q)

	return vm
}

func ariaSort(dir sorting.Direction) string {
	switch dir {
	case sorting.Ascending:
		return "ascending"
	case sorting.Descending:
		return "descending"
	default:
		return "none"
	}
}

func buildPagination(c *tables.Controller, q *query.Query) PaginationViewModel {
	controls := c.Controls()
	pvm := PaginationViewModel{
		Show:      c.PaginationEnabled() && !controls.Single(),
		PageIndex: controls.PageIndex,
		PageCount: controls.PageCount,
		Previous:  LinkViewModel{Enabled: controls.CanPrevious},
		Next:      LinkViewModel{Enabled: controls.CanNext},
	}
	if controls.CanPrevious {
		pvm.Previous.URL = q.WithPage(controls.PageIndex - 1)
	}
	if controls.CanNext {
		pvm.Next.URL = q.WithPage(controls.PageIndex + 1)
	}
	for _, item := range controls.Items {
		pi := PageItemViewModel{
			Label:      item.String(),
			IsEllipsis: item.Ellipsis,
			IsActive:   item.Active,
		}
		if !item.Ellipsis {
			pi.URL = q.WithPage(item.TargetIndex)
		}
		pvm.Items = append(pvm.Items, pi)
	}
	return pvm
}

func buildPageSizes(current int, q *query.Query) []PageSizeOption {
	sizes := slices.Clone(PageSizeChoices)
	if !slices.Contains(sizes, current) {
		sizes = append(sizes, current)
		slices.Sort(sizes)
	}
	base := q.Clone()
	if base.PageSize == 0 {
		base.PageSize = current
	}
	opts := make([]PageSizeOption, 0, len(sizes))
	for _, size := range sizes {
		opts = append(opts, PageSizeOption{
			Size:     size,
			Selected: size == current,
			URL:      base.WithPageSize(size),
		})
	}
	return opts
}

func buildPresets(options []presets.Option, state sorting.State, q *query.Query) []PresetOption {
	out := make([]PresetOption, 0, len(options))
	for _, o := range options {
		out = append(out, PresetOption{
			Label:    o.Label,
			Value:    o.Value,
			Selected: o.State() == state.Normalized(),
			URL:      q.WithPreset(o.Value),
		})
	}
	return out
}
