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

// Package tables holds the table state controller: it owns the sort and
// pagination state of one table and derives the visible rows from the full
// row set by sorting and then slicing.
package tables

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/tablekit/core/columns"
	"github.com/google/tablekit/core/logging"
	"github.com/google/tablekit/core/paging"
	"github.com/google/tablekit/core/sorting"
)

// PaginationState is the pagination part of a controller's state.
type PaginationState struct {
	PageIndex int // 0-based
	PageSize  int
	PageCount int
}

// Controller owns the sort and pagination state of one table. Every mutator
// is synchronous and leaves a fresh Page snapshot behind.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	columns     *columns.Set
	comparators map[string]sorting.Comparator
	rows        []columns.Row

	sort      sorting.State
	pageIndex int
	pageSize  int

	opts Options
	log  *slog.Logger

	// order is the sorted permutation of rows under sort.
	order []int
	page  Page
}

// NewController builds a controller over cols and rows.
//
// Duplicate or empty column IDs, unknown comparator names and a negative page
// size are configuration errors. With opts.Strict they fail construction;
// otherwise they are logged and replaced: the first column of each ID wins,
// the generic comparator stands in, and the default page size applies.
func NewController(cols []columns.Column, rows []columns.Row, opts Options) (*Controller, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	registry := opts.Registry
	if registry == nil {
		registry = sorting.NewRegistry()
	}

	var configErrs []error

	if err := columns.Validate(cols); err != nil {
		configErrs = append(configErrs, err)
	}
	set := columns.NewSet(cols)

	comparators := make(map[string]sorting.Comparator, set.Len())
	for _, col := range set.Columns() {
		if !col.Sortable {
			continue
		}
		cmp, err := registry.Resolve(col.Comparator)
		if err != nil {
			configErrs = append(configErrs, fmt.Errorf("column %q: %w", col.ID, err))
		}
		comparators[col.ID] = cmp
	}

	pageSize := opts.PageSize
	switch {
	case pageSize == 0:
		pageSize = DefaultPageSize
	case pageSize < 0:
		configErrs = append(configErrs, fmt.Errorf("%w: %d", ErrInvalidPageSize, pageSize))
		pageSize = DefaultPageSize
	}
	if opts.MaxVisiblePages <= 0 {
		opts.MaxVisiblePages = paging.DefaultMaxVisible
	}

	if err := errors.Join(configErrs...); err != nil {
		if opts.Strict {
			return nil, fmt.Errorf("invalid table configuration: %w", err)
		}
		for _, e := range configErrs {
			log.Warn("table configuration replaced by default", "error", e)
		}
	}

	c := &Controller{
		columns:     set,
		comparators: comparators,
		rows:        cloneRows(rows),
		pageSize:    pageSize,
		opts:        opts,
		log:         log,
	}
	c.order = sorting.SortedIndices(c.rows, nil, sorting.None)
	c.derive()
	return c, nil
}

// Columns returns the table's columns.
func (c *Controller) Columns() *columns.Set {
	return c.columns
}

// CanSort reports whether SetSort(columnID) would be accepted.
func (c *Controller) CanSort(columnID string) bool {
	return c.checkSortable(columnID) == nil
}

// SortState returns the active sort.
func (c *Controller) SortState() sorting.State {
	return c.sort
}

// Pagination returns the pagination state.
func (c *Controller) Pagination() PaginationState {
	return PaginationState{
		PageIndex: c.pageIndex,
		PageSize:  c.pageSize,
		PageCount: c.pageCount(),
	}
}

// PaginationEnabled reports whether rows are split into pages.
func (c *Controller) PaginationEnabled() bool {
	return !c.opts.DisablePagination
}

// MaxVisiblePages returns the configured number of page markers.
func (c *Controller) MaxVisiblePages() int {
	return c.opts.MaxVisiblePages
}

// Len returns the total number of rows.
func (c *Controller) Len() int {
	return len(c.rows)
}

// Page returns the current snapshot.
func (c *Controller) Page() Page {
	return c.page
}

// VisibleRows returns the rows of the current page after sorting.
func (c *Controller) VisibleRows() []columns.Row {
	return cloneRows(c.page.Rows)
}

// PageWindow returns the page markers for the current page.
func (c *Controller) PageWindow() []paging.Marker {
	return paging.ComputePageWindow(c.pageIndex+1, c.pageCount(), c.opts.MaxVisiblePages)
}

// Controls returns the pagination control model for the current page.
func (c *Controller) Controls() paging.Controls {
	return paging.NewControls(c.pageIndex, c.pageCount(), c.opts.MaxVisiblePages)
}

// SetSort toggles sorting on columnID: none, ascending, descending, none.
// Sorting a different column starts over at ascending. Unknown and
// non-sortable columns are rejected and the state is left unchanged, as it
// is when the column's comparator fails.
func (c *Controller) SetSort(columnID string) error {
	if err := c.checkSortable(columnID); err != nil {
		return c.reject("sort", err)
	}
	if err := c.setSortState(sorting.Toggle(c.sort, columnID)); err != nil {
		return fmt.Errorf("sort: %w", err)
	}
	return nil
}

// ApplySort sets the sort state directly, as when restoring it from a URL or
// a sort preset. An unsorted state clears sorting.
func (c *Controller) ApplySort(state sorting.State) error {
	state = state.Normalized()
	if state.IsSorted() {
		if err := c.checkSortable(state.ColumnID); err != nil {
			return c.reject("apply sort", err)
		}
	}
	if err := c.setSortState(state); err != nil {
		return fmt.Errorf("apply sort: %w", err)
	}
	return nil
}

// SetPage moves to the 0-based page index, clamped into range, and returns
// the index actually selected.
func (c *Controller) SetPage(index int) int {
	c.movePage(paging.ClampIndex(index, c.pageCount()))
	return c.pageIndex
}

// NextPage moves forward one page if there is one.
func (c *Controller) NextPage() int {
	return c.SetPage(c.pageIndex + 1)
}

// PreviousPage moves back one page if there is one.
func (c *Controller) PreviousPage() int {
	return c.SetPage(c.pageIndex - 1)
}

// SetPageSize changes the number of rows per page and clamps the page index.
func (c *Controller) SetPageSize(size int) error {
	if size < 1 {
		return c.reject("page size", fmt.Errorf("%w: %d", ErrInvalidPageSize, size))
	}
	if size == c.pageSize {
		return nil
	}
	before := c.pageIndex
	c.pageSize = size
	c.derive()
	c.notifyPage(before)
	return nil
}

// SetRows replaces the row set. The sort state is kept and the page index
// is clamped. If the new rows cannot be sorted the table falls back to
// unsorted and the comparator error is returned.
func (c *Controller) SetRows(rows []columns.Row) error {
	beforePage, beforeSort := c.pageIndex, c.sort
	rows = cloneRows(rows)
	order, err := c.orderFor(c.sort, rows)
	if err != nil {
		c.sort = sorting.State{}
		order = sorting.SortedIndices(rows, nil, sorting.None)
	}
	c.rows = rows
	c.order = order
	c.derive()
	c.notifySort(beforeSort)
	c.notifyPage(beforePage)
	if err != nil {
		return fmt.Errorf("set rows: %w", err)
	}
	return nil
}

// Reset clears sorting and returns to the first page.
func (c *Controller) Reset() {
	beforePage, beforeSort := c.pageIndex, c.sort
	c.sort = sorting.State{}
	c.pageIndex = 0
	c.order = sorting.SortedIndices(c.rows, nil, sorting.None)
	c.derive()
	c.notifySort(beforeSort)
	c.notifyPage(beforePage)
}

func (c *Controller) checkSortable(columnID string) error {
	if c.opts.DisableSorting {
		return ErrSortingDisabled
	}
	col, ok := c.columns.Get(columnID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrColumnNotFound, columnID)
	}
	if !col.Sortable {
		return fmt.Errorf("%w: %q", ErrColumnNotSortable, columnID)
	}
	return nil
}

func (c *Controller) reject(op string, err error) error {
	c.log.Warn("table request rejected", "op", op, "error", err)
	return fmt.Errorf("%s: %w", op, err)
}

// setSortState applies a validated sort state. A new ordering starts again
// from the first page. Nothing is committed until the rows are sorted.
func (c *Controller) setSortState(state sorting.State) error {
	if state == c.sort {
		return nil
	}
	order, err := c.orderFor(state, c.rows)
	if err != nil {
		return err
	}
	beforePage, beforeSort := c.pageIndex, c.sort
	c.sort = state
	c.pageIndex = 0
	c.order = order
	c.derive()
	c.notifySort(beforeSort)
	c.notifyPage(beforePage)
	return nil
}

func (c *Controller) movePage(index int) {
	if index == c.pageIndex {
		return
	}
	before := c.pageIndex
	c.pageIndex = index
	c.derive()
	c.notifyPage(before)
}

func (c *Controller) notifyPage(before int) {
	if c.pageIndex != before && c.opts.OnPageChange != nil {
		c.opts.OnPageChange(c.pageIndex)
	}
}

func (c *Controller) notifySort(before sorting.State) {
	if c.sort != before && c.opts.OnSortChange != nil {
		c.opts.OnSortChange(c.sort)
	}
}

// effectivePageSize is the slice width: everything when pagination is off.
func (c *Controller) effectivePageSize() int {
	if c.opts.DisablePagination {
		return max(len(c.rows), 1)
	}
	return c.pageSize
}

func (c *Controller) pageCount() int {
	return paging.PageCount(len(c.rows), c.effectivePageSize())
}

// orderFor sorts rows under state without touching the controller. A
// comparator or accessor that panics is reported as ErrComparatorFailed.
func (c *Controller) orderFor(state sorting.State, rows []columns.Row) (order []int, err error) {
	if !state.IsSorted() {
		return sorting.SortedIndices(rows, nil, sorting.None), nil
	}
	col, _ := c.columns.Get(state.ColumnID)
	cmp := sorting.Bind(col, c.comparators[state.ColumnID])

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: column %q: %v", ErrComparatorFailed, state.ColumnID, r)
			c.log.Error("sort failed", "column", state.ColumnID, "direction", state.Direction, "error", err)
			order = nil
		}
	}()
	return sorting.SortedIndices(rows, cmp, state.Direction), nil
}

// derive clamps the page index and rebuilds the snapshot from c.order.
func (c *Controller) derive() {
	count := c.pageCount()
	c.pageIndex = paging.ClampIndex(c.pageIndex, count)

	size := c.effectivePageSize()
	start := min(c.pageIndex*size, len(c.order))
	end := min(start+size, len(c.order))

	visible := make([]columns.Row, 0, end-start)
	for _, idx := range c.order[start:end] {
		visible = append(visible, c.rows[idx])
	}
	c.page = newPage(c, visible, start)
}

func cloneRows(rows []columns.Row) []columns.Row {
	out := make([]columns.Row, len(rows))
	copy(out, rows)
	return out
}
