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

package tables

import (
	"fmt"

	"github.com/google/tablekit/core/columns"
	"github.com/google/tablekit/core/paging"
	"github.com/google/tablekit/core/sorting"
)

// Page is an immutable snapshot of what a table shows: the visible rows, the
// resolved cell of every visible row and column, and the state that produced
// them.
type Page struct {
	Columns []columns.Column
	Rows    []columns.Row
	// Cells[i][j] is the cell of Rows[i] in Columns[j].
	Cells [][]columns.Cell

	Sort      sorting.State
	PageIndex int
	PageSize  int
	PageCount int
	TotalRows int

	// FirstRow and LastRow are the 1-based positions of the visible rows in
	// the sorted row set, both 0 when the page is empty.
	FirstRow int
	LastRow  int

	Controls paging.Controls
}

func newPage(c *Controller, visible []columns.Row, start int) Page {
	cols := c.columns.Columns()
	cells := make([][]columns.Cell, len(visible))
	var failed int
	var firstErr error
	for i, row := range visible {
		rowCells := make([]columns.Cell, len(cols))
		for j := range cols {
			cell, err := resolveCell(&cols[j], row)
			if err != nil {
				failed++
				if firstErr == nil {
					firstErr = err
				}
			}
			rowCells[j] = cell
		}
		cells[i] = rowCells
	}
	if failed > 0 {
		c.log.Error("cells replaced by null", "count", failed, "error", firstErr)
	}

	p := Page{
		Columns:   cols,
		Rows:      visible,
		Cells:     cells,
		Sort:      c.sort,
		PageIndex: c.pageIndex,
		PageSize:  c.pageSize,
		PageCount: c.pageCount(),
		TotalRows: len(c.rows),
		Controls:  c.Controls(),
	}
	if len(visible) > 0 {
		p.FirstRow = start + 1
		p.LastRow = start + len(visible)
	}
	return p
}

// resolveCell reads one cell. An accessor that panics yields a null cell.
func resolveCell(col *columns.Column, row columns.Row) (cell columns.Cell, err error) {
	defer func() {
		if r := recover(); r != nil {
			cell = columns.Cell{Kind: columns.KindNull}
			err = fmt.Errorf("column %q: accessor panicked: %v", col.ID, r)
		}
	}()
	return col.Cell(row), nil
}

// Strings returns the display strings of every visible cell, row by row.
func (p Page) Strings() [][]string {
	out := make([][]string, len(p.Cells))
	for i, row := range p.Cells {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = cell.String()
		}
	}
	return out
}
