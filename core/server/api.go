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

package server

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/google/tablekit/core/columns"
)

// PageResponse is the JSON form of a table page.
type PageResponse struct {
	Table     string           `json:"table"`
	Title     string           `json:"title"`
	Columns   []ColumnResponse `json:"columns"`
	Rows      []map[string]any `json:"rows"`
	Sort      string           `json:"sort,omitempty"`
	PageIndex int              `json:"page_index"`
	PageSize  int              `json:"page_size"`
	PageCount int              `json:"page_count"`
	TotalRows int              `json:"total_rows"`
	// Window lists the page markers, "..." standing for elided pages.
	Window  []string `json:"window"`
	Notices []string `json:"notices,omitempty"`
}

// ColumnResponse describes one column.
type ColumnResponse struct {
	ID       string `json:"id"`
	Header   string `json:"header"`
	Sortable bool   `json:"sortable"`
	Sort     string `json:"sort,omitempty"`
}

func (s *Server) handleTableAPI(w http.ResponseWriter, r *http.Request) {
	tr, ok := s.prepareTable(w, r)
	if !ok {
		return
	}
	c := tr.controller
	page := c.Page()
	pagination := c.Pagination()

	resp := PageResponse{
		Table:     tr.def.Name,
		Title:     tr.def.DisplayTitle(),
		Sort:      page.Sort.String(),
		PageIndex: pagination.PageIndex,
		PageSize:  pagination.PageSize,
		PageCount: pagination.PageCount,
		TotalRows: page.TotalRows,
		Rows:      make([]map[string]any, 0, len(page.Cells)),
		Notices:   tr.notices,
	}
	for _, col := range page.Columns {
		dir := page.Sort.DirectionOf(col.ID)
		cr := ColumnResponse{ID: col.ID, Header: col.DisplayName(), Sortable: c.CanSort(col.ID)}
		if dir.Indicator() != "" {
			cr.Sort = dir.String()
		}
		resp.Columns = append(resp.Columns, cr)
	}
	for _, cells := range page.Cells {
		row := make(map[string]any, len(cells))
		for j, cell := range cells {
			row[page.Columns[j].ID] = cellJSON(cell)
		}
		resp.Rows = append(resp.Rows, row)
	}
	for _, m := range c.PageWindow() {
		resp.Window = append(resp.Window, m.String())
	}

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		requestLogger(r.Context(), s.log).Error("encoding response", "error", err)
	}
}

// cellJSON keeps numbers numeric and nulls null; everything else, including
// numbers read from text, is the display string.
func cellJSON(cell columns.Cell) any {
	switch cell.Kind {
	case columns.KindNull:
		return nil
	case columns.KindNumber:
		if _, ok := cell.Raw.(string); ok || math.IsNaN(cell.Number) || math.IsInf(cell.Number, 0) {
			return cell.Text
		}
		return cell.Number
	}
	return cell.Text
}
