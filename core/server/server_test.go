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
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/tablekit/core/columns"
	"github.com/google/tablekit/core/models"
	"github.com/google/tablekit/core/presets"
	"github.com/google/tablekit/core/sorting"
	"github.com/google/tablekit/core/tables"
)

func testServer(t *testing.T, logOut *bytes.Buffer) *Server {
	t.Helper()
	dm := models.NewDataModel()

	rent := make([]columns.Row, 23)
	for i := range rent {
		rent[i] = map[string]any{
			"name":    fmt.Sprintf("s%02d", i+1),
			"due":     fmt.Sprintf("%02d-Jan-2026", 28-i),
			"balance": i * 10,
		}
	}
	require.NoError(t, dm.AddTable(&models.TableDef{
		Name:  "rent",
		Title: "Rent Collection",
		Columns: []columns.Column{
			{ID: "name", Header: "Student Name", Accessor: columns.KeyAccessor("name"), Sortable: true},
			{ID: "due", Header: "Due Date", Accessor: columns.KeyAccessor("due"), Sortable: true, Comparator: sorting.DateDMYName},
			{ID: "balance", Header: "Balance", Accessor: columns.KeyAccessor("balance")},
		},
		Rows:    rent,
		Options: tables.DefaultOptions(),
	}))

	require.NoError(t, dm.AddTable(&models.TableDef{
		Name:    "stocks",
		Title:   "Stock Recommendations",
		Context: presets.ContextStocks,
		Columns: []columns.Column{
			{ID: "ticker", Accessor: columns.KeyAccessor("ticker"), Sortable: true},
			{ID: "price", Accessor: columns.KeyAccessor("price"), Sortable: true, Comparator: sorting.CurrencyName},
			{ID: "upside", Accessor: columns.KeyAccessor("upside"), Sortable: true},
		},
		Rows: []columns.Row{
			map[string]any{"ticker": "AAA", "price": "$120.00", "upside": "12.5"},
			map[string]any{"ticker": "BBB", "price": "$1,050.00", "upside": "3"},
			map[string]any{"ticker": "CCC", "price": "$80.25", "upside": "25"},
		},
		Options:     tables.DefaultOptions(),
		DefaultSort: sorting.State{ColumnID: "ticker", Direction: sorting.Descending},
	}))

	var logger *slog.Logger
	if logOut != nil {
		logger = slog.New(slog.NewTextHandler(logOut, nil))
	}
	s, err := NewServer(dm, presets.DefaultCatalog(), logger)
	require.NoError(t, err)
	s.SetLanding("Dashboard", "Everything in one place")
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func getPage(t *testing.T, s *Server, target string) PageResponse {
	t.Helper()
	rec := get(t, s, target)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var resp PageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	rec := get(t, testServer(t, nil), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK\n", rec.Body.String())
}

func TestLanding(t *testing.T) {
	rec := get(t, testServer(t, nil), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Dashboard</h1>")
	assert.Contains(t, body, `<a href="/table/rent">Rent Collection</a>`)
	assert.Contains(t, body, "23 rows, 3 columns")
}

func TestTablePage(t *testing.T) {
	s := testServer(t, nil)

	rec := get(t, s, "/table/rent?sort=due:asc&page=2")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Rent Collection</h1>")
	assert.Contains(t, body, "Due Date ▲")
	// Due dates run backwards, so ascending order starts at the last row.
	assert.Contains(t, body, "<td>s13</td>")
	assert.Contains(t, body, "Rows 11-20 of 23")
	assert.Contains(t, body, `aria-current="page">2</a>`)
	assert.NotContains(t, body, "Sort by:", "rent has no preset context")

	rec = get(t, s, "/table/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTablePageNotices(t *testing.T) {
	s := testServer(t, nil)
	rec := get(t, s, "/table/rent?sort=balance:asc")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<p class="notice">apply sort: column is not sortable: &#34;balance&#34;</p>`)
}

func TestTableAPI(t *testing.T) {
	s := testServer(t, nil)

	resp := getPage(t, s, "/api/table/rent?sort=name:desc&size=5&page=2")
	assert.Equal(t, "rent", resp.Table)
	assert.Equal(t, "name:desc", resp.Sort)
	assert.Equal(t, 1, resp.PageIndex)
	assert.Equal(t, 5, resp.PageSize)
	assert.Equal(t, 5, resp.PageCount)
	assert.Equal(t, 23, resp.TotalRows)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, resp.Window)
	require.Len(t, resp.Rows, 5)
	assert.Equal(t, "s18", resp.Rows[0]["name"])
	assert.Equal(t, float64(170), resp.Rows[0]["balance"])

	require.Len(t, resp.Columns, 3)
	assert.Equal(t, "desc", resp.Columns[0].Sort)
	assert.False(t, resp.Columns[2].Sortable)
	assert.Empty(t, resp.Notices)

	rec := get(t, s, "/api/table/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDefaultSortAndPresets(t *testing.T) {
	s := testServer(t, nil)

	resp := getPage(t, s, "/api/table/stocks")
	assert.Equal(t, "ticker:desc", resp.Sort, "default sort")
	assert.Equal(t, "CCC", resp.Rows[0]["ticker"])

	resp = getPage(t, s, "/api/table/stocks?sort=")
	assert.Equal(t, "", resp.Sort, "explicitly unsorted")
	assert.Equal(t, "AAA", resp.Rows[0]["ticker"])

	resp = getPage(t, s, "/api/table/stocks?preset=price-high-low")
	assert.Equal(t, "price:desc", resp.Sort)
	assert.Equal(t, "BBB", resp.Rows[0]["ticker"])

	resp = getPage(t, s, "/api/table/stocks?preset=upside-high-low")
	assert.Equal(t, "CCC", resp.Rows[0]["ticker"])

	// The preset names a column the table lacks.
	resp = getPage(t, s, "/api/table/stocks?preset=popular")
	assert.Equal(t, "ticker:desc", resp.Sort)
	require.Len(t, resp.Notices, 1)
	assert.Contains(t, resp.Notices[0], "column not found")

	resp = getPage(t, s, "/api/table/stocks?preset=nonsense")
	assert.Equal(t, []string{`unknown sort preset "nonsense"`}, resp.Notices)

	rec := get(t, s, "/table/stocks?preset=price-high-low")
	body := rec.Body.String()
	assert.Contains(t, body, "Sort by:")
	assert.Contains(t, body, "<strong>Live Price: High to Low</strong>")
}

func TestRequestIDAndAccessLog(t *testing.T) {
	var logs bytes.Buffer
	s := testServer(t, &logs)

	rec := get(t, s, "/health")
	id := rec.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Contains(t, logs.String(), "request_id="+id)
	assert.Contains(t, logs.String(), "status=200")

	req := httptest.NewRequest(http.MethodGet, "/table/missing", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Contains(t, logs.String(), "request_id=abc-123")
	assert.Contains(t, logs.String(), "status=404")
}
