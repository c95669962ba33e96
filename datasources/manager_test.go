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

package datasources

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/tablekit/core/columns"
	"github.com/google/tablekit/core/config"
	"github.com/google/tablekit/core/models"
	"github.com/google/tablekit/core/sorting"
)

const rentCSV = `name,status,due_date,balance
Asha,Paid,05-Feb-2026,$0.00
Bilal,Due,15-Jan-2026,"$1,250.00"
Chen,Partial,01-Mar-2026,$300.50
`

func TestReadCSV(t *testing.T) {
	t.Run("With header", func(t *testing.T) {
		set, err := ReadCSV(strings.NewReader(rentCSV), true, ',')
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "status", "due_date", "balance"}, set.Fields)
		require.Len(t, set.Rows, 3)
		assert.Equal(t, map[string]any{
			"name": "Bilal", "status": "Due", "due_date": "15-Jan-2026", "balance": "$1,250.00",
		}, set.Rows[1])
	})

	t.Run("Without header", func(t *testing.T) {
		set, err := ReadCSV(strings.NewReader("a;1\nb;2\n"), false, ';')
		require.NoError(t, err)
		assert.Equal(t, []string{"col_0", "col_1"}, set.Fields)
		require.Len(t, set.Rows, 2)
		assert.Equal(t, map[string]any{"col_0": "a", "col_1": "1"}, set.Rows[0])
	})

	t.Run("Short records", func(t *testing.T) {
		set, err := ReadCSV(strings.NewReader("a,b,c\n1\n"), true, ',')
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": "1"}, set.Rows[0])
	})

	t.Run("Empty input", func(t *testing.T) {
		set, err := ReadCSV(strings.NewReader(""), true, ',')
		require.NoError(t, err)
		assert.Empty(t, set.Rows)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("a,b\n\"unterminated,2\n"), true, ',')
		assert.Error(t, err)
	})
}

func TestCsvLoaderFS(t *testing.T) {
	fsys := fstest.MapFS{"data/rent.csv": {Data: []byte(rentCSV)}}
	l := NewCsvLoaderFS(fsys)
	assert.Equal(t, "csv", l.SourceType())

	set, err := l.Load(map[string]string{"file_path": "data/rent.csv"})
	require.NoError(t, err)
	assert.Len(t, set.Rows, 3)

	_, err = l.Load(map[string]string{})
	assert.Error(t, err)
	_, err = l.Load(map[string]string{"file_path": "missing.csv"})
	assert.Error(t, err)
	_, err = l.Load(map[string]string{"file_path": "data/rent.csv", "delimiter": ";;"})
	assert.Error(t, err)
}

func TestHeaderFromField(t *testing.T) {
	assert.Equal(t, "Balance Due", HeaderFromField("balance_due"))
	assert.Equal(t, "Due Date", HeaderFromField("due-date"))
	assert.Equal(t, "Name", HeaderFromField("name"))
}

func TestBuildColumns(t *testing.T) {
	row := columns.Row(map[string]any{"name": "Asha", "a.b": "dotted"})

	cols := BuildColumns([]string{"name", "a.b"}, nil)
	require.Len(t, cols, 2)
	assert.Equal(t, "Name", cols[0].Header)
	assert.True(t, cols[0].Sortable)
	assert.Equal(t, "", cols[0].Comparator)
	assert.Equal(t, "dotted", cols[1].Value(row))

	no := false
	cols = BuildColumns([]string{"name"}, []config.ColumnConfig{
		{ID: "tenant", Key: "name", Comparator: sorting.GenericName},
		{ID: "action", Sortable: &no},
	})
	require.Len(t, cols, 2)
	assert.Equal(t, "Tenant", cols[0].Header)
	assert.Equal(t, "Asha", cols[0].Value(row))
	assert.False(t, cols[1].Sortable)
	assert.Nil(t, cols[1].Value(row))
}

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newTestManager() *Manager {
	m := NewManager(nil, nil)
	m.RegisterLoader(NewCsvLoader())
	return m
}

func TestManagerBuildTable(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "rent.csv", rentCSV)

	m := newTestManager()
	m.SetBaseDir(dir)

	def, err := m.BuildTable(config.TableConfig{
		Name:        "rent",
		Source:      "rent.csv",
		PageSize:    2,
		DefaultSort: config.SortConfig{Column: "due_date", Direction: "asc"},
		Columns: []config.ColumnConfig{
			{ID: "name", Header: "Student Name"},
			{ID: "due_date", Comparator: sorting.DateDMYName},
			{ID: "balance", Comparator: sorting.CurrencyName},
		},
	}, true)
	require.NoError(t, err)
	assert.Len(t, def.Rows, 3)
	assert.Equal(t, "Due Date", def.Columns[1].Header)

	c, err := def.NewController(nil)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Pagination().PageCount)
	assert.Equal(t, "Bilal", c.Page().Cells[0][0].String())

	require.NoError(t, c.SetSort("balance"))
	require.NoError(t, c.SetSort("balance"))
	assert.Equal(t, "Bilal", c.Page().Cells[0][0].String(), "largest balance first")

	// The second table over the same file reuses the cached records.
	_, err = m.BuildTable(config.TableConfig{Name: "rent2", Source: "rent.csv"}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, m.CachedSources())
	m.InvalidateAllCaches()
	assert.Equal(t, 0, m.CachedSources())
}

func TestManagerBuildTableErrors(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "rent.csv", rentCSV)
	m := newTestManager()
	m.SetBaseDir(dir)

	_, err := m.BuildTable(config.TableConfig{Name: "x", Source: "missing.csv"}, false)
	assert.Error(t, err)

	_, err = m.BuildTable(config.TableConfig{Name: "x", Source: "rent.json"}, false)
	assert.ErrorContains(t, err, `no loader registered for source type "json"`)

	bad := config.TableConfig{
		Name:    "x",
		Source:  "rent.csv",
		Columns: []config.ColumnConfig{{ID: "name", Comparator: "roman-numerals"}},
	}
	_, err = m.BuildTable(bad, true)
	assert.ErrorIs(t, err, sorting.ErrUnknownComparator)

	def, err := m.BuildTable(bad, false)
	require.NoError(t, err, "lenient tables fall back to the generic comparator")
	assert.Equal(t, "roman-numerals", def.Columns[0].Comparator)
}

func TestManagerLoadTables(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "rent.csv", rentCSV)
	writeCSV(t, dir, "scores.tsv", "team\tscore\nred\t3\nblue\t10\n")

	cfg := &config.Config{
		Mode:        config.ModeProduction,
		DataSources: dir,
		Tables: []config.TableConfig{
			{Name: "rent", Source: "rent.csv"},
			{Name: "broken", Source: "nothing.csv"},
			{Name: "scores", Source: "scores.tsv", DefaultSort: config.SortConfig{Column: "score", Direction: "desc"}},
		},
	}

	dm := models.NewDataModel()
	err := newTestManager().LoadTables(cfg, dm)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `table "broken"`)
	assert.Equal(t, []string{"rent", "scores"}, dm.TableNames())

	c, err := dm.NewController("scores", nil)
	require.NoError(t, err)
	assert.Equal(t, "blue", c.Page().Cells[0][0].String())

	cfg.Mode = config.ModeDevelopment
	err = newTestManager().LoadTables(cfg, models.NewDataModel())
	assert.ErrorContains(t, err, `table "broken"`)
}
