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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/tablekit/core/sorting"
)

const yamlConfig = `
listen: ":9000"
log_level: debug
mode: development
tables:
  - name: rent
    title: Rent Collection
    source: rent.csv
    context: default
    page_size: 5
    default_sort:
      column: due
      direction: desc
    columns:
      - id: name
        header: Student Name
      - id: due
        header: Due Date
        comparator: date-dd-mmm-yyyy
      - id: action
        sortable: false
`

const tomlConfig = `
log_level = "warn"

[[tables]]
name = "stocks"
source = "stocks.csv"
delimiter = ";"
max_visible_pages = 7

[tables.default_sort]
column = "price"

[[tables.columns]]
id = "ticker"
key = "symbol"

[[tables.columns]]
id = "price"
comparator = "currency"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(writeFile(t, dir, "tablekit.yaml", yamlConfig))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Strict())
	assert.Equal(t, dir, cfg.DataSources)

	require.Len(t, cfg.Tables, 1)
	rent := cfg.Tables[0]
	assert.Equal(t, "Rent Collection", rent.Title)
	assert.Equal(t, 5, rent.PageSize)

	state, err := rent.DefaultSort.State()
	require.NoError(t, err)
	assert.Equal(t, sorting.State{ColumnID: "due", Direction: sorting.Descending}, state)

	require.Len(t, rent.Columns, 3)
	assert.True(t, rent.Columns[0].IsSortable())
	assert.Equal(t, "name", rent.Columns[0].FieldKey())
	assert.Equal(t, sorting.DateDMYName, rent.Columns[1].Comparator)
	assert.False(t, rent.Columns[2].IsSortable())
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(writeFile(t, dir, "tablekit.toml", tomlConfig))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultListen, cfg.Listen)
	assert.Equal(t, ModeProduction, cfg.Mode)
	assert.False(t, cfg.Strict())

	require.Len(t, cfg.Tables, 1)
	stocks := cfg.Tables[0]
	assert.Equal(t, ";", stocks.Delimiter)
	assert.Equal(t, 7, stocks.MaxVisiblePages)
	assert.Equal(t, "symbol", stocks.Columns[0].FieldKey())

	state, err := stocks.DefaultSort.State()
	require.NoError(t, err)
	assert.Equal(t, sorting.State{ColumnID: "price", Direction: sorting.Ascending}, state)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "tablekit.json", "{}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(writeFile(t, dir, "unknown.yaml", "listen: x\ncolour: blue\n"))
	assert.Error(t, err, "unknown yaml keys are rejected")

	_, err = Load(writeFile(t, dir, "unknown.toml", "colour = \"blue\"\n"))
	assert.Error(t, err, "unknown toml keys are rejected")

	_, err = Load(writeFile(t, dir, "broken.toml", "listen = \n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Parse([]byte(`
log_level: loud
mode: staging
tables:
  - name: a
    source: a.csv
    page_size: -1
    delimiter: "::"
    default_sort: {column: x, direction: sideways}
    columns: [{header: No ID}]
  - name: a
    source: a.csv
  - title: nameless
`), ".yml")
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		`unknown log level "loud"`,
		`unknown mode "staging"`,
		"negative page size -1",
		"is not a single character",
		"unknown sort direction",
		"columns[0]: missing id",
		`table "a": defined twice`,
		"tables[2]: missing name",
	} {
		assert.Contains(t, err.Error(), want)
	}
}
