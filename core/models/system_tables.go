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

package models

import (
	"strings"

	"github.com/google/tablekit/core/columns"
	"github.com/google/tablekit/core/sorting"
	"github.com/google/tablekit/core/tables"
)

// System table name constants
const (
	ColumnsTableName = "_columns"
)

// BuildColumnsTable creates a system table containing metadata about all columns
// in the DataModel. Each row represents one column from any table.
//
// Schema:
//   - table_name: The table this column belongs to
//   - column_id: The column's ID
//   - header: The column's display name
//   - sortable: "true" or "false"
//   - comparator: The comparator name, "generic" when unset
//   - row_count: Number of rows in the table
//   - position: Column index within the table
func BuildColumnsTable(dm *DataModel) *TableDef {
	var rows []columns.Row

	for _, tableName := range dm.TableNames() {
		if isSystemTable(tableName) {
			continue
		}
		def := dm.tables[tableName]
		for position, col := range def.Columns {
			comparator := col.Comparator
			if comparator == "" {
				comparator = sorting.GenericName
			}
			rows = append(rows, map[string]any{
				"table_name": tableName,
				"column_id":  col.ID,
				"header":     col.DisplayName(),
				"sortable":   boolString(col.Sortable),
				"comparator": comparator,
				"row_count":  len(def.Rows),
				"position":   position,
			})
		}
	}

	cols := []columns.Column{
		systemColumn("table_name", "Table"),
		systemColumn("column_id", "Column"),
		systemColumn("header", "Header"),
		systemColumn("sortable", "Sortable"),
		systemColumn("comparator", "Comparator"),
		systemColumn("row_count", "Row Count"),
		systemColumn("position", "Position"),
	}

	opts := tables.DefaultOptions()
	opts.PageSize = 25
	return &TableDef{
		Name:        ColumnsTableName,
		Title:       "Columns",
		Description: "Columns of every table and how they sort.",
		Columns:     cols,
		Rows:        rows,
		Options:     opts,
		DefaultSort: sorting.State{ColumnID: "table_name", Direction: sorting.Ascending},
	}
}

func systemColumn(id, header string) columns.Column {
	return columns.Column{
		ID:       id,
		Header:   header,
		Accessor: columns.KeyAccessor(id),
		Sortable: true,
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// isSystemTable returns true if the table name is a system table
func isSystemTable(name string) bool {
	return strings.HasPrefix(name, "_")
}

// AddSystemTables creates and adds all system tables to the DataModel.
// This should be called after all user tables have been added.
func AddSystemTables(dm *DataModel) error {
	return dm.AddTable(BuildColumnsTable(dm))
}
