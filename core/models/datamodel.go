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

// Package models holds the catalog of tables a server can show.
package models

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/tablekit/core/columns"
	"github.com/google/tablekit/core/sorting"
	"github.com/google/tablekit/core/tables"
)

var (
	// ErrDuplicateTable is returned when adding a table whose name is taken.
	ErrDuplicateTable = errors.New("duplicate table")

	// ErrTableNotFound is returned for an unknown table name.
	ErrTableNotFound = errors.New("table not found")
)

// TableDef is everything needed to build a controller for one table. Rows
// are shared by every controller built from it and must not be modified.
type TableDef struct {
	Name        string
	Title       string
	Description string
	// Context selects the sort presets offered for the table.
	Context string

	Columns []columns.Column
	Rows    []columns.Row

	Options     tables.Options
	DefaultSort sorting.State
}

// DisplayTitle returns the title, falling back to the name.
func (t *TableDef) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return t.Name
}

// NewController builds a fresh controller over the table with the default
// sort applied. A nil logger keeps the table's own.
func (t *TableDef) NewController(logger *slog.Logger) (*tables.Controller, error) {
	opts := t.Options
	if logger != nil {
		opts.Logger = logger
	}
	c, err := tables.NewController(t.Columns, t.Rows, opts)
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", t.Name, err)
	}
	if t.DefaultSort.IsSorted() {
		if err := c.ApplySort(t.DefaultSort); err != nil && opts.Strict {
			return nil, fmt.Errorf("table %q: default sort: %w", t.Name, err)
		}
	}
	return c, nil
}

// DataModel is the set of tables, keyed by name.
type DataModel struct {
	tables map[string]*TableDef
}

// NewDataModel creates a new DataModel instance
func NewDataModel() *DataModel {
	return &DataModel{
		tables: make(map[string]*TableDef),
	}
}

// AddTable adds a table to the data model.
func (dm *DataModel) AddTable(def *TableDef) error {
	if def == nil || def.Name == "" {
		return errors.New("table has no name")
	}
	if _, ok := dm.tables[def.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateTable, def.Name)
	}
	dm.tables[def.Name] = def
	return nil
}

// GetTable returns a table by name
func (dm *DataModel) GetTable(name string) (*TableDef, error) {
	def, ok := dm.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, name)
	}
	return def, nil
}

// GetAllTables returns all tables in the data model
func (dm *DataModel) GetAllTables() map[string]*TableDef {
	return dm.tables
}

// TableNames returns the table names in sorted order.
func (dm *DataModel) TableNames() []string {
	names := make([]string, 0, len(dm.tables))
	for name := range dm.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewController builds a fresh controller for the named table.
func (dm *DataModel) NewController(name string, logger *slog.Logger) (*tables.Controller, error) {
	def, err := dm.GetTable(name)
	if err != nil {
		return nil, err
	}
	return def.NewController(logger)
}
