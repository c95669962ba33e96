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

// Package columns describes tabular data: column descriptors, the opaque row
// records they read from, and the normalised cell values derived from them.
package columns

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateColumn is returned when two columns share an ID.
	ErrDuplicateColumn = errors.New("duplicate column id")

	// ErrEmptyColumnID is returned when a column has no ID.
	ErrEmptyColumnID = errors.New("empty column id")
)

// Row is one opaque record supplied by the caller. It is only ever read
// through a column's Accessor.
type Row = any

// Column describes one column of a table.
type Column struct {
	// ID identifies the column. It must be unique within a table and stable
	// across renders; it must not contain any of the following characters: & = : ,
	ID string

	// Header is the display label.
	Header string

	// Accessor extracts the cell value from a row.
	Accessor Accessor

	// Sortable reports whether the column participates in sorting.
	Sortable bool

	// Comparator names the comparator used to sort this column.
	// Empty selects the generic comparator.
	Comparator string
}

// Value extracts the cell value of row for this column.
func (c *Column) Value(row Row) any {
	if c.Accessor == nil || row == nil {
		return nil
	}
	return c.Accessor(row)
}

// Cell extracts and normalises the cell value of row for this column.
func (c *Column) Cell(row Row) Cell {
	return Normalize(c.Value(row))
}

// DisplayName returns the header, falling back to the ID.
func (c *Column) DisplayName() string {
	if c.Header != "" {
		return c.Header
	}
	return c.ID
}

// Validate checks that every column has a non-empty, unique ID.
// All problems are reported together.
func Validate(cols []Column) error {
	var errs []error
	seen := make(map[string]int, len(cols))
	for i, col := range cols {
		if col.ID == "" {
			errs = append(errs, fmt.Errorf("column %d: %w", i, ErrEmptyColumnID))
			continue
		}
		if first, ok := seen[col.ID]; ok {
			errs = append(errs, fmt.Errorf("column %d %q (first defined at %d): %w", i, col.ID, first, ErrDuplicateColumn))
			continue
		}
		seen[col.ID] = i
	}
	return errors.Join(errs...)
}

// Set is an ordered, immutable collection of columns keyed by ID.
type Set struct {
	columns []Column
	byID    map[string]int
}

// NewSet builds a Set from cols. Columns with an empty ID are skipped and
// only the first column of each ID is kept; use Validate to detect both.
func NewSet(cols []Column) *Set {
	s := &Set{
		columns: make([]Column, 0, len(cols)),
		byID:    make(map[string]int, len(cols)),
	}
	for _, col := range cols {
		if col.ID == "" {
			continue
		}
		if _, ok := s.byID[col.ID]; ok {
			continue
		}
		s.byID[col.ID] = len(s.columns)
		s.columns = append(s.columns, col)
	}
	return s
}

// Get returns the column with the given ID.
func (s *Set) Get(id string) (*Column, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &s.columns[i], true
}

// Index returns the position of the column with the given ID, or -1.
func (s *Set) Index(id string) int {
	if i, ok := s.byID[id]; ok {
		return i
	}
	return -1
}

// Columns returns a copy of the columns in definition order.
func (s *Set) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// IDs returns the column IDs in definition order.
func (s *Set) IDs() []string {
	ids := make([]string, len(s.columns))
	for i, col := range s.columns {
		ids[i] = col.ID
	}
	return ids
}

// Len returns the number of columns.
func (s *Set) Len() int {
	return len(s.columns)
}
