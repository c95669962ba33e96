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

// Package datasources loads table rows from external sources and turns
// table configuration into catalog entries.
package datasources

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/google/tablekit/core/columns"
	"github.com/google/tablekit/core/config"
)

// RecordSet is the result of loading a source: the field names in source
// order and one map[string]any record per row.
type RecordSet struct {
	Fields []string
	Rows   []columns.Row
}

// DataSourceLoader is the interface that all data source loaders must implement.
// Users can register additional loaders for databases, APIs, or custom formats.
type DataSourceLoader interface {
	// SourceType returns the type identifier (e.g., "csv").
	SourceType() string

	// Load retrieves the records described by config.
	Load(config map[string]string) (*RecordSet, error)
}

// HeaderFromField derives a display header from a field name:
// "balance_due" becomes "Balance Due".
func HeaderFromField(field string) string {
	words := strings.FieldsFunc(field, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// BuildColumns creates column descriptors for a record set. Without column
// configuration every field becomes a sortable column with the generic
// comparator.
func BuildColumns(fields []string, cfgs []config.ColumnConfig) []columns.Column {
	if len(cfgs) == 0 {
		cols := make([]columns.Column, 0, len(fields))
		for _, f := range fields {
			cols = append(cols, columns.Column{
				ID:       f,
				Header:   HeaderFromField(f),
				Accessor: recordAccessor(f),
				Sortable: true,
			})
		}
		return cols
	}

	cols := make([]columns.Column, 0, len(cfgs))
	for _, c := range cfgs {
		header := c.Header
		if header == "" {
			header = HeaderFromField(c.ID)
		}
		cols = append(cols, columns.Column{
			ID:         c.ID,
			Header:     header,
			Accessor:   recordAccessor(c.FieldKey()),
			Sortable:   c.IsSortable(),
			Comparator: c.Comparator,
		})
	}
	return cols
}

// recordAccessor reads key from flat records, where field names may contain
// dots, and falls back to a dotted path for nested ones.
func recordAccessor(key string) columns.Accessor {
	nested := columns.KeyAccessor(key)
	return func(row columns.Row) any {
		if m, ok := row.(map[string]any); ok {
			if v, ok := m[key]; ok {
				return v
			}
		}
		return nested(row)
	}
}
