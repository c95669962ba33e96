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
	"errors"
	"log/slog"

	"github.com/google/tablekit/core/paging"
	"github.com/google/tablekit/core/sorting"
)

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 10

// Common errors returned by the controller.
var (
	// ErrColumnNotFound is returned when a column ID is not part of the table.
	ErrColumnNotFound = errors.New("column not found")

	// ErrColumnNotSortable is returned when sorting a column that is not sortable.
	ErrColumnNotSortable = errors.New("column is not sortable")

	// ErrSortingDisabled is returned when sorting a table with sorting turned off.
	ErrSortingDisabled = errors.New("sorting is disabled")

	// ErrInvalidPageSize is returned for a page size below 1.
	ErrInvalidPageSize = errors.New("invalid page size")

	// ErrComparatorFailed is returned when a comparator or accessor panics
	// while sorting. The previous sort state is kept.
	ErrComparatorFailed = errors.New("comparator failed")
)

// Options configures a Controller. The zero value paginates and sorts with
// the default page size.
type Options struct {
	// PageSize is the number of rows per page. Zero means DefaultPageSize.
	PageSize int

	// DisablePagination shows all rows on one page.
	DisablePagination bool

	// DisableSorting rejects SetSort and ApplySort with ErrSortingDisabled.
	DisableSorting bool

	// MaxVisiblePages is the number of page markers in the pagination control.
	// Zero means paging.DefaultMaxVisible.
	MaxVisiblePages int

	// Strict makes configuration errors fail NewController instead of being
	// logged and replaced by a safe default. Use it in development.
	Strict bool

	// Registry resolves column comparators. Nil means sorting.NewRegistry().
	Registry *sorting.Registry

	// Logger receives configuration and usage warnings. Nil discards them.
	Logger *slog.Logger

	// OnPageChange is called with the new 0-based page index after it changes.
	OnPageChange func(pageIndex int)

	// OnSortChange is called with the new sort state after it changes.
	OnSortChange func(state sorting.State)
}

// DefaultOptions returns paginated, sortable, lenient options with every
// default spelled out.
func DefaultOptions() Options {
	return Options{
		PageSize:        DefaultPageSize,
		MaxVisiblePages: paging.DefaultMaxVisible,
	}
}
