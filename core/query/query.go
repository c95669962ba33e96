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

package query

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/safehtml"

	"github.com/google/tablekit/core/sorting"
	"github.com/google/tablekit/core/tables"
)

// TablePathPrefix is the path under which tables are served.
const TablePathPrefix = "/table/"

// Query represents the parsed state of a table view URL:
//
//	/table/<name>?sort=<column>:<asc|desc>&page=<n>&size=<n>&preset=<value>
//
// Page is 1-based in the URL and 0-based in PageIndex.
type Query struct {
	// Base path (e.g., "/table/rent")
	Path string

	Table string        // The table being viewed
	Sort  sorting.State // Active sort, zero when unsorted

	// SortExplicit is set when the URL carries a sort parameter. An explicit
	// empty sort clears the table's default order; a missing one keeps it.
	SortExplicit bool

	PageIndex int    // 0-based page index
	PageSize  int    // Rows per page, 0 = table default
	Preset    string // Selected sort preset value
}

// NewQuery creates a Query from a URL. Malformed parameters are ignored.
func NewQuery(u *url.URL) *Query {
	state := &Query{
		Path: u.Path,
	}

	if strings.HasPrefix(u.Path, TablePathPrefix) {
		state.Table = strings.TrimPrefix(u.Path, TablePathPrefix)
	}

	q := u.Query()

	if t := q.Get("table"); t != "" {
		state.Table = t
	}

	if q.Has("sort") {
		if s, err := sorting.ParseState(q.Get("sort")); err == nil {
			state.Sort = s
			state.SortExplicit = true
		}
	}

	// Extract page parameter, 1-based
	if pageStr := q.Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			state.PageIndex = page - 1
		}
	}

	if sizeStr := q.Get("size"); sizeStr != "" {
		if size, err := strconv.Atoi(sizeStr); err == nil && size > 0 {
			state.PageSize = size
		}
	}

	state.Preset = q.Get("preset")

	return state
}

// Clone creates a copy of the Query
func (s *Query) Clone() *Query {
	clone := *s
	return &clone
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()

	if s.Path == "" && s.Table != "" {
		u.Path = TablePathPrefix + s.Table
	}
	if s.Sort.IsSorted() || s.SortExplicit {
		q.Set("sort", s.Sort.String())
	}
	if s.PageIndex > 0 {
		q.Set("page", strconv.Itoa(s.PageIndex+1))
	}
	if s.PageSize > 0 {
		q.Set("size", strconv.Itoa(s.PageSize))
	}
	if s.Preset != "" {
		q.Set("preset", s.Preset)
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(s.ToURL())
}

// WithPage returns a URL selecting the 0-based page index
func (s *Query) WithPage(index int) safehtml.URL {
	newState := s.Clone()
	newState.PageIndex = max(index, 0)
	return newState.ToSafeURL()
}

// WithSortToggled returns a URL with the header of column clicked. Like the
// controller, a new sort starts from the first page and drops the preset.
func (s *Query) WithSortToggled(column string) safehtml.URL {
	newState := s.Clone()
	newState.Sort = sorting.Toggle(s.Sort, column)
	newState.SortExplicit = true
	newState.PageIndex = 0
	newState.Preset = ""
	return newState.ToSafeURL()
}

// WithPageSize returns a URL with a different page size. The first visible
// row stays on the selected page.
func (s *Query) WithPageSize(size int) safehtml.URL {
	newState := s.Clone()
	if s.PageSize > 0 && size > 0 {
		newState.PageIndex = s.PageIndex * s.PageSize / size
	} else {
		newState.PageIndex = 0
	}
	newState.PageSize = size
	return newState.ToSafeURL()
}

// WithPreset returns a URL selecting a sort preset. The preset's sort is
// resolved by the server, so the explicit sort is dropped.
func (s *Query) WithPreset(value string) safehtml.URL {
	newState := s.Clone()
	newState.Preset = value
	newState.Sort = sorting.State{}
	newState.SortExplicit = false
	newState.PageIndex = 0
	return newState.ToSafeURL()
}

// Apply replays the query on a controller: page size, then sort, then page,
// since a sort change returns to the first page. Without a sort parameter the
// controller keeps its default order. Rejected parts are reported
// and skipped; the rest still applies. The query is updated to the state the
// controller actually ended up in.
func (s *Query) Apply(c *tables.Controller) error {
	var errs []error
	if s.PageSize > 0 {
		if err := c.SetPageSize(s.PageSize); err != nil {
			errs = append(errs, err)
		}
	}
	if s.SortExplicit || s.Sort.IsSorted() {
		if err := c.ApplySort(s.Sort); err != nil {
			errs = append(errs, err)
		}
	}
	s.Sort = c.SortState()
	s.PageIndex = c.SetPage(s.PageIndex)
	if s.PageSize > 0 {
		s.PageSize = c.Pagination().PageSize
	}
	return errors.Join(errs...)
}
