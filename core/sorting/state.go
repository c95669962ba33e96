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

package sorting

import (
	"fmt"
	"strings"
)

// Direction specifies the direction of sorting.
type Direction int

const (
	// None indicates no sorting.
	None Direction = iota
	// Ascending indicates ascending sort order.
	Ascending
	// Descending indicates descending sort order.
	Descending
)

// String returns the URL keyword for a Direction.
func (d Direction) String() string {
	switch d {
	case None:
		return "none"
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return fmt.Sprintf("Unknown(%d)", int(d))
	}
}

// Indicator returns the arrow shown next to a sorted column header.
func (d Direction) Indicator() string {
	switch d {
	case Ascending:
		return "▲"
	case Descending:
		return "▼"
	default:
		return ""
	}
}

// ParseDirection parses "asc", "ascending", "desc", "descending", "none"
// or "" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return None, fmt.Errorf("unknown sort direction %q", s)
}

// State is the active sort: at most one column in one direction.
type State struct {
	// ColumnID is the sorted column, empty when unsorted.
	ColumnID string
	// Direction is the sort direction.
	Direction Direction
}

// IsSorted returns true if this state represents an active sort.
func (s State) IsSorted() bool {
	return s.ColumnID != "" && s.Direction != None
}

// Normalized enforces that an empty column has no direction and that a
// column without direction is dropped.
func (s State) Normalized() State {
	if !s.IsSorted() {
		return State{}
	}
	return s
}

// String returns "column:dir", or "" when unsorted.
func (s State) String() string {
	if !s.IsSorted() {
		return ""
	}
	return s.ColumnID + ":" + s.Direction.String()
}

// ParseState parses the "column:dir" form produced by String. A bare column
// name means ascending.
func ParseState(s string) (State, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return State{}, nil
	}
	col, dirStr, found := strings.Cut(s, ":")
	if col == "" {
		return State{}, fmt.Errorf("sort %q has no column", s)
	}
	if !found {
		return State{ColumnID: col, Direction: Ascending}, nil
	}
	dir, err := ParseDirection(dirStr)
	if err != nil {
		return State{}, err
	}
	return State{ColumnID: col, Direction: dir}.Normalized(), nil
}

// Toggle returns the state after a header click on columnID: the same column
// cycles none -> ascending -> descending -> none, a different column starts
// at ascending.
func Toggle(current State, columnID string) State {
	current = current.Normalized()
	if current.ColumnID != columnID {
		return State{ColumnID: columnID, Direction: Ascending}
	}
	switch current.Direction {
	case Ascending:
		return State{ColumnID: columnID, Direction: Descending}
	default:
		return State{}
	}
}

// DirectionOf returns the direction columnID is sorted in under s.
func (s State) DirectionOf(columnID string) Direction {
	if s.IsSorted() && s.ColumnID == columnID {
		return s.Direction
	}
	return None
}
