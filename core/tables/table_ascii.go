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
	"fmt"
	"strings"
	"unicode/utf8"
)

// ToAscii returns the page as a bordered text table followed by a footer
// with the row range and the pagination window, the active page in brackets.
func (p Page) ToAscii() string {
	var sb strings.Builder

	headers := p.headerLabels()
	cells := p.Strings()
	colWidths := calculateColumnWidths(headers, cells)

	border := func() {
		for _, w := range colWidths {
			sb.WriteString("+")
			sb.WriteString(strings.Repeat("-", w+2))
		}
		sb.WriteString("+\n")
	}
	line := func(values []string) {
		for i, w := range colWidths {
			sb.WriteString("| ")
			sb.WriteString(padRight(values[i], w))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	border()
	line(headers)
	border()
	for _, row := range cells {
		line(row)
	}
	if len(cells) > 0 {
		border()
	}

	if p.TotalRows == 0 {
		sb.WriteString("No rows\n")
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("Rows %d-%d of %d", p.FirstRow, p.LastRow, p.TotalRows))
	if p.PageCount > 1 {
		sb.WriteString("  ")
		sb.WriteString(p.windowLabel())
	}
	sb.WriteString("\n")
	return sb.String()
}

// headerLabels returns the column headers with the sort indicator appended
// to the sorted column.
func (p Page) headerLabels() []string {
	labels := make([]string, len(p.Columns))
	for i := range p.Columns {
		label := p.Columns[i].DisplayName()
		if ind := p.Sort.DirectionOf(p.Columns[i].ID).Indicator(); ind != "" {
			label += " " + ind
		}
		labels[i] = label
	}
	return labels
}

func (p Page) windowLabel() string {
	parts := make([]string, 0, len(p.Controls.Items)+2)
	if p.Controls.CanPrevious {
		parts = append(parts, "<")
	}
	for _, item := range p.Controls.Items {
		if item.Active {
			parts = append(parts, "["+item.String()+"]")
			continue
		}
		parts = append(parts, item.String())
	}
	if p.Controls.CanNext {
		parts = append(parts, ">")
	}
	return strings.Join(parts, " ")
}

// calculateColumnWidths calculates the width needed for each column
func calculateColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = max(1, utf8.RuneCountInString(h))
	}
	for _, row := range rows {
		for i, v := range row {
			if n := utf8.RuneCountInString(v); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
