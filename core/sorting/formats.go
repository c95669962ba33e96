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
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
	"github.com/hashicorp/go-version"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/google/tablekit/core/columns"
)

// Registry names of the format-specific comparators.
const (
	CurrencyName = "currency"
	VersionName  = "version"
	DatetimeName = "datetime"
	CollateName  = "collate"
)

// Currency compares money amounts such as "$1,200.00", "-$5" or "(12.50)".
// Currency symbols, grouping commas and spaces are ignored; parentheses mean
// a negative amount. Unparsable values sort first.
func Currency(a, b any) int {
	return compareFloat64s(ParseAmount(a), ParseAmount(b))
}

// ParseAmount returns the numeric value of a money amount, or negative
// infinity when v is not one.
func ParseAmount(v any) float64 {
	c := columns.Normalize(v)
	switch c.Kind {
	case columns.KindNumber:
		return c.Number
	case columns.KindNull:
		return earliest
	}

	s := strings.TrimSpace(c.Text)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '-':
			negative = !negative
		case r == ',' || unicode.IsSpace(r) || unicode.Is(unicode.Sc, r):
		default:
			sb.WriteRune(r)
		}
	}

	f, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		return earliest
	}
	if negative {
		return -f
	}
	return f
}

// Version compares semantic versions ("1.10.0" > "1.9.2"). Values that are
// not versions sort first, ordered among themselves by Generic.
func Version(a, b any) int {
	va, errA := parseVersion(a)
	vb, errB := parseVersion(b)
	switch {
	case errA != nil && errB != nil:
		return Generic(a, b)
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return va.Compare(vb)
}

func parseVersion(v any) (*version.Version, error) {
	c := columns.Normalize(v)
	if c.IsNull() {
		return nil, ErrUnparsable
	}
	return version.NewVersion(strings.TrimSpace(c.Text))
}

// Datetime compares free-form timestamps ("2026-01-15", "Jan 15, 2026
// 10:30", "1/15/2026", Unix seconds...). Values that do not parse sort first.
func Datetime(a, b any) int {
	return compareFloat64s(parseDatetime(a), parseDatetime(b))
}

func parseDatetime(v any) float64 {
	if t, ok := v.(time.Time); ok {
		return float64(t.UnixMilli())
	}
	c := columns.Normalize(v)
	if c.IsNull() {
		return earliest
	}
	t, err := dateparse.ParseIn(strings.TrimSpace(c.Text), time.UTC)
	if err != nil {
		return earliest
	}
	return float64(t.UnixMilli())
}

// NewCollate returns a locale-aware text comparator for tag. Case is ignored
// and digit runs compare numerically ("Wing 9" < "Wing 10"). Nulls sort
// first. The returned comparator is safe for concurrent use.
func NewCollate(tag language.Tag) Comparator {
	var mu sync.Mutex
	c := collate.New(tag, collate.IgnoreCase, collate.Numeric)
	return func(a, b any) int {
		ca, cb := columns.Normalize(a), columns.Normalize(b)
		if ca.IsNull() || cb.IsNull() {
			return CompareCells(ca, cb)
		}
		mu.Lock()
		defer mu.Unlock()
		return c.CompareString(ca.Text, cb.Text)
	}
}
