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
	"math"
	"strconv"
	"strings"
	"time"
)

// DateDMYName is the registry name of DateDMY.
const DateDMYName = "date-dd-mmm-yyyy"

var monthAbbrevs = map[string]time.Month{
	"Jan": time.January,
	"Feb": time.February,
	"Mar": time.March,
	"Apr": time.April,
	"May": time.May,
	"Jun": time.June,
	"Jul": time.July,
	"Aug": time.August,
	"Sep": time.September,
	"Oct": time.October,
	"Nov": time.November,
	"Dec": time.December,
}

// earliest is the sentinel for values that do not parse.
var earliest = math.Inf(-1)

// DateDMY compares "DD-Mon-YYYY" dates such as "15-Jan-2026". Values that do
// not parse resolve to negative infinity, so they come first ascending and
// last descending.
func DateDMY(a, b any) int {
	return compareFloat64s(ParseDMY(a), ParseDMY(b))
}

// ParseDMY returns the Unix time in milliseconds of a "DD-Mon-YYYY" string,
// or negative infinity when v is not a string in that shape. Month names are
// the English three-letter abbreviations with an initial capital. Days past
// the end of a month roll over into the next one.
func ParseDMY(v any) float64 {
	s, ok := v.(string)
	if !ok {
		return earliest
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return earliest
	}

	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return earliest
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil || day <= 0 {
		return earliest
	}
	month, ok := monthAbbrevs[parts[1]]
	if !ok {
		return earliest
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil || year <= 0 {
		return earliest
	}

	return float64(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).UnixMilli())
}
