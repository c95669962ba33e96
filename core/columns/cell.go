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

package columns

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Kind classifies a normalised cell value.
type Kind int

const (
	// KindNull is a missing value: nil, a nil pointer, or a blank string.
	KindNull Kind = iota
	// KindNumber is any Go integer or float, or a numeric string.
	KindNumber
	// KindText is everything else, compared by its string form.
	KindText
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Cell is a normalised cell value.
type Cell struct {
	Kind   Kind
	Number float64 // set for KindNumber
	Text   string  // string form; empty for KindNull
	Raw    any
}

// String returns the display form of the cell.
func (c Cell) String() string {
	return c.Text
}

// IsNull reports whether the cell holds no value.
func (c Cell) IsNull() bool {
	return c.Kind == KindNull
}

// Normalize classifies v. Strings are trimmed before the numeric check, so
// " 42 " is the number 42, while "" and "   " are null.
func Normalize(v any) Cell {
	switch x := v.(type) {
	case nil:
		return Cell{Kind: KindNull}
	case string:
		return normalizeString(x, v)
	case float64:
		return number(x, v, strconv.FormatFloat(x, 'f', -1, 64))
	case float32:
		return number(float64(x), v, strconv.FormatFloat(float64(x), 'f', -1, 32))
	case int:
		return number(float64(x), v, strconv.Itoa(x))
	case int8, int16, int32, int64:
		i := reflect.ValueOf(x).Int()
		return number(float64(i), v, strconv.FormatInt(i, 10))
	case uint, uint8, uint16, uint32, uint64, uintptr:
		u := reflect.ValueOf(x).Uint()
		return number(float64(u), v, strconv.FormatUint(u, 10))
	case time.Time:
		return Cell{Kind: KindText, Text: x.Format(time.RFC3339), Raw: v}
	case fmt.Stringer:
		if isNilPointer(v) {
			return Cell{Kind: KindNull, Raw: v}
		}
		return normalizeString(x.String(), v)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Cell{Kind: KindNull, Raw: v}
		}
		c := Normalize(rv.Elem().Interface())
		c.Raw = v
		return c
	}
	return Cell{Kind: KindText, Text: fmt.Sprint(v), Raw: v}
}

func normalizeString(s string, raw any) Cell {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Cell{Kind: KindNull, Raw: raw}
	}
	// "NaN" and "Inf" parse as floats but read as words in a table.
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Cell{Kind: KindNumber, Number: f, Text: s, Raw: raw}
	}
	return Cell{Kind: KindText, Text: s, Raw: raw}
}

func number(f float64, raw any, text string) Cell {
	return Cell{Kind: KindNumber, Number: f, Text: text, Raw: raw}
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
