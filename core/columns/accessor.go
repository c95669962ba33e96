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
	"reflect"
	"strings"
)

// Accessor extracts a cell value from a row. A missing value is nil.
type Accessor func(Row) any

// FuncAccessor adapts a typed extractor. Rows that are not a T yield nil.
func FuncAccessor[T any](fn func(T) any) Accessor {
	return func(row Row) any {
		v, ok := row.(T)
		if !ok {
			return nil
		}
		return fn(v)
	}
}

// KeyAccessor returns an accessor for a dotted key path such as
// "tenant.name". Each segment is looked up in maps keyed by string and in
// struct fields (exported, matched case-insensitively). Pointers and
// interfaces are followed. A segment that cannot be resolved yields nil.
func KeyAccessor(path string) Accessor {
	segments := strings.Split(path, ".")
	return func(row Row) any {
		cur := row
		for _, seg := range segments {
			if cur == nil {
				return nil
			}
			cur = lookup(cur, seg)
		}
		return cur
	}
}

// lookup resolves a single key segment, with fast paths for the record
// shapes the loaders produce.
func lookup(v any, key string) any {
	switch m := v.(type) {
	case map[string]any:
		return m[key]
	case map[string]string:
		s, ok := m[key]
		if !ok {
			return nil
		}
		return s
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		mv := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil
		}
		return mv.Interface()
	case reflect.Struct:
		f := rv.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, key)
		})
		if !f.IsValid() || !f.CanInterface() {
			return nil
		}
		return f.Interface()
	}
	return nil
}
