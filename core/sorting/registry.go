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
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/language"
)

// GenericName is the registry name of Generic. An empty name also selects it.
const GenericName = "generic"

var (
	// ErrUnknownComparator is returned when a comparator name is not registered.
	ErrUnknownComparator = errors.New("unknown comparator")

	// ErrInvalidComparator is returned when registering an empty name or a nil comparator.
	ErrInvalidComparator = errors.New("invalid comparator")

	// ErrUnparsable marks a value a format comparator could not read.
	ErrUnparsable = errors.New("unparsable value")
)

// Registry maps comparator names to comparators. Each table carries its own
// registry, so registrations never leak between tables.
type Registry struct {
	comparators map[string]Comparator
}

// NewRegistry returns a registry holding the built-in comparators.
func NewRegistry() *Registry {
	r := &Registry{comparators: make(map[string]Comparator)}
	r.comparators[GenericName] = Generic
	r.comparators[DateDMYName] = DateDMY
	r.comparators[CurrencyName] = Currency
	r.comparators[VersionName] = Version
	r.comparators[DatetimeName] = Datetime
	r.comparators[CollateName] = NewCollate(language.English)
	return r
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	c := &Registry{comparators: make(map[string]Comparator, len(r.comparators))}
	for name, cmp := range r.comparators {
		c.comparators[name] = cmp
	}
	return c
}

// Register adds cmp under name, replacing any comparator already registered
// under that name in this registry.
func (r *Registry) Register(name string, cmp Comparator) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidComparator)
	}
	if cmp == nil {
		return fmt.Errorf("%w: nil comparator for %q", ErrInvalidComparator, name)
	}
	r.comparators[name] = cmp
	return nil
}

// Lookup returns the comparator registered under name.
func (r *Registry) Lookup(name string) (Comparator, bool) {
	if name == "" {
		return Generic, true
	}
	cmp, ok := r.comparators[name]
	return cmp, ok
}

// Resolve returns the comparator registered under name. An unknown name
// returns Generic together with an error wrapping ErrUnknownComparator, so
// callers can either fail or fall back.
func (r *Registry) Resolve(name string) (Comparator, error) {
	if cmp, ok := r.Lookup(name); ok {
		return cmp, nil
	}
	return Generic, fmt.Errorf("%w %q", ErrUnknownComparator, name)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.comparators))
	for name := range r.comparators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
