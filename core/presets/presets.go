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

// Package presets holds named sort orderings offered by a sort panel, grouped
// by the feature context a table belongs to.
package presets

import (
	"fmt"

	"github.com/google/tablekit/core/sorting"
)

// Feature contexts with built-in presets.
const (
	ContextStocks    = "stocks"
	ContextBaskets   = "baskets"
	ContextReports   = "reports"
	ContextRatings   = "ratings"
	ContextConsensus = "consensus"
	ContextDefault   = "default"
)

// Option is one entry of a sort panel.
type Option struct {
	Label     string
	Value     string
	ColumnID  string
	Direction sorting.Direction
}

// State returns the sort state the option selects.
func (o Option) State() sorting.State {
	return sorting.State{ColumnID: o.ColumnID, Direction: o.Direction}.Normalized()
}

// Catalog maps contexts to their options. A context registered with no
// options hides the sort panel; an unknown context falls back to the
// fallback context.
type Catalog struct {
	options  map[string][]Option
	fallback string
}

// NewCatalog returns an empty catalog that falls back to fallback.
func NewCatalog(fallback string) *Catalog {
	return &Catalog{options: make(map[string][]Option), fallback: fallback}
}

// DefaultCatalog returns the presets of the research portal.
func DefaultCatalog() *Catalog {
	c := NewCatalog(ContextStocks)
	c.options[ContextStocks] = []Option{
		{Label: "Latest Recommendations", Value: "latest", ColumnID: "recommended_on", Direction: sorting.Descending},
		{Label: "Potential Upside: High to Low", Value: "upside-high-low", ColumnID: "upside", Direction: sorting.Descending},
		{Label: "Potential Upside: Low to High", Value: "upside-low-high", ColumnID: "upside", Direction: sorting.Ascending},
		{Label: "Live Price: High to Low", Value: "price-high-low", ColumnID: "price", Direction: sorting.Descending},
		{Label: "Live Price: Low to High", Value: "price-low-high", ColumnID: "price", Direction: sorting.Ascending},
		{Label: "Most Popular", Value: "popular", ColumnID: "followers", Direction: sorting.Descending},
	}
	c.options[ContextBaskets] = []Option{
		{Label: "Latest Baskets", Value: "latest-baskets", ColumnID: "created_on", Direction: sorting.Descending},
		{Label: "Returns: High to Low", Value: "returns-high-low", ColumnID: "returns", Direction: sorting.Descending},
		{Label: "Investment: High to Low", Value: "investment-high-low", ColumnID: "min_investment", Direction: sorting.Descending},
	}
	c.options[ContextReports] = nil
	c.options[ContextRatings] = nil
	c.options[ContextConsensus] = nil
	return c
}

// Register sets the options of a context, replacing earlier ones. Values
// must be unique within the context.
func (c *Catalog) Register(context string, opts []Option) error {
	seen := make(map[string]bool, len(opts))
	for _, o := range opts {
		if o.Value == "" {
			return fmt.Errorf("context %q: preset %q has no value", context, o.Label)
		}
		if seen[o.Value] {
			return fmt.Errorf("context %q: duplicate preset %q", context, o.Value)
		}
		seen[o.Value] = true
	}
	c.options[context] = append([]Option(nil), opts...)
	return nil
}

// Options returns the options of context.
func (c *Catalog) Options(context string) []Option {
	opts, ok := c.options[context]
	if !ok {
		opts = c.options[c.fallback]
	}
	return append([]Option(nil), opts...)
}

// Find returns the option of context with the given value.
func (c *Catalog) Find(context, value string) (Option, bool) {
	for _, o := range c.Options(context) {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// Matching returns the value of the option in context that selects state,
// or "".
func (c *Catalog) Matching(context string, state sorting.State) string {
	for _, o := range c.Options(context) {
		if o.State() == state.Normalized() {
			return o.Value
		}
	}
	return ""
}
