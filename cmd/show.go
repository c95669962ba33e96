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

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/google/tablekit/core/presets"
	"github.com/google/tablekit/core/query"
	"github.com/google/tablekit/core/sorting"
)

type showOptions struct {
	table  string
	sort   string
	preset string
	page   int
	size   int
}

func newShowCommand(root *rootOptions) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print one page of a table",
		Example: `  tablekit show --table rent_collection --sort balance:desc --page 2
  tablekit show --table stock_recommendations --preset upside-high-low`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, root, opts)
		},
	}
	cmd.Flags().SortFlags = false
	cmd.Flags().StringVarP(&opts.table, "table", "t", "", "table to show")
	cmd.Flags().StringVarP(&opts.sort, "sort", "s", "", `sort as "column:asc" or "column:desc"; empty for none`)
	cmd.Flags().StringVar(&opts.preset, "preset", "", "named sort preset of the table's context")
	cmd.Flags().IntVarP(&opts.page, "page", "p", 1, "1-based page number")
	cmd.Flags().IntVar(&opts.size, "size", 0, "rows per page (default: the table's page size)")
	_ = cmd.MarkFlagRequired("table")
	return cmd
}

func runShow(cmd *cobra.Command, root *rootOptions, opts *showOptions) error {
	c, logger, err := root.loadCatalog(cmd)
	if err != nil {
		return err
	}
	def, err := c.dataModel.GetTable(opts.table)
	if err != nil {
		return err
	}
	ctrl, err := def.NewController(logger.With("table", def.Name))
	if err != nil {
		return err
	}

	q := &query.Query{Table: def.Name, PageIndex: opts.page - 1, PageSize: opts.size}
	switch {
	case cmd.Flags().Changed("sort"):
		q.Sort, err = sorting.ParseState(opts.sort)
		if err != nil {
			return err
		}
		q.SortExplicit = true
	case opts.preset != "":
		opt, ok := findPreset(def.Context, opts.preset)
		if !ok {
			return fmt.Errorf("table %q has no sort preset %q", def.Name, opts.preset)
		}
		q.Sort = opt.State()
	}
	if err := q.Apply(ctrl); err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), ctrl.Page().ToAscii())
	return err
}

// findPreset looks value up among the presets of a table context. Tables
// without a context have none.
func findPreset(context, value string) (presets.Option, bool) {
	if context == "" {
		return presets.Option{}, false
	}
	return presets.DefaultCatalog().Find(context, value)
}
