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
	"strings"

	"github.com/spf13/cobra"

	"github.com/google/tablekit/core/paging"
)

func newWindowCommand() *cobra.Command {
	var current, total, maxVisible int

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Print the page markers of a pagination control",
		Example: `  tablekit window --current 5 --total 10
  1 ... 4 5 6 ... 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			markers := paging.ComputePageWindow(current, total, maxVisible)
			labels := make([]string, len(markers))
			for i, m := range markers {
				labels[i] = m.String()
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(labels, " "))
			return err
		},
	}
	cmd.Flags().SortFlags = false
	cmd.Flags().IntVar(&current, "current", 1, "1-based current page")
	cmd.Flags().IntVar(&total, "total", 1, "number of pages")
	cmd.Flags().IntVar(&maxVisible, "max", paging.DefaultMaxVisible, "maximum number of page numbers shown")
	return cmd
}
