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

// Package cmd implements the tablekit command line.
package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/google/tablekit/core/config"
	"github.com/google/tablekit/core/logging"
	"github.com/google/tablekit/core/models"
	"github.com/google/tablekit/datasources"
	"github.com/google/tablekit/demo"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

// NewRootCommand builds the tablekit command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "tablekit",
		Short:         "Sortable, paginated tables over CSV data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(
		&opts.configPath, "config", "c", "", "YAML or TOML configuration file (default: embedded demo)",
	)
	rootCmd.PersistentFlags().StringVar(
		&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides the config file)",
	)

	rootCmd.AddCommand(
		newServeCommand(opts),
		newShowCommand(opts),
		newWindowCommand(),
	)
	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "tablekit:", err)
		return 1
	}
	return 0
}

// catalog is a loaded configuration and the tables built from it.
type catalog struct {
	cfg       *config.Config
	dataModel *models.DataModel
	demo      bool
}

// loadCatalog reads the configuration named by opts, or the embedded demo
// when there is none, and builds its tables. Lenient configurations skip
// broken tables; strict ones fail on the first.
func (opts *rootOptions) loadCatalog(cmd *cobra.Command) (*catalog, *slog.Logger, error) {
	c := &catalog{demo: opts.configPath == ""}

	var err error
	if c.demo {
		c.cfg, err = demo.Config()
	} else {
		c.cfg, err = config.Load(opts.configPath)
	}
	if err != nil {
		return nil, nil, err
	}
	if opts.logLevel != "" {
		c.cfg.LogLevel = opts.logLevel
	}
	if err := c.cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration:\n%w", err)
	}
	if err := logging.Level.SetByName(c.cfg.LogLevel); err != nil {
		return nil, nil, err
	}
	logger := logging.New(cmd.ErrOrStderr())

	if c.demo {
		c.dataModel, err = demo.LoadDataModel(logger)
		if err != nil {
			return nil, nil, err
		}
		return c, logger, nil
	}

	c.dataModel = models.NewDataModel()
	manager := datasources.NewManager(nil, logger)
	manager.RegisterLoader(datasources.NewCsvLoader())
	if err := manager.LoadTables(c.cfg, c.dataModel); err != nil && c.cfg.Strict() {
		return nil, nil, err
	}
	if err := models.AddSystemTables(c.dataModel); err != nil {
		return nil, nil, err
	}
	return c, logger, nil
}
