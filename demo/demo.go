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

// Package demo provides the embedded catalog used when tablekit runs
// without a configuration file.
package demo

import (
	"embed"
	"fmt"
	"log/slog"

	"github.com/google/tablekit/core/config"
	"github.com/google/tablekit/core/models"
	"github.com/google/tablekit/datasources"
)

// Landing page texts of the demo.
const (
	Title    = "Tablekit Demo"
	Subtitle = "Rent collection, stock picks and more, sortable and paginated."
)

//go:embed data/*.csv
var dataFS embed.FS

//go:embed tablekit.yaml
var configYAML []byte

// Config returns the demo configuration. Its sources are paths inside the
// embedded data directory.
func Config() (*config.Config, error) {
	cfg, err := config.Parse(configYAML, ".yaml")
	if err != nil {
		return nil, fmt.Errorf("demo config: %w", err)
	}
	return cfg, nil
}

// NewManager returns a data source manager reading the embedded CSV files.
func NewManager(logger *slog.Logger) *datasources.Manager {
	m := datasources.NewManager(nil, logger)
	m.RegisterLoader(datasources.NewCsvLoaderFS(dataFS))
	return m
}

// LoadDataModel builds the demo catalog, including the system tables.
func LoadDataModel(logger *slog.Logger) (*models.DataModel, error) {
	cfg, err := Config()
	if err != nil {
		return nil, err
	}
	dm := models.NewDataModel()
	if err := NewManager(logger).LoadTables(cfg, dm); err != nil {
		return nil, err
	}
	if err := models.AddSystemTables(dm); err != nil {
		return nil, err
	}
	return dm, nil
}
