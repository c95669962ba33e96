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

// Package config loads the server and table configuration from YAML or TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"

	"github.com/google/tablekit/core/logging"
	"github.com/google/tablekit/core/sorting"
)

// Modes.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Defaults applied by Load.
const (
	DefaultListen   = ":8097"
	DefaultLogLevel = "info"
)

// ErrUnsupportedFormat is returned for a config file that is neither YAML
// nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config is the top-level configuration.
type Config struct {
	Listen   string `yaml:"listen" toml:"listen"`
	LogLevel string `yaml:"log_level" toml:"log_level"`
	// Mode "development" makes table configuration errors fatal.
	Mode string `yaml:"mode" toml:"mode"`
	// DataSources is the directory relative CSV sources are resolved in.
	// Empty means the directory of the config file.
	DataSources string        `yaml:"data_sources" toml:"data_sources"`
	Tables      []TableConfig `yaml:"tables" toml:"tables"`
}

// TableConfig describes one table.
type TableConfig struct {
	Name        string `yaml:"name" toml:"name"`
	Title       string `yaml:"title" toml:"title"`
	Description string `yaml:"description" toml:"description"`
	// Source is the CSV file holding the rows.
	Source    string `yaml:"source" toml:"source"`
	Delimiter string `yaml:"delimiter" toml:"delimiter"`
	NoHeader  bool   `yaml:"no_header" toml:"no_header"`
	// Context selects the sort presets.
	Context string `yaml:"context" toml:"context"`

	PageSize          int  `yaml:"page_size" toml:"page_size"`
	MaxVisiblePages   int  `yaml:"max_visible_pages" toml:"max_visible_pages"`
	DisablePagination bool `yaml:"disable_pagination" toml:"disable_pagination"`
	DisableSorting    bool `yaml:"disable_sorting" toml:"disable_sorting"`

	DefaultSort SortConfig     `yaml:"default_sort" toml:"default_sort"`
	Columns     []ColumnConfig `yaml:"columns" toml:"columns"`
}

// SortConfig is a sort state in configuration.
type SortConfig struct {
	Column    string `yaml:"column" toml:"column"`
	Direction string `yaml:"direction" toml:"direction"`
}

// State converts the configuration to a sort state.
func (s SortConfig) State() (sorting.State, error) {
	if s.Column == "" {
		return sorting.State{}, nil
	}
	dir := sorting.Ascending
	if s.Direction != "" {
		d, err := sorting.ParseDirection(s.Direction)
		if err != nil {
			return sorting.State{}, err
		}
		dir = d
	}
	return sorting.State{ColumnID: s.Column, Direction: dir}.Normalized(), nil
}

// ColumnConfig describes one column.
type ColumnConfig struct {
	ID     string `yaml:"id" toml:"id"`
	Header string `yaml:"header" toml:"header"`
	// Key is the record field the column reads, defaulting to ID.
	Key string `yaml:"key" toml:"key"`
	// Sortable defaults to true.
	Sortable   *bool  `yaml:"sortable" toml:"sortable"`
	Comparator string `yaml:"comparator" toml:"comparator"`
}

// IsSortable reports whether the column sorts, true when unset.
func (c ColumnConfig) IsSortable() bool {
	return c.Sortable == nil || *c.Sortable
}

// FieldKey returns the record field the column reads.
func (c ColumnConfig) FieldKey() string {
	if c.Key != "" {
		return c.Key
	}
	return c.ID
}

// Load reads a config file, choosing the decoder by extension, and applies
// defaults. The result is not validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.DataSources == "" {
		cfg.DataSources = filepath.Dir(path)
	}
	return cfg, nil
}

// Parse decodes data in the format named by ext (".yaml", ".yml" or ".toml")
// and applies defaults.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := &Config{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("parsing toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parsing toml: unknown keys %v", undecoded)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Mode == "" {
		c.Mode = ModeProduction
	}
}

// Strict reports whether table configuration errors are fatal.
func (c *Config) Strict() bool {
	return c.Mode == ModeDevelopment
}

// Validate reports every problem in the configuration.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Mode != ModeDevelopment && c.Mode != ModeProduction {
		errs = append(errs, fmt.Errorf("unknown mode %q", c.Mode))
	}
	seen := make(map[string]bool, len(c.Tables))
	for i, t := range c.Tables {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("tables[%d]: missing name", i))
			continue
		}
		if seen[t.Name] {
			errs = append(errs, fmt.Errorf("table %q: defined twice", t.Name))
		}
		seen[t.Name] = true
		if err := t.validate(); err != nil {
			errs = append(errs, fmt.Errorf("table %q: %w", t.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (t TableConfig) validate() error {
	var errs []error
	if t.Source == "" {
		errs = append(errs, errors.New("missing source"))
	}
	if t.PageSize < 0 {
		errs = append(errs, fmt.Errorf("negative page size %d", t.PageSize))
	}
	if t.MaxVisiblePages < 0 {
		errs = append(errs, fmt.Errorf("negative max visible pages %d", t.MaxVisiblePages))
	}
	if len([]rune(t.Delimiter)) > 1 {
		errs = append(errs, fmt.Errorf("delimiter %q is not a single character", t.Delimiter))
	}
	if _, err := t.DefaultSort.State(); err != nil {
		errs = append(errs, fmt.Errorf("default sort: %w", err))
	}
	for i, col := range t.Columns {
		if col.ID == "" {
			errs = append(errs, fmt.Errorf("columns[%d]: missing id", i))
		}
	}
	return errors.Join(errs...)
}
