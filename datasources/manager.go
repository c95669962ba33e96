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

package datasources

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/tablekit/core/config"
	"github.com/google/tablekit/core/logging"
	"github.com/google/tablekit/core/models"
	"github.com/google/tablekit/core/sorting"
	"github.com/google/tablekit/core/tables"
)

// Manager handles loading and caching of data sources and builds table
// definitions from configuration.
type Manager struct {
	mu sync.RWMutex

	// Cached record sets indexed by source type and resolved path
	records map[string]*RecordSet

	// Registered loaders indexed by source type
	loaders map[string]DataSourceLoader

	// Base directory for resolving relative paths
	baseDir string

	registry *sorting.Registry
	log      *slog.Logger
}

// NewManager creates a new data source manager. Tables it builds resolve
// comparators in registry, nil meaning the built-in set.
func NewManager(registry *sorting.Registry, logger *slog.Logger) *Manager {
	if registry == nil {
		registry = sorting.NewRegistry()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Manager{
		records:  make(map[string]*RecordSet),
		loaders:  make(map[string]DataSourceLoader),
		registry: registry,
		log:      logger,
	}
}

// RegisterLoader registers a data source loader for a specific source type.
// If a loader is already registered for this type, it will be replaced.
func (m *Manager) RegisterLoader(loader DataSourceLoader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[loader.SourceType()] = loader
}

// SetBaseDir sets the directory relative source paths are resolved in.
func (m *Manager) SetBaseDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseDir = dir
}

// SourceTypeFor returns the source type for a source path by extension.
func SourceTypeFor(source string) string {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".csv", ".tsv":
		return "csv"
	}
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(source)), ".")
}

// LoadData loads records through the loader registered for sourceType,
// caching the result by resolved file path.
func (m *Manager) LoadData(sourceType string, config map[string]string) (*RecordSet, error) {
	m.mu.RLock()
	loader, hasLoader := m.loaders[sourceType]
	baseDir := m.baseDir
	m.mu.RUnlock()

	if !hasLoader {
		return nil, fmt.Errorf("no loader registered for source type %q", sourceType)
	}

	config = m.resolveConfigPaths(config, baseDir)
	key := cacheKey(sourceType, config)

	m.mu.RLock()
	cached, ok := m.records[key]
	m.mu.RUnlock()
	if ok {
		return cached, nil
	}

	records, err := loader.Load(config)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.records[key] = records
	m.mu.Unlock()

	m.log.Debug("source loaded", "type", sourceType, "path", config["file_path"], "rows", len(records.Rows))
	return records, nil
}

func cacheKey(sourceType string, config map[string]string) string {
	keys := make([]string, 0, len(config))
	for k := range config {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString(sourceType)
	for _, k := range keys {
		sb.WriteString("|" + k + "=" + config[k])
	}
	return sb.String()
}

// resolveConfigPaths resolves relative file paths in config to absolute paths.
func (m *Manager) resolveConfigPaths(config map[string]string, baseDir string) map[string]string {
	if baseDir == "" {
		return config
	}

	resolved := make(map[string]string, len(config))
	for k, v := range config {
		if k == "file_path" && v != "" && !filepath.IsAbs(v) {
			resolved[k] = filepath.Join(baseDir, v)
		} else {
			resolved[k] = v
		}
	}
	return resolved
}

// InvalidateAllCaches removes all sources from the cache.
func (m *Manager) InvalidateAllCaches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]*RecordSet)
}

// CachedSources returns the number of cached record sets.
func (m *Manager) CachedSources() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// BuildTable loads the rows of one configured table and builds its
// definition.
func (m *Manager) BuildTable(tc config.TableConfig, strict bool) (*models.TableDef, error) {
	sourceConfig := map[string]string{
		"file_path": tc.Source,
	}
	if tc.NoHeader {
		sourceConfig["has_header"] = "false"
	}
	switch {
	case tc.Delimiter != "":
		sourceConfig["delimiter"] = tc.Delimiter
	case strings.EqualFold(filepath.Ext(tc.Source), ".tsv"):
		sourceConfig["delimiter"] = "\t"
	}

	records, err := m.LoadData(SourceTypeFor(tc.Source), sourceConfig)
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", tc.Name, err)
	}

	defaultSort, err := tc.DefaultSort.State()
	if err != nil {
		return nil, fmt.Errorf("table %q: default sort: %w", tc.Name, err)
	}

	opts := tables.DefaultOptions()
	opts.PageSize = tc.PageSize
	opts.MaxVisiblePages = tc.MaxVisiblePages
	opts.DisablePagination = tc.DisablePagination
	opts.DisableSorting = tc.DisableSorting
	opts.Strict = strict
	opts.Registry = m.registry
	opts.Logger = m.log.With("table", tc.Name)

	def := &models.TableDef{
		Name:        tc.Name,
		Title:       tc.Title,
		Description: tc.Description,
		Context:     tc.Context,
		Columns:     BuildColumns(records.Fields, tc.Columns),
		Rows:        records.Rows,
		Options:     opts,
		DefaultSort: defaultSort,
	}

	// Building a controller once surfaces configuration errors at startup.
	if _, err := def.NewController(nil); err != nil {
		return nil, err
	}
	return def, nil
}

// LoadTables builds every configured table into dm. In strict mode the
// first failing table aborts loading; otherwise failing tables are logged
// and skipped, and all failures are returned together.
func (m *Manager) LoadTables(cfg *config.Config, dm *models.DataModel) error {
	if cfg.DataSources != "" {
		m.SetBaseDir(cfg.DataSources)
	}
	var errs []error
	for _, tc := range cfg.Tables {
		def, err := m.BuildTable(tc, cfg.Strict())
		if err == nil {
			err = dm.AddTable(def)
		}
		if err != nil {
			if cfg.Strict() {
				return err
			}
			m.log.Warn("table skipped", "table", tc.Name, "error", err)
			errs = append(errs, err)
			continue
		}
		m.log.Info("table loaded", "table", tc.Name, "rows", len(def.Rows), "columns", len(def.Columns))
	}
	return errors.Join(errs...)
}
