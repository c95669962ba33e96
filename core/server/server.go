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

// Package server serves the table catalog over HTTP: an HTML landing page,
// one HTML page per table and a JSON API returning the same page snapshot.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/google/tablekit/core/logging"
	"github.com/google/tablekit/core/models"
	"github.com/google/tablekit/core/presets"
	"github.com/google/tablekit/core/query"
	"github.com/google/tablekit/core/rendering"
	"github.com/google/tablekit/core/tables"
	"github.com/google/tablekit/core/views"
)

// Server represents the application server with all its dependencies
type Server struct {
	dataModel *models.DataModel
	renderer  *rendering.TableRenderer
	presets   *presets.Catalog
	log       *slog.Logger

	title    string
	subtitle string
}

// NewServer creates a new server with the given data model. A nil catalog
// offers no sort presets; a nil logger discards.
func NewServer(dataModel *models.DataModel, catalog *presets.Catalog, logger *slog.Logger) (*Server, error) {
	renderer, err := rendering.NewTableRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if catalog == nil {
		catalog = presets.NewCatalog("")
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &Server{
		dataModel: dataModel,
		renderer:  renderer,
		presets:   catalog,
		log:       logger,
		title:     "Tables",
	}, nil
}

// SetLanding sets the landing page title and subtitle.
func (s *Server) SetLanding(title, subtitle string) {
	s.title = title
	s.subtitle = subtitle
}

// Router returns the HTTP handler of the server.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestID, s.accessLog)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/", s.handleLanding).Methods(http.MethodGet)
	r.HandleFunc(query.TablePathPrefix+"{name}", s.handleTable).Methods(http.MethodGet)
	r.HandleFunc("/api"+query.TablePathPrefix+"{name}", s.handleTableAPI).Methods(http.MethodGet)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "OK")
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	vm := views.LandingViewModel{
		Title:    s.title,
		Subtitle: s.subtitle,
	}
	for _, name := range s.dataModel.TableNames() {
		def, err := s.dataModel.GetTable(name)
		if err != nil {
			continue
		}
		vm.Tables = append(vm.Tables, views.TableInfo{
			Name:        name,
			Title:       def.DisplayTitle(),
			Description: def.Description,
			URL:         (&query.Query{Table: name}).ToSafeURL(),
			RecordCount: len(def.Rows),
			ColumnCount: len(def.Columns),
			Context:     def.Context,
		})
	}

	s.writeHTML(w, r, func(out io.Writer) error { return s.renderer.RenderLanding(out, vm) })
}

// writeHTML renders a page. The renderer writes nothing on failure, so the
// client gets a plain 500 instead of a truncated page.
func (s *Server) writeHTML(w http.ResponseWriter, r *http.Request, render func(io.Writer) error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render(w); err != nil {
		requestLogger(r.Context(), s.log).Error("template rendering error", "error", err)
		http.Error(w, "rendering failed", http.StatusInternalServerError)
	}
}

// tableRequest is a table request after its query was replayed on a fresh
// controller.
type tableRequest struct {
	def        *models.TableDef
	q          *query.Query
	controller *tables.Controller
	notices    []string
}

// prepareTable resolves the table, builds a controller for this request and
// applies the query. Rejected query parts become notices; only an unknown
// table or a broken table definition is an error.
func (s *Server) prepareTable(w http.ResponseWriter, r *http.Request) (*tableRequest, bool) {
	log := requestLogger(r.Context(), s.log)
	name := mux.Vars(r)["name"]

	def, err := s.dataModel.GetTable(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil, false
	}

	c, err := def.NewController(log.With("table", name))
	if err != nil {
		log.Error("building controller", "table", name, "error", err)
		http.Error(w, "table is misconfigured", http.StatusInternalServerError)
		return nil, false
	}

	q := query.NewQuery(r.URL)
	q.Table = name

	tr := &tableRequest{def: def, q: q, controller: c}

	if q.Preset != "" && !q.SortExplicit {
		if opt, ok := s.findPreset(def, q.Preset); ok {
			q.Sort = opt.State()
		} else {
			tr.notices = append(tr.notices, fmt.Sprintf("unknown sort preset %q", q.Preset))
			q.Preset = ""
		}
	}
	if err := q.Apply(c); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			tr.notices = append(tr.notices, line)
		}
	}
	return tr, true
}

func (s *Server) presetOptions(def *models.TableDef) []presets.Option {
	if def.Context == "" {
		return nil
	}
	return s.presets.Options(def.Context)
}

func (s *Server) findPreset(def *models.TableDef, value string) (presets.Option, bool) {
	for _, o := range s.presetOptions(def) {
		if o.Value == value {
			return o, true
		}
	}
	return presets.Option{}, false
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	tr, ok := s.prepareTable(w, r)
	if !ok {
		return
	}

	vm := views.BuildViewModel(tr.def.DisplayTitle(), tr.def.Description, tr.controller, tr.q, s.presetOptions(tr.def))
	vm.Notices = tr.notices

	s.writeHTML(w, r, func(out io.Writer) error { return s.renderer.Render(out, vm) })
}
