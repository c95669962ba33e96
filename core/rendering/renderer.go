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

// Package rendering turns view models into HTML with contextually escaped
// templates.
package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"io"

	"github.com/google/safehtml/template"

	"github.com/google/tablekit/core/views"
)

//go:embed templates/*
var templateFS embed.FS

// Embedded page templates.
const (
	tablePage   = "table.html"
	landingPage = "landing.html"
)

// TableRenderer renders the embedded pages. It is safe for concurrent use.
type TableRenderer struct {
	pages map[string]*template.Template
}

// NewTableRenderer parses every embedded page.
func NewTableRenderer() (*TableRenderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	r := &TableRenderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{tablePage, landingPage} {
		t, err := template.New(name).ParseFS(trustedFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes the page of one table.
func (r *TableRenderer) Render(w io.Writer, vm views.TableViewModel) error {
	return r.execute(w, tablePage, vm)
}

// RenderLanding writes the table index.
func (r *TableRenderer) RenderLanding(w io.Writer, vm views.LandingViewModel) error {
	return r.execute(w, landingPage, vm)
}

// execute buffers the output so that w receives nothing from a failed
// template.
func (r *TableRenderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.pages[name].Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
