// Copyright 2025 Dask
// Licensed under the EUPL-1.2

// Package templates renders the HTML views. Every page template is
// combined with the shared base layout at startup, so a broken template
// fails at boot rather than on first request.
package templates

import (
	"bytes"
	"crypto/md5" //nolint:gosec // gravatar addresses the service, not security
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed views/*.html
var viewsFS embed.FS

var funcs = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("January 2, 2006")
	},
	"gravatar": func(email string, size int) string {
		sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email)))) //nolint:gosec
		return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=%d&d=retro", sum, size)
	},
}

// Renderer implements echo.Renderer on top of the embedded views.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses all embedded views. Each page gets its own template set so
// pages can override the base layout's blocks independently.
func New() (*Renderer, error) {
	base, err := viewsFS.ReadFile("views/base.html")
	if err != nil {
		return nil, fmt.Errorf("failed to read base layout: %w", err)
	}

	entries, err := fs.Glob(viewsFS, "views/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, entry := range entries {
		name := strings.TrimSuffix(strings.TrimPrefix(entry, "views/"), ".html")
		if name == "base" {
			continue
		}

		ts, err := template.New("base").Funcs(funcs).Parse(string(base))
		if err != nil {
			return nil, fmt.Errorf("failed to parse base layout: %w", err)
		}
		if _, err := ts.ParseFS(viewsFS, entry); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", entry, err)
		}
		pages[name] = ts
	}

	return &Renderer{pages: pages}, nil
}

// Render writes the named page into w. Rendering goes through a buffer
// so a template error never leaks a half-written page.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	ts, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := ts.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	_, err := buf.WriteTo(w)
	return err
}
