// Copyright (c) 2026 Fedorgrin Lab
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render loads the embedded HTML templates and executes them with
// common request context (current user, flash messages) applied.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/fedorgrin-lab/cloud/internal/middleware"
)

// Session keys for flash messages.
const (
	sessionKeyFlash     = "flash"
	sessionKeyFlashType = "flash_type"
)

// Renderer executes named page templates against the shared layout.
type Renderer struct {
	templates *template.Template
	sm        *scs.SessionManager
}

// New parses all templates from templatesFS.
func New(templatesFS fs.FS, sm *scs.SessionManager) (*Renderer, error) {
	funcs := template.FuncMap{
		"formatTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 15:04")
		},
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templatesFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	return &Renderer{templates: tmpl, sm: sm}, nil
}

// SetFlash stores a one-shot flash message in the session.
func (rn *Renderer) SetFlash(r *http.Request, message, messageType string) {
	rn.sm.Put(r.Context(), sessionKeyFlash, message)
	rn.sm.Put(r.Context(), sessionKeyFlashType, messageType)
}

// Render executes the named page template. data may be nil; the current
// user and any pending flash message are merged in before execution.
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = make(map[string]any)
	}

	if user := middleware.GetUser(r); user != nil {
		data["User"] = user
	}

	if flash := rn.sm.PopString(r.Context(), sessionKeyFlash); flash != "" {
		data["Flash"] = flash
		flashType := rn.sm.PopString(r.Context(), sessionKeyFlashType)
		if flashType == "" {
			flashType = "info"
		}
		data["FlashType"] = flashType
	}

	// Render to a buffer first so template errors produce a clean 500
	// instead of a half-written page.
	var buf bytes.Buffer
	if err := rn.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("template execution failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
