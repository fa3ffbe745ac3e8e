// Copyright (c) 2026 Fedorgrin Lab
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/fedorgrin-lab/cloud/internal/middleware"
	"github.com/fedorgrin-lab/cloud/internal/render"
	"github.com/fedorgrin-lab/cloud/internal/service"
	"github.com/fedorgrin-lab/cloud/internal/store"
)

// ProfileHandler renders the profile and settings screens.
type ProfileHandler struct {
	sites    *service.SiteService
	events   *store.EventLog
	renderer *render.Renderer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(sites *service.SiteService, events *store.EventLog, renderer *render.Renderer) *ProfileHandler {
	return &ProfileHandler{sites: sites, events: events, renderer: renderer}
}

// Profile renders the profile screen with the user's site count.
func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
		return
	}

	sites, err := h.sites.ListFor(r.Context(), user.ID)
	if err != nil {
		logAndInternalError(w, "failed to list sites", "error", err, "owner_id", user.ID)
		return
	}

	h.renderer.Render(w, r, "profile", map[string]any{
		"Title":     "My Profile",
		"SiteCount": len(sites),
	})
}

// Settings renders the settings screen including recent event log entries.
func (h *ProfileHandler) Settings(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListRecent(r.Context(), 20)
	if err != nil {
		logAndInternalError(w, "failed to list events", "error", err)
		return
	}

	h.renderer.Render(w, r, "settings", map[string]any{
		"Title":  "Settings",
		"Events": events,
	})
}
