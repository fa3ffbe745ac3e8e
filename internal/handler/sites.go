// Copyright (c) 2026 Fedorgrin Lab
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fedorgrin-lab/cloud/internal/middleware"
	"github.com/fedorgrin-lab/cloud/internal/render"
	"github.com/fedorgrin-lab/cloud/internal/service"
)

// SitesHandler handles the workspace list and the site create/delete flows.
type SitesHandler struct {
	sites    *service.SiteService
	renderer *render.Renderer
}

// NewSitesHandler creates a new SitesHandler.
func NewSitesHandler(sites *service.SiteService, renderer *render.Renderer) *SitesHandler {
	return &SitesHandler{sites: sites, renderer: renderer}
}

// Dashboard renders the workspace list: the current user's sites, most
// recently created first.
func (h *SitesHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
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

	h.renderer.Render(w, r, "dashboard", map[string]any{
		"Title": "Cloud Workspace",
		"Sites": sites,
	})
}

// NewForm renders the create-site screen.
func (h *SitesHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "create", map[string]any{
		"Title": "Create New Site",
	})
}

// Create handles the create-site form submission. Name, URL and description
// are required here, at the caller-facing boundary; the service performs no
// validation of its own.
func (h *SitesHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, RouteSitesNew) {
		return
	}

	draft := service.SiteDraft{
		Name:        r.FormValue("name"),
		URL:         r.FormValue("url"),
		Description: r.FormValue("description"),
	}
	if draft.Name == "" || draft.URL == "" || draft.Description == "" {
		flashError(w, r, h.renderer, RouteSitesNew, "Name, URL and description are required")
		return
	}

	site, err := h.sites.Create(r.Context(), user.ID, draft)
	if err != nil {
		logAndInternalError(w, "failed to create site", "error", err, "owner_id", user.ID)
		return
	}

	flashSuccess(w, r, h.renderer, RouteRoot, site.Name+" deployed to the cloud")
}

// Delete removes a site by id and returns to the workspace. The delete is
// applied to the global collection without an ownership check, mirroring
// the current product behavior.
func (h *SitesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	if err := h.sites.Delete(r.Context(), id); err != nil {
		logAndInternalError(w, "failed to delete site", "error", err, "site_id", id)
		return
	}

	flashSuccess(w, r, h.renderer, RouteRoot, "Site deleted")
}
