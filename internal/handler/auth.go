// Copyright (c) 2026 Fedorgrin Lab
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/fedorgrin-lab/cloud/internal/middleware"
	"github.com/fedorgrin-lab/cloud/internal/model"
	"github.com/fedorgrin-lab/cloud/internal/render"
	"github.com/fedorgrin-lab/cloud/internal/service"
)

// AuthHandler handles the login/register screen and its form submissions.
type AuthHandler struct {
	accounts *service.AccountService
	renderer *render.Renderer
	sm       *scs.SessionManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts *service.AccountService, renderer *render.Renderer, sm *scs.SessionManager) *AuthHandler {
	return &AuthHandler{accounts: accounts, renderer: renderer, sm: sm}
}

// LoginForm renders the combined sign-in / sign-up screen.
// Already-authenticated users are redirected to the workspace.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sm.GetString(r.Context(), middleware.SessionKeyUserID) != "" {
		http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
		return
	}
	h.renderer.Render(w, r, "login", map[string]any{
		"Title": "Sign In",
	})
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteLogin) {
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	if email == "" || password == "" {
		flashError(w, r, h.renderer, RouteLogin, "Email and password are required")
		return
	}

	user, err := h.accounts.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			flashError(w, r, h.renderer, RouteLogin, "Invalid email or password")
			return
		}
		logAndInternalError(w, "login failed", "error", err)
		return
	}

	h.startBrowserSession(w, r, user)
}

// Register handles the registration form submission. A successful
// registration logs the new user in immediately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteLogin) {
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	name := r.FormValue("name")
	if email == "" || password == "" {
		flashError(w, r, h.renderer, RouteLogin, "Email and password are required")
		return
	}

	user, err := h.accounts.Register(r.Context(), email, password, name)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			flashError(w, r, h.renderer, RouteLogin, "User already exists")
			return
		}
		logAndInternalError(w, "registration failed", "error", err)
		return
	}

	h.startBrowserSession(w, r, user)
}

// Logout clears both the persisted session record and the browser session,
// returning the user to the default screen.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Logout(r.Context()); err != nil {
		logAndInternalError(w, "logout failed", "error", err)
		return
	}
	if err := h.sm.Destroy(r.Context()); err != nil {
		logAndInternalError(w, "session destroy error", "error", err)
		return
	}
	http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
}

// startBrowserSession binds the browser cookie session to the user and
// redirects to the workspace.
func (h *AuthHandler) startBrowserSession(w http.ResponseWriter, r *http.Request, user *model.User) {
	// Regenerate session ID to prevent session fixation
	if err := h.sm.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}
	h.sm.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	flashSuccess(w, r, h.renderer, RouteRoot, "Welcome, "+user.Name)
}
