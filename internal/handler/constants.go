// Copyright (c) 2026 Fedorgrin Lab
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the HTTP handlers behind the dashboard
// screens: authentication, the workspace list, site creation and deletion,
// profile and settings, and the JSON suggestion endpoint.
package handler

// Route paths shared between handlers and the router.
const (
	RouteRoot       = "/"
	RouteLogin      = "/login"
	RouteRegister   = "/register"
	RouteLogout     = "/logout"
	RouteSites      = "/sites"
	RouteSitesNew   = "/sites/new"
	RouteSitesIDDel = "/sites/{id}/delete"
	RouteProfile    = "/profile"
	RouteSettings   = "/settings"
	RouteSuggest    = "/api/suggest"
	RouteHealth     = "/health"
)

// HeaderContentType is the Content-Type header name.
const HeaderContentType = "Content-Type"
