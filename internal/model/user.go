// Copyright (c) 2026 Fedorgrin Lab
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain records persisted by the dashboard:
// User accounts and the Site projects they own.
package model

import (
	"fmt"
	"net/url"
	"strings"
)

// User represents a registered dashboard account.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"passwordHash"`
	Avatar       string `json:"avatar"`
}

// DisplayName returns the name to show for the user, falling back to the
// local part of the email when no name was supplied at registration.
func DisplayName(email, name string) string {
	if name != "" {
		return name
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}

// AvatarURL derives a deterministic placeholder avatar from the email.
func AvatarURL(email string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/100/100", url.PathEscape(email))
}
