// Copyright (c) 2026 Fedorgrin Lab
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"fmt"
	"net/url"
	"time"
)

// Site status values. New sites are always created active; no transition
// logic exists in the current product surface.
const (
	SiteStatusActive    = "active"
	SiteStatusDeploying = "deploying"
	SiteStatusOffline   = "offline"
)

// Site represents a user-owned hosted project. Only metadata is stored;
// no deployment artifacts exist behind it.
type Site struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	LastUpdated time.Time `json:"lastUpdated"`
	Status      string    `json:"status"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
}

// IsValidSiteStatus reports whether s is a known site status.
func IsValidSiteStatus(s string) bool {
	switch s {
	case SiteStatusActive, SiteStatusDeploying, SiteStatusOffline:
		return true
	}
	return false
}

// ThumbnailURL derives a deterministic placeholder thumbnail from the site name.
func ThumbnailURL(name string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/400/300", url.PathEscape(name))
}
