// Copyright (c) 2026 Fedorgrin Lab
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fedorgrin-lab/cloud/internal/model"
	"github.com/fedorgrin-lab/cloud/internal/store"
)

// keySites holds the global site collection. Sites of all owners share one
// key; ownership scoping happens at read time, not via storage partitioning.
const keySites = "cloud:sites"

// SiteDraft carries the caller-supplied fields for a new site. Owner, id,
// timestamp, status and thumbnail are computed by the service and never
// accepted from the caller.
type SiteDraft struct {
	Name        string
	Description string
	URL         string
}

// SiteService manages the site collection in the key-value store.
type SiteService struct {
	kv    store.KV
	now   func() time.Time
	newID func() string
}

// NewSiteService creates a SiteService backed by kv.
func NewSiteService(kv store.KV) *SiteService {
	return &SiteService{kv: kv, now: time.Now, newID: uuid.NewString}
}

// ListFor returns the sites owned by ownerID, most recently created first.
// Create prepends to the stored collection, so preserving stored order here
// keeps the reverse-chronological guarantee.
func (s *SiteService) ListFor(ctx context.Context, ownerID string) ([]model.Site, error) {
	sites, err := s.loadSites(ctx)
	if err != nil {
		return nil, err
	}

	var owned []model.Site
	for _, site := range sites {
		if site.OwnerID == ownerID {
			owned = append(owned, site)
		}
	}
	return owned, nil
}

// Create stores a new site for ownerID and returns it. The draft URL gets
// an https:// prefix when it does not already start with a protocol.
func (s *SiteService) Create(ctx context.Context, ownerID string, draft SiteDraft) (*model.Site, error) {
	sites, err := s.loadSites(ctx)
	if err != nil {
		return nil, err
	}

	site := model.Site{
		ID:          s.newID(),
		OwnerID:     ownerID,
		Name:        draft.Name,
		URL:         NormalizeSiteURL(draft.URL),
		Description: draft.Description,
		LastUpdated: s.now(),
		Status:      model.SiteStatusActive,
		Thumbnail:   model.ThumbnailURL(draft.Name),
	}

	if err := s.saveSites(ctx, append([]model.Site{site}, sites...)); err != nil {
		return nil, err
	}

	slog.Info("site created", "category", model.EventCategorySite, "site_id", site.ID, "owner_id", ownerID, "name", site.Name)
	return &site, nil
}

// Delete removes the site with the given id from the global collection.
// Deleting an unknown id is a no-op. No ownership check is performed here;
// whether that is acceptable is an open product question, so the current
// behavior is pinned by tests rather than changed.
func (s *SiteService) Delete(ctx context.Context, id string) error {
	sites, err := s.loadSites(ctx)
	if err != nil {
		return err
	}

	kept := sites[:0]
	for _, site := range sites {
		if site.ID != id {
			kept = append(kept, site)
		}
	}
	if len(kept) == len(sites) {
		return nil
	}

	if err := s.saveSites(ctx, kept); err != nil {
		return err
	}
	slog.Info("site deleted", "category", model.EventCategorySite, "site_id", id)
	return nil
}

// NormalizeSiteURL prefixes https:// when the URL has no explicit protocol.
func NormalizeSiteURL(rawURL string) string {
	if strings.HasPrefix(rawURL, "http") {
		return rawURL
	}
	return "https://" + rawURL
}

// loadSites reads the global site collection. A missing key yields an empty
// slice; corrupt stored bytes are logged and likewise treated as empty.
func (s *SiteService) loadSites(ctx context.Context) ([]model.Site, error) {
	raw, err := s.kv.Get(ctx, keySites)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sites []model.Site
	if err := json.Unmarshal(raw, &sites); err != nil {
		slog.Warn("corrupt site collection, treating as empty", "error", err)
		return nil, nil
	}
	return sites, nil
}

func (s *SiteService) saveSites(ctx context.Context, sites []model.Site) error {
	raw, err := json.Marshal(sites)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, keySites, raw)
}
