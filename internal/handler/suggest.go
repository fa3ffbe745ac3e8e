// Copyright (c) 2026 Fedorgrin Lab
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fedorgrin-lab/cloud/internal/ai"
	"github.com/fedorgrin-lab/cloud/internal/model"
	"github.com/fedorgrin-lab/cloud/internal/util"
)

// SuggestHandler exposes the AI suggestion client as a JSON endpoint for
// the create-site screen.
type SuggestHandler struct {
	client *ai.Client
}

// NewSuggestHandler creates a new SuggestHandler.
func NewSuggestHandler(client *ai.Client) *SuggestHandler {
	return &SuggestHandler{client: client}
}

// suggestRequest is the JSON body of a suggestion request.
type suggestRequest struct {
	Idea string `json:"idea"`
}

// Suggest handles POST /api/suggest. A failed suggestion is logged and
// reported as a JSON error; it never blocks the create-site form, which
// stays usable with manually entered values.
func (h *SuggestHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	idea := strings.TrimSpace(req.Idea)
	if idea == "" {
		writeJSONError(w, http.StatusBadRequest, "Idea text is required")
		return
	}

	suggestion, err := h.client.Suggest(r.Context(), idea)
	if err != nil {
		slog.Warn("suggestion request failed", "category", model.EventCategorySuggest, "error", err)
		writeJSONError(w, http.StatusBadGateway, "Suggestion failed")
		return
	}

	writeJSONSuccess(w, map[string]any{
		"suggestedName":        suggestion.SuggestedName,
		"suggestedDescription": suggestion.SuggestedDescription,
		"suggestion":           suggestion.Suggestion,
		"suggestedUrl":         util.Slugify(suggestion.SuggestedName) + ".federiko.net",
	})
}
