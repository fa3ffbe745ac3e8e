// Copyright (c) 2026 Fedorgrin Lab
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ai wraps the external generative text service that produces site
// metadata suggestions. One request per call, no retry, no caching; every
// failure surfaces as ErrSuggestionFailed so callers can degrade gracefully.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	httpTimeout    = 60 * time.Second
)

// ErrSuggestionFailed is returned for any transport failure, non-JSON
// response, or response missing a required field.
var ErrSuggestionFailed = errors.New("ai: suggestion failed")

// Suggestion is the structured triple produced from a free-text site idea.
type Suggestion struct {
	SuggestedName        string `json:"suggestedName"`
	SuggestedDescription string `json:"suggestedDescription"`
	Suggestion           string `json:"suggestion"`
}

// Client calls the Gemini generateContent API. A Client with an empty API
// key is valid but fail-closed: every Suggest call returns
// ErrSuggestionFailed without touching the network.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	httpc   *http.Client
}

// NewClient creates a suggestion client. model falls back to a sensible
// default when empty.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: httpTimeout},
	}
}

// Enabled reports whether an API credential is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Suggest sends the idea text to the generation service and returns the
// parsed suggestion. The request declares a JSON response schema requiring
// exactly the three suggestion fields.
func (c *Client) Suggest(ctx context.Context, idea string) (*Suggestion, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("%w: no API key configured", ErrSuggestionFailed)
	}

	prompt := fmt.Sprintf(`The user wants to create a website on federiko.net with the following idea: %q. `+
		`Provide a catchy name, a professional description, and one clever suggestion to make the site better.`, idea)

	stringField := map[string]any{"type": "STRING"}
	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]any{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"responseMimeType": "application/json",
			"responseSchema": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"suggestedName":        stringField,
					"suggestedDescription": stringField,
					"suggestion":           stringField,
				},
				"required": []string{"suggestedName", "suggestedDescription", "suggestion"},
			},
		},
	}

	respBody, err := c.doJSONRequest(ctx, fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model), body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSuggestionFailed, err)
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrSuggestionFailed, err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: no candidates returned", ErrSuggestionFailed)
	}

	suggestion, err := parseSuggestion(result.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSuggestionFailed, err)
	}
	return suggestion, nil
}

// parseSuggestion parses the model's textual output as a strict Suggestion:
// valid JSON with all three fields present and non-empty.
func parseSuggestion(text string) (*Suggestion, error) {
	cleaned := strings.TrimSpace(text)

	// Remove markdown code fences if present
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	var s Suggestion
	if err := json.Unmarshal([]byte(cleaned), &s); err != nil {
		return nil, fmt.Errorf("could not parse JSON from response: %v", err)
	}

	if s.SuggestedName == "" || s.SuggestedDescription == "" || s.Suggestion == "" {
		return nil, errors.New("incomplete suggestion: suggestedName, suggestedDescription and suggestion are required")
	}
	return &s, nil
}

// doJSONRequest performs a JSON HTTP request with Google API key auth.
func (c *Client) doJSONRequest(ctx context.Context, url string, body any) ([]byte, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
