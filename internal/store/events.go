// Copyright (c) 2026 Fedorgrin Lab
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fedorgrin-lab/cloud/internal/model"
)

// EventLog records application events in the events table. It is written by
// the logging handler and the handlers that audit auth and site activity.
type EventLog struct {
	db *sql.DB
}

// NewEventLog creates an EventLog backed by db.
func NewEventLog(db *sql.DB) *EventLog {
	return &EventLog{db: db}
}

// Add inserts an event. Metadata must be a JSON object string; empty means "{}".
func (e *EventLog) Add(ctx context.Context, ev model.Event) error {
	if ev.Metadata == "" {
		ev.Metadata = "{}"
	}
	_, err := e.db.ExecContext(ctx,
		"INSERT INTO events (level, category, message, metadata, created_at) VALUES (?, ?, ?, ?, ?)",
		ev.Level, ev.Category, ev.Message, ev.Metadata, ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("adding event: %w", err)
	}
	return nil
}

// ListRecent returns up to limit events, most recent first.
func (e *EventLog) ListRecent(ctx context.Context, limit int) ([]model.Event, error) {
	rows, err := e.db.QueryContext(ctx,
		"SELECT id, level, category, message, metadata, created_at FROM events ORDER BY created_at DESC, id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []model.Event
	for rows.Next() {
		var ev model.Event
		if err := rows.Scan(&ev.ID, &ev.Level, &ev.Category, &ev.Message, &ev.Metadata, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
