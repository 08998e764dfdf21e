// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/models"
)

// Action is the kind of change.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Actions lists every action.
var Actions = []Action{ActionCreated, ActionUpdated, ActionDeleted}

// CatalogEvent is the message payload.
type CatalogEvent struct {
	EventID    string         `json:"event_id"`
	Kind       models.Kind    `json:"kind"`
	Action     Action         `json:"action"`
	RecordID   int64          `json:"record_id"`
	Record     *models.Record `json:"record"`
	RequestID  string         `json:"request_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Topic builds "<prefix>.<kind>.<action>".
func Topic(prefix string, kind models.Kind, action Action) string {
	return fmt.Sprintf("%s.%s.%s", prefix, kind, action)
}

// Topics lists every catalog topic under prefix.
func Topics(prefix string) []string {
	topics := make([]string, 0, len(models.Kinds)*len(Actions))
	for _, kind := range models.Kinds {
		for _, action := range Actions {
			topics = append(topics, Topic(prefix, kind, action))
		}
	}
	return topics
}

// Decode parses a message payload.
func Decode(payload []byte) (*CatalogEvent, error) {
	var ev CatalogEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("decode catalog event: %w", err)
	}
	return &ev, nil
}
