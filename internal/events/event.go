// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package events

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
)

// DatasetUpdated announces that the catalog or rating log changed.
type DatasetUpdated struct {
	// Source names the data source that changed (csv, duckdb, redis).
	Source string `json:"source"`

	// Reason is free text for logs, e.g. "nightly import".
	Reason string `json:"reason,omitempty"`

	// Items and Interactions are the new sizes when known.
	Items        int `json:"items,omitempty"`
	Interactions int `json:"interactions,omitempty"`

	// OccurredAt is when the change was committed.
	OccurredAt time.Time `json:"occurred_at"`
}

// NewMessage encodes evt as a Watermill message with a fresh UUID.
func NewMessage(evt DatasetUpdated) (*message.Message, error) {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("encode dataset event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("type", "dataset.updated")
	return msg, nil
}

// Decode parses a message payload.
func Decode(msg *message.Message) (DatasetUpdated, error) {
	var evt DatasetUpdated
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return evt, fmt.Errorf("decode dataset event %s: %w", msg.UUID, err)
	}
	if evt.Source == "" {
		return evt, fmt.Errorf("decode dataset event %s: missing source", msg.UUID)
	}
	return evt, nil
}

// Publish sends evt on topic.
func Publish(pub message.Publisher, topic string, evt DatasetUpdated) error {
	msg, err := NewMessage(evt)
	if err != nil {
		return err
	}
	if err := pub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish dataset event: %w", err)
	}
	return nil
}
