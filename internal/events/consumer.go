// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package events

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/animerec/internal/logging"
	"github.com/tomtom215/animerec/internal/metrics"
)

// Reloader rebuilds the served dataset. *recommend.Reloader satisfies it.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ConsumerStats are runtime counters, reported by the API status endpoint.
type ConsumerStats struct {
	Received  int64     `json:"received"`
	Reloaded  int64     `json:"reloaded"`
	Failed    int64     `json:"failed"`
	Malformed int64     `json:"malformed"`
	LastEvent time.Time `json:"last_event,omitempty"`
}

// Consumer subscribes to dataset events and reloads on each one.
type Consumer struct {
	subscriber message.Subscriber
	topic      string
	reloader   Reloader
	logger     zerolog.Logger

	// ReloadTimeout bounds one reload. Zero means no bound beyond ctx.
	ReloadTimeout time.Duration

	received  atomic.Int64
	reloaded  atomic.Int64
	failed    atomic.Int64
	malformed atomic.Int64
	lastEvent atomic.Int64 // unix nanos
}

// NewConsumer builds a Consumer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewConsumer(sub message.Subscriber, topic string, reloader Reloader, logger zerolog.Logger) *Consumer {
	return &Consumer{
		subscriber:    sub,
		topic:         topic,
		reloader:      reloader,
		logger:        logger.With().Str("component", "events").Str("topic", topic).Logger(),
		ReloadTimeout: 2 * time.Minute,
	}
}

// Serve consumes until ctx is canceled or the subscription closes. It
// matches suture.Service.
func (c *Consumer) Serve(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", c.topic, err)
	}
	c.logger.Info().Msg("Dataset event consumer started")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("Dataset event consumer stopped")
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("subscription to %s closed", c.topic)
			}
			c.handle(ctx, msg)
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (c *Consumer) String() string {
	return "dataset-events(" + c.topic + ")"
}

func (c *Consumer) handle(ctx context.Context, msg *message.Message) {
	c.received.Add(1)
	c.lastEvent.Store(time.Now().UnixNano())

	evt, err := Decode(msg)
	if err != nil {
		c.malformed.Add(1)
		metrics.RecordEvent("malformed")
		c.logger.Warn().Err(err).Str("message_id", msg.UUID).Msg("Discarding malformed dataset event")
		msg.Ack()
		return
	}

	rctx := logging.ContextWithCorrelationID(ctx, logging.GenerateCorrelationID())
	if c.ReloadTimeout > 0 {
		var cancel context.CancelFunc
		rctx, cancel = context.WithTimeout(rctx, c.ReloadTimeout)
		defer cancel()
	}

	log := logging.Ctx(logging.ContextWithLogger(rctx, c.logger))
	log.Info().
		Str("message_id", msg.UUID).
		Str("source", evt.Source).
		Str("reason", evt.Reason).
		Time("occurred_at", evt.OccurredAt).
		Msg("Dataset update received, reloading")

	if err := c.reloader.Reload(rctx); err != nil {
		c.failed.Add(1)
		metrics.RecordEvent("failed")
		log.Error().Err(err).Str("message_id", msg.UUID).Msg("Reload after dataset event failed")
		msg.Nack()
		return
	}

	c.reloaded.Add(1)
	metrics.RecordEvent("reloaded")
	msg.Ack()
}

// Stats returns a snapshot of the consumer counters.
func (c *Consumer) Stats() ConsumerStats {
	s := ConsumerStats{
		Received:  c.received.Load(),
		Reloaded:  c.reloaded.Load(),
		Failed:    c.failed.Load(),
		Malformed: c.malformed.Load(),
	}
	if ns := c.lastEvent.Load(); ns > 0 {
		s.LastEvent = time.Unix(0, ns)
	}
	return s
}
