// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/logging"
)

// AuditService logs every catalog change seen on the bus. It runs under
// the supervisor and returns when its context ends.
type AuditService struct {
	bus    *Bus
	logger zerolog.Logger
	name   string

	// onEvent, when set, sees every decoded event after it is logged.
	onEvent func(*CatalogEvent)
	// subscribed, when set, is closed once every topic is subscribed.
	subscribed chan struct{}
}

// NewAuditService subscribes to every topic under bus's prefix.
func NewAuditService(bus *Bus) *AuditService {
	return &AuditService{
		bus:    bus,
		logger: logging.WithComponent("catalog-audit"),
		name:   "catalog-audit",
	}
}

// Serve implements suture.Service.
func (s *AuditService) Serve(ctx context.Context) error {
	if s.bus == nil {
		<-ctx.Done()
		return ctx.Err()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for _, topic := range Topics(s.bus.Prefix()) {
		msgs, err := s.bus.Subscribe(ctx, topic)
		if err != nil {
			cancel()
			wg.Wait()
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
		wg.Add(1)
		go func(topic string, msgs <-chan *message.Message) {
			defer wg.Done()
			for msg := range msgs {
				s.handle(topic, msg)
			}
		}(topic, msgs)
	}

	if s.subscribed != nil {
		close(s.subscribed)
	}

	<-ctx.Done()
	wg.Wait()
	return ctx.Err()
}

func (s *AuditService) handle(topic string, msg *message.Message) {
	defer msg.Ack()

	ev, err := Decode(msg.Payload)
	if err != nil {
		s.logger.Warn().Err(err).Str("topic", topic).Str("message_id", msg.UUID).Msg("Dropping undecodable catalog event")
		return
	}

	entry := s.logger.Info().
		Str("topic", topic).
		Str("event_id", ev.EventID).
		Str("kind", string(ev.Kind)).
		Str("action", string(ev.Action)).
		Int64("record_id", ev.RecordID)
	if ev.Record != nil {
		entry = entry.Str("title", ev.Record.Title)
	}
	if ev.RequestID != "" {
		entry = entry.Str("request_id", ev.RequestID)
	}
	entry.Msg("Catalog changed")

	if s.onEvent != nil {
		s.onEvent(ev)
	}
}

// String implements fmt.Stringer for suture logs.
func (s *AuditService) String() string {
	return s.name
}
