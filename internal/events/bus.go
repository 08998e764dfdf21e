// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	natsgo "github.com/nats-io/nats.go"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// ErrClosed is returned by Publish and Subscribe after Close.
var ErrClosed = errors.New("events: bus is closed")

// Metadata keys set on every message.
const (
	MetadataKind      = "kind"
	MetadataAction    = "action"
	MetadataRequestID = "request_id"
)

const (
	natsMaxReconnects   = -1
	natsReconnectWait   = 2 * time.Second
	natsReconnectBuffer = 8 * 1024 * 1024
	channelBuffer       = 64
)

// Bus publishes catalog events and hands out subscriptions to them.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	prefix     string
	transport  string
	logger     watermill.LoggerAdapter

	mu     sync.RWMutex
	closed bool
}

// New builds the bus described by cfg. It returns a nil *Bus when events
// are disabled; every method treats that as a no-op.
func New(cfg config.EventsConfig) (*Bus, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	logger := NewLoggerAdapter()
	if cfg.NATSURL == "" {
		return NewInProcess(cfg.TopicPrefix, logger), nil
	}
	return newNATS(cfg, logger)
}

// NewInProcess returns a bus backed by a gochannel pub/sub.
func NewInProcess(prefix string, logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = NewLoggerAdapter()
	}
	ch := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: channelBuffer,
	}, logger)
	return &Bus{
		publisher:  ch,
		subscriber: ch,
		prefix:     prefix,
		transport:  "gochannel",
		logger:     logger,
	}
}

func newNATS(cfg config.EventsConfig, logger watermill.LoggerAdapter) (*Bus, error) {
	natsOpts := []natsgo.Option{
		natsgo.Name("marquee"),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(natsMaxReconnects),
		natsgo.ReconnectWait(natsReconnectWait),
		natsgo.ReconnectBufSize(natsReconnectBuffer),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{"url": nc.ConnectedUrl()})
		}),
		natsgo.ErrorHandler(func(_ *natsgo.Conn, sub *natsgo.Subscription, err error) {
			fields := watermill.LogFields{}
			if sub != nil {
				fields["subject"] = sub.Subject
			}
			logger.Error("NATS error", err, fields)
		}),
	}

	jetStream := wmNats.JetStreamConfig{Disabled: true}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         cfg.NATSURL,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream:   jetStream,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create NATS publisher: %w", err)
	}

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              cfg.NATSURL,
		SubscribersCount: 1,
		CloseTimeout:     10 * time.Second,
		AckWaitTimeout:   30 * time.Second,
		NatsOptions:      natsOpts,
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream:        jetStream,
	}, logger)
	if err != nil {
		_ = pub.Close()
		return nil, fmt.Errorf("create NATS subscriber: %w", err)
	}

	return &Bus{
		publisher:  pub,
		subscriber: sub,
		prefix:     cfg.TopicPrefix,
		transport:  "nats",
		logger:     logger,
	}, nil
}

// Prefix returns the topic prefix.
func (b *Bus) Prefix() string {
	if b == nil {
		return ""
	}
	return b.prefix
}

// Transport names the backing pub/sub: "gochannel" or "nats".
func (b *Bus) Transport() string {
	if b == nil {
		return "disabled"
	}
	return b.transport
}

// Publish emits one event for rec. The returned error is informational;
// callers log it and carry on.
func (b *Bus) Publish(ctx context.Context, kind models.Kind, action Action, rec *models.Record) error {
	if b == nil || rec == nil {
		return nil
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrClosed
	}

	ev := CatalogEvent{
		EventID:    uuid.NewString(),
		Kind:       kind,
		Action:     action,
		RecordID:   rec.ID,
		Record:     rec,
		RequestID:  logging.RequestIDFromContext(ctx),
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode catalog event: %w", err)
	}

	msg := message.NewMessage(ev.EventID, payload)
	msg.Metadata.Set(MetadataKind, string(kind))
	msg.Metadata.Set(MetadataAction, string(action))
	if ev.RequestID != "" {
		msg.Metadata.Set(MetadataRequestID, ev.RequestID)
	}
	if b.transport == "nats" {
		msg.Metadata.Set(natsgo.MsgIdHdr, ev.EventID)
	}

	topic := Topic(b.prefix, kind, action)
	err = b.publisher.Publish(topic, msg)
	metrics.RecordEventPublished(topic, err)
	if err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Subscribe returns the message stream for one topic. The channel closes
// when ctx ends or the bus closes.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if b == nil {
		return nil, ErrClosed
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, ErrClosed
	}
	return b.subscriber.Subscribe(ctx, topic)
}

// Close shuts the publisher and subscriber down. It is safe to call twice.
func (b *Bus) Close() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	err := b.publisher.Close()
	if b.transport != "gochannel" {
		err = errors.Join(err, b.subscriber.Close())
	}
	return err
}
