// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package events

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

func sampleRecord() *models.Record {
	ext := int64(27205)
	rating := 4.5
	return &models.Record{
		ID:         7,
		ExternalID: &ext,
		Title:      "Inception",
		Rating:     &rating,
		ViewCount:  2,
		Watched:    true,
		CreatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestTopics(t *testing.T) {
	t.Parallel()

	if got := Topic("marquee.catalog", models.KindSeries, ActionDeleted); got != "marquee.catalog.serie.deleted" {
		t.Errorf("Topic() = %q", got)
	}

	topics := Topics("p")
	if len(topics) != 6 {
		t.Fatalf("Topics() returned %d topics, want 6", len(topics))
	}
	seen := map[string]bool{}
	for _, topic := range topics {
		if seen[topic] {
			t.Errorf("duplicate topic %q", topic)
		}
		seen[topic] = true
	}
	if !seen["p.movie.created"] || !seen["p.serie.updated"] {
		t.Errorf("Topics() = %v", topics)
	}
}

func TestNewDisabledReturnsNilBus(t *testing.T) {
	t.Parallel()

	bus, err := New(config.EventsConfig{Enabled: false})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if bus != nil {
		t.Fatal("expected nil bus when events are disabled")
	}

	// Every method must tolerate the nil bus.
	if err := bus.Publish(context.Background(), models.KindMovie, ActionCreated, sampleRecord()); err != nil {
		t.Errorf("Publish() on nil bus = %v", err)
	}
	if _, err := bus.Subscribe(context.Background(), "x"); !errors.Is(err, ErrClosed) {
		t.Errorf("Subscribe() on nil bus = %v, want ErrClosed", err)
	}
	if bus.Transport() != "disabled" {
		t.Errorf("Transport() = %q", bus.Transport())
	}
	if err := bus.Close(); err != nil {
		t.Errorf("Close() on nil bus = %v", err)
	}
}

func TestNewWithoutNATSIsInProcess(t *testing.T) {
	t.Parallel()

	bus, err := New(config.EventsConfig{Enabled: true, TopicPrefix: "test"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer bus.Close()

	if bus.Transport() != "gochannel" {
		t.Errorf("Transport() = %q, want gochannel", bus.Transport())
	}
	if bus.Prefix() != "test" {
		t.Errorf("Prefix() = %q", bus.Prefix())
	}
}

func TestPublishDeliversPayload(t *testing.T) {
	t.Parallel()

	bus := NewInProcess("pub-test", watermill.NopLogger{})
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	topic := Topic("pub-test", models.KindMovie, ActionUpdated)
	msgs, err := bus.Subscribe(ctx, topic)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	before := testutil.ToFloat64(metrics.EventsPublished.WithLabelValues(topic, "ok"))

	reqCtx := logging.ContextWithRequestID(ctx, "req-42")
	if err := bus.Publish(reqCtx, models.KindMovie, ActionUpdated, sampleRecord()); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case msg := <-msgs:
		msg.Ack()
		ev, err := Decode(msg.Payload)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if ev.EventID != msg.UUID {
			t.Errorf("event id %q != message uuid %q", ev.EventID, msg.UUID)
		}
		if ev.Kind != models.KindMovie || ev.Action != ActionUpdated || ev.RecordID != 7 {
			t.Errorf("unexpected event %+v", ev)
		}
		if ev.Record == nil || ev.Record.Title != "Inception" || *ev.Record.ExternalID != 27205 {
			t.Errorf("record snapshot = %+v", ev.Record)
		}
		if ev.RequestID != "req-42" || msg.Metadata.Get(MetadataRequestID) != "req-42" {
			t.Errorf("request id not propagated: event %q metadata %q", ev.RequestID, msg.Metadata.Get(MetadataRequestID))
		}
		if msg.Metadata.Get(MetadataKind) != "movie" || msg.Metadata.Get(MetadataAction) != "updated" {
			t.Errorf("metadata = %v", msg.Metadata)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}

	after := testutil.ToFloat64(metrics.EventsPublished.WithLabelValues(topic, "ok"))
	if after-before != 1 {
		t.Errorf("events published ok delta = %v, want 1", after-before)
	}
}

func TestPublishNilRecordIsNoop(t *testing.T) {
	t.Parallel()

	bus := NewInProcess("nil-rec", watermill.NopLogger{})
	defer bus.Close()

	if err := bus.Publish(context.Background(), models.KindMovie, ActionDeleted, nil); err != nil {
		t.Errorf("Publish(nil) = %v", err)
	}
}

func TestPublishAfterClose(t *testing.T) {
	t.Parallel()

	bus := NewInProcess("closed", watermill.NopLogger{})
	if err := bus.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	err := bus.Publish(context.Background(), models.KindMovie, ActionCreated, sampleRecord())
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Publish() after Close = %v, want ErrClosed", err)
	}
	if _, err := bus.Subscribe(context.Background(), "closed.movie.created"); !errors.Is(err, ErrClosed) {
		t.Errorf("Subscribe() after Close = %v, want ErrClosed", err)
	}
}

func TestAuditServiceLogsEvents(t *testing.T) {
	t.Parallel()

	bus := NewInProcess("audit", watermill.NopLogger{})
	defer bus.Close()

	var buf bytes.Buffer
	got := make(chan *CatalogEvent, 4)
	svc := NewAuditService(bus)
	svc.logger = zerolog.New(&syncWriter{buf: &buf})
	svc.onEvent = func(ev *CatalogEvent) { got <- ev }
	svc.subscribed = make(chan struct{})

	if svc.String() != "catalog-audit" {
		t.Errorf("String() = %q", svc.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	select {
	case <-svc.subscribed:
	case <-time.After(5 * time.Second):
		t.Fatal("audit service never subscribed")
	}

	if err := bus.Publish(context.Background(), models.KindSeries, ActionCreated, sampleRecord()); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case ev := <-got:
		if ev.Kind != models.KindSeries || ev.Action != ActionCreated {
			t.Errorf("unexpected event %+v", ev)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("audit service never saw the event")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}

	if !strings.Contains(buf.String(), `"message":"Catalog changed"`) || !strings.Contains(buf.String(), `"title":"Inception"`) {
		t.Errorf("audit log = %s", buf.String())
	}
}

func TestAuditServiceWithoutBusWaits(t *testing.T) {
	t.Parallel()

	svc := NewAuditService(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want DeadlineExceeded", err)
	}
}

func TestLoggerAdapterFields(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	defer zerolog.SetGlobalLevel(prev)

	var buf bytes.Buffer
	adapter := NewLoggerAdapterFor(zerolog.New(&buf).Level(zerolog.TraceLevel))
	child := adapter.With(watermill.LogFields{"topic": "a.b"})

	child.Info("subscribed", watermill.LogFields{"n": 1})
	child.Error("failed", errors.New("boom"), nil)
	adapter.Debug("plain", nil)

	out := buf.String()
	for _, want := range []string{`"topic":"a.b"`, `"n":1`, `"error":"boom"`, `"message":"plain"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
	if strings.Count(out, `"topic":"a.b"`) != 2 {
		t.Errorf("parent adapter picked up child fields: %s", out)
	}
}
