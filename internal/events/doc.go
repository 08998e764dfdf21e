// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package events publishes catalog change events through Watermill.

Every successful create, update, upsert or delete produces one CatalogEvent
on the topic "<prefix>.<kind>.<action>", for example
"marquee.catalog.movie.created". The payload is the JSON-encoded event with
a snapshot of the record.

# Transports

Without EVENTS_NATS_URL the bus is an in-process gochannel pub/sub; events
reach subscribers in the same process and are dropped when nobody listens.
With EVENTS_NATS_URL set, events go to core NATS subjects through
watermill-nats (JetStream disabled), so other services can follow the
catalog.

# Delivery

Publishing is best effort. A failed publish is logged and counted in
marquee_events_published_total{result="error"}; it never fails the
mutation that triggered it. A nil *Bus is valid and publishes nothing,
which is what EVENTS_ENABLED=false yields.

# Audit Feed

AuditService is a suture.Service that subscribes to every catalog topic and
writes one structured log line per change.
*/
package events
