// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package services adapts long-running components to suture.Service.
//
// Components that already implement Serve(ctx) error, such as
// events.AuditService and kvstore.GCService, are added to the tree
// directly. The HTTP server needs HTTPServerService to turn its blocking
// ListenAndServe into a context-driven Serve.
package services
