// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor runs Marquee's long-lived services under suture v4.

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(kvstore.NewGCService(store, 0))
	tree.AddEventService(events.NewAuditService(bus))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)

Crashed services are restarted with backoff inside their layer. Cancelling
the context stops every service, and UnstoppedServiceReport names those
that did not stop within the shutdown timeout.
*/
package supervisor
