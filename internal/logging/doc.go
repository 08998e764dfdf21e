// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package logging provides the process-wide zerolog logger for Marquee.
//
// Every package logs through the helpers exported here instead of holding
// its own logger. Output is JSON by default and console-formatted when
// LOG_FORMAT=console.
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Poster lookup failed")
//
// Request and correlation identifiers travel on the context and are added
// to every event emitted through Ctx. Libraries that expect a log/slog
// logger (sutureslog) receive one backed by the same zerolog writer via
// NewSlogLogger.
//
// Log chains must be terminated with Msg, Msgf or Send; an unterminated
// event is silently dropped.
package logging
