// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package config loads Marquee's runtime configuration.
//
// Values are layered with koanf: built-in defaults, then an optional YAML
// file (CONFIG_PATH, ./config.yaml or /etc/marquee/config.yaml), then
// environment variables. Only the environment variables listed in
// envMappings are read; everything else in the environment is ignored.
//
// The loaded *Config is treated as immutable and passed by reference to
// the components that need it.
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Invalid configuration")
//	}
//	client := tmdb.NewClient(cfg.TMDB, cfg.Proxy)
package config
