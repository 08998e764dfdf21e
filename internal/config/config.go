// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Config is the root configuration.
type Config struct {
	TMDB     TMDBConfig     `koanf:"tmdb"`
	Proxy    ProxyConfig    `koanf:"proxy"`
	CORS     CORSConfig     `koanf:"cors"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Database DatabaseConfig `koanf:"database"`
	Events   EventsConfig   `koanf:"events"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// TMDBConfig configures the remote metadata client.
type TMDBConfig struct {
	// BearerToken is the TMDB v4 read access token. Empty means every
	// remote call fails with an auth error; it is never defaulted.
	BearerToken  string `koanf:"bearer_token"`
	BaseURL      string `koanf:"base_url"`
	ImageBaseURL string `koanf:"image_base_url"`
	Language     string `koanf:"language"`

	// Timeout applies per request. Zero waits indefinitely.
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is outbound requests per second; zero disables limiting.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	CircuitBreaker bool `koanf:"circuit_breaker"`
}

// HasCredential reports whether a bearer token is configured.
func (t TMDBConfig) HasCredential() bool {
	return strings.TrimSpace(t.BearerToken) != ""
}

// ProxyConfig holds outbound proxy settings. URL takes precedence over the
// conventional HTTPS_PROXY, HTTP_PROXY and ALL_PROXY variables.
type ProxyConfig struct {
	URL     string `koanf:"url"`
	HTTPS   string `koanf:"https"`
	HTTP    string `koanf:"http"`
	All     string `koanf:"all"`
	NoProxy string `koanf:"no_proxy"`
}

// CORSConfig holds the raw CORS_ALLOWED_ORIGINS value. See CORSPolicy.
type CORSConfig struct {
	AllowedOrigins string `koanf:"allowed_origins"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig configures inbound rate limiting.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Storage engines.
const (
	EngineDuckDB = "duckdb"
	EngineBadger = "badger"
)

// DatabaseConfig selects and configures the record store.
type DatabaseConfig struct {
	Engine       string `koanf:"engine"`
	Path         string `koanf:"path"`
	MaxMemory    string `koanf:"max_memory"`
	Threads      int    `koanf:"threads"`
	BadgerPath   string `koanf:"badger_path"`
	SeedDemoData bool   `koanf:"seed_demo_data"`
}

// EventsConfig configures catalog change events. With an empty NATSURL
// events stay in process.
type EventsConfig struct {
	Enabled     bool   `koanf:"enabled"`
	NATSURL     string `koanf:"nats_url"`
	TopicPrefix string `koanf:"topic_prefix"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether ENVIRONMENT is production.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// CORSPolicy is the parsed form of CORS_ALLOWED_ORIGINS.
type CORSPolicy struct {
	AllowAll bool
	Origins  []string
	Pattern  *regexp.Regexp
}

// Allows reports whether origin passes the policy.
func (p CORSPolicy) Allows(origin string) bool {
	if p.AllowAll {
		return true
	}
	if p.Pattern != nil {
		return p.Pattern.MatchString(origin)
	}
	for _, o := range p.Origins {
		if o == origin || o == "*" {
			return true
		}
	}
	return false
}

// CORSPolicy parses CORS_ALLOWED_ORIGINS. A value wrapped in slashes is a
// regular expression, anything else is a comma-separated list. When unset,
// every origin is allowed outside production and none in production.
func (c *Config) CORSPolicy() (CORSPolicy, error) {
	raw := strings.TrimSpace(c.CORS.AllowedOrigins)
	switch {
	case raw == "":
		return CORSPolicy{AllowAll: !c.IsProduction()}, nil
	case len(raw) >= 2 && strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/"):
		re, err := regexp.Compile(raw[1 : len(raw)-1])
		if err != nil {
			return CORSPolicy{}, fmt.Errorf("CORS_ALLOWED_ORIGINS regex: %w", err)
		}
		return CORSPolicy{Pattern: re}, nil
	default:
		var origins []string
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		return CORSPolicy{Origins: origins}, nil
	}
}
