// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"net/url"

	"golang.org/x/net/http/httpproxy"
)

// validateHTTPURL checks scheme and host. Paths are allowed because the
// TMDB base URL carries its API version in the path.
func validateHTTPURL(rawURL, fieldName string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if u.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters", fieldName)
	}
	return nil
}

func validateNATSURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("EVENTS_NATS_URL failed to parse URL: %w", err)
	}
	switch u.Scheme {
	case "nats", "tls", "ws", "wss":
	default:
		return fmt.Errorf("EVENTS_NATS_URL scheme must be nats, tls, ws or wss, got: %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("EVENTS_NATS_URL host is required")
	}
	return nil
}

// ProxyURL returns the first configured proxy, or "".
func (p ProxyConfig) ProxyURL() string {
	for _, v := range []string{p.URL, p.HTTPS, p.HTTP, p.All} {
		if v != "" {
			return v
		}
	}
	return ""
}

// Redacted returns ProxyURL with any password hidden, for logging.
func (p ProxyConfig) Redacted() string {
	raw := p.ProxyURL()
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid proxy url>"
	}
	return u.Redacted()
}

// ProxyFunc returns a function suitable for http.Transport.Proxy, or nil
// when no proxy is configured. NO_PROXY is honoured.
func (p ProxyConfig) ProxyFunc() func(*url.URL) (*url.URL, error) {
	proxy := p.ProxyURL()
	if proxy == "" {
		return nil
	}
	pc := &httpproxy.Config{
		HTTPProxy:  proxy,
		HTTPSProxy: proxy,
		NoProxy:    p.NoProxy,
	}
	return pc.ProxyFunc()
}
