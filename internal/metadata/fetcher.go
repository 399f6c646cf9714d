// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

// Package metadata implements the best-effort link preview fetcher used to
// enrich link attachments with a page title and favicon.
//
// Fetching is strictly best-effort: the fetcher never returns an error.
// Any failure — unsafe target, network error, timeout, non-2xx response or
// a page without a title — degrades to a favicon-only fallback so that the
// enclosing reminder creation can never fail on enrichment.
package metadata

import (
	"context"
	"net"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/laterhq/later-server/internal/logger"
	"github.com/laterhq/later-server/internal/parse"
	"github.com/laterhq/later-server/models"
)

const (
	defaultTimeout   = 3 * time.Second
	defaultUserAgent = "LaterRemindersBot/0.1"
)

var titleRe = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)

// Preview is the outcome of a link preview fetch.
type Preview struct {
	// Title is the page title, nil when the fetch failed or the page has
	// no usable title.
	Title *string

	// IconURL is the favicon fallback derived from the link's hostname.
	IconURL *string

	// Status is MetadataReady on success, MetadataFailed otherwise.
	Status models.MetadataStatus
}

// Fetcher resolves link previews. Implemented by [HTTPFetcher]; faked in
// tests of the layers above.
type Fetcher interface {
	FetchLinkPreview(ctx context.Context, rawURL string) Preview
}

// HTTPFetcher is the resty-backed implementation of [Fetcher].
type HTTPFetcher struct {
	client *resty.Client
	logger *logger.Logger
}

// Config tunes the outbound fetch.
type Config struct {
	// Timeout bounds the whole GET request. Defaults to 3s.
	Timeout time.Duration `env:"TIMEOUT"`

	// UserAgent is sent with every preview request.
	UserAgent string `env:"USER_AGENT"`
}

// NewHTTPFetcher constructs a [Fetcher] with a bounded-timeout resty
// client.
func NewHTTPFetcher(cfg Config, log *logger.Logger) *HTTPFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	cli := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))

	return &HTTPFetcher{client: cli, logger: log}
}

// FetchLinkPreview fetches rawURL and extracts its <title> tag.
//
// Before any network call the target passes the safety gate: only http or
// https schemes, and the host must not point at localhost, a *.local name
// or a private IPv4 range. Rejected or failed fetches yield the
// favicon-only fallback with [models.MetadataFailed].
func (f *HTTPFetcher) FetchLinkPreview(ctx context.Context, rawURL string) Preview {
	log := logger.FromContext(ctx)

	fallback := Preview{
		IconURL: faviconOrNil(rawURL),
		Status:  models.MetadataFailed,
	}

	if !isSafeHTTPURL(rawURL) {
		log.Debug().
			Str("func", "HTTPFetcher.FetchLinkPreview").
			Str("url", rawURL).
			Msg("url rejected by safety gate")
		return fallback
	}

	resp, err := f.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		log.Debug().
			Err(err).
			Str("func", "HTTPFetcher.FetchLinkPreview").
			Str("url", rawURL).
			Msg("link preview fetch failed")
		return fallback
	}

	if !resp.IsSuccess() {
		log.Debug().
			Str("func", "HTTPFetcher.FetchLinkPreview").
			Str("url", rawURL).
			Int("status", resp.StatusCode()).
			Msg("link preview fetch returned non-2xx status")
		return fallback
	}

	match := titleRe.FindStringSubmatch(resp.String())
	if match == nil {
		return fallback
	}

	title := strings.TrimSpace(match[1])
	if title == "" {
		return fallback
	}

	return Preview{
		Title:   &title,
		IconURL: fallback.IconURL,
		Status:  models.MetadataReady,
	}
}

// isSafeHTTPURL gates outbound fetches so the server cannot be used to
// probe internal network addresses.
func isSafeHTTPURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" || host == "localhost" || strings.HasSuffix(host, ".local") {
		return false
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return true
	}

	v4 := ip.To4()
	if v4 == nil {
		return true
	}

	switch {
	case v4[0] == 10:
		return false
	case v4[0] == 127:
		return false
	case v4[0] == 192 && v4[1] == 168:
		return false
	case v4[0] == 172 && v4[1] >= 16 && v4[1] <= 31:
		return false
	}

	return true
}

func faviconOrNil(rawURL string) *string {
	icon := parse.FaviconURL(rawURL)
	if icon == "" {
		return nil
	}

	return &icon
}
