// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

// Package parse holds small text-scanning helpers shared by the composer
// endpoints: URL and tag extraction, favicon derivation and byte-size
// formatting.
package parse

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	urlRe = regexp.MustCompile(`(?i)\bhttps?://[^\s<>"']+`)
	tagRe = regexp.MustCompile(`(^|\s)#([a-zA-Z0-9_-]+)`)
)

// IsLikelyURL reports whether value parses as an absolute http or https URL.
func IsLikelyURL(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ExtractURLs scans free text for http(s) token runs delimited by
// whitespace, quote or angle-bracket characters. Duplicates are removed
// preserving first-seen order.
func ExtractURLs(value string) []string {
	matches := urlRe.FindAllString(value, -1)

	seen := make(map[string]bool, len(matches))
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		urls = append(urls, m)
	}

	return urls
}

// ExtractTags scans for # followed by word characters, hyphen or
// underscore, preceded by start-of-string or whitespace. Tags are
// lowercased and deduplicated preserving order.
func ExtractTags(value string) []string {
	matches := tagRe.FindAllStringSubmatch(value, -1)

	seen := make(map[string]bool, len(matches))
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tag := strings.ToLower(m[2])
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	return tags
}

// FaviconURL derives a favicon URL for the hostname of rawURL via the
// Google favicon service. It returns the empty string when rawURL is not
// a valid URL.
func FaviconURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Hostname() == "" {
		return ""
	}

	return fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=64", u.Hostname())
}

// FormatFileSize renders a byte count the way the composer shows it:
// plain bytes under 1 KiB, one-decimal KB under 1 MiB, one-decimal MB
// otherwise.
func FormatFileSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
}
