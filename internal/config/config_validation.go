// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

package config

import "time"

const (
	defaultHTTPAddress    = "localhost:8080"
	defaultRequestTimeout = 30 * time.Second
	defaultDemoUserID     = "demo-user"
)

// applyDefaults fills in the values a local development setup should not
// have to spell out.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	// demo mode only; ignored entirely once a token sign key is set
	if cfg.App.DemoUserID == "" {
		cfg.App.DemoUserID = defaultDemoUserID
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// An empty DSN and an empty token sign key are both valid: they select the
// in-memory store and demo-header authentication respectively. A blob
// endpoint without a bucket is the only outright misconfiguration.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.Blob.Endpoint != "" && cfg.Storage.Blob.Bucket == "" {
		return ErrInvalidBlobConfigs
	}

	return nil
}
