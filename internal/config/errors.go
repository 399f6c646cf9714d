package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidBlobConfigs indicates invalid blob storage settings
	// (an endpoint configured without a bucket).
	ErrInvalidBlobConfigs = errors.New("invalid blob storage configuration")
)
