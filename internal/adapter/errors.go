// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

package adapter

import "errors"

var (
	// ErrUnauthorized is returned when the signing service rejects the
	// configured credentials (HTTP 401/403).
	ErrUnauthorized = errors.New("blob signer unauthorized")

	// ErrBadRequest is returned when the signing service rejects the
	// request payload (HTTP 4xx other than auth failures).
	ErrBadRequest = errors.New("blob signer rejected request")

	// ErrServerError is returned when the signing service fails
	// internally (HTTP 5xx).
	ErrServerError = errors.New("blob signer internal error")
)
