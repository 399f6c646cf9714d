// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

// Package app contains shared application-layer constants used across the
// later-server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written
// into HTTP response bodies or log entries to describe the outcome of an
// operation. Keeping them in one place ensures consistent wording
// throughout the API.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgNoUserID is returned when a handler runs without a resolved user,
	// which means the auth middleware was bypassed or misconfigured.
	MsgNoUserID = "no user ID was given"

	// MsgCronDisabled is returned from the cron endpoints when no cron
	// secret is configured for this deployment.
	MsgCronDisabled = "cron endpoints are disabled"

	// MsgInvalidCronSecret is returned when the bearer token on a cron
	// request does not match the configured secret.
	MsgInvalidCronSecret = "invalid cron secret"

	// MsgRequestTimedOut is written by the server-level timeout handler
	// when a request exceeds the configured request timeout.
	MsgRequestTimedOut = "request timed out"
)
