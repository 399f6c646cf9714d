// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

package utils

import "github.com/google/uuid"

// UUIDGenerator mints the identifiers for reminders and attachments.
// Version 7 UUIDs are time-ordered, so rows created together stay adjacent
// in the primary-key index.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 string, falling back to a random UUIDv4 when
// the clock-based generator fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
