// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

package models

import "time"

// AutoArchivePolicy controls how long an overdue reminder is kept in the
// upcoming list before the auto-archive sweep moves it to the archive.
type AutoArchivePolicy string

const (
	// AutoArchiveNever disables auto-archiving for the user entirely.
	AutoArchiveNever AutoArchivePolicy = "never"

	// AutoArchive24h archives an overdue reminder 24 hours past its
	// scheduled time.
	AutoArchive24h AutoArchivePolicy = "24h"

	// AutoArchive7d archives an overdue reminder 7 days past its
	// scheduled time.
	AutoArchive7d AutoArchivePolicy = "7d"
)

// Valid reports whether p is one of the known auto-archive policies.
func (p AutoArchivePolicy) Valid() bool {
	switch p {
	case AutoArchiveNever, AutoArchive24h, AutoArchive7d:
		return true
	}
	return false
}

// Profile holds per-user settings. A profile is created lazily on first
// access and is never deleted.
type Profile struct {
	// ID is the user identifier issued by the external identity provider.
	ID string `json:"id"`

	// DisplayName is an optional human-readable name shown in the UI.
	DisplayName *string `json:"displayName"`

	// AvatarURL is an optional URL of the user's avatar image.
	AvatarURL *string `json:"avatarUrl"`

	// Timezone is the IANA timezone name used for calendar-relative
	// computations such as the "tomorrow" snooze preset.
	Timezone string `json:"timezone"`

	// AutoArchivePolicy is the grace period applied by the auto-archive
	// sweep to the user's overdue reminders.
	AutoArchivePolicy AutoArchivePolicy `json:"autoArchivePolicy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Profile model.
func (p Profile) TableName() string {
	return "profiles"
}

// Location resolves the profile timezone to a *time.Location, falling back
// to UTC when the timezone name is empty or unknown.
func (p Profile) Location() *time.Location {
	if p.Timezone == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}

	return loc
}
