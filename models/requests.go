// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

package models

import (
	"encoding/json"
	"time"
)

// Limits enforced by input validation.
const (
	MaxAttachments = 10
	MaxNoteLength  = 5000
	MaxImageBytes  = 10 * 1024 * 1024
	MaxFileBytes   = 25 * 1024 * 1024

	MaxFileNameLength     = 255
	MaxTextContentLength  = 10000
	MaxPreviewTitleLength = 500

	// MaxSnoozeMinutes caps an arbitrary-minutes snooze at thirty days.
	MaxSnoozeMinutes = 60 * 24 * 30

	DefaultPageSize = 20
)

// CreateAttachmentInput describes one attachment of a reminder being
// created. Only the fields relevant to Kind need to be populated.
type CreateAttachmentInput struct {
	Kind            AttachmentKind `json:"kind"`
	StoragePath     *string        `json:"storagePath"`
	MimeType        *string        `json:"mimeType"`
	FileName        *string        `json:"fileName"`
	FileSizeBytes   *int64         `json:"fileSizeBytes"`
	URL             *string        `json:"url"`
	TextContent     *string        `json:"textContent"`
	PreviewTitle    *string        `json:"previewTitle"`
	PreviewIconURL  *string        `json:"previewIconUrl"`
	PreviewImageURL *string        `json:"previewImageUrl"`
	MetadataStatus  MetadataStatus `json:"metadataStatus"`
}

// CreateReminderInput is the request body for creating a reminder.
// A reminder requires a note or at least one attachment.
type CreateReminderInput struct {
	Note        *string                 `json:"note"`
	RemindAt    *time.Time              `json:"remindAt"`
	Attachments []CreateAttachmentInput `json:"attachments"`
}

// UpdateReminderInput is the request body for a partial reminder update.
// Pointer fields distinguish "not provided" (nil pointer) from "set to
// null" (pointer to nil), mirroring the JSON patch semantics.
type UpdateReminderInput struct {
	// RemindAtSet reports whether the request carried a remindAt field.
	RemindAtSet bool       `json:"-"`
	RemindAt    *time.Time `json:"remindAt"`

	// NoteSet reports whether the request carried a note field.
	NoteSet bool    `json:"-"`
	Note    *string `json:"note"`

	RemoveAttachmentIDs []string `json:"removeAttachmentIds"`
}

// UnmarshalJSON records which fields were present in the request body, so
// "remindAt": null (clear the schedule) is distinguishable from the field
// being absent (leave it alone).
func (u *UpdateReminderInput) UnmarshalJSON(data []byte) error {
	// json.RawMessage keeps the literal "null" bytes for explicit nulls,
	// while absent fields leave the slice nil.
	var raw struct {
		RemindAt            json.RawMessage `json:"remindAt"`
		Note                json.RawMessage `json:"note"`
		RemoveAttachmentIDs []string        `json:"removeAttachmentIds"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	u.RemoveAttachmentIDs = raw.RemoveAttachmentIDs

	if raw.RemindAt != nil {
		u.RemindAtSet = true
		if err := json.Unmarshal(raw.RemindAt, &u.RemindAt); err != nil {
			return err
		}
	}
	if raw.Note != nil {
		u.NoteSet = true
		if err := json.Unmarshal(raw.Note, &u.Note); err != nil {
			return err
		}
	}

	return nil
}

// Snooze presets understood by SnoozeReminderInput.
const (
	SnoozePreset10m      = "10m"
	SnoozePreset1h       = "1h"
	SnoozePresetTomorrow = "tomorrow"
)

// SnoozeReminderInput reschedules a reminder to a near-future time
// computed from the moment of the snooze call. Preset takes precedence
// over Minutes; with neither, the default is ten minutes.
type SnoozeReminderInput struct {
	Preset  string `json:"preset"`
	Minutes int    `json:"minutes"`
}

// ArchiveReminderInput carries the archive reason for an explicit archive
// transition.
type ArchiveReminderInput struct {
	Reason string `json:"reason"`
}

// ArchiveQuery selects a page of archived reminders.
type ArchiveQuery struct {
	// Filter is "all", "completed" or "auto". Empty means "all".
	Filter string

	// Q is a free-text query matched case-insensitively against note text
	// and attachment fields.
	Q string

	Page     int
	PageSize int
}

// ArchiveQueryResult is one page of archived reminders together with the
// total match count.
type ArchiveQueryResult struct {
	Items    []Reminder `json:"items"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}

// UpdateSettingsInput is the request body for a profile settings update.
type UpdateSettingsInput struct {
	Timezone          string            `json:"timezone"`
	AutoArchivePolicy AutoArchivePolicy `json:"autoArchivePolicy"`
}

// SweepResult reports the outcome of an auto-archive sweep across users.
type SweepResult struct {
	UsersProcessed int `json:"usersProcessed"`
	Archived       int `json:"archived"`
}
