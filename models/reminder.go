// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

package models

import "time"

// ReminderStatus is the lifecycle state of a reminder.
type ReminderStatus string

const (
	// StatusUpcoming marks a live reminder shown in the upcoming list.
	StatusUpcoming ReminderStatus = "upcoming"

	// StatusArchived marks a reminder moved to the archive, either
	// explicitly or by the auto-archive sweep.
	StatusArchived ReminderStatus = "archived"
)

// Archive reasons recorded when a reminder transitions to StatusArchived.
const (
	ArchiveReasonCompleted = "completed"
	ArchiveReasonAuto      = "auto"
	ArchiveReasonManual    = "manual"
)

// ValidArchiveReason reports whether reason is one of the recorded
// archive reasons.
func ValidArchiveReason(reason string) bool {
	switch reason {
	case ArchiveReasonCompleted, ArchiveReasonAuto, ArchiveReasonManual:
		return true
	}
	return false
}

// Reminder is a user-created item with an optional note, an optional
// scheduled time and an ordered list of attachments, tracked through an
// upcoming/archived lifecycle.
//
// Invariant: ArchiveReason and ArchivedAt are set if and only if Status is
// StatusArchived. Reopening a reminder (any update or snooze) clears
// ArchiveReason, ArchivedAt and CompletedAt and sets Status back to
// StatusUpcoming.
type Reminder struct {
	// ID is the server-assigned reminder identifier.
	ID string `json:"id"`

	// UserID is the identifier of the owning profile.
	UserID string `json:"userId"`

	// Note is the opaque note payload produced by the note codec.
	// Nil when the reminder consists only of attachments.
	Note *string `json:"note"`

	// Status is the current lifecycle state.
	Status ReminderStatus `json:"status"`

	// ArchiveReason records why the reminder was archived.
	// Nil whenever Status is StatusUpcoming.
	ArchiveReason *string `json:"archiveReason"`

	// RemindAt is the scheduled notification time. Nil for unscheduled
	// reminders, which sort after all scheduled ones.
	RemindAt *time.Time `json:"remindAt"`

	// ArchivedAt is the time of the most recent archive transition.
	ArchivedAt *time.Time `json:"archivedAt"`

	// CompletedAt is set only when the reminder was archived with
	// ArchiveReasonCompleted.
	CompletedAt *time.Time `json:"completedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Attachments are created atomically with the reminder and are never
	// independently re-keyed.
	Attachments []ReminderAttachment `json:"attachments"`
}

// TableName returns the name of the database table
// associated with the Reminder model.
func (r Reminder) TableName() string {
	return "reminders"
}

// ReminderState augments a reminder with due/overdue flags computed
// against a reference instant. It is the shape returned to the HTTP
// boundary for upcoming listings.
type ReminderState struct {
	Reminder

	// IsDue is true within the one-minute due-now window past RemindAt.
	IsDue bool `json:"isDue"`

	// IsOverdue is true from RemindAt onwards while the reminder is not
	// archived.
	IsOverdue bool `json:"isOverdue"`
}
