// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

package store

import (
	"context"

	"github.com/laterhq/later-server/models"
)

// ReminderRepository is the lifecycle authority over reminders and profile
// settings. It is implemented twice — against PostgreSQL and against an
// in-process map store — and both implementations must produce structurally
// identical records.
//
// State machine enforced by every implementation:
//   - upcoming --archive(reason)--> archived: sets the reason, the archived
//     timestamp and, for reason "completed", the completed timestamp;
//   - archived --update or snooze--> upcoming: clears reason, archived and
//     completed timestamps, then applies the requested changes;
//   - upcoming --auto-archive sweep--> archived(reason=auto), driven by the
//     owning profile's policy.
//
// There is no delete transition.
type ReminderRepository interface {
	CreateReminder(ctx context.Context, userID string, input models.CreateReminderInput) (models.Reminder, error)
	GetUpcomingReminders(ctx context.Context, userID string) ([]models.Reminder, error)
	UpdateReminder(ctx context.Context, userID, reminderID string, input models.UpdateReminderInput) (models.Reminder, error)
	SnoozeReminder(ctx context.Context, userID, reminderID string, input models.SnoozeReminderInput) (models.Reminder, error)
	ArchiveReminder(ctx context.Context, userID, reminderID string, input models.ArchiveReminderInput) (models.Reminder, error)
	GetArchivedReminders(ctx context.Context, userID string, query models.ArchiveQuery) (models.ArchiveQueryResult, error)

	GetProfile(ctx context.Context, userID string) (models.Profile, error)
	UpdateSettings(ctx context.Context, userID string, input models.UpdateSettingsInput) (models.Profile, error)

	AutoArchiveForUser(ctx context.Context, userID string) (int, error)
	AutoArchiveAllUsers(ctx context.Context) (models.SweepResult, error)
}

// ErrorClassificator reports whether a failed database operation is worth
// retrying. It exists so the postgres layer can be probed with driver-level
// errors without importing pgx in callers.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
