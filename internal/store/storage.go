// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/laterhq/later-server/internal/logger"
	"github.com/laterhq/later-server/internal/metadata"
	"github.com/laterhq/later-server/models"
)

// Storage routes every repository call to one of two backends: the
// PostgreSQL repository for real accounts, the in-memory repository for
// everyone else. The decision is made per call from the user ID alone —
// real account IDs are UUIDs, demo/session IDs are not — so demo traffic
// never touches the database.
//
// When no database is configured the in-memory backend serves all users.
type Storage struct {
	persistent ReminderRepository
	memory     ReminderRepository
}

// NewStorage builds the routing repository. db may be nil, in which case
// every user is served from memory.
func NewStorage(db *DB, fetcher metadata.Fetcher, log *logger.Logger) *Storage {
	s := &Storage{
		memory: NewMemoryReminderRepository(fetcher),
	}
	if db != nil {
		s.persistent = NewReminderRepository(db, fetcher, log)
	}

	return s
}

// backendFor picks the repository serving the given user.
func (s *Storage) backendFor(userID string) ReminderRepository {
	if s.persistent != nil && uuid.Validate(userID) == nil {
		return s.persistent
	}

	return s.memory
}

func (s *Storage) CreateReminder(ctx context.Context, userID string, input models.CreateReminderInput) (models.Reminder, error) {
	return s.backendFor(userID).CreateReminder(ctx, userID, input)
}

func (s *Storage) GetUpcomingReminders(ctx context.Context, userID string) ([]models.Reminder, error) {
	return s.backendFor(userID).GetUpcomingReminders(ctx, userID)
}

func (s *Storage) UpdateReminder(ctx context.Context, userID, reminderID string, input models.UpdateReminderInput) (models.Reminder, error) {
	return s.backendFor(userID).UpdateReminder(ctx, userID, reminderID, input)
}

func (s *Storage) SnoozeReminder(ctx context.Context, userID, reminderID string, input models.SnoozeReminderInput) (models.Reminder, error) {
	return s.backendFor(userID).SnoozeReminder(ctx, userID, reminderID, input)
}

func (s *Storage) ArchiveReminder(ctx context.Context, userID, reminderID string, input models.ArchiveReminderInput) (models.Reminder, error) {
	return s.backendFor(userID).ArchiveReminder(ctx, userID, reminderID, input)
}

func (s *Storage) GetArchivedReminders(ctx context.Context, userID string, query models.ArchiveQuery) (models.ArchiveQueryResult, error) {
	return s.backendFor(userID).GetArchivedReminders(ctx, userID, query)
}

func (s *Storage) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	return s.backendFor(userID).GetProfile(ctx, userID)
}

func (s *Storage) UpdateSettings(ctx context.Context, userID string, input models.UpdateSettingsInput) (models.Profile, error) {
	return s.backendFor(userID).UpdateSettings(ctx, userID, input)
}

func (s *Storage) AutoArchiveForUser(ctx context.Context, userID string) (int, error) {
	return s.backendFor(userID).AutoArchiveForUser(ctx, userID)
}

// AutoArchiveAllUsers sweeps both backends so the cron endpoint covers
// demo users too.
func (s *Storage) AutoArchiveAllUsers(ctx context.Context) (models.SweepResult, error) {
	result, err := s.memory.AutoArchiveAllUsers(ctx)
	if err != nil {
		return result, err
	}

	if s.persistent != nil {
		persistentResult, persistentErr := s.persistent.AutoArchiveAllUsers(ctx)
		result.UsersProcessed += persistentResult.UsersProcessed
		result.Archived += persistentResult.Archived
		if persistentErr != nil {
			return result, persistentErr
		}
	}

	return result, nil
}
