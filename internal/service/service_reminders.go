// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/laterhq/later-server/internal/logger"
	"github.com/laterhq/later-server/internal/note"
	"github.com/laterhq/later-server/internal/remind"
	"github.com/laterhq/later-server/internal/store"
	"github.com/laterhq/later-server/internal/validators"
	"github.com/laterhq/later-server/models"
)

type reminderService struct {
	repository store.ReminderRepository
	validator  validators.Validator

	logger *logger.Logger

	now func() time.Time
}

func NewReminderService(repository store.ReminderRepository, logger *logger.Logger) ReminderService {
	return &reminderService{
		repository: repository,
		validator:  validators.NewReminderValidator(),
		logger:     logger,
		now:        time.Now,
	}
}

// CreateReminder validates the request, normalizes the note to the
// canonical versioned encoding and persists the reminder.
func (s *reminderService) CreateReminder(ctx context.Context, userID string, input models.CreateReminderInput) (models.Reminder, error) {
	if err := s.validator.Validate(ctx, input); err != nil {
		return models.Reminder{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	input.Note = normalizeNote(input.Note)

	return s.repository.CreateReminder(ctx, userID, input)
}

// GetUpcomingReminders returns the user's live reminders annotated with
// the due/overdue flags computed at the moment of the call.
func (s *reminderService) GetUpcomingReminders(ctx context.Context, userID string) ([]models.ReminderState, error) {
	reminders, err := s.repository.GetUpcomingReminders(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	states := make([]models.ReminderState, len(reminders))
	for i, reminder := range reminders {
		states[i] = remind.ComputeState(reminder, now)
	}

	return states, nil
}

func (s *reminderService) UpdateReminder(ctx context.Context, userID, reminderID string, input models.UpdateReminderInput) (models.Reminder, error) {
	if err := s.validator.Validate(ctx, input); err != nil {
		return models.Reminder{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if input.NoteSet {
		input.Note = normalizeNote(input.Note)
	}

	return s.repository.UpdateReminder(ctx, userID, reminderID, input)
}

func (s *reminderService) SnoozeReminder(ctx context.Context, userID, reminderID string, input models.SnoozeReminderInput) (models.Reminder, error) {
	if err := s.validator.Validate(ctx, input); err != nil {
		return models.Reminder{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return s.repository.SnoozeReminder(ctx, userID, reminderID, input)
}

func (s *reminderService) ArchiveReminder(ctx context.Context, userID, reminderID string, input models.ArchiveReminderInput) (models.Reminder, error) {
	if err := s.validator.Validate(ctx, input); err != nil {
		return models.Reminder{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return s.repository.ArchiveReminder(ctx, userID, reminderID, input)
}

func (s *reminderService) GetArchivedReminders(ctx context.Context, userID string, query models.ArchiveQuery) (models.ArchiveQueryResult, error) {
	switch query.Filter {
	case "", "all":
		query.Filter = ""
	case models.ArchiveReasonCompleted, models.ArchiveReasonAuto:
	default:
		return models.ArchiveQueryResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, validators.ErrInvalidArchiveFilter)
	}

	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 || query.PageSize > 100 {
		query.PageSize = models.DefaultPageSize
	}

	return s.repository.GetArchivedReminders(ctx, userID, query)
}

func (s *reminderService) GetSettings(ctx context.Context, userID string) (models.Profile, error) {
	return s.repository.GetProfile(ctx, userID)
}

func (s *reminderService) UpdateSettings(ctx context.Context, userID string, input models.UpdateSettingsInput) (models.Profile, error) {
	if err := s.validator.Validate(ctx, input); err != nil {
		return models.Profile{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return s.repository.UpdateSettings(ctx, userID, input)
}

func (s *reminderService) RunAutoArchiveSweep(ctx context.Context) (models.SweepResult, error) {
	result, err := s.repository.AutoArchiveAllUsers(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "reminderService.RunAutoArchiveSweep").
			Msg("sweep failed")
		return result, err
	}

	logger.FromContext(ctx).Info().
		Str("func", "reminderService.RunAutoArchiveSweep").
		Int("users", result.UsersProcessed).
		Int("archived", result.Archived).
		Msg("auto-archive sweep finished")

	return result, nil
}

// normalizeNote reserializes non-empty notes to the canonical versioned
// encoding so every stored note round-trips through the codec.
func normalizeNote(raw *string) *string {
	if raw == nil || *raw == "" {
		return raw
	}

	normalized := note.Normalize(*raw)

	return &normalized
}
