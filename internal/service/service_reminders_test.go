// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/laterhq/later-server/internal/logger"
	"github.com/laterhq/later-server/internal/note"
	"github.com/laterhq/later-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: store.ReminderRepository
// ─────────────────────────────────────────────

type mockReminderRepository struct {
	createFn    func(ctx context.Context, userID string, input models.CreateReminderInput) (models.Reminder, error)
	upcomingFn  func(ctx context.Context, userID string) ([]models.Reminder, error)
	updateFn    func(ctx context.Context, userID, reminderID string, input models.UpdateReminderInput) (models.Reminder, error)
	snoozeFn    func(ctx context.Context, userID, reminderID string, input models.SnoozeReminderInput) (models.Reminder, error)
	archiveFn   func(ctx context.Context, userID, reminderID string, input models.ArchiveReminderInput) (models.Reminder, error)
	archivedFn  func(ctx context.Context, userID string, query models.ArchiveQuery) (models.ArchiveQueryResult, error)
	profileFn   func(ctx context.Context, userID string) (models.Profile, error)
	settingsFn  func(ctx context.Context, userID string, input models.UpdateSettingsInput) (models.Profile, error)
	sweepUserFn func(ctx context.Context, userID string) (int, error)
	sweepAllFn  func(ctx context.Context) (models.SweepResult, error)
}

func (m *mockReminderRepository) CreateReminder(ctx context.Context, userID string, input models.CreateReminderInput) (models.Reminder, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, input)
	}
	return models.Reminder{}, nil
}

func (m *mockReminderRepository) GetUpcomingReminders(ctx context.Context, userID string) ([]models.Reminder, error) {
	if m.upcomingFn != nil {
		return m.upcomingFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockReminderRepository) UpdateReminder(ctx context.Context, userID, reminderID string, input models.UpdateReminderInput) (models.Reminder, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, reminderID, input)
	}
	return models.Reminder{}, nil
}

func (m *mockReminderRepository) SnoozeReminder(ctx context.Context, userID, reminderID string, input models.SnoozeReminderInput) (models.Reminder, error) {
	if m.snoozeFn != nil {
		return m.snoozeFn(ctx, userID, reminderID, input)
	}
	return models.Reminder{}, nil
}

func (m *mockReminderRepository) ArchiveReminder(ctx context.Context, userID, reminderID string, input models.ArchiveReminderInput) (models.Reminder, error) {
	if m.archiveFn != nil {
		return m.archiveFn(ctx, userID, reminderID, input)
	}
	return models.Reminder{}, nil
}

func (m *mockReminderRepository) GetArchivedReminders(ctx context.Context, userID string, query models.ArchiveQuery) (models.ArchiveQueryResult, error) {
	if m.archivedFn != nil {
		return m.archivedFn(ctx, userID, query)
	}
	return models.ArchiveQueryResult{}, nil
}

func (m *mockReminderRepository) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	if m.profileFn != nil {
		return m.profileFn(ctx, userID)
	}
	return models.Profile{}, nil
}

func (m *mockReminderRepository) UpdateSettings(ctx context.Context, userID string, input models.UpdateSettingsInput) (models.Profile, error) {
	if m.settingsFn != nil {
		return m.settingsFn(ctx, userID, input)
	}
	return models.Profile{}, nil
}

func (m *mockReminderRepository) AutoArchiveForUser(ctx context.Context, userID string) (int, error) {
	if m.sweepUserFn != nil {
		return m.sweepUserFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockReminderRepository) AutoArchiveAllUsers(ctx context.Context) (models.SweepResult, error) {
	if m.sweepAllFn != nil {
		return m.sweepAllFn(ctx)
	}
	return models.SweepResult{}, nil
}

func newTestReminderService(repo *mockReminderRepository) *reminderService {
	return NewReminderService(repo, logger.NewLogger("test")).(*reminderService)
}

// ─────────────────────────────────────────────
// CreateReminder
// ─────────────────────────────────────────────

func TestCreateReminder_NormalizesNote(t *testing.T) {
	var captured models.CreateReminderInput
	repo := &mockReminderRepository{
		createFn: func(_ context.Context, _ string, input models.CreateReminderInput) (models.Reminder, error) {
			captured = input
			return models.Reminder{ID: "r-1", Note: input.Note}, nil
		},
	}
	svc := newTestReminderService(repo)

	raw := "Title line\nbody text"
	created, err := svc.CreateReminder(context.Background(), "user-1", models.CreateReminderInput{Note: &raw})
	require.NoError(t, err)
	assert.Equal(t, "r-1", created.ID)

	require.NotNil(t, captured.Note)
	assert.True(t, strings.HasPrefix(*captured.Note, note.Prefix), "stored note should carry the versioned prefix")

	parsed := note.Parse(*captured.Note)
	assert.Equal(t, "Title line", parsed.Title)
}

func TestCreateReminder_RejectsEmpty(t *testing.T) {
	svc := newTestReminderService(&mockReminderRepository{})

	_, err := svc.CreateReminder(context.Background(), "user-1", models.CreateReminderInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// ─────────────────────────────────────────────
// GetUpcomingReminders
// ─────────────────────────────────────────────

func TestGetUpcomingReminders_ComputesDueState(t *testing.T) {
	now := time.Date(2026, 2, 26, 12, 0, 0, 0, time.UTC)
	justDue := now.Add(-30 * time.Second)
	longOverdue := now.Add(-2 * time.Hour)
	future := now.Add(time.Hour)

	repo := &mockReminderRepository{
		upcomingFn: func(_ context.Context, _ string) ([]models.Reminder, error) {
			return []models.Reminder{
				{ID: "due", Status: models.StatusUpcoming, RemindAt: &justDue},
				{ID: "overdue", Status: models.StatusUpcoming, RemindAt: &longOverdue},
				{ID: "future", Status: models.StatusUpcoming, RemindAt: &future},
				{ID: "unscheduled", Status: models.StatusUpcoming},
			}, nil
		},
	}
	svc := newTestReminderService(repo)
	svc.now = func() time.Time { return now }

	states, err := svc.GetUpcomingReminders(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, states, 4)

	assert.True(t, states[0].IsDue)
	assert.True(t, states[0].IsOverdue)

	assert.False(t, states[1].IsDue)
	assert.True(t, states[1].IsOverdue)

	assert.False(t, states[2].IsDue)
	assert.False(t, states[2].IsOverdue)

	assert.False(t, states[3].IsDue)
	assert.False(t, states[3].IsOverdue)
}

// ─────────────────────────────────────────────
// UpdateReminder / SnoozeReminder / ArchiveReminder
// ─────────────────────────────────────────────

func TestUpdateReminder_NormalizesNoteOnlyWhenSet(t *testing.T) {
	var captured models.UpdateReminderInput
	repo := &mockReminderRepository{
		updateFn: func(_ context.Context, _, _ string, input models.UpdateReminderInput) (models.Reminder, error) {
			captured = input
			return models.Reminder{}, nil
		},
	}
	svc := newTestReminderService(repo)

	raw := "plain note"
	_, err := svc.UpdateReminder(context.Background(), "user-1", "r-1", models.UpdateReminderInput{NoteSet: true, Note: &raw})
	require.NoError(t, err)
	require.NotNil(t, captured.Note)
	assert.True(t, strings.HasPrefix(*captured.Note, note.Prefix))

	_, err = svc.UpdateReminder(context.Background(), "user-1", "r-1", models.UpdateReminderInput{NoteSet: true})
	require.NoError(t, err)
	assert.Nil(t, captured.Note, "clearing the note must pass nil through")
}

func TestUpdateReminder_RejectsEmptyPatch(t *testing.T) {
	svc := newTestReminderService(&mockReminderRepository{})

	_, err := svc.UpdateReminder(context.Background(), "user-1", "r-1", models.UpdateReminderInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSnoozeReminder_RejectsUnknownPreset(t *testing.T) {
	svc := newTestReminderService(&mockReminderRepository{})

	_, err := svc.SnoozeReminder(context.Background(), "user-1", "r-1", models.SnoozeReminderInput{Preset: "fortnight"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestArchiveReminder_PassesThroughRepositoryError(t *testing.T) {
	wantErr := errors.New("boom")
	repo := &mockReminderRepository{
		archiveFn: func(_ context.Context, _, _ string, _ models.ArchiveReminderInput) (models.Reminder, error) {
			return models.Reminder{}, wantErr
		},
	}
	svc := newTestReminderService(repo)

	_, err := svc.ArchiveReminder(context.Background(), "user-1", "r-1", models.ArchiveReminderInput{Reason: models.ArchiveReasonManual})
	assert.ErrorIs(t, err, wantErr)
}

// ─────────────────────────────────────────────
// GetArchivedReminders
// ─────────────────────────────────────────────

func TestGetArchivedReminders_NormalizesQuery(t *testing.T) {
	var captured models.ArchiveQuery
	repo := &mockReminderRepository{
		archivedFn: func(_ context.Context, _ string, query models.ArchiveQuery) (models.ArchiveQueryResult, error) {
			captured = query
			return models.ArchiveQueryResult{}, nil
		},
	}
	svc := newTestReminderService(repo)

	_, err := svc.GetArchivedReminders(context.Background(), "user-1", models.ArchiveQuery{Filter: "all", Page: 0, PageSize: 5000})
	require.NoError(t, err)
	assert.Empty(t, captured.Filter, `"all" maps to no filter`)
	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, models.DefaultPageSize, captured.PageSize)

	_, err = svc.GetArchivedReminders(context.Background(), "user-1", models.ArchiveQuery{Filter: "lost"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetArchivedReminders_RejectsManualFilter(t *testing.T) {
	repo := &mockReminderRepository{
		archivedFn: func(_ context.Context, _ string, _ models.ArchiveQuery) (models.ArchiveQueryResult, error) {
			t.Fatal("repository must not be reached for a rejected filter")
			return models.ArchiveQueryResult{}, nil
		},
	}
	svc := newTestReminderService(repo)

	_, err := svc.GetArchivedReminders(context.Background(), "user-1", models.ArchiveQuery{Filter: models.ArchiveReasonManual})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// ─────────────────────────────────────────────
// Settings and sweep
// ─────────────────────────────────────────────

func TestUpdateSettings_RejectsBadTimezone(t *testing.T) {
	svc := newTestReminderService(&mockReminderRepository{})

	_, err := svc.UpdateSettings(context.Background(), "user-1", models.UpdateSettingsInput{Timezone: "Nowhere/Fast"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRunAutoArchiveSweep_ReturnsTotals(t *testing.T) {
	repo := &mockReminderRepository{
		sweepAllFn: func(_ context.Context) (models.SweepResult, error) {
			return models.SweepResult{UsersProcessed: 3, Archived: 7}, nil
		},
	}
	svc := newTestReminderService(repo)

	result, err := svc.RunAutoArchiveSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.UsersProcessed)
	assert.Equal(t, 7, result.Archived)
}
