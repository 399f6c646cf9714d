// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/laterhq/later-server/internal/metadata"
	"github.com/laterhq/later-server/internal/remind"
	"github.com/laterhq/later-server/internal/utils"
	"github.com/laterhq/later-server/models"
)

// memoryReminderRepository is the process-local fallback implementation of
// [ReminderRepository]. It keeps everything in maps guarded by one mutex,
// returns deep copies so callers can never mutate stored state, and is
// lost on restart.
//
// It honors the same state machine and sweep semantics as the PostgreSQL
// backend so handlers behave identically against either.
type memoryReminderRepository struct {
	mu        sync.Mutex
	reminders map[string]models.Reminder // reminder ID -> record
	profiles  map[string]models.Profile  // user ID -> profile

	fetcher metadata.Fetcher

	now   func() time.Time
	newID func() string
}

// NewMemoryReminderRepository constructs an empty in-memory repository.
func NewMemoryReminderRepository(fetcher metadata.Fetcher) ReminderRepository {
	gen := utils.NewUUIDGenerator()

	return &memoryReminderRepository{
		reminders: make(map[string]models.Reminder),
		profiles:  make(map[string]models.Profile),
		fetcher:   fetcher,
		now:       time.Now,
		newID:     gen.Generate,
	}
}

func (m *memoryReminderRepository) CreateReminder(ctx context.Context, userID string, input models.CreateReminderInput) (models.Reminder, error) {
	now := m.now().UTC()
	reminder := models.Reminder{
		ID:        m.newID(),
		UserID:    userID,
		Note:      copyOf(input.Note),
		Status:    models.StatusUpcoming,
		RemindAt:  copyOf(input.RemindAt),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Fetches run before the lock is taken: enrichment can block for
	// seconds and must not serialize every other caller.
	reminder.Attachments = buildAttachments(ctx, m.fetcher, reminder.ID, input.Attachments, now, m.newID)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.ensureProfileLocked(userID, now)
	m.reminders[reminder.ID] = copyReminder(reminder)

	return reminder, nil
}

func (m *memoryReminderRepository) GetUpcomingReminders(ctx context.Context, userID string) ([]models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	m.ensureProfileLocked(userID, now)
	m.sweepUserLocked(userID, now)

	reminders := make([]models.Reminder, 0, 10)
	for _, reminder := range m.reminders {
		if reminder.UserID == userID && reminder.Status == models.StatusUpcoming {
			reminders = append(reminders, copyReminder(reminder))
		}
	}

	// Scheduled first by remind time ascending, unscheduled last, ties by
	// creation time.
	sort.SliceStable(reminders, func(i, j int) bool {
		a, b := reminders[i], reminders[j]
		switch {
		case a.RemindAt == nil && b.RemindAt == nil:
			return a.CreatedAt.Before(b.CreatedAt)
		case a.RemindAt == nil:
			return false
		case b.RemindAt == nil:
			return true
		case a.RemindAt.Equal(*b.RemindAt):
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.RemindAt.Before(*b.RemindAt)
		}
	})

	return reminders, nil
}

func (m *memoryReminderRepository) UpdateReminder(ctx context.Context, userID, reminderID string, input models.UpdateReminderInput) (models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	reminder, found := m.reminders[reminderID]
	if !found || reminder.UserID != userID {
		return models.Reminder{}, ErrReminderNotFound
	}

	if input.NoteSet {
		reminder.Note = copyOf(input.Note)
	}
	if input.RemindAtSet {
		reminder.RemindAt = copyOf(input.RemindAt)
	}

	if len(input.RemoveAttachmentIDs) > 0 {
		remove := make(map[string]struct{}, len(input.RemoveAttachmentIDs))
		for _, id := range input.RemoveAttachmentIDs {
			remove[id] = struct{}{}
		}

		kept := reminder.Attachments[:0]
		for _, attachment := range reminder.Attachments {
			if _, drop := remove[attachment.ID]; !drop {
				kept = append(kept, attachment)
			}
		}
		reminder.Attachments = kept
	}

	// Any edit reopens an archived reminder.
	reminder.Status = models.StatusUpcoming
	reminder.ArchiveReason = nil
	reminder.ArchivedAt = nil
	reminder.CompletedAt = nil
	reminder.UpdatedAt = m.now().UTC()

	m.reminders[reminderID] = copyReminder(reminder)

	return copyReminder(reminder), nil
}

func (m *memoryReminderRepository) SnoozeReminder(ctx context.Context, userID, reminderID string, input models.SnoozeReminderInput) (models.Reminder, error) {
	m.mu.Lock()
	profile := m.ensureProfileLocked(userID, m.now().UTC())
	m.mu.Unlock()

	remindAt := remind.SnoozeAt(m.now(), input, profile.Location()).UTC()

	return m.UpdateReminder(ctx, userID, reminderID, models.UpdateReminderInput{
		RemindAtSet: true,
		RemindAt:    &remindAt,
	})
}

func (m *memoryReminderRepository) ArchiveReminder(ctx context.Context, userID, reminderID string, input models.ArchiveReminderInput) (models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	reminder, found := m.reminders[reminderID]
	if !found || reminder.UserID != userID {
		return models.Reminder{}, ErrReminderNotFound
	}

	now := m.now().UTC()
	archiveLocked(&reminder, input.Reason, now)
	m.reminders[reminderID] = copyReminder(reminder)

	return copyReminder(reminder), nil
}

func (m *memoryReminderRepository) GetArchivedReminders(ctx context.Context, userID string, query models.ArchiveQuery) (models.ArchiveQueryResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	m.ensureProfileLocked(userID, now)
	m.sweepUserLocked(userID, now)

	query = normalizeArchiveQuery(query)
	needle := strings.ToLower(strings.TrimSpace(query.Q))

	matched := make([]models.Reminder, 0, 10)
	for _, reminder := range m.reminders {
		if reminder.UserID != userID || reminder.Status != models.StatusArchived {
			continue
		}
		if query.Filter != "" && (reminder.ArchiveReason == nil || *reminder.ArchiveReason != query.Filter) {
			continue
		}
		if needle != "" && !reminderMatchesQuery(reminder, needle) {
			continue
		}
		matched = append(matched, copyReminder(reminder))
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch {
		case a.ArchivedAt == nil && b.ArchivedAt == nil:
			return a.CreatedAt.After(b.CreatedAt)
		case a.ArchivedAt == nil:
			return false
		case b.ArchivedAt == nil:
			return true
		default:
			return a.ArchivedAt.After(*b.ArchivedAt)
		}
	})

	total := len(matched)
	start := (query.Page - 1) * query.PageSize
	if start > total {
		start = total
	}
	end := start + query.PageSize
	if end > total {
		end = total
	}

	return models.ArchiveQueryResult{
		Items:    matched[start:end],
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

func (m *memoryReminderRepository) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ensureProfileLocked(userID, m.now().UTC()), nil
}

func (m *memoryReminderRepository) UpdateSettings(ctx context.Context, userID string, input models.UpdateSettingsInput) (models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	profile := m.ensureProfileLocked(userID, now)

	if input.Timezone != "" {
		profile.Timezone = input.Timezone
	}
	if input.AutoArchivePolicy != "" {
		profile.AutoArchivePolicy = input.AutoArchivePolicy
	}
	profile.UpdatedAt = now

	m.profiles[userID] = profile

	return profile, nil
}

func (m *memoryReminderRepository) AutoArchiveForUser(ctx context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	m.ensureProfileLocked(userID, now)

	return m.sweepUserLocked(userID, now), nil
}

func (m *memoryReminderRepository) AutoArchiveAllUsers(ctx context.Context) (models.SweepResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	result := models.SweepResult{}
	for userID, profile := range m.profiles {
		if _, sweepable := remind.AutoArchiveThreshold(profile.AutoArchivePolicy); !sweepable {
			continue
		}
		result.UsersProcessed++
		result.Archived += m.sweepUserLocked(userID, now)
	}

	return result, nil
}

// ensureProfileLocked returns the user's profile, creating the default one
// on first access. Caller must hold m.mu.
func (m *memoryReminderRepository) ensureProfileLocked(userID string, now time.Time) models.Profile {
	if profile, found := m.profiles[userID]; found {
		return profile
	}

	profile := models.Profile{
		ID:                userID,
		Timezone:          "UTC",
		AutoArchivePolicy: models.AutoArchiveNever,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	m.profiles[userID] = profile

	return profile
}

// sweepUserLocked archives the user's reminders past the auto-archive
// grace period. Caller must hold m.mu.
func (m *memoryReminderRepository) sweepUserLocked(userID string, now time.Time) int {
	profile := m.profiles[userID]
	if _, ok := remind.AutoArchiveThreshold(profile.AutoArchivePolicy); !ok {
		return 0
	}

	archived := 0
	for id, reminder := range m.reminders {
		if reminder.UserID != userID {
			continue
		}
		if !remind.ShouldAutoArchive(reminder, profile.AutoArchivePolicy, now) {
			continue
		}

		archiveLocked(&reminder, models.ArchiveReasonAuto, now)
		m.reminders[id] = reminder
		archived++
	}

	return archived
}

// archiveLocked applies the archive transition in place.
func archiveLocked(reminder *models.Reminder, reason string, now time.Time) {
	reminder.Status = models.StatusArchived
	reminder.ArchiveReason = &reason
	archivedAt := now
	reminder.ArchivedAt = &archivedAt
	if reason == models.ArchiveReasonCompleted {
		completedAt := now
		reminder.CompletedAt = &completedAt
	} else {
		reminder.CompletedAt = nil
	}
	reminder.UpdatedAt = now
}

// reminderMatchesQuery reports whether the lowercase needle occurs in the
// note or in any attachment's searchable fields.
func reminderMatchesQuery(reminder models.Reminder, needle string) bool {
	if reminder.Note != nil && strings.Contains(strings.ToLower(*reminder.Note), needle) {
		return true
	}

	for _, attachment := range reminder.Attachments {
		for _, field := range []*string{
			attachment.FileName,
			attachment.URL,
			attachment.TextContent,
			attachment.PreviewTitle,
		} {
			if field != nil && strings.Contains(strings.ToLower(*field), needle) {
				return true
			}
		}
	}

	return false
}

func copyReminder(reminder models.Reminder) models.Reminder {
	out := reminder
	out.Note = copyOf(reminder.Note)
	out.ArchiveReason = copyOf(reminder.ArchiveReason)
	out.RemindAt = copyOf(reminder.RemindAt)
	out.ArchivedAt = copyOf(reminder.ArchivedAt)
	out.CompletedAt = copyOf(reminder.CompletedAt)

	out.Attachments = make([]models.ReminderAttachment, len(reminder.Attachments))
	for i, attachment := range reminder.Attachments {
		out.Attachments[i] = copyAttachment(attachment)
	}

	return out
}

func copyAttachment(attachment models.ReminderAttachment) models.ReminderAttachment {
	out := attachment
	out.StoragePath = copyOf(attachment.StoragePath)
	out.MimeType = copyOf(attachment.MimeType)
	out.FileName = copyOf(attachment.FileName)
	out.FileSizeBytes = copyOf(attachment.FileSizeBytes)
	out.URL = copyOf(attachment.URL)
	out.TextContent = copyOf(attachment.TextContent)
	out.PreviewTitle = copyOf(attachment.PreviewTitle)
	out.PreviewIconURL = copyOf(attachment.PreviewIconURL)
	out.PreviewImageURL = copyOf(attachment.PreviewImageURL)

	return out
}

func copyOf[T any](ptr *T) *T {
	if ptr == nil {
		return nil
	}
	value := *ptr

	return &value
}
