package service

import (
	"context"

	"github.com/laterhq/later-server/models"
)

type ReminderService interface {
	CreateReminder(ctx context.Context, userID string, input models.CreateReminderInput) (models.Reminder, error)
	GetUpcomingReminders(ctx context.Context, userID string) ([]models.ReminderState, error)
	UpdateReminder(ctx context.Context, userID, reminderID string, input models.UpdateReminderInput) (models.Reminder, error)
	SnoozeReminder(ctx context.Context, userID, reminderID string, input models.SnoozeReminderInput) (models.Reminder, error)
	ArchiveReminder(ctx context.Context, userID, reminderID string, input models.ArchiveReminderInput) (models.Reminder, error)
	GetArchivedReminders(ctx context.Context, userID string, query models.ArchiveQuery) (models.ArchiveQueryResult, error)

	GetSettings(ctx context.Context, userID string) (models.Profile, error)
	UpdateSettings(ctx context.Context, userID string, input models.UpdateSettingsInput) (models.Profile, error)

	RunAutoArchiveSweep(ctx context.Context) (models.SweepResult, error)
}

type UploadService interface {
	IssueUpload(ctx context.Context, userID string, request models.UploadRequest) (models.UploadResponse, error)
}

// BlobStore abstracts the object storage used for attachment uploads.
// A nil BlobStore means local development mode: paths are issued but no
// signed URLs.
type BlobStore interface {
	SignUpload(ctx context.Context, storagePath, mimeType string) (signedURL, publicURL string, err error)
}
