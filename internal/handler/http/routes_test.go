package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/laterhq/later-server/internal/config"
	"github.com/laterhq/later-server/internal/logger"
	"github.com/laterhq/later-server/internal/service"
	"github.com/laterhq/later-server/internal/utils"
	"github.com/laterhq/later-server/models"
	"github.com/stretchr/testify/require"
)

// ---- Mock: ReminderService ----

type mockReminderSvc struct {
	createFn      func(ctx context.Context, userID string, input models.CreateReminderInput) (models.Reminder, error)
	upcomingFn    func(ctx context.Context, userID string) ([]models.ReminderState, error)
	updateFn      func(ctx context.Context, userID, reminderID string, input models.UpdateReminderInput) (models.Reminder, error)
	snoozeFn      func(ctx context.Context, userID, reminderID string, input models.SnoozeReminderInput) (models.Reminder, error)
	archiveFn     func(ctx context.Context, userID, reminderID string, input models.ArchiveReminderInput) (models.Reminder, error)
	archivedFn    func(ctx context.Context, userID string, query models.ArchiveQuery) (models.ArchiveQueryResult, error)
	getSettingsFn func(ctx context.Context, userID string) (models.Profile, error)
	setSettingsFn func(ctx context.Context, userID string, input models.UpdateSettingsInput) (models.Profile, error)
	sweepFn       func(ctx context.Context) (models.SweepResult, error)
}

func (m *mockReminderSvc) CreateReminder(ctx context.Context, userID string, input models.CreateReminderInput) (models.Reminder, error) {
	if m.createFn == nil {
		return models.Reminder{}, nil
	}
	return m.createFn(ctx, userID, input)
}

func (m *mockReminderSvc) GetUpcomingReminders(ctx context.Context, userID string) ([]models.ReminderState, error) {
	if m.upcomingFn == nil {
		return nil, nil
	}
	return m.upcomingFn(ctx, userID)
}

func (m *mockReminderSvc) UpdateReminder(ctx context.Context, userID, reminderID string, input models.UpdateReminderInput) (models.Reminder, error) {
	if m.updateFn == nil {
		return models.Reminder{}, nil
	}
	return m.updateFn(ctx, userID, reminderID, input)
}

func (m *mockReminderSvc) SnoozeReminder(ctx context.Context, userID, reminderID string, input models.SnoozeReminderInput) (models.Reminder, error) {
	if m.snoozeFn == nil {
		return models.Reminder{}, nil
	}
	return m.snoozeFn(ctx, userID, reminderID, input)
}

func (m *mockReminderSvc) ArchiveReminder(ctx context.Context, userID, reminderID string, input models.ArchiveReminderInput) (models.Reminder, error) {
	if m.archiveFn == nil {
		return models.Reminder{}, nil
	}
	return m.archiveFn(ctx, userID, reminderID, input)
}

func (m *mockReminderSvc) GetArchivedReminders(ctx context.Context, userID string, query models.ArchiveQuery) (models.ArchiveQueryResult, error) {
	if m.archivedFn == nil {
		return models.ArchiveQueryResult{}, nil
	}
	return m.archivedFn(ctx, userID, query)
}

func (m *mockReminderSvc) GetSettings(ctx context.Context, userID string) (models.Profile, error) {
	if m.getSettingsFn == nil {
		return models.Profile{}, nil
	}
	return m.getSettingsFn(ctx, userID)
}

func (m *mockReminderSvc) UpdateSettings(ctx context.Context, userID string, input models.UpdateSettingsInput) (models.Profile, error) {
	if m.setSettingsFn == nil {
		return models.Profile{}, nil
	}
	return m.setSettingsFn(ctx, userID, input)
}

func (m *mockReminderSvc) RunAutoArchiveSweep(ctx context.Context) (models.SweepResult, error) {
	if m.sweepFn == nil {
		return models.SweepResult{}, nil
	}
	return m.sweepFn(ctx)
}

// ---- Mock: UploadService ----

type mockUploadSvc struct {
	issueFn func(ctx context.Context, userID string, request models.UploadRequest) (models.UploadResponse, error)
}

func (m *mockUploadSvc) IssueUpload(ctx context.Context, userID string, request models.UploadRequest) (models.UploadResponse, error) {
	if m.issueFn == nil {
		return models.UploadResponse{}, nil
	}
	return m.issueFn(ctx, userID, request)
}

// ---- Helpers ----

func newTestHandler(t *testing.T, reminders *mockReminderSvc, uploads *mockUploadSvc, app config.App) *Handler {
	t.Helper()
	if reminders == nil {
		reminders = &mockReminderSvc{}
	}
	if uploads == nil {
		uploads = &mockUploadSvc{}
	}
	return &Handler{
		logger: logger.Nop(),
		app:    app,
		services: &service.Services{
			ReminderService: reminders,
			UploadService:   uploads,
		},
	}
}

func newTestRouter(t *testing.T, reminders *mockReminderSvc, uploads *mockUploadSvc, app config.App) http.Handler {
	t.Helper()
	return newTestHandler(t, reminders, uploads, app).Init()
}

// encodeBody serialises v to JSON and returns it as an io.Reader.
func encodeBody(t *testing.T, v any) io.Reader {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buf).Encode(v))
	return buf
}

// ctxWithUser returns a context carrying the given userID, the way the
// auth middleware would have installed it.
func ctxWithUser(userID string) context.Context {
	return context.WithValue(context.Background(), utils.UserIDCtxKey, userID)
}
