package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/laterhq/later-server/internal/config"
	"github.com/laterhq/later-server/models"
	"github.com/stretchr/testify/assert"
)

func TestAutoArchive_Success(t *testing.T) {
	svc := &mockReminderSvc{
		sweepFn: func(_ context.Context) (models.SweepResult, error) {
			return models.SweepResult{UsersProcessed: 3, Archived: 7}, nil
		},
	}
	router := newTestRouter(t, svc, nil, config.App{CronSecret: "s3cret"})

	req := httptest.NewRequest(http.MethodPost, "/api/cron/auto-archive", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"usersProcessed":3`)
	assert.Contains(t, rec.Body.String(), `"archived":7`)
}

func TestAutoArchive_WrongSecret(t *testing.T) {
	called := false
	svc := &mockReminderSvc{
		sweepFn: func(_ context.Context) (models.SweepResult, error) {
			called = true
			return models.SweepResult{}, nil
		},
	}
	router := newTestRouter(t, svc, nil, config.App{CronSecret: "s3cret"})

	req := httptest.NewRequest(http.MethodPost, "/api/cron/auto-archive", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called, "sweep must not run with a bad secret")
}

func TestAutoArchive_MissingHeader(t *testing.T) {
	router := newTestRouter(t, &mockReminderSvc{}, nil, config.App{CronSecret: "s3cret"})

	req := httptest.NewRequest(http.MethodPost, "/api/cron/auto-archive", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAutoArchive_DisabledWithoutSecret(t *testing.T) {
	router := newTestRouter(t, &mockReminderSvc{}, nil, config.App{})

	req := httptest.NewRequest(http.MethodPost, "/api/cron/auto-archive", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
