package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/laterhq/later-server/internal/config"
	"github.com/laterhq/later-server/internal/service"
	"github.com/laterhq/later-server/models"
	"github.com/stretchr/testify/assert"
)

func TestIssueUpload_Success(t *testing.T) {
	signed := "https://blobs.example.com/signed"
	svc := &mockUploadSvc{
		issueFn: func(_ context.Context, userID string, request models.UploadRequest) (models.UploadResponse, error) {
			assert.Equal(t, "photo.jpg", request.FileName)
			return models.UploadResponse{
				StoragePath:     userID + "/id-1-photo.jpg",
				SignedUploadURL: &signed,
			}, nil
		},
	}
	h := newTestHandler(t, nil, svc, config.App{})

	body := models.UploadRequest{FileName: "photo.jpg", MimeType: "image/jpeg", Size: 1024}
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", encodeBody(t, body))
	req = req.WithContext(ctxWithUser("user-1"))
	rec := httptest.NewRecorder()

	h.issueUpload(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"storagePath":"user-1/id-1-photo.jpg"`)
	assert.Contains(t, rec.Body.String(), signed)
}

func TestIssueUpload_SigningFailure(t *testing.T) {
	svc := &mockUploadSvc{
		issueFn: func(_ context.Context, _ string, _ models.UploadRequest) (models.UploadResponse, error) {
			return models.UploadResponse{}, service.ErrSigningUpload
		},
	}
	h := newTestHandler(t, nil, svc, config.App{})

	body := models.UploadRequest{FileName: "photo.jpg", MimeType: "image/jpeg", Size: 1024}
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", encodeBody(t, body))
	req = req.WithContext(ctxWithUser("user-1"))
	rec := httptest.NewRecorder()

	h.issueUpload(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestIssueUpload_TooLarge(t *testing.T) {
	svc := &mockUploadSvc{
		issueFn: func(_ context.Context, _ string, _ models.UploadRequest) (models.UploadResponse, error) {
			return models.UploadResponse{}, service.ErrInvalidInput
		},
	}
	h := newTestHandler(t, nil, svc, config.App{})

	body := models.UploadRequest{FileName: "huge.bin", MimeType: "application/octet-stream", Size: models.MaxFileBytes + 1}
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", encodeBody(t, body))
	req = req.WithContext(ctxWithUser("user-1"))
	rec := httptest.NewRecorder()

	h.issueUpload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
