// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/laterhq/later-server/internal/logger"
	"github.com/laterhq/later-server/internal/utils"
	"github.com/laterhq/later-server/internal/validators"
	"github.com/laterhq/later-server/models"
)

type uploadService struct {
	blobs     BlobStore
	validator validators.Validator

	logger *logger.Logger

	newID func() string
}

func NewUploadService(blobs BlobStore, logger *logger.Logger) UploadService {
	gen := utils.NewUUIDGenerator()

	return &uploadService{
		blobs:     blobs,
		validator: validators.NewReminderValidator(),
		logger:    logger,
		newID:     gen.Generate,
	}
}

// IssueUpload validates the declared file and issues a user-scoped storage
// path. With a blob store configured it also returns a signed upload URL;
// in local development mode the path alone is returned and the client
// falls back to inline storage.
func (s *uploadService) IssueUpload(ctx context.Context, userID string, request models.UploadRequest) (models.UploadResponse, error) {
	if err := s.validator.Validate(ctx, request); err != nil {
		return models.UploadResponse{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	storagePath := fmt.Sprintf("%s/%s-%s", userID, s.newID(), sanitizeFileName(request.FileName))
	response := models.UploadResponse{StoragePath: storagePath}

	if s.blobs == nil {
		return response, nil
	}

	signedURL, publicURL, err := s.blobs.SignUpload(ctx, storagePath, request.MimeType)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "uploadService.IssueUpload").
			Str("storage_path", storagePath).
			Msg("failed to sign upload")
		return models.UploadResponse{}, fmt.Errorf("%w: %w", ErrSigningUpload, err)
	}

	response.SignedUploadURL = &signedURL
	response.PublicURL = &publicURL

	return response, nil
}

// sanitizeFileName strips any path components and replaces characters
// outside a conservative set, so the name is safe to embed in a storage
// key.
func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	sanitized := strings.Trim(b.String(), "._")
	if sanitized == "" {
		sanitized = "file"
	}

	return sanitized
}
