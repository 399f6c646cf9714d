// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

// Package adapter provides outbound transport adapters for external
// services the application depends on.
//
// The primary abstraction is the blob signing adapter returned by
// [NewBlobSigner], which implements [service.BlobStore] over the HTTP API
// of an object storage signing service. Error values defined in errors.go
// are mapped from HTTP status codes by mapHTTPError so that callers can
// use [errors.Is] for transport-agnostic error handling.
package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/laterhq/later-server/internal/config"
	"github.com/laterhq/later-server/internal/logger"
	"github.com/laterhq/later-server/internal/service"
)

const defaultSignTimeout = 15 * time.Second

type blobSigner struct {
	client *resty.Client
	cfg    config.Blob

	logger *logger.Logger
}

// signRequest is the payload sent to the signing service.
type signRequest struct {
	Bucket      string `json:"bucket"`
	Path        string `json:"path"`
	ContentType string `json:"contentType"`
}

// signResponse is the payload returned by the signing service.
type signResponse struct {
	UploadURL string `json:"uploadUrl"`
}

// NewBlobSigner constructs an HTTP implementation of [service.BlobStore]
// backed by an object storage signing service. It normalises and validates
// the base URL from cfg.Endpoint and configures the underlying HTTP client
// with the resolved base URL and request timeout.
//
// Returns an error if cfg.Endpoint is empty or cannot be parsed as a valid
// URL.
func NewBlobSigner(cfg config.Blob, logger *logger.Logger) (service.BlobStore, error) {
	baseURL, err := normalizeBaseURL(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid blob endpoint: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultSignTimeout)

	return &blobSigner{client: client, cfg: cfg, logger: logger}, nil
}

// SignUpload implements [service.BlobStore]. It POSTs the storage path and
// MIME type to POST /v1/sign and returns the signed upload URL together
// with the public URL the attachment will be served from after the upload
// completes.
func (b *blobSigner) SignUpload(ctx context.Context, storagePath, mimeType string) (string, string, error) {
	var signed signResponse

	resp, err := b.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(signRequest{Bucket: b.cfg.Bucket, Path: storagePath, ContentType: mimeType}).
		SetResult(&signed).
		Post("/v1/sign")
	if err != nil {
		return "", "", fmt.Errorf("sign upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", "", err
	}

	if signed.UploadURL == "" {
		return "", "", fmt.Errorf("%w: empty upload URL", ErrServerError)
	}

	return signed.UploadURL, b.publicURL(storagePath), nil
}

// publicURL builds the URL the attachment becomes reachable at once the
// client finishes uploading.
func (b *blobSigner) publicURL(storagePath string) string {
	base := strings.TrimRight(b.cfg.PublicBaseURL, "/")
	if base == "" {
		base = b.client.BaseURL + "/" + b.cfg.Bucket
	}
	return base + "/" + strings.TrimLeft(storagePath, "/")
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
