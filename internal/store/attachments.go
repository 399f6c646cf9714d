// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

package store

import (
	"context"
	"time"

	"github.com/laterhq/later-server/internal/metadata"
	"github.com/laterhq/later-server/internal/parse"
	"github.com/laterhq/later-server/models"
)

// buildAttachments materialises the attachment inputs of a reminder being
// created, assigning identifiers and running link-preview enrichment for
// link attachments.
//
// Enrichment is best-effort: the fetcher never errors, and a failed fetch
// leaves the attachment with a favicon-only fallback and
// [models.MetadataFailed]. Client-supplied preview fields always win over
// fetched ones. This helper is shared by the postgres and in-memory
// backends so both produce structurally identical records.
func buildAttachments(
	ctx context.Context,
	fetcher metadata.Fetcher,
	reminderID string,
	inputs []models.CreateAttachmentInput,
	now time.Time,
	newID func() string,
) []models.ReminderAttachment {
	attachments := make([]models.ReminderAttachment, 0, len(inputs))

	for _, input := range inputs {
		status := input.MetadataStatus
		if status == "" {
			status = models.MetadataReady
		}

		attachment := models.ReminderAttachment{
			ID:              newID(),
			ReminderID:      reminderID,
			Kind:            input.Kind,
			StoragePath:     input.StoragePath,
			MimeType:        input.MimeType,
			FileName:        input.FileName,
			FileSizeBytes:   input.FileSizeBytes,
			URL:             input.URL,
			TextContent:     input.TextContent,
			PreviewTitle:    input.PreviewTitle,
			PreviewIconURL:  input.PreviewIconURL,
			PreviewImageURL: input.PreviewImageURL,
			MetadataStatus:  status,
			CreatedAt:       now,
		}

		if attachment.Kind == models.KindLink && attachment.URL != nil && fetcher != nil {
			preview := fetcher.FetchLinkPreview(ctx, *attachment.URL)

			if attachment.PreviewTitle == nil {
				if preview.Title != nil {
					attachment.PreviewTitle = preview.Title
				} else {
					attachment.PreviewTitle = attachment.URL
				}
			}
			if attachment.PreviewIconURL == nil {
				if preview.IconURL != nil {
					attachment.PreviewIconURL = preview.IconURL
				} else if icon := parse.FaviconURL(*attachment.URL); icon != "" {
					attachment.PreviewIconURL = &icon
				}
			}
			attachment.MetadataStatus = preview.Status
		}

		attachments = append(attachments, attachment)
	}

	return attachments
}
