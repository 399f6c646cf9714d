// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

package models

import "time"

// AttachmentKind discriminates the four attachment payload shapes.
type AttachmentKind string

const (
	// KindLink is a URL attachment enriched with preview metadata.
	KindLink AttachmentKind = "link"

	// KindImage is an uploaded image referenced by a blob-store path.
	KindImage AttachmentKind = "image"

	// KindFile is an arbitrary uploaded file referenced by a blob-store path.
	KindFile AttachmentKind = "file"

	// KindTextSnippet is a raw pasted text fragment.
	KindTextSnippet AttachmentKind = "text_snippet"
)

// Valid reports whether k is one of the known attachment kinds.
func (k AttachmentKind) Valid() bool {
	switch k {
	case KindLink, KindImage, KindFile, KindTextSnippet:
		return true
	}
	return false
}

// MetadataStatus tracks whether link-preview enrichment completed for an
// attachment.
type MetadataStatus string

const (
	MetadataPending MetadataStatus = "pending"
	MetadataReady   MetadataStatus = "ready"
	MetadataFailed  MetadataStatus = "failed"
)

// ReminderAttachment is one of link/image/file/text-snippet payloads owned
// by a reminder. Each kind populates a different subset of fields: url and
// preview data for links, storage path/mime/size for images and files, raw
// text for snippets.
type ReminderAttachment struct {
	ID         string         `json:"id"`
	ReminderID string         `json:"reminderId"`
	Kind       AttachmentKind `json:"kind"`

	StoragePath   *string `json:"storagePath"`
	MimeType      *string `json:"mimeType"`
	FileName      *string `json:"fileName"`
	FileSizeBytes *int64  `json:"fileSizeBytes"`

	URL             *string `json:"url"`
	TextContent     *string `json:"textContent"`
	PreviewTitle    *string `json:"previewTitle"`
	PreviewIconURL  *string `json:"previewIconUrl"`
	PreviewImageURL *string `json:"previewImageUrl"`

	MetadataStatus MetadataStatus `json:"metadataStatus"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the ReminderAttachment model.
func (a ReminderAttachment) TableName() string {
	return "reminder_attachments"
}
