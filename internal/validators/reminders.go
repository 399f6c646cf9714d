// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

package validators

import (
	"context"
	"strings"
	"time"

	"github.com/laterhq/later-server/internal/parse"
	"github.com/laterhq/later-server/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a
// subset of fields (field-level scoping).
const (
	// FieldNote targets the note text of a reminder.
	FieldNote = "note"

	// FieldAttachments targets the attachment list of a create request.
	FieldAttachments = "attachments"

	// FieldRemindAt targets the scheduled time of a create request.
	FieldRemindAt = "remind_at"

	// FieldContent enforces that a reminder carries a note or at least one
	// attachment.
	FieldContent = "content"

	// FieldUpdateFields enforces that a partial update carries at least
	// one change.
	FieldUpdateFields = "update_fields"

	// FieldSnooze targets the preset/minutes pair of a snooze request.
	FieldSnooze = "snooze"

	// FieldReason targets the archive reason of an archive request.
	FieldReason = "reason"

	// FieldTimezone targets the IANA timezone of a settings update.
	FieldTimezone = "timezone"

	// FieldPolicy targets the auto-archive policy of a settings update.
	FieldPolicy = "policy"

	// FieldFileName targets the file name of an upload request.
	FieldFileName = "file_name"

	// FieldFileSize targets the declared byte size of an upload request.
	FieldFileSize = "file_size"
)

// ReminderValidator implements the Validator interface for all
// reminder-related request models: CreateReminderInput,
// UpdateReminderInput, SnoozeReminderInput, ArchiveReminderInput,
// UpdateSettingsInput and UploadRequest.
//
// It supports both value and pointer receivers for every model type and
// allows optional field-level scoping via variadic field name arguments.
type ReminderValidator struct {
	now func() time.Time
}

// remindAtPastTolerance absorbs client/server clock skew when checking
// that a new reminder is not scheduled in the past.
const remindAtPastTolerance = time.Minute

// NewReminderValidator constructs a new ReminderValidator and returns it
// as the Validator interface.
func NewReminderValidator() Validator {
	return &ReminderValidator{now: time.Now}
}

// Validate dispatches validation to the appropriate type-specific method.
func (v *ReminderValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateReminderInput:
		return v.validateCreate(ctx, value, fields...)
	case *models.CreateReminderInput:
		return v.validateCreate(ctx, *value, fields...)

	case models.UpdateReminderInput:
		return v.validateUpdate(ctx, value, fields...)
	case *models.UpdateReminderInput:
		return v.validateUpdate(ctx, *value, fields...)

	case models.SnoozeReminderInput:
		return v.validateSnooze(ctx, value, fields...)
	case *models.SnoozeReminderInput:
		return v.validateSnooze(ctx, *value, fields...)

	case models.ArchiveReminderInput:
		return v.validateArchive(ctx, value, fields...)
	case *models.ArchiveReminderInput:
		return v.validateArchive(ctx, *value, fields...)

	case models.UpdateSettingsInput:
		return v.validateSettings(ctx, value, fields...)
	case *models.UpdateSettingsInput:
		return v.validateSettings(ctx, *value, fields...)

	case models.UploadRequest:
		return v.validateUpload(ctx, value, fields...)
	case *models.UploadRequest:
		return v.validateUpload(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ReminderValidator) validateCreate(_ context.Context, input models.CreateReminderInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldContent, FieldNote, FieldRemindAt, FieldAttachments}
	}

	for _, f := range fields {
		switch f {
		case FieldContent:
			hasNote := input.Note != nil && strings.TrimSpace(*input.Note) != ""
			if !hasNote && len(input.Attachments) == 0 {
				return ErrEmptyReminder
			}
		case FieldNote:
			if input.Note != nil && len(*input.Note) > models.MaxNoteLength {
				return ErrNoteTooLong
			}
		case FieldRemindAt:
			if input.RemindAt != nil && v.now().Sub(*input.RemindAt) > remindAtPastTolerance {
				return ErrRemindAtInPast
			}
		case FieldAttachments:
			if len(input.Attachments) > models.MaxAttachments {
				return ErrTooManyAttachments
			}
			for _, attachment := range input.Attachments {
				if err := validateAttachment(attachment); err != nil {
					return err
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateAttachment(input models.CreateAttachmentInput) error {
	if input.FileName != nil && len(*input.FileName) > models.MaxFileNameLength {
		return ErrFileNameTooLong
	}
	if input.TextContent != nil && len(*input.TextContent) > models.MaxTextContentLength {
		return ErrTextContentTooLong
	}
	if input.PreviewTitle != nil && len(*input.PreviewTitle) > models.MaxPreviewTitleLength {
		return ErrPreviewTitleTooLong
	}

	switch input.Kind {
	case models.KindLink:
		if input.URL == nil || !parse.IsLikelyURL(*input.URL) {
			return ErrMissingURL
		}
	case models.KindTextSnippet:
		if input.TextContent == nil || strings.TrimSpace(*input.TextContent) == "" {
			return ErrMissingTextContent
		}
	case models.KindImage:
		if input.StoragePath == nil || *input.StoragePath == "" {
			return ErrMissingStoragePath
		}
		if input.FileSizeBytes != nil && *input.FileSizeBytes > models.MaxImageBytes {
			return ErrImageTooLarge
		}
	case models.KindFile:
		if input.StoragePath == nil || *input.StoragePath == "" {
			return ErrMissingStoragePath
		}
		if input.FileSizeBytes != nil && *input.FileSizeBytes > models.MaxFileBytes {
			return ErrFileTooLarge
		}
	default:
		return ErrInvalidAttachmentKind
	}

	return nil
}

func (v *ReminderValidator) validateUpdate(_ context.Context, input models.UpdateReminderInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUpdateFields, FieldNote}
	}

	for _, f := range fields {
		switch f {
		case FieldUpdateFields:
			if !input.NoteSet && !input.RemindAtSet && len(input.RemoveAttachmentIDs) == 0 {
				return ErrNoFieldsToUpdate
			}
		case FieldNote:
			if input.NoteSet && input.Note != nil && len(*input.Note) > models.MaxNoteLength {
				return ErrNoteTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ReminderValidator) validateSnooze(_ context.Context, input models.SnoozeReminderInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSnooze}
	}

	for _, f := range fields {
		switch f {
		case FieldSnooze:
			switch input.Preset {
			case models.SnoozePreset10m, models.SnoozePreset1h, models.SnoozePresetTomorrow:
			case "":
				if input.Minutes == 0 {
					return ErrSnoozeTargetRequired
				}
			default:
				return ErrInvalidSnoozePreset
			}
			if input.Minutes < 0 || input.Minutes > models.MaxSnoozeMinutes {
				return ErrInvalidSnoozeMinutes
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ReminderValidator) validateArchive(_ context.Context, input models.ArchiveReminderInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldReason}
	}

	for _, f := range fields {
		switch f {
		case FieldReason:
			if !models.ValidArchiveReason(input.Reason) {
				return ErrInvalidArchiveReason
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ReminderValidator) validateSettings(_ context.Context, input models.UpdateSettingsInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTimezone, FieldPolicy}
	}

	for _, f := range fields {
		switch f {
		case FieldTimezone:
			if input.Timezone != "" {
				if _, err := time.LoadLocation(input.Timezone); err != nil {
					return ErrInvalidTimezone
				}
			}
		case FieldPolicy:
			if input.AutoArchivePolicy != "" && !input.AutoArchivePolicy.Valid() {
				return ErrInvalidArchivePolicy
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ReminderValidator) validateUpload(_ context.Context, input models.UploadRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFileName, FieldFileSize}
	}

	for _, f := range fields {
		switch f {
		case FieldFileName:
			if strings.TrimSpace(input.FileName) == "" {
				return ErrEmptyFileName
			}
		case FieldFileSize:
			if input.Size <= 0 {
				return ErrInvalidFileSize
			}
			limit := int64(models.MaxFileBytes)
			if strings.HasPrefix(input.MimeType, "image/") {
				limit = models.MaxImageBytes
			}
			if input.Size > limit {
				if limit == models.MaxImageBytes {
					return ErrImageTooLarge
				}
				return ErrFileTooLarge
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
