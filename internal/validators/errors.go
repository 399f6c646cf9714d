package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyReminder         = errors.New("reminder needs a note or at least one attachment")
	ErrNoteTooLong           = errors.New("note exceeds the maximum length")
	ErrRemindAtInPast        = errors.New("remindAt must be in the future")
	ErrTooManyAttachments    = errors.New("too many attachments")
	ErrInvalidAttachmentKind = errors.New("invalid attachment kind")
	ErrMissingURL            = errors.New("link attachment requires a url")
	ErrMissingTextContent    = errors.New("text attachment requires content")
	ErrMissingStoragePath    = errors.New("uploaded attachment requires a storage path")
	ErrImageTooLarge         = errors.New("image exceeds the maximum size")
	ErrFileTooLarge          = errors.New("file exceeds the maximum size")
	ErrFileNameTooLong       = errors.New("file name exceeds the maximum length")
	ErrTextContentTooLong    = errors.New("text content exceeds the maximum length")
	ErrPreviewTitleTooLong   = errors.New("preview title exceeds the maximum length")
	ErrNoFieldsToUpdate      = errors.New("at least one field must be provided for update")
	ErrInvalidSnoozePreset   = errors.New("invalid snooze preset")
	ErrSnoozeTargetRequired  = errors.New("preset or minutes is required")
	ErrInvalidSnoozeMinutes  = errors.New("snooze minutes must be between 1 and 43200")
	ErrInvalidArchiveReason  = errors.New("invalid archive reason")
	ErrInvalidTimezone       = errors.New("invalid timezone")
	ErrInvalidArchivePolicy  = errors.New("invalid auto-archive policy")
	ErrInvalidArchiveFilter  = errors.New("invalid archive filter")
	ErrEmptyFileName         = errors.New("file name is required")
	ErrInvalidFileSize       = errors.New("file size must be positive")
)
