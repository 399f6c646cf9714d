// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/laterhq/later-server/models"
)

const (
	reminderColumns = `id, user_id, note, status, archive_reason, remind_at, archived_at, completed_at, created_at, updated_at`

	attachmentColumns = `id, reminder_id, kind, storage_path, mime_type, file_name, file_size_bytes, url, text_content, preview_title, preview_icon_url, preview_image_url, metadata_status, created_at`

	profileColumns = `id, display_name, avatar_url, timezone, auto_archive_policy, created_at, updated_at`
)

const (
	insertProfile = `INSERT INTO profiles (id, timezone, auto_archive_policy)
	VALUES ($1, 'UTC', 'never')
	ON CONFLICT (id) DO NOTHING;`

	selectProfile = `SELECT ` + profileColumns + `
	FROM profiles
	WHERE id = $1;`

	selectSweepableProfiles = `SELECT id
	FROM profiles
	WHERE auto_archive_policy <> 'never';`

	insertReminder = `INSERT INTO reminders (id, user_id, note, status, remind_at, created_at, updated_at)
	VALUES ($1, $2, $3, 'upcoming', $4, $5, $5);`

	insertAttachment = `INSERT INTO reminder_attachments (` + attachmentColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`

	selectReminder = `SELECT ` + reminderColumns + `
	FROM reminders
	WHERE user_id = $1 AND id = $2;`

	selectUpcomingReminders = `SELECT ` + reminderColumns + `
	FROM reminders
	WHERE user_id = $1 AND status <> 'archived'
	ORDER BY remind_at ASC NULLS LAST, created_at ASC;`

	archiveReminderQuery = `UPDATE reminders
	SET status = 'archived',
		archive_reason = $3,
		archived_at = $4,
		completed_at = CASE WHEN $3 = 'completed' THEN $4 ELSE NULL END,
		updated_at = $4
	WHERE user_id = $1 AND id = $2
	RETURNING id;`

	autoArchiveUserQuery = `UPDATE reminders
	SET status = 'archived',
		archive_reason = 'auto',
		archived_at = $2,
		updated_at = $2
	WHERE user_id = $1
		AND status = 'upcoming'
		AND remind_at IS NOT NULL
		AND remind_at <= $3
	RETURNING id;`
)

// buildUpdateReminderQuery builds the dynamic reopen-and-patch UPDATE for a
// reminder. Every update clears the archive fields (reopening the reminder)
// and bumps updated_at; note and remind_at are patched only when the request
// carried them.
func buildUpdateReminderQuery(userID, reminderID string, input models.UpdateReminderInput, now time.Time) (string, []any, error) {
	builder := sq.Update("reminders").
		Set("status", string(models.StatusUpcoming)).
		Set("archive_reason", nil).
		Set("archived_at", nil).
		Set("completed_at", nil).
		Set("updated_at", now)

	if input.NoteSet {
		builder = builder.Set("note", input.Note)
	}
	if input.RemindAtSet {
		builder = builder.Set("remind_at", input.RemindAt)
	}

	query, args, err := builder.
		Where(sq.Eq{"user_id": userID, "id": reminderID}).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateSettingsQuery builds the partial profile settings UPDATE.
func buildUpdateSettingsQuery(userID string, input models.UpdateSettingsInput, now time.Time) (string, []any, error) {
	builder := sq.Update("profiles").Set("updated_at", now)

	if input.Timezone != "" {
		builder = builder.Set("timezone", input.Timezone)
	}
	if input.AutoArchivePolicy != "" {
		builder = builder.Set("auto_archive_policy", string(input.AutoArchivePolicy))
	}

	query, args, err := builder.
		Where(sq.Eq{"id": userID}).
		Suffix("RETURNING " + profileColumns).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// archivedWhere assembles the shared WHERE clauses of the archived listing
// and its count query: owner, archived status, optional reason filter and
// optional case-insensitive free-text search over the note and the
// attachment fields.
func archivedWhere(userID string, query models.ArchiveQuery) []sq.Sqlizer {
	where := []sq.Sqlizer{
		sq.Eq{"user_id": userID},
		sq.Eq{"status": string(models.StatusArchived)},
	}

	if query.Filter != "" {
		where = append(where, sq.Eq{"archive_reason": query.Filter})
	}

	if query.Q != "" {
		pattern := "%" + query.Q + "%"
		where = append(where, sq.Or{
			sq.ILike{"note": pattern},
			sq.Expr(`EXISTS (
				SELECT 1 FROM reminder_attachments a
				WHERE a.reminder_id = reminders.id
					AND (a.file_name ILIKE ? OR a.url ILIKE ? OR a.preview_title ILIKE ? OR a.text_content ILIKE ?)
			)`, pattern, pattern, pattern, pattern),
		})
	}

	return where
}

// buildArchivedPageQuery builds the paginated archived listing, newest
// archive transition first.
func buildArchivedPageQuery(userID string, query models.ArchiveQuery) (string, []any, error) {
	builder := sq.Select(reminderColumns).
		From("reminders").
		OrderBy("archived_at DESC NULLS LAST").
		Limit(uint64(query.PageSize)).
		Offset(uint64((query.Page - 1) * query.PageSize))

	for _, clause := range archivedWhere(userID, query) {
		builder = builder.Where(clause)
	}

	sqlQuery, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlQuery, args, nil
}

// buildArchivedCountQuery builds the total-match count for the same filter
// set as [buildArchivedPageQuery].
func buildArchivedCountQuery(userID string, query models.ArchiveQuery) (string, []any, error) {
	builder := sq.Select("COUNT(*)").From("reminders")

	for _, clause := range archivedWhere(userID, query) {
		builder = builder.Where(clause)
	}

	sqlQuery, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlQuery, args, nil
}

// buildAttachmentsForRemindersQuery selects the attachments of a batch of
// reminders in creation order.
func buildAttachmentsForRemindersQuery(reminderIDs []string) (string, []any, error) {
	sqlQuery, args, err := sq.Select(attachmentColumns).
		From("reminder_attachments").
		Where(sq.Eq{"reminder_id": reminderIDs}).
		OrderBy("created_at ASC, id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlQuery, args, nil
}

// buildRemoveAttachmentsQuery deletes the listed attachments of one
// reminder. Ownership is enforced through the reminder join in the caller's
// UPDATE; here the reminder_id scope suffices.
func buildRemoveAttachmentsQuery(reminderID string, attachmentIDs []string) (string, []any, error) {
	sqlQuery, args, err := sq.Delete("reminder_attachments").
		Where(sq.Eq{"reminder_id": reminderID, "id": attachmentIDs}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlQuery, args, nil
}
