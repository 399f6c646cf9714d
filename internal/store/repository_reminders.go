// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/laterhq/later-server/internal/logger"
	"github.com/laterhq/later-server/internal/metadata"
	"github.com/laterhq/later-server/internal/remind"
	"github.com/laterhq/later-server/internal/utils"
	"github.com/laterhq/later-server/models"
)

// reminderRepository is the PostgreSQL-backed implementation of
// [ReminderRepository]. It executes all reminder and profile operations
// against the "reminders", "reminder_attachments" and "profiles" tables
// using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (user_id, reminder_id, etc.).
type reminderRepository struct {
	*DB
	fetcher metadata.Fetcher
	logger  *logger.Logger

	now   func() time.Time
	newID func() string
}

// NewReminderRepository constructs a [ReminderRepository] backed by the
// provided database connection, link-preview fetcher and logger.
func NewReminderRepository(db *DB, fetcher metadata.Fetcher, log *logger.Logger) ReminderRepository {
	gen := utils.NewUUIDGenerator()

	return &reminderRepository{
		DB:      db,
		fetcher: fetcher,
		logger:  log,
		now:     time.Now,
		newID:   gen.Generate,
	}
}

// CreateReminder persists a new reminder together with its attachments in
// a single transaction, so a failure never leaves an orphan reminder row.
//
// Link attachments are enriched with preview metadata before the
// transaction opens; enrichment is best-effort and cannot fail the create.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrReminderAlreadyExists].
//   - Any other driver-level failure → wrapped in the matching SQL-level
//     sentinel ([ErrExecutingStatement] and friends).
func (r *reminderRepository) CreateReminder(ctx context.Context, userID string, input models.CreateReminderInput) (models.Reminder, error) {
	log := logger.FromContext(ctx)

	if _, err := r.ensureProfile(ctx, userID); err != nil {
		return models.Reminder{}, err
	}

	now := r.now().UTC()
	reminder := models.Reminder{
		ID:        r.newID(),
		UserID:    userID,
		Note:      input.Note,
		Status:    models.StatusUpcoming,
		RemindAt:  input.RemindAt,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Enrichment performs outbound fetches with a multi-second timeout;
	// keep it outside the transaction.
	reminder.Attachments = buildAttachments(ctx, r.fetcher, reminder.ID, input.Attachments, now, r.newID)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "reminderRepository.CreateReminder").
			Str("user_id", userID).
			Msg("failed to begin transaction")
		return models.Reminder{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, insertReminder, reminder.ID, reminder.UserID, reminder.Note, reminder.RemindAt, now); err != nil {
		log.Err(err).
			Str("func", "reminderRepository.CreateReminder").
			Str("user_id", userID).
			Str("reminder_id", reminder.ID).
			Msg("failed to insert reminder")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Reminder{}, ErrReminderAlreadyExists
		default:
			return models.Reminder{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if len(reminder.Attachments) > 0 {
		stmt, prepErr := tx.PrepareContext(ctx, insertAttachment)
		if prepErr != nil {
			log.Err(prepErr).
				Str("func", "reminderRepository.CreateReminder").
				Str("reminder_id", reminder.ID).
				Msg("failed to prepare attachment statement")
			return models.Reminder{}, fmt.Errorf("%w: %w", ErrPreparingStatement, prepErr)
		}
		defer stmt.Close()

		for idx, attachment := range reminder.Attachments {
			_, execErr := stmt.ExecContext(ctx,
				attachment.ID,
				attachment.ReminderID,
				attachment.Kind,
				attachment.StoragePath,
				attachment.MimeType,
				attachment.FileName,
				attachment.FileSizeBytes,
				attachment.URL,
				attachment.TextContent,
				attachment.PreviewTitle,
				attachment.PreviewIconURL,
				attachment.PreviewImageURL,
				attachment.MetadataStatus,
				attachment.CreatedAt,
			)
			if execErr != nil {
				log.Err(execErr).
					Str("func", "reminderRepository.CreateReminder").
					Str("reminder_id", reminder.ID).
					Int("iteration", idx+1).
					Msg("failed to insert attachment")
				return models.Reminder{}, fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
			}
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "reminderRepository.CreateReminder").
			Str("reminder_id", reminder.ID).
			Msg("failed to commit transaction")
		return models.Reminder{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "reminderRepository.CreateReminder").
		Str("user_id", userID).
		Str("reminder_id", reminder.ID).
		Int("attachments", len(reminder.Attachments)).
		Msg("created reminder")

	return reminder, nil
}

// GetUpcomingReminders returns the user's live reminders sorted by
// scheduled time ascending with unscheduled ones last. The auto-archive
// sweep for the user runs first, so reminders past their grace period
// never appear in the upcoming list.
func (r *reminderRepository) GetUpcomingReminders(ctx context.Context, userID string) ([]models.Reminder, error) {
	log := logger.FromContext(ctx)

	if _, err := r.AutoArchiveForUser(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, selectUpcomingReminders, userID)
	if err != nil {
		log.Err(err).
			Str("func", "reminderRepository.GetUpcomingReminders").
			Str("user_id", userID).
			Msg("failed to execute query for upcoming reminders")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	reminders, err := scanReminders(rows)
	if err != nil {
		log.Err(err).
			Str("func", "reminderRepository.GetUpcomingReminders").
			Str("user_id", userID).
			Msg("failed to scan upcoming reminders")
		return nil, err
	}

	if err = r.loadAttachments(ctx, reminders); err != nil {
		return nil, err
	}

	return reminders, nil
}

// UpdateReminder applies a partial update to a reminder and reopens it if
// it was archived: the archive reason and the archived/completed
// timestamps are always cleared, the status reset to upcoming.
//
// Returns [ErrReminderNotFound] when the reminder does not exist or is not
// owned by userID.
func (r *reminderRepository) UpdateReminder(ctx context.Context, userID, reminderID string, input models.UpdateReminderInput) (models.Reminder, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateReminderQuery(userID, reminderID, input, r.now().UTC())
	if err != nil {
		log.Err(err).
			Str("func", "reminderRepository.UpdateReminder").
			Str("reminder_id", reminderID).
			Msg("failed to build update query")
		return models.Reminder{}, err
	}

	var updatedID string
	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().
				Str("func", "reminderRepository.UpdateReminder").
				Str("reminder_id", reminderID).
				Msg("reminder not found")
			return models.Reminder{}, ErrReminderNotFound
		}
		log.Err(err).
			Str("func", "reminderRepository.UpdateReminder").
			Str("reminder_id", reminderID).
			Msg("failed to execute update query")
		return models.Reminder{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if len(input.RemoveAttachmentIDs) > 0 {
		removeQuery, removeArgs, buildErr := buildRemoveAttachmentsQuery(reminderID, input.RemoveAttachmentIDs)
		if buildErr != nil {
			return models.Reminder{}, buildErr
		}

		if _, execErr := r.DB.ExecContext(ctx, removeQuery, removeArgs...); execErr != nil {
			log.Err(execErr).
				Str("func", "reminderRepository.UpdateReminder").
				Str("reminder_id", reminderID).
				Int("remove_count", len(input.RemoveAttachmentIDs)).
				Msg("failed to remove attachments")
			return models.Reminder{}, fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
	}

	return r.getReminder(ctx, userID, reminderID)
}

// SnoozeReminder reschedules a reminder to a near-future time computed
// from the moment of the call in the owner's timezone, reopening it when
// archived.
func (r *reminderRepository) SnoozeReminder(ctx context.Context, userID, reminderID string, input models.SnoozeReminderInput) (models.Reminder, error) {
	profile, err := r.ensureProfile(ctx, userID)
	if err != nil {
		return models.Reminder{}, err
	}

	remindAt := remind.SnoozeAt(r.now(), input, profile.Location()).UTC()

	return r.UpdateReminder(ctx, userID, reminderID, models.UpdateReminderInput{
		RemindAtSet: true,
		RemindAt:    &remindAt,
	})
}

// ArchiveReminder moves a reminder to the archive, recording the reason
// and archive timestamp, and the completed timestamp when the reason is
// "completed".
func (r *reminderRepository) ArchiveReminder(ctx context.Context, userID, reminderID string, input models.ArchiveReminderInput) (models.Reminder, error) {
	log := logger.FromContext(ctx)

	var archivedID string
	err := r.DB.QueryRowContext(ctx, archiveReminderQuery, userID, reminderID, input.Reason, r.now().UTC()).Scan(&archivedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().
				Str("func", "reminderRepository.ArchiveReminder").
				Str("reminder_id", reminderID).
				Msg("reminder not found")
			return models.Reminder{}, ErrReminderNotFound
		}
		log.Err(err).
			Str("func", "reminderRepository.ArchiveReminder").
			Str("reminder_id", reminderID).
			Str("reason", input.Reason).
			Msg("failed to execute archive query")
		return models.Reminder{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return r.getReminder(ctx, userID, reminderID)
}

// GetArchivedReminders returns one page of the user's archived reminders,
// optionally filtered by archive reason and by a case-insensitive
// free-text query over the note and attachment fields. Results are sorted
// by archive time descending. The auto-archive sweep runs first.
func (r *reminderRepository) GetArchivedReminders(ctx context.Context, userID string, query models.ArchiveQuery) (models.ArchiveQueryResult, error) {
	log := logger.FromContext(ctx)

	if _, err := r.AutoArchiveForUser(ctx, userID); err != nil {
		return models.ArchiveQueryResult{}, err
	}

	query = normalizeArchiveQuery(query)

	countQuery, countArgs, err := buildArchivedCountQuery(userID, query)
	if err != nil {
		return models.ArchiveQueryResult{}, err
	}

	var total int
	if err = r.DB.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).
			Str("func", "reminderRepository.GetArchivedReminders").
			Str("user_id", userID).
			Msg("failed to count archived reminders")
		return models.ArchiveQueryResult{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	pageQuery, pageArgs, err := buildArchivedPageQuery(userID, query)
	if err != nil {
		return models.ArchiveQueryResult{}, err
	}

	rows, err := r.DB.QueryContext(ctx, pageQuery, pageArgs...)
	if err != nil {
		log.Err(err).
			Str("func", "reminderRepository.GetArchivedReminders").
			Str("user_id", userID).
			Msg("failed to execute query for archived reminders")
		return models.ArchiveQueryResult{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	reminders, err := scanReminders(rows)
	if err != nil {
		log.Err(err).
			Str("func", "reminderRepository.GetArchivedReminders").
			Str("user_id", userID).
			Msg("failed to scan archived reminders")
		return models.ArchiveQueryResult{}, err
	}

	if err = r.loadAttachments(ctx, reminders); err != nil {
		return models.ArchiveQueryResult{}, err
	}

	return models.ArchiveQueryResult{
		Items:    reminders,
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

// GetProfile returns the user's profile, creating it lazily on first
// access.
func (r *reminderRepository) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	return r.ensureProfile(ctx, userID)
}

// UpdateSettings patches the profile's timezone and/or auto-archive
// policy, creating the profile first when necessary.
func (r *reminderRepository) UpdateSettings(ctx context.Context, userID string, input models.UpdateSettingsInput) (models.Profile, error) {
	log := logger.FromContext(ctx)

	if _, err := r.ensureProfile(ctx, userID); err != nil {
		return models.Profile{}, err
	}

	if input.Timezone == "" && input.AutoArchivePolicy == "" {
		return r.ensureProfile(ctx, userID)
	}

	query, args, err := buildUpdateSettingsQuery(userID, input, r.now().UTC())
	if err != nil {
		return models.Profile{}, err
	}

	profile, err := scanProfileRow(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, ErrProfileNotFound
		}
		log.Err(err).
			Str("func", "reminderRepository.UpdateSettings").
			Str("user_id", userID).
			Msg("failed to update settings")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return profile, nil
}

// AutoArchiveForUser archives every upcoming reminder of the user whose
// scheduled time is past the profile's auto-archive grace period. The
// sweep is idempotent: a second run finds no additional eligible rows.
func (r *reminderRepository) AutoArchiveForUser(ctx context.Context, userID string) (int, error) {
	log := logger.FromContext(ctx)

	profile, err := r.ensureProfile(ctx, userID)
	if err != nil {
		return 0, err
	}

	threshold, ok := remind.AutoArchiveThreshold(profile.AutoArchivePolicy)
	if !ok {
		return 0, nil
	}

	now := r.now().UTC()
	cutoff := now.Add(-threshold)

	rows, err := r.DB.QueryContext(ctx, autoArchiveUserQuery, userID, now, cutoff)
	if err != nil {
		log.Err(err).
			Str("func", "reminderRepository.AutoArchiveForUser").
			Str("user_id", userID).
			Msg("failed to execute auto-archive query")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id string
		if scanErr := rows.Scan(&id); scanErr != nil {
			return count, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		count++
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return count, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	if count > 0 {
		log.Info().
			Str("func", "reminderRepository.AutoArchiveForUser").
			Str("user_id", userID).
			Int("archived", count).
			Msg("auto-archived overdue reminders")
	}

	return count, nil
}

// AutoArchiveAllUsers sweeps every profile whose policy is not "never".
// Safe to re-run or to run concurrently: each per-user sweep is
// idempotent. A per-user failure the error classifier deems retryable
// (connection loss, deadlock rollback) is retried once before the sweep
// aborts.
func (r *reminderRepository) AutoArchiveAllUsers(ctx context.Context) (models.SweepResult, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, selectSweepableProfiles)
	if err != nil {
		log.Err(err).
			Str("func", "reminderRepository.AutoArchiveAllUsers").
			Msg("failed to list sweepable profiles")
		return models.SweepResult{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	userIDs := make([]string, 0, 50)
	for rows.Next() {
		var id string
		if scanErr := rows.Scan(&id); scanErr != nil {
			return models.SweepResult{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		userIDs = append(userIDs, id)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return models.SweepResult{}, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	result := models.SweepResult{UsersProcessed: len(userIDs)}
	for _, id := range userIDs {
		archived, sweepErr := r.AutoArchiveForUser(ctx, id)
		if sweepErr != nil && r.errorClassificator.Classify(sweepErr) == Retryable {
			log.Warn().
				Str("func", "reminderRepository.AutoArchiveAllUsers").
				Str("user_id", id).
				Msg("retrying sweep after a transient database error")
			archived, sweepErr = r.AutoArchiveForUser(ctx, id)
		}
		if sweepErr != nil {
			return result, sweepErr
		}
		result.Archived += archived
	}

	return result, nil
}

// ensureProfile returns the user's profile, inserting the default row
// first when the user has none.
func (r *reminderRepository) ensureProfile(ctx context.Context, userID string) (models.Profile, error) {
	log := logger.FromContext(ctx)

	if _, err := r.DB.ExecContext(ctx, insertProfile, userID); err != nil {
		log.Err(err).
			Str("func", "reminderRepository.ensureProfile").
			Str("user_id", userID).
			Msg("failed to insert default profile")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	profile, err := scanProfileRow(r.DB.QueryRowContext(ctx, selectProfile, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, ErrProfileNotFound
		}
		log.Err(err).
			Str("func", "reminderRepository.ensureProfile").
			Str("user_id", userID).
			Msg("failed to read profile")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return profile, nil
}

// getReminder loads one reminder with its attachments.
func (r *reminderRepository) getReminder(ctx context.Context, userID, reminderID string) (models.Reminder, error) {
	log := logger.FromContext(ctx)

	var reminder models.Reminder
	row := r.DB.QueryRowContext(ctx, selectReminder, userID, reminderID)
	if err := scanReminder(row, &reminder); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Reminder{}, ErrReminderNotFound
		}
		log.Err(err).
			Str("func", "reminderRepository.getReminder").
			Str("reminder_id", reminderID).
			Msg("failed to scan reminder row")
		return models.Reminder{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	reminders := []models.Reminder{reminder}
	if err := r.loadAttachments(ctx, reminders); err != nil {
		return models.Reminder{}, err
	}

	return reminders[0], nil
}

// loadAttachments fills the Attachments slice of each reminder in place
// with a single batched query.
func (r *reminderRepository) loadAttachments(ctx context.Context, reminders []models.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	ids := make([]string, 0, len(reminders))
	byID := make(map[string]*models.Reminder, len(reminders))
	for i := range reminders {
		reminders[i].Attachments = []models.ReminderAttachment{}
		ids = append(ids, reminders[i].ID)
		byID[reminders[i].ID] = &reminders[i]
	}

	query, args, err := buildAttachmentsForRemindersQuery(ids)
	if err != nil {
		return err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "reminderRepository.loadAttachments").
			Int("reminders", len(reminders)).
			Msg("failed to execute attachments query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var attachment models.ReminderAttachment
		if scanErr := rows.Scan(
			&attachment.ID,
			&attachment.ReminderID,
			&attachment.Kind,
			&attachment.StoragePath,
			&attachment.MimeType,
			&attachment.FileName,
			&attachment.FileSizeBytes,
			&attachment.URL,
			&attachment.TextContent,
			&attachment.PreviewTitle,
			&attachment.PreviewIconURL,
			&attachment.PreviewImageURL,
			&attachment.MetadataStatus,
			&attachment.CreatedAt,
		); scanErr != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		if reminder, found := byID[attachment.ReminderID]; found {
			reminder.Attachments = append(reminder.Attachments, attachment)
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReminder(row rowScanner, reminder *models.Reminder) error {
	return row.Scan(
		&reminder.ID,
		&reminder.UserID,
		&reminder.Note,
		&reminder.Status,
		&reminder.ArchiveReason,
		&reminder.RemindAt,
		&reminder.ArchivedAt,
		&reminder.CompletedAt,
		&reminder.CreatedAt,
		&reminder.UpdatedAt,
	)
}

func scanReminders(rows *sql.Rows) ([]models.Reminder, error) {
	reminders := make([]models.Reminder, 0, 50)

	for rows.Next() {
		var reminder models.Reminder
		if err := scanReminder(rows, &reminder); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		reminders = append(reminders, reminder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return reminders, nil
}

func scanProfileRow(row rowScanner) (models.Profile, error) {
	var profile models.Profile
	err := row.Scan(
		&profile.ID,
		&profile.DisplayName,
		&profile.AvatarURL,
		&profile.Timezone,
		&profile.AutoArchivePolicy,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	return profile, err
}

func normalizeArchiveQuery(query models.ArchiveQuery) models.ArchiveQuery {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 {
		query.PageSize = models.DefaultPageSize
	}

	return query
}
