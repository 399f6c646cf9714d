package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/laterhq/later-server/internal/app"
	"github.com/laterhq/later-server/internal/logger"
	"github.com/laterhq/later-server/internal/utils"
	"github.com/laterhq/later-server/models"
)

func (h *Handler) createReminder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.createReminder").Msg(app.MsgNoUserID)
		http.Error(w, app.MsgNoUserID, http.StatusUnauthorized)
		return
	}

	var input models.CreateReminderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Str("func", "*Handler.createReminder").Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	created, err := h.services.ReminderService.CreateReminder(ctx, userID, input)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createReminder").Msg("error creating reminder")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) upcomingReminders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.upcomingReminders").Msg(app.MsgNoUserID)
		http.Error(w, app.MsgNoUserID, http.StatusUnauthorized)
		return
	}

	reminders, err := h.services.ReminderService.GetUpcomingReminders(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.upcomingReminders").Msg("error listing upcoming reminders")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, reminders, http.StatusOK)
}

func (h *Handler) updateReminder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.updateReminder").Msg(app.MsgNoUserID)
		http.Error(w, app.MsgNoUserID, http.StatusUnauthorized)
		return
	}

	var input models.UpdateReminderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Str("func", "*Handler.updateReminder").Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	updated, err := h.services.ReminderService.UpdateReminder(ctx, userID, chi.URLParam(r, "reminderID"), input)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateReminder").Msg("error updating reminder")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) snoozeReminder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.snoozeReminder").Msg(app.MsgNoUserID)
		http.Error(w, app.MsgNoUserID, http.StatusUnauthorized)
		return
	}

	var input models.SnoozeReminderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Str("func", "*Handler.snoozeReminder").Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	snoozed, err := h.services.ReminderService.SnoozeReminder(ctx, userID, chi.URLParam(r, "reminderID"), input)
	if err != nil {
		log.Err(err).Str("func", "*Handler.snoozeReminder").Msg("error snoozing reminder")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, snoozed, http.StatusOK)
}

func (h *Handler) archiveReminder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.archiveReminder").Msg(app.MsgNoUserID)
		http.Error(w, app.MsgNoUserID, http.StatusUnauthorized)
		return
	}

	var input models.ArchiveReminderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Str("func", "*Handler.archiveReminder").Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	archived, err := h.services.ReminderService.ArchiveReminder(ctx, userID, chi.URLParam(r, "reminderID"), input)
	if err != nil {
		log.Err(err).Str("func", "*Handler.archiveReminder").Msg("error archiving reminder")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, archived, http.StatusOK)
}

func (h *Handler) archivedReminders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.archivedReminders").Msg(app.MsgNoUserID)
		http.Error(w, app.MsgNoUserID, http.StatusUnauthorized)
		return
	}

	query := models.ArchiveQuery{
		Filter: r.URL.Query().Get("filter"),
		Q:      r.URL.Query().Get("q"),
	}
	query.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	query.PageSize, _ = strconv.Atoi(r.URL.Query().Get("pageSize"))

	result, err := h.services.ReminderService.GetArchivedReminders(ctx, userID, query)
	if err != nil {
		log.Err(err).Str("func", "*Handler.archivedReminders").Msg("error listing archived reminders")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}
