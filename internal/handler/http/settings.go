package http

import (
	"encoding/json"
	"net/http"

	"github.com/laterhq/later-server/internal/app"
	"github.com/laterhq/later-server/internal/logger"
	"github.com/laterhq/later-server/internal/utils"
	"github.com/laterhq/later-server/models"
)

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.getSettings").Msg(app.MsgNoUserID)
		http.Error(w, app.MsgNoUserID, http.StatusUnauthorized)
		return
	}

	profile, err := h.services.ReminderService.GetSettings(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getSettings").Msg("error getting settings")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.updateSettings").Msg(app.MsgNoUserID)
		http.Error(w, app.MsgNoUserID, http.StatusUnauthorized)
		return
	}

	var input models.UpdateSettingsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Str("func", "*Handler.updateSettings").Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	profile, err := h.services.ReminderService.UpdateSettings(ctx, userID, input)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateSettings").Msg("error updating settings")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}
