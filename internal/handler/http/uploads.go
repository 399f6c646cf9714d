package http

import (
	"encoding/json"
	"net/http"

	"github.com/laterhq/later-server/internal/app"
	"github.com/laterhq/later-server/internal/logger"
	"github.com/laterhq/later-server/internal/utils"
	"github.com/laterhq/later-server/models"
)

func (h *Handler) issueUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.issueUpload").Msg(app.MsgNoUserID)
		http.Error(w, app.MsgNoUserID, http.StatusUnauthorized)
		return
	}

	var request models.UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.issueUpload").Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	response, err := h.services.UploadService.IssueUpload(ctx, userID, request)
	if err != nil {
		log.Err(err).Str("func", "*Handler.issueUpload").Msg("error issuing upload")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
