package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/laterhq/later-server/internal/app"
	"github.com/laterhq/later-server/internal/logger"
	"github.com/laterhq/later-server/internal/utils"
)

// cronAuth guards the scheduled endpoints with a shared bearer secret.
// When no secret is configured the endpoints are disabled entirely.
func (h *Handler) cronAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		if h.app.CronSecret == "" {
			log.Error().Str("func", "*Handler.cronAuth").Msg("cron secret is not configured")
			http.Error(w, app.MsgCronDisabled, http.StatusNotFound)
			return
		}

		token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Err(err).Str("func", "*Handler.cronAuth").Msg("invalid cron authorization")
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(h.app.CronSecret)) != 1 {
			log.Error().Str("func", "*Handler.cronAuth").Msg("cron secret mismatch")
			http.Error(w, app.MsgInvalidCronSecret, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) autoArchive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	result, err := h.services.ReminderService.RunAutoArchiveSweep(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Handler.autoArchive").Msg("error running auto-archive sweep")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	log.Info().
		Str("func", "*Handler.autoArchive").
		Int("users", result.UsersProcessed).
		Int("archived", result.Archived).
		Msg("auto-archive sweep finished")

	utils.WriteJSON(w, result, http.StatusOK)
}
