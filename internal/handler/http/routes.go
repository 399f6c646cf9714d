package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// user-facing routes behind authentication
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/reminders", func(r chi.Router) {
			r.Post("/", h.createReminder)
			r.Get("/upcoming", h.upcomingReminders)
			r.Get("/archive", h.archivedReminders)
			r.Patch("/{reminderID}", h.updateReminder)
			r.Post("/{reminderID}/snooze", h.snoozeReminder)
			r.Post("/{reminderID}/archive", h.archiveReminder)
		})

		r.Get("/api/settings", h.getSettings)
		r.Patch("/api/settings", h.updateSettings)

		r.Post("/api/uploads", h.issueUpload)
	})

	// scheduler route protected by the cron secret instead of user auth
	router.Group(func(r chi.Router) {
		r.Use(h.cronAuth)
		r.Post("/api/cron/auto-archive", h.autoArchive)
	})

	return router
}
