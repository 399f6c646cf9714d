package http

import (
	"github.com/laterhq/later-server/internal/config"
	"github.com/laterhq/later-server/internal/logger"
	"github.com/laterhq/later-server/internal/service"
)

type Handler struct {
	services *service.Services
	app      config.App

	logger *logger.Logger
}

func NewHandler(services *service.Services, app config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		app:      app,
		logger:   logger,
	}
}
