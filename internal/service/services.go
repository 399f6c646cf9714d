package service

import (
	"github.com/laterhq/later-server/internal/config"
	"github.com/laterhq/later-server/internal/logger"
	"github.com/laterhq/later-server/internal/store"
)

type Services struct {
	ReminderService ReminderService
	UploadService   UploadService
}

func NewServices(storage store.ReminderRepository, blobs BlobStore, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		ReminderService: NewReminderService(storage, logger),
		UploadService:   NewUploadService(blobs, logger),
	}
}
