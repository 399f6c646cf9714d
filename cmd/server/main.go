package main

import (
	"context"
	"fmt"

	"github.com/laterhq/later-server/internal/adapter"
	"github.com/laterhq/later-server/internal/config"
	"github.com/laterhq/later-server/internal/handler"
	"github.com/laterhq/later-server/internal/logger"
	"github.com/laterhq/later-server/internal/metadata"
	"github.com/laterhq/later-server/internal/server"
	"github.com/laterhq/later-server/internal/service"
	"github.com/laterhq/later-server/internal/store"
	"github.com/laterhq/later-server/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("later-server")
	cfg, err := config.NewServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	fetcher := metadata.NewHTTPFetcher(cfg.Metadata, log)

	// an empty DSN means no database: every user is served from the
	// in-memory store
	var db *store.DB
	if cfg.Storage.DB.DSN != "" {
		db, err = store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error connecting to database")
		}
		defer db.Close()

		if err = db.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("error applying migrations")
		}
	}

	storage := store.NewStorage(db, fetcher, log)

	var blobs service.BlobStore
	if cfg.Storage.Blob.Endpoint != "" {
		blobs, err = adapter.NewBlobSigner(cfg.Storage.Blob, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating blob signer")
		}
	}

	services := service.NewServices(storage, blobs, *cfg, log)

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if cfg.App.SweepInterval > 0 {
		sweep := workers.NewSweepWorker(services.ReminderService, cfg.App.SweepInterval, log)
		workers.NewWorkers(sweep).Run()
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
