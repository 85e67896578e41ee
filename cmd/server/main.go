package main

import (
	"context"
	"fmt"

	"github.com/sixpath/sixpath-server/internal/config"
	"github.com/sixpath/sixpath-server/internal/handler"
	"github.com/sixpath/sixpath-server/internal/logger"
	"github.com/sixpath/sixpath-server/internal/server"
	"github.com/sixpath/sixpath-server/internal/service"
	"github.com/sixpath/sixpath-server/internal/store"
	"github.com/sixpath/sixpath-server/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("sixpath-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewDB(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := migrations.Migrate(db.DB, cfg.Storage.DB.Type); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	storages := store.NewStorages(db, log)
	services := service.NewServices(storages, *cfg, log)
	handlers := handler.NewHandlers(services, log)

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
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
