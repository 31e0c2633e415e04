package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/identra-vault/internal/config"
	"github.com/MKhiriev/identra-vault/internal/handler"
	"github.com/MKhiriev/identra-vault/internal/logger"
	"github.com/MKhiriev/identra-vault/internal/server"
	"github.com/MKhiriev/identra-vault/internal/service"
	"github.com/MKhiriev/identra-vault/internal/store"
	"github.com/MKhiriev/identra-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(build)

	log := logger.NewLogger("identra-server")
	cfg, err := config.GetServerConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = build.BuildVersion()
	}

	storages, err := store.NewStorages(context.Background(), cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
