package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-story-sync/internal/adapter"
	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/service"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("story-sync-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	gateway := adapter.NewHTTPGateway(cfg.Adapter, log)

	cacheDB, err := store.NewConnectSQLite(ctx, cfg.Storage.CachePath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening local cache")
	}
	defer cacheDB.Close()

	cache := store.NewCacheStore(cacheDB, log)

	services := service.NewClientServices(gateway, cache, log)

	jobs := workers.NewWorkers(
		workers.NewSyncJob(ctx, services.Sync, cfg.Workers.SyncInterval, log),
	)
	jobs.Run()

	log.Info().Str("cache", cfg.Storage.CachePath).Msg("sync client started")

	<-ctx.Done()
	log.Info().Msg("sync client stopped")
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
