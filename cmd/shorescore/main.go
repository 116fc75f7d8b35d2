package main

import (
	"log"

	"github.com/vbonduro/shorescore/internal/config"
	"github.com/vbonduro/shorescore/internal/db"
	"github.com/vbonduro/shorescore/internal/logging"
	"github.com/vbonduro/shorescore/internal/photostore/local"
	"github.com/vbonduro/shorescore/internal/service"
	"github.com/vbonduro/shorescore/internal/store"
	"github.com/vbonduro/shorescore/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	locationStore := store.NewLocationStore(database)
	photoStore := store.NewPhotoStore(database)
	tagStore := store.NewTagStore(database)
	featureStore := store.NewFeatureStore(database)
	voteStore := store.NewVoteStore(database)
	accountStore := store.NewAccountStore(database)

	photoStg, err := local.New(cfg.PhotoPath)
	if err != nil {
		logger.Error("failed to initialize photo store", "error", err)
		return
	}

	locationService := service.NewLocationService(locationStore, photoStore, photoStg, logger)
	voteService := service.NewVoteService(tagStore, featureStore, voteStore, accountStore, logger)
	server := web.NewServer(locationService, voteService, photoStg, cfg.NearbyMaxDistance, logger)

	logger.Info("shorescore configured", "db_path", cfg.DBPath, "photo_path", cfg.PhotoPath, "nearby_max_distance", cfg.NearbyMaxDistance)
	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
