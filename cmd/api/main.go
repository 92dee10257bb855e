package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	_ "github.com/pawhaven/shelter-api/api/swagger"
	"github.com/pawhaven/shelter-api/internal/handler"
	"github.com/pawhaven/shelter-api/internal/repository"
	"github.com/pawhaven/shelter-api/internal/router"
	"github.com/pawhaven/shelter-api/internal/service"
	"github.com/pawhaven/shelter-api/pkg/cache"
	"github.com/pawhaven/shelter-api/pkg/config"
	"github.com/pawhaven/shelter-api/pkg/database"
	"github.com/pawhaven/shelter-api/pkg/logger"
	"github.com/pawhaven/shelter-api/pkg/storage"
)

// @title PawHaven Shelter API
// @version 1.0.0
// @description Adoption backend for the PawHaven animal shelter
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Redis.Enabled && cfg.Cache.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, continuing without cache", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(client, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Cache.PetTTL, logr, true)
		}
	}

	uploads, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init upload storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Uploads.SignedURLSecret, cfg.Uploads.SignedURLTTL)

	lifecycleRepo := repository.NewLifecycleRepository(db)
	petRepo := repository.NewPetRepository(db)
	speciesRepo := repository.NewSpeciesRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	adoptionRepo := repository.NewAdoptionRepository(db)

	authSvc := service.NewAuthService(cfg.Auth, logr)
	petSvc := service.NewPetService(petRepo, speciesRepo, cacheSvc, logr)
	speciesSvc := service.NewSpeciesService(speciesRepo)
	applicationSvc := service.NewApplicationService(lifecycleRepo, applicationRepo, cacheSvc, logr)
	adoptionSvc := service.NewAdoptionService(lifecycleRepo, adoptionRepo, cacheSvc, logr)
	imageSvc := service.NewImageService(petRepo, uploads, cacheSvc, cfg.Uploads, logr)
	exportSvc := service.NewExportService(adoptionRepo, uploads, signer, metrics, cfg.APIPrefix, logr, nil, nil)

	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(authSvc),
		Pets:         handler.NewPetHandler(petSvc),
		Species:      handler.NewSpeciesHandler(speciesSvc),
		Applications: handler.NewApplicationHandler(applicationSvc),
		Adoptions:    handler.NewAdoptionHandler(adoptionSvc, exportSvc, metrics),
		Images:       handler.NewImageHandler(imageSvc),
		Metrics:      handler.NewMetricsHandler(metrics, db),
	}

	r := router.New(cfg, logr, handlers, authSvc, metrics, uploads.BaseDir())

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
