package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nurpe/ecoreports/internal/auth"
	"github.com/nurpe/ecoreports/internal/cache"
	"github.com/nurpe/ecoreports/internal/config"
	"github.com/nurpe/ecoreports/internal/db"
	"github.com/nurpe/ecoreports/internal/excel"
	httphandler "github.com/nurpe/ecoreports/internal/http"
	"github.com/nurpe/ecoreports/internal/http/middleware"
	"github.com/nurpe/ecoreports/internal/logger"
	"github.com/nurpe/ecoreports/internal/pdf"
	"github.com/nurpe/ecoreports/internal/repository"
	"github.com/nurpe/ecoreports/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	redisClient, err := cache.NewClient(cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, caching disabled")
		redisClient = nil
	}
	pointsCache := cache.NewPointsCache(redisClient, cfg.Reports.PointsCacheTTL, log)

	reportRepo := repository.NewReportRepository(database)
	pointRepo := repository.NewRecyclingPointRepository(database)
	categoryRepo := repository.NewWasteCategoryRepository(database)
	profileRepo := repository.NewProfileRepository(database)
	impactRepo := repository.NewImpactRepository(database)

	reportService := service.NewReportService(reportRepo, excel.NewGenerator(), pdf.NewGenerator(), service.OwnerOrStaffPolicy{}, cfg)
	recyclingService := service.NewRecyclingService(pointRepo, categoryRepo, pointsCache, cfg, log)
	profileService := service.NewProfileService(profileRepo, log)
	impactService := service.NewImpactService(impactRepo, categoryRepo)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(reportService, recyclingService, profileService, impactService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.HTTP.AllowedOrigins, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("starting reports service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("reports service stopped")
}
