package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nurpe/ecoreports/internal/cache"
	"github.com/nurpe/ecoreports/internal/config"
	"github.com/nurpe/ecoreports/internal/db"
	"github.com/nurpe/ecoreports/internal/logger"
	"github.com/nurpe/ecoreports/internal/osm"
	"github.com/nurpe/ecoreports/internal/repository"
	"github.com/nurpe/ecoreports/internal/service"
)

func main() {
	area := flag.String("area", "", `area to search, e.g. "Guayaquil, Ecuador"`)
	radius := flag.Float64("radius", 10.0, "search radius in km")
	flag.Parse()

	if *area == "" {
		fmt.Fprintln(os.Stderr, "usage: import-points -area <name> [-radius km]")
		os.Exit(2)
	}

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
		log.Warn().Err(err).Msg("redis unavailable, cache will not be invalidated")
		redisClient = nil
	}

	importer := service.NewImportService(
		osm.NewClient(cfg, log),
		repository.NewWasteCategoryRepository(database),
		repository.NewRecyclingPointRepository(database),
		cache.NewPointsCache(redisClient, cfg.Reports.PointsCacheTTL, log),
		cfg,
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := importer.Import(ctx, *area, *radius)
	if err != nil {
		log.Error().Err(err).Str("area", *area).Msg("import failed")
		os.Exit(1)
	}
	fmt.Printf("Successfully created %d recycling points (%d found, %d already known, %d skipped, %d failed)\n",
		result.Created, result.Found, result.Existing, result.Skipped, result.Failed)
}
