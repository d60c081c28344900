package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/guttosm/dwdclimate/config"
	"github.com/guttosm/dwdclimate/internal/api"
	"github.com/guttosm/dwdclimate/internal/ingestion"
	"github.com/guttosm/dwdclimate/internal/metrics"
	"github.com/guttosm/dwdclimate/internal/service"
	"github.com/guttosm/dwdclimate/internal/storage"
)

const metricsNamespace = "dwdclimate"

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Initializes the history repository.
//   - Builds the climate service (downloader, fetcher, station directory).
//   - Creates a Prometheus registry exposed on /metrics.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	repo := storage.NewHistoryRepository(db)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := NewClimateService(cfg, repo, reg)

	handler := api.NewHandler(svc, cfg.DWD.DefaultStation, cfg.Climate.HistoryLimit)

	router := api.NewRouter(handler, api.RouterOptions{
		RequestTimeout: cfg.Server.RequestTimeout,
		RateLimit:      cfg.Server.RateLimit,
		Gatherer:       reg,
	})

	healthHandler := api.NewHealthHandler(repo.Ping)
	healthHandler.Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}

// NewClimateService wires the DWD downloader, fetcher and station directory
// described by cfg into a climate service.
//
// repo may be nil to skip recording history. Metrics are registered on reg.
func NewClimateService(cfg config.Config, repo storage.HistoryRepository, reg prometheus.Registerer) service.ClimateService {
	mc := metrics.NewCollector(metricsNamespace, reg)
	downloader := ingestion.NewDownloader(cfg.DWD.BaseURL, cfg.DWD.Timeout)
	fetcher := ingestion.NewFetcher(downloader, mc, "")
	stations := ingestion.NewStationDirectory(cfg.DWD.Stations)

	return service.NewClimateService(stations, fetcher, service.Options{
		Workers: cfg.Climate.Workers,
		Repo:    repo,
		Metrics: mc,
	})
}
