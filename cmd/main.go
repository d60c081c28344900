package main

//
//  @title           dwdclimate API
//  @version         1.0
//  @description     Long-run daily temperature extremes from DWD open data.
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/dwdclimate
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        climate
//  @tag.description Climatology of DWD hourly air temperatures
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/guttosm/dwdclimate/config"
	_ "github.com/guttosm/dwdclimate/docs" // swagger docs
	"github.com/guttosm/dwdclimate/internal/app"
	"github.com/guttosm/dwdclimate/internal/climate"
	"github.com/guttosm/dwdclimate/internal/domain/dto"
	"github.com/guttosm/dwdclimate/internal/logger"
	"github.com/guttosm/dwdclimate/internal/service"
	"github.com/guttosm/dwdclimate/internal/storage"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//   - writeTimeout: upper bound for writing a response; it must exceed the
//     API request timeout since averages include a full archive download.
func startServer(router http.Handler, port string, writeTimeout time.Duration) *http.Server {
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// resolveDate substitutes today's day and/or month for zero values.
func resolveDate(day, month int, now time.Time) (int, int) {
	if day == 0 {
		day = now.Day()
	}
	if month == 0 {
		month = int(now.Month())
	}
	return day, month
}

func validateDate(day, month int) error {
	if day < 1 || day > 31 {
		return fmt.Errorf("day %d out of range 1-31", day)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d out of range 1-12", month)
	}
	return nil
}

// runQuery computes one average and prints it to out.
func runQuery(ctx context.Context, svc service.ClimateService, out io.Writer, station string, day, month int) error {
	if err := validateDate(day, month); err != nil {
		return err
	}
	avg, err := svc.GetAverage(ctx, station, day, month)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, dto.Summary(avg.Day, avg.Month, avg.AvgMin, avg.AvgMax))
	return err
}

// listStations prints the configured stations, one "name id" per line.
func listStations(svc service.ClimateService, out io.Writer) error {
	for _, st := range svc.Stations() {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", st.Name, st.ID); err != nil {
			return err
		}
	}
	return nil
}

// Exit codes returned by run.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

// main is the entry point of the dwdclimate application.
//
// Modes (selected via --mode flag):
//   - query:    Prints the average daily min/max temperature of one calendar day.
//   - stations: Lists the configured stations.
//   - api:      Starts the REST API.
//
// Flags:
//   - --station: Station name or 5-digit DWD id. Default: DEFAULT_STATION.
//   - --day, --month: Calendar day; 0 means today. Default: 0.
//   - --record: Store the computed average in PostgreSQL (query mode).
//   - --port: Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	config.LoadConfig()
	logger.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code. Resources
// opened here are released before it returns.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dwdclimate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	mode := fs.String("mode", "query", "Mode: query, stations or api")
	station := fs.String("station", config.AppConfig.DWD.DefaultStation, "Station name or 5-digit DWD id")
	day := fs.Int("day", 0, "Day of month (0 = today)")
	month := fs.Int("month", 0, "Month (0 = today)")
	record := fs.Bool("record", false, "Record the computed average in PostgreSQL")
	port := fs.String("port", config.AppConfig.Server.Port, "Port for API mode")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	switch *mode {
	case "query":
		var repo storage.HistoryRepository
		if *record {
			db, err := app.InitPostgres(config.AppConfig)
			if err != nil {
				logger.L().Error().Err(err).Msg("db connect error")
				return exitFailed
			}
			defer func() { _ = db.Close() }()
			repo = storage.NewHistoryRepository(db)
		}

		svc := app.NewClimateService(config.AppConfig, repo, prometheus.NewRegistry())
		d, m := resolveDate(*day, *month, time.Now())
		if err := runQuery(ctx, svc, stdout, *station, d, m); err != nil {
			if errors.Is(err, climate.ErrNoYearsWithData) {
				fmt.Fprintf(stderr, "no year has data for %d-%d at station %s\n", d, m, *station)
				return exitFailed
			}
			logger.L().Error().Err(err).Msg("query failed")
			return exitFailed
		}

	case "stations":
		svc := app.NewClimateService(config.AppConfig, nil, prometheus.NewRegistry())
		if err := listStations(svc, stdout); err != nil {
			logger.L().Error().Err(err).Msg("list stations failed")
			return exitFailed
		}

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Error().Err(err).Msg("app init error")
			return exitFailed
		}

		server := startServer(router, *port, config.AppConfig.Server.RequestTimeout+10*time.Second)
		gracefulShutdown(context.Background(), server, cleanup)

	default:
		logger.L().Error().Str("mode", *mode).Msg("unknown mode")
		return exitUsage
	}

	return exitOK
}
