package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/guttosm/dwdclimate/internal/domain/models"
	"github.com/guttosm/dwdclimate/internal/logger"
	"github.com/guttosm/dwdclimate/internal/metrics"
)

// ArchiveDownloader fetches the archive of a station into a directory.
type ArchiveDownloader interface {
	Download(ctx context.Context, dir, stationID string) (string, error)
}

// Fetcher turns a station ID into its in-memory measurement series:
// download the archive into a temporary directory, open its data file,
// parse it, and remove the directory again. Nothing is kept across calls.
type Fetcher struct {
	downloader ArchiveDownloader
	metrics    *metrics.Collector
	tempRoot   string
}

// NewFetcher builds a Fetcher. mc may be nil; tempRoot "" means os.TempDir().
func NewFetcher(d ArchiveDownloader, mc *metrics.Collector, tempRoot string) *Fetcher {
	return &Fetcher{downloader: d, metrics: mc, tempRoot: tempRoot}
}

// Fetch downloads and parses all hourly measurements of stationID.
func (f *Fetcher) Fetch(ctx context.Context, stationID string) ([]models.Measurement, error) {
	log := logger.Component("ingestion")
	start := time.Now()

	dir, err := os.MkdirTemp(f.tempRoot, "historical_weather")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	log.Info().Str("station_id", stationID).Msg("download start")
	archive, err := f.downloader.Download(ctx, dir, stationID)
	if err != nil {
		f.recordError("download")
		log.Error().Str("station_id", stationID).Err(err).Msg("download failed")
		return nil, fmt.Errorf("station %s: %w", stationID, err)
	}

	rc, entry, err := OpenProductFile(archive)
	if err != nil {
		f.recordError("archive")
		log.Error().Str("station_id", stationID).Str("archive", filepath.Base(archive)).Err(err).Msg("archive unreadable")
		return nil, fmt.Errorf("station %s: %w", stationID, err)
	}
	defer func() { _ = rc.Close() }()

	records, err := ParseMeasurements(ctx, rc)
	if err != nil {
		f.recordError("parse")
		log.Error().Str("station_id", stationID).Str("file", entry).Err(err).Msg("parse failed")
		return nil, fmt.Errorf("station %s: %s: %w", stationID, entry, err)
	}

	elapsed := time.Since(start)
	if f.metrics != nil {
		f.metrics.DownloadDuration.Observe(elapsed.Seconds())
		f.metrics.MeasurementsRead.Add(float64(len(records)))
	}
	log.Info().
		Str("station_id", stationID).
		Str("file", entry).
		Int("rows", len(records)).
		Dur("elapsed", elapsed).
		Msg("download done")

	return records, nil
}

func (f *Fetcher) recordError(stage string) {
	if f.metrics != nil {
		f.metrics.RecordDownloadError(stage)
	}
}
