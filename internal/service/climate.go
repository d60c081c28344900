package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/dwdclimate/internal/climate"
	"github.com/guttosm/dwdclimate/internal/domain/models"
	"github.com/guttosm/dwdclimate/internal/ingestion"
	"github.com/guttosm/dwdclimate/internal/logger"
	"github.com/guttosm/dwdclimate/internal/metrics"
	"github.com/guttosm/dwdclimate/internal/storage"
)

// ErrHistoryDisabled is returned by History when no repository is configured.
var ErrHistoryDisabled = errors.New("history storage is not configured")

// MeasurementSource provides the full measurement series of a station.
type MeasurementSource interface {
	Fetch(ctx context.Context, stationID string) ([]models.Measurement, error)
}

// ClimateService defines business logic for computing climate averages.
type ClimateService interface {
	GetAverage(ctx context.Context, station string, day, month int) (*models.ClimateAverage, error)
	Stations() []models.Station
	History(ctx context.Context, station string, limit int) ([]models.ClimateAverage, error)
}

// Options configures a climate service.
//
// Fields:
//   - Workers: goroutines scanning years in parallel (<=1 = sequential).
//   - Repo: optional history repository; nil disables recording.
//   - Metrics: optional Prometheus collector.
type Options struct {
	Workers int
	Repo    storage.HistoryRepository
	Metrics *metrics.Collector
}

type climateService struct {
	stations *ingestion.StationDirectory
	source   MeasurementSource
	opts     Options
	now      func() time.Time
}

// NewClimateService wires a station directory and measurement source.
func NewClimateService(stations *ingestion.StationDirectory, source MeasurementSource, opts Options) ClimateService {
	return &climateService{stations: stations, source: source, opts: opts, now: time.Now}
}

// GetAverage downloads the station's data and averages the daily minimum and
// maximum temperature of day/month over all years.
//
// Errors:
//   - ingestion.ErrUnknownStation when station cannot be resolved.
//   - climate.ErrNoYearsWithData when no year has data for the date.
//   - upstream download/parse errors, wrapped.
//
// A failure to record the result in history is logged, not returned.
func (s *climateService) GetAverage(ctx context.Context, station string, day, month int) (*models.ClimateAverage, error) {
	st, err := s.stations.Resolve(station)
	if err != nil {
		return nil, err
	}

	records, err := s.source.Fetch(ctx, st.ID)
	if err != nil {
		s.record("fetch_error")
		return nil, err
	}

	var timer *metrics.Timer
	if s.opts.Metrics != nil {
		timer = s.opts.Metrics.NewTimer(s.opts.Metrics.AggregationDuration)
	}
	avg, err := climate.AverageExtremaParallel(ctx, records, day, month, s.opts.Workers)
	if timer != nil {
		timer.ObserveDuration()
	}
	if err != nil {
		if errors.Is(err, climate.ErrNoYearsWithData) {
			s.record("no_data")
		} else {
			s.record("error")
		}
		return nil, fmt.Errorf("station %s, %02d-%02d: %w", st.ID, day, month, err)
	}
	s.record("ok")
	if s.opts.Metrics != nil {
		s.opts.Metrics.SkippedYears.Observe(float64(avg.SkippedYears))
	}

	out := &models.ClimateAverage{
		StationID:      st.ID,
		Day:            day,
		Month:          month,
		AvgMin:         avg.Min,
		AvgMax:         avg.Max,
		FirstYear:      avg.FirstYear,
		LastYear:       avg.LastYear,
		EffectiveYears: avg.EffectiveYears,
		SkippedYears:   avg.SkippedYears,
		ComputedAt:     s.now().UTC(),
	}

	logger.L().Info().
		Str("station_id", st.ID).
		Int("day", day).
		Int("month", month).
		Int("effective_years", avg.EffectiveYears).
		Int("skipped_years", avg.SkippedYears).
		Msg("average computed")

	if s.opts.Repo != nil {
		if err := s.opts.Repo.RecordAverage(ctx, out); err != nil {
			logger.L().Warn().Str("station_id", st.ID).Err(err).Msg("record history failed")
		}
	}

	return out, nil
}

// Stations lists the configured stations.
func (s *climateService) Stations() []models.Station {
	return s.stations.List()
}

// History returns recently computed averages; an empty station lists all.
func (s *climateService) History(ctx context.Context, station string, limit int) ([]models.ClimateAverage, error) {
	if s.opts.Repo == nil {
		return nil, ErrHistoryDisabled
	}
	id := ""
	if station != "" {
		st, err := s.stations.Resolve(station)
		if err != nil {
			return nil, err
		}
		id = st.ID
	}
	return s.opts.Repo.ListAverages(ctx, id, limit)
}

func (s *climateService) record(outcome string) {
	if s.opts.Metrics != nil {
		s.opts.Metrics.RecordAverage(outcome)
	}
}
