package storage

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/guttosm/dwdclimate/internal/domain/models"
)

// HistoryRepository defines contract for DB operations on computed averages.
type HistoryRepository interface {
	RecordAverage(ctx context.Context, avg *models.ClimateAverage) error
	ListAverages(ctx context.Context, stationID string, limit int) ([]models.ClimateAverage, error)
	Ping(ctx context.Context) error
}

type historyRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository wraps an open PostgreSQL handle.
func NewHistoryRepository(db *sql.DB) HistoryRepository {
	return &historyRepository{db: sqlx.NewDb(db, "postgres")}
}

const insertAverage = `
	INSERT INTO climate_averages
		(station_id, day, month, avg_min, avg_max, first_year, last_year, effective_years, skipped_years, computed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id`

// RecordAverage appends one computed average and stores the generated id in avg.ID.
func (r *historyRepository) RecordAverage(ctx context.Context, avg *models.ClimateAverage) error {
	return r.db.QueryRowContext(ctx, insertAverage,
		avg.StationID,
		avg.Day,
		avg.Month,
		avg.AvgMin,
		avg.AvgMax,
		avg.FirstYear,
		avg.LastYear,
		avg.EffectiveYears,
		avg.SkippedYears,
		avg.ComputedAt,
	).Scan(&avg.ID)
}

const selectAverages = `
	SELECT id, station_id, day, month, avg_min, avg_max, first_year, last_year,
	       effective_years, skipped_years, computed_at
	FROM climate_averages`

// ListAverages returns the most recent averages, newest first. An empty
// stationID lists all stations.
func (r *historyRepository) ListAverages(ctx context.Context, stationID string, limit int) ([]models.ClimateAverage, error) {
	out := []models.ClimateAverage{}
	var err error
	if stationID == "" {
		err = r.db.SelectContext(ctx, &out, selectAverages+` ORDER BY computed_at DESC, id DESC LIMIT $1`, limit)
	} else {
		err = r.db.SelectContext(ctx, &out, selectAverages+` WHERE station_id = $1 ORDER BY computed_at DESC, id DESC LIMIT $2`, stationID, limit)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Ping checks database connectivity.
func (r *historyRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
