package dto

import (
	"time"

	"github.com/guttosm/dwdclimate/internal/domain/models"
)

// AverageResponse represents the JSON structure returned by the
// GET /api/v1/average endpoint.
//
// Fields match the API contract and may differ from internal domain models.
type AverageResponse struct {
	StationID      string  `json:"station_id" example:"01766"`         // DWD station ID
	Day            int     `json:"day" example:"24"`                   // Requested day of month
	Month          int     `json:"month" example:"12"`                 // Requested month
	AvgMin         float64 `json:"avg_min" example:"0.8"`              // Average daily minimum, °C
	AvgMax         float64 `json:"avg_max" example:"4.9"`              // Average daily maximum, °C
	FirstYear      int     `json:"first_year" example:"1949"`          // First year in the dataset
	LastYear       int     `json:"last_year" example:"2023"`           // Last year in the dataset
	EffectiveYears int     `json:"effective_years" example:"73"`       // Years that contributed
	SkippedYears   int     `json:"skipped_years" example:"2"`          // Years without data for the day
	Summary        string  `json:"summary" example:"date= 24-12 ..."` // Human-readable one-liner
}

// HistoryEntry is one previously computed average.
type HistoryEntry struct {
	AverageResponse
	ComputedAt time.Time `json:"computed_at" example:"2024-05-01T12:00:00Z"`
}

// StationsResponse lists the configured stations.
type StationsResponse struct {
	Stations []models.Station `json:"stations"`
}

// HistoryResponse lists recorded averages, newest first.
type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
}

// NewAverageResponse maps a computed average onto the API contract.
func NewAverageResponse(avg *models.ClimateAverage) AverageResponse {
	return AverageResponse{
		StationID:      avg.StationID,
		Day:            avg.Day,
		Month:          avg.Month,
		AvgMin:         avg.AvgMin,
		AvgMax:         avg.AvgMax,
		FirstYear:      avg.FirstYear,
		LastYear:       avg.LastYear,
		EffectiveYears: avg.EffectiveYears,
		SkippedYears:   avg.SkippedYears,
		Summary:        Summary(avg.Day, avg.Month, avg.AvgMin, avg.AvgMax),
	}
}

// NewHistoryResponse maps recorded averages onto the API contract.
func NewHistoryResponse(avgs []models.ClimateAverage) HistoryResponse {
	entries := make([]HistoryEntry, 0, len(avgs))
	for i := range avgs {
		entries = append(entries, HistoryEntry{
			AverageResponse: NewAverageResponse(&avgs[i]),
			ComputedAt:      avgs[i].ComputedAt,
		})
	}
	return HistoryResponse{Entries: entries}
}
