package models

import "time"

// ClimateAverage is the long-run average of the daily minimum and maximum
// temperature of one station for one calendar day (day + month).
//
// Fields:
//   - StationID: DWD station identifier (e.g., "01766").
//   - Day, Month: requested calendar day.
//   - AvgMin, AvgMax: averages of the per-year daily minimum / maximum.
//   - FirstYear, LastYear: inclusive year extent of the downloaded dataset.
//   - EffectiveYears: years that contributed data for the requested day.
//   - SkippedYears: years in the extent without any reading for that day.
//   - ComputedAt: when the average was computed.
//
// swagger:model ClimateAverage
type ClimateAverage struct {
	ID             int64     `json:"-" db:"id"`
	StationID      string    `json:"station_id" db:"station_id"`
	Day            int       `json:"day" db:"day"`
	Month          int       `json:"month" db:"month"`
	AvgMin         float64   `json:"avg_min" db:"avg_min"`
	AvgMax         float64   `json:"avg_max" db:"avg_max"`
	FirstYear      int       `json:"first_year" db:"first_year"`
	LastYear       int       `json:"last_year" db:"last_year"`
	EffectiveYears int       `json:"effective_years" db:"effective_years"`
	SkippedYears   int       `json:"skipped_years" db:"skipped_years"`
	ComputedAt     time.Time `json:"computed_at" db:"computed_at"`
}
