package climate

import (
	"fmt"
	"math"

	"github.com/guttosm/dwdclimate/internal/domain/models"
)

// DailyExtremum holds the minimum and maximum temperature of one calendar
// date. It is either Both(min, max) or Neither(); a value with only one
// side present cannot be constructed.
type DailyExtremum struct {
	min, max float64
	found    bool
}

// Both returns an extremum with both values present.
func Both(min, max float64) DailyExtremum {
	return DailyExtremum{min: min, max: max, found: true}
}

// Neither returns the extremum of a date without readings.
func Neither() DailyExtremum {
	return DailyExtremum{}
}

// Values returns min and max, and ok=false for Neither.
func (e DailyExtremum) Values() (min, max float64, ok bool) {
	return e.min, e.max, e.found
}

// Found reports whether the extremum holds values.
func (e DailyExtremum) Found() bool { return e.found }

func (e DailyExtremum) String() string {
	if !e.found {
		return "Neither"
	}
	return fmt.Sprintf("Both(%g, %g)", e.min, e.max)
}

// FindDailyExtremum scans records for readings taken on date and returns
// their minimum and maximum temperature.
//
// It returns Neither() when nothing matches, and ErrNonFiniteTemperature
// when a matching reading is NaN or infinite.
func FindDailyExtremum(records []models.Measurement, date Date) (DailyExtremum, error) {
	var (
		lo, hi float64
		found  bool
	)

	for _, r := range records {
		if !date.matches(r.Timestamp) {
			continue
		}
		v := float64(r.Temperature)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Neither(), fmt.Errorf("%w at %s", ErrNonFiniteTemperature, r.Timestamp.Format("2006-01-02 15:04"))
		}
		if !found {
			lo, hi, found = v, v, true
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	if !found {
		return Neither(), nil
	}
	return Both(lo, hi), nil
}
