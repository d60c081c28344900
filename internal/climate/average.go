package climate

import (
	"fmt"
	"time"

	"github.com/guttosm/dwdclimate/internal/domain/models"
)

// findExtremum is an indirection so tests can inject a misbehaving finder.
var findExtremum = FindDailyExtremum

// AverageExtrema averages the daily minimum and maximum temperature of the
// given day and month over every year spanned by records.
//
// Years without a reading on that day are skipped and do not count towards
// the divisor. When no year contributes, ErrNoYearsWithData is returned and
// no value is computed. The day/month pair is not validated; an impossible
// date such as 31 February matches nothing.
func AverageExtrema(records []models.Measurement, day, month int) (Average, error) {
	minYear, maxYear := YearExtent(records)

	var acc accumulator
	for year := minYear; year <= maxYear; year++ {
		date := Date{Year: year, Month: time.Month(month), Day: day}
		ext, err := findExtremum(records, date)
		if err != nil {
			return Average{}, err
		}
		if err := acc.add(date, ext); err != nil {
			return Average{}, err
		}
	}

	return acc.result(minYear, maxYear)
}

// accumulator sums per-year extrema. Addition is order independent, so
// partial results can be merged in any order.
type accumulator struct {
	minSum  float64
	maxSum  float64
	skipped int
}

func (a *accumulator) add(date Date, ext DailyExtremum) error {
	lo, hi, ok := ext.Values()
	if !ok {
		a.skipped++
		return nil
	}
	if lo > hi {
		return fmt.Errorf("%w: %s reported min %g above max %g", ErrContractViolation, date, lo, hi)
	}
	a.minSum += lo
	a.maxSum += hi
	return nil
}

func (a *accumulator) result(minYear, maxYear int) (Average, error) {
	effective := (maxYear - minYear + 1) - a.skipped
	if effective <= 0 {
		return Average{}, ErrNoYearsWithData
	}
	return Average{
		Min:            a.minSum / float64(effective),
		Max:            a.maxSum / float64(effective),
		FirstYear:      minYear,
		LastYear:       maxYear,
		EffectiveYears: effective,
		SkippedYears:   a.skipped,
	}, nil
}
