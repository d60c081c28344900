// Package climate computes long-run daily temperature averages from hourly
// measurements spanning several years.
//
// All functions are pure: they only read the measurement slice they are
// given and are safe to call concurrently on the same input.
package climate

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoYearsWithData is returned when no year of the dataset has a
	// reading for the requested day and month (including empty input).
	ErrNoYearsWithData = errors.New("no data for given date available")

	// ErrContractViolation signals a broken daily-extremum invariant.
	// It indicates a bug, never bad input.
	ErrContractViolation = errors.New("daily extremum contract violation")

	// ErrNonFiniteTemperature is returned when a reading on the requested
	// date is NaN or infinite.
	ErrNonFiniteTemperature = errors.New("non-finite temperature")
)

// Date is a calendar date without a time of day.
//
// It is not normalized: Date{2021, time.February, 30} is a valid value
// that simply matches no measurement.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// matches reports whether t falls on d (hour ignored).
func (d Date) matches(t time.Time) bool {
	y, m, day := t.Date()
	return y == d.Year && m == d.Month && day == d.Day
}

// Average is the result of averaging daily extrema over several years.
type Average struct {
	Min            float64
	Max            float64
	FirstYear      int
	LastYear       int
	EffectiveYears int
	SkippedYears   int
}
