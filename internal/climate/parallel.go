package climate

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/dwdclimate/internal/domain/models"
)

// AverageExtremaParallel has the same contract as AverageExtrema but scans
// the years of the extent on up to workers goroutines.
//
// Every goroutine writes only its own year slot; the sums are reduced after
// all scans finished. records must not be modified while the call runs.
// A workers value of 1 or less runs the sequential version.
func AverageExtremaParallel(ctx context.Context, records []models.Measurement, day, month, workers int) (Average, error) {
	if workers <= 1 {
		if err := ctx.Err(); err != nil {
			return Average{}, err
		}
		return AverageExtrema(records, day, month)
	}

	minYear, maxYear := YearExtent(records)
	span := maxYear - minYear + 1
	extrema := make([]DailyExtremum, span)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < span; i++ {
		idx := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			date := Date{Year: minYear + idx, Month: time.Month(month), Day: day}
			ext, err := findExtremum(records, date)
			if err != nil {
				return err
			}
			extrema[idx] = ext
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Average{}, err
	}

	var acc accumulator
	for i, ext := range extrema {
		date := Date{Year: minYear + i, Month: time.Month(month), Day: day}
		if err := acc.add(date, ext); err != nil {
			return Average{}, err
		}
	}
	return acc.result(minYear, maxYear)
}
