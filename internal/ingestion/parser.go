package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/dwdclimate/internal/domain/models"
)

const (
	timestampColumn   = "MESS_DATUM" // YYYYMMDDHH
	temperatureColumn = "TT_TU"      // air temperature in °C
	timestampLayout   = "2006010215"
)

// ParseMeasurements reads a semicolon-delimited DWD "produkt_tu" file and
// returns one Measurement per data row.
//
// The header is required; the timestamp and temperature columns are located
// by name so that additional quality columns do not matter. It fails on:
//   - missing MESS_DATUM or TT_TU header columns
//   - rows whose column count differs from the header
//   - malformed timestamps or temperatures (the error carries the line number)
func ParseMeasurements(ctx context.Context, r io.Reader) ([]models.Measurement, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1 // checked explicitly below
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("read header: empty file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	width := len(header)
	tsCol, tempCol := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case timestampColumn:
			tsCol = i
		case temperatureColumn:
			tempCol = i
		}
	}
	if tsCol < 0 || tempCol < 0 {
		return nil, fmt.Errorf("invalid header: columns %s and %s are required, got %q", timestampColumn, temperatureColumn, strings.Join(header, ";"))
	}

	var out []models.Measurement
	line := 1 // header already read

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read line after %d: %w", line, err)
		}
		line++

		if len(rec) != width {
			return nil, fmt.Errorf("invalid column count on line %d: expected %d got %d", line, width, len(rec))
		}

		ts, err := ParseTimestamp(rec[tsCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		temp, err := strconv.ParseFloat(strings.TrimSpace(rec[tempCol]), 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid %s: %v", line, temperatureColumn, err)
		}

		out = append(out, models.Measurement{Timestamp: ts, Temperature: float32(temp)})
	}

	return out, nil
}

// ParseTimestamp parses a fixed-width "YYYYMMDDHH" value into a UTC time
// with minutes and seconds set to zero. Impossible calendar dates fail.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(timestampLayout) {
		return time.Time{}, fmt.Errorf("invalid %s %q: expected %d digits", timestampColumn, s, len(timestampLayout))
	}
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: %v", timestampColumn, s, err)
	}
	return t, nil
}
