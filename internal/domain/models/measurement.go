package models

import "time"

// Measurement is a single hourly air-temperature reading of a DWD station.
//
// Fields:
//   - Timestamp: calendar date and hour of the reading (UTC, minutes always zero).
//   - Temperature: air temperature 2m above ground in °C (column TT_TU),
//     passed through exactly as published, including implausible values.
//
// A Measurement is built once by the parser and never mutated afterwards.
type Measurement struct {
	Timestamp   time.Time
	Temperature float32
}
