package ingestion

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/guttosm/dwdclimate/internal/domain/models"
)

// ErrUnknownStation is returned when a station name or ID cannot be resolved.
var ErrUnknownStation = errors.New("unknown station")

// StationDirectory is a read-only mapping of station names to DWD station IDs.
// It is built once from configuration and handed to whoever needs it.
type StationDirectory struct {
	byName map[string]models.Station
	byID   map[string]models.Station
}

// NewStationDirectory copies names (name -> 5-digit ID) into a directory.
func NewStationDirectory(names map[string]string) *StationDirectory {
	d := &StationDirectory{
		byName: make(map[string]models.Station, len(names)),
		byID:   make(map[string]models.Station, len(names)),
	}
	for name, id := range names {
		st := models.Station{Name: name, ID: id}
		d.byName[strings.ToLower(name)] = st
		d.byID[id] = st
	}
	return d
}

// Resolve looks a station up by name (case-insensitive) or, failing that,
// accepts a raw 5-digit DWD station ID.
func (d *StationDirectory) Resolve(nameOrID string) (models.Station, error) {
	key := strings.TrimSpace(nameOrID)
	if st, ok := d.byName[strings.ToLower(key)]; ok {
		return st, nil
	}
	if st, ok := d.byID[key]; ok {
		return st, nil
	}
	if isStationID(key) {
		return models.Station{Name: key, ID: key}, nil
	}
	return models.Station{}, fmt.Errorf("%w: %q", ErrUnknownStation, nameOrID)
}

// List returns all configured stations sorted by name.
func (d *StationDirectory) List() []models.Station {
	out := make([]models.Station, 0, len(d.byName))
	for _, st := range d.byName {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func isStationID(s string) bool {
	if len(s) != 5 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
