package climate

import "github.com/guttosm/dwdclimate/internal/domain/models"

// YearExtent returns the smallest and largest calendar year present in
// records. An empty slice yields (0, 0).
func YearExtent(records []models.Measurement) (minYear, maxYear int) {
	if len(records) == 0 {
		return 0, 0
	}

	minYear = records[0].Timestamp.Year()
	maxYear = minYear
	for _, r := range records[1:] {
		y := r.Timestamp.Year()
		if y < minYear {
			minYear = y
		}
		if y > maxYear {
			maxYear = y
		}
	}
	return minYear, maxYear
}
