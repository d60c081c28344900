package ingestion

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrArchiveNotFound is returned when the DWD index lists no archive for a station.
var ErrArchiveNotFound = errors.New("no archive for station")

// archivePattern matches hourly air temperature archives in the DWD
// directory listing, both current ("akt") and historical ("<from>_<to>_hist").
var archivePattern = regexp.MustCompile(
	`(?P<file_name>stundenwerte_TU_(?P<station_id>[0-9]{5})_(?:akt|(?:[0-9]{8}_[0-9]{8}_hist))\.zip)</a>`,
)

// FindStationArchive returns the first archive file name in the HTML index
// that belongs to stationID.
func FindStationArchive(index, stationID string) (string, error) {
	nameIdx := archivePattern.SubexpIndex("file_name")
	idIdx := archivePattern.SubexpIndex("station_id")

	for _, m := range archivePattern.FindAllStringSubmatch(index, -1) {
		if m[idIdx] == stationID {
			return m[nameIdx], nil
		}
	}
	return "", fmt.Errorf("%w %s", ErrArchiveNotFound, stationID)
}
