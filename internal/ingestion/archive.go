package ingestion

import (
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

// productPrefix is the file name prefix of the data file inside a DWD
// hourly air temperature archive (e.g. produkt_tu_stunde_19490101_20201231_01766.txt).
const productPrefix = "produkt_tu"

// ErrProductNotFound is returned when an archive contains no data file.
var ErrProductNotFound = errors.New("no produkt_tu file in archive")

// OpenProductFile opens the zip archive at zipPath and returns a reader on
// its data file together with the entry name. Closing the reader closes
// the archive.
func OpenProductFile(zipPath string) (io.ReadCloser, string, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, "", fmt.Errorf("open archive: %w", err)
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasPrefix(path.Base(f.Name), productPrefix) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			_ = zr.Close()
			return nil, "", fmt.Errorf("open %s: %w", f.Name, err)
		}
		return &productReader{ReadCloser: rc, archive: zr}, f.Name, nil
	}

	_ = zr.Close()
	return nil, "", fmt.Errorf("%w: %s", ErrProductNotFound, filepath.Base(zipPath))
}

type productReader struct {
	io.ReadCloser
	archive *zip.ReadCloser
}

func (p *productReader) Close() error {
	err := p.ReadCloser.Close()
	if cerr := p.archive.Close(); err == nil {
		err = cerr
	}
	return err
}
