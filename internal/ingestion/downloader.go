package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxIndexSize bounds the directory listing read into memory.
const maxIndexSize = 32 << 20

// Downloader retrieves station archives from the DWD open data portal.
type Downloader struct {
	client  *http.Client
	baseURL string
}

// NewDownloader returns a Downloader for the directory at baseURL.
// A zero timeout leaves the HTTP client without a deadline.
func NewDownloader(baseURL string, timeout time.Duration) *Downloader {
	return &Downloader{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/") + "/",
	}
}

// Download fetches the directory index, locates the archive of stationID
// and stores it in dir. It returns the path of the written archive.
func (d *Downloader) Download(ctx context.Context, dir, stationID string) (string, error) {
	index, err := d.fetchIndex(ctx)
	if err != nil {
		return "", err
	}

	name, err := FindStationArchive(index, stationID)
	if err != nil {
		return "", err
	}

	body, err := d.get(ctx, d.baseURL+name)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", name, err)
	}
	defer func() { _ = body.Close() }()

	dest := filepath.Join(dir, name)
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", dest, err)
	}
	return dest, nil
}

func (d *Downloader) fetchIndex(ctx context.Context) (string, error) {
	body, err := d.get(ctx, d.baseURL)
	if err != nil {
		return "", fmt.Errorf("fetch index: %w", err)
	}
	defer func() { _ = body.Close() }()

	b, err := io.ReadAll(io.LimitReader(body, maxIndexSize))
	if err != nil {
		return "", fmt.Errorf("read index: %w", err)
	}
	return string(b), nil
}

func (d *Downloader) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}
	return resp.Body, nil
}
