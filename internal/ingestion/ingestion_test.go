package ingestion

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/guttosm/dwdclimate/internal/metrics"
)

// fakeDownloader writes a fixed archive into dir, or fails.
type fakeDownloader struct {
	archive []byte
	err     error
	dirs    []string
}

func (f *fakeDownloader) Download(_ context.Context, dir, stationID string) (string, error) {
	f.dirs = append(f.dirs, dir)
	if f.err != nil {
		return "", f.err
	}
	p := filepath.Join(dir, "stundenwerte_TU_"+stationID+"_akt.zip")
	return p, os.WriteFile(p, f.archive, 0o600)
}

func TestFetcher_Fetch(t *testing.T) {
	mc := metrics.NewCollector("test", prometheus.NewRegistry())
	fd := &fakeDownloader{archive: buildZip(t, map[string]string{"produkt_tu_stunde_01766.txt": sampleProduct()})}
	f := NewFetcher(fd, mc, t.TempDir())

	got, err := f.Fetch(context.Background(), "01766")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("want 4 measurements, got %d", len(got))
	}
	if !got[0].Timestamp.Equal(time.Date(2019, 1, 1, 10, 0, 0, 0, time.UTC)) || got[0].Temperature != 20 {
		t.Fatalf("unexpected first measurement %+v", got[0])
	}
	if n := testutil.ToFloat64(mc.MeasurementsRead); n != 4 {
		t.Fatalf("measurements metric=%v, want 4", n)
	}
	if _, err := os.Stat(fd.dirs[0]); !os.IsNotExist(err) {
		t.Fatalf("temp dir %s not removed: %v", fd.dirs[0], err)
	}
}

func TestFetcher_Errors(t *testing.T) {
	cases := []struct {
		name  string
		dl    *fakeDownloader
		stage string
		is    error
	}{
		{name: "download", dl: &fakeDownloader{err: ErrArchiveNotFound}, stage: "download", is: ErrArchiveNotFound},
		{name: "archive", dl: &fakeDownloader{archive: []byte("junk")}, stage: "archive"},
		{name: "no product", dl: &fakeDownloader{archive: nil}, stage: "archive"},
		{name: "parse", dl: &fakeDownloader{archive: nil}, stage: "parse"},
	}
	// the last two need real archives
	cases[2].dl.archive = buildZip(t, map[string]string{"other.txt": "x"})
	cases[2].is = ErrProductNotFound
	cases[3].dl.archive = buildZip(t, map[string]string{"produkt_tu_x.txt": productHeader + "bad;row\n"})

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mc := metrics.NewCollector("test", prometheus.NewRegistry())
			_, err := NewFetcher(tc.dl, mc, t.TempDir()).Fetch(context.Background(), "01766")
			if err == nil || !strings.Contains(err.Error(), "station 01766") {
				t.Fatalf("expected wrapped error, got %v", err)
			}
			if tc.is != nil && !errors.Is(err, tc.is) {
				t.Fatalf("want %v in chain, got %v", tc.is, err)
			}
			if n := testutil.ToFloat64(mc.DownloadErrors.WithLabelValues(tc.stage)); n != 1 {
				t.Fatalf("stage %s errors=%v, want 1", tc.stage, n)
			}
		})
	}
}

func TestFetcher_EndToEndWithHTTP(t *testing.T) {
	archive := buildZip(t, map[string]string{"produkt_tu_stunde_19490101_20201231_01766.txt": sampleProduct()})
	srv := newDWDServer(t, archive, http.StatusOK)

	f := NewFetcher(NewDownloader(srv.URL+"/historical/", 5*time.Second), nil, "")
	got, err := f.Fetch(context.Background(), "01766")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("want 4 measurements, got %d", len(got))
	}
}
