package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const archiveName = "stundenwerte_TU_01766_19490101_20201231_hist.zip"

// newDWDServer serves a directory index and one archive under /historical/.
func newDWDServer(t *testing.T, archive []byte, archiveStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/historical/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/historical/":
			_, _ = w.Write([]byte(`<html><body>
<a href="stundenwerte_TU_00044_20070401_20201231_hist.zip">stundenwerte_TU_00044_20070401_20201231_hist.zip</a>
<a href="` + archiveName + `">` + archiveName + `</a>
</body></html>`))
		case "/historical/" + archiveName:
			w.WriteHeader(archiveStatus)
			_, _ = w.Write(archive)
		default:
			http.NotFound(w, r)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestDownloader_Download(t *testing.T) {
	payload := []byte("zip-bytes")
	srv := newDWDServer(t, payload, http.StatusOK)

	for _, base := range []string{srv.URL + "/historical/", srv.URL + "/historical"} {
		dir := t.TempDir()
		d := NewDownloader(base, 5*time.Second)
		path, err := d.Download(context.Background(), dir, "01766")
		if err != nil {
			t.Fatalf("base %s: download: %v", base, err)
		}
		if filepath.Base(path) != archiveName || filepath.Dir(path) != dir {
			t.Fatalf("unexpected path %s", path)
		}
		got, err := os.ReadFile(path)
		if err != nil || string(got) != string(payload) {
			t.Fatalf("unexpected content %q err=%v", got, err)
		}
	}
}

func TestDownloader_Errors(t *testing.T) {
	t.Run("unknown station", func(t *testing.T) {
		srv := newDWDServer(t, nil, http.StatusOK)
		_, err := NewDownloader(srv.URL+"/historical/", time.Second).Download(context.Background(), t.TempDir(), "99999")
		if !errors.Is(err, ErrArchiveNotFound) {
			t.Fatalf("want ErrArchiveNotFound, got %v", err)
		}
	})

	t.Run("archive status", func(t *testing.T) {
		srv := newDWDServer(t, nil, http.StatusInternalServerError)
		_, err := NewDownloader(srv.URL+"/historical/", time.Second).Download(context.Background(), t.TempDir(), "01766")
		if err == nil || !strings.Contains(err.Error(), "unexpected status") {
			t.Fatalf("expected status error, got %v", err)
		}
	})

	t.Run("index status", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		t.Cleanup(srv.Close)
		_, err := NewDownloader(srv.URL, time.Second).Download(context.Background(), t.TempDir(), "01766")
		if err == nil || !strings.Contains(err.Error(), "fetch index") {
			t.Fatalf("expected index error, got %v", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		srv := newDWDServer(t, nil, http.StatusOK)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewDownloader(srv.URL+"/historical/", time.Second).Download(ctx, t.TempDir(), "01766")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("want context.Canceled, got %v", err)
		}
	})

	t.Run("missing dir", func(t *testing.T) {
		srv := newDWDServer(t, []byte("x"), http.StatusOK)
		_, err := NewDownloader(srv.URL+"/historical/", time.Second).Download(context.Background(), filepath.Join(t.TempDir(), "nope"), "01766")
		if err == nil || !strings.Contains(err.Error(), "create") {
			t.Fatalf("expected create error, got %v", err)
		}
	})
}
