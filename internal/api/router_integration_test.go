//go:build integration
// +build integration

package api_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/klauspost/compress/zip"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/dwdclimate/config"
	"github.com/guttosm/dwdclimate/internal/app"
	"github.com/guttosm/dwdclimate/internal/domain/dto"
)

func startPG(t *testing.T) (dsn string, host string, port nat.Port, terminate func()) {
	t.Helper()
	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "dwdclimate",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(h string, p nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=dwdclimate sslmode=disable", h, p.Port())
		}).WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	h, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", h, mp.Port(), "dwdclimate")
	terminate = func() { _ = c.Terminate(context.Background()) }
	return dsn, h, mp, terminate
}

func migrate(t *testing.T, dsn string) {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	if err := goose.Up(db, filepath.Join("..", "..", "db", "migrations")); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

// fakePortal serves a DWD-style directory listing with one station archive.
func fakePortal(t *testing.T) *httptest.Server {
	t.Helper()
	const archive = "stundenwerte_TU_01766_19490101_20231231_hist.zip"
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("produkt_tu_stunde_19490101_20231231_01766.txt")
	if err != nil {
		t.Fatalf("zip: %v", err)
	}
	_, _ = w.Write([]byte("STATIONS_ID;MESS_DATUM;QN_9;TT_TU;RF_TU;eor\n" +
		"1766;2019010106;3;   3.0;  90.0;eor\n" +
		"1766;2019010114;3;  20.0;  60.0;eor\n" +
		"1766;2020010106;3;   6.0;  90.0;eor\n" +
		"1766;2020010114;3;  15.0;  60.0;eor\n"))
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/historical/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "<a href=\"%s\">%s</a>\n", archive, archive)
	})
	mux.HandleFunc("/historical/"+archive, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(buf.Bytes())
	})
	return httptest.NewServer(mux)
}

func TestAPI_E2E_AverageIsRecorded(t *testing.T) {
	dsn, host, port, term := startPG(t)
	defer term()
	migrate(t, dsn)

	portal := fakePortal(t)
	defer portal.Close()

	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = config.Config{
		Server: config.ServerConfig{RequestTimeout: 30 * time.Second},
		Postgres: config.PostgresConfig{
			Host:     host,
			Port:     port.Int(),
			User:     "postgres",
			Password: "postgres",
			DBName:   "dwdclimate",
			SSLMode:  "disable",
		},
		DWD: config.DWDConfig{
			BaseURL:        portal.URL + "/historical/",
			Timeout:        10 * time.Second,
			Stations:       map[string]string{"Osnabrück": "01766"},
			DefaultStation: "Osnabrück",
		},
		Climate: config.ClimateConfig{Workers: 2, HistoryLimit: 10},
	}

	router, cleanup, err := app.InitializeApp()
	if err != nil {
		t.Fatalf("init app: %v", err)
	}
	defer cleanup()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/average?day=1&month=1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	var avg dto.AverageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &avg); err != nil {
		t.Fatalf("json: %v", err)
	}
	if avg.StationID != "01766" || avg.AvgMin != 4.5 || avg.AvgMax != 17.5 {
		t.Fatalf("unexpected body: %+v", avg)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/history?station=Osnabr%C3%BCck", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("history status: %d body=%s", w.Code, w.Body.String())
	}
	var hist dto.HistoryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &hist); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(hist.Entries) != 1 || hist.Entries[0].AvgMax != 17.5 {
		t.Fatalf("unexpected history: %+v", hist)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/average?day=2&month=3", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a day without data, got %d", w.Code)
	}
}
