package config

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	SERVER_REQUEST_TIMEOUT=3m
//	SERVER_RATE_LIMIT=30
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=dwdclimate
//	POSTGRES_SSLMODE=disable
//	DWD_BASE_URL=https://opendata.dwd.de/climate_environment/CDC/observations_germany/climate/hourly/air_temperature/historical/
//	DWD_TIMEOUT=2m
//	STATIONS=Osnabrück=01766,Lingen=03023
//	DEFAULT_STATION=Osnabrück
//	CLIMATE_WORKERS=4
//	HISTORY_LIMIT=50
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
	DWD      DWDConfig      // Open data portal settings
	Climate  ClimateConfig  // Aggregation settings
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port           string        // The TCP port the HTTP server will listen on (e.g., "8080")
	RequestTimeout time.Duration // Upper bound for a single API request
	RateLimit      int           // Requests per minute per client IP (0 disables)
}

// PostgresConfig defines connection details for PostgreSQL, which stores
// the history of computed averages.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// DWDConfig describes where station archives are downloaded from.
//
// Fields:
//   - BaseURL: directory listing of the hourly air temperature archives.
//   - Timeout: upper bound for a single HTTP request (index or archive).
//   - Stations: station name -> 5-digit DWD station ID.
//   - DefaultStation: station used when none is requested.
type DWDConfig struct {
	BaseURL        string
	Timeout        time.Duration
	Stations       map[string]string
	DefaultStation string
}

// ClimateConfig tunes the aggregation engine.
type ClimateConfig struct {
	Workers      int // goroutines scanning years in parallel (<=1 = sequential)
	HistoryLimit int // default number of history rows returned
}

// DefaultBaseURL is the DWD directory of historical hourly air temperatures.
const DefaultBaseURL = "https://opendata.dwd.de/climate_environment/CDC/observations_germany/climate/hourly/air_temperature/historical/"

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_REQUEST_TIMEOUT", "3m")
	viper.SetDefault("SERVER_RATE_LIMIT", 30)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "dwdclimate")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("DWD_BASE_URL", DefaultBaseURL)
	viper.SetDefault("DWD_TIMEOUT", "2m")
	viper.SetDefault("STATIONS", "Osnabrück=01766,Lingen=03023")
	viper.SetDefault("DEFAULT_STATION", "Osnabrück")

	viper.SetDefault("CLIMATE_WORKERS", 4)
	viper.SetDefault("HISTORY_LIMIT", 50)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	stations, err := ParseStations(viper.GetString("STATIONS"))
	if err != nil {
		log.Fatalf("invalid STATIONS: %v\n", err)
	}

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RequestTimeout: viper.GetDuration("SERVER_REQUEST_TIMEOUT"),
			RateLimit:      viper.GetInt("SERVER_RATE_LIMIT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		DWD: DWDConfig{
			BaseURL:        viper.GetString("DWD_BASE_URL"),
			Timeout:        viper.GetDuration("DWD_TIMEOUT"),
			Stations:       stations,
			DefaultStation: viper.GetString("DEFAULT_STATION"),
		},
		Climate: ClimateConfig{
			Workers:      viper.GetInt("CLIMATE_WORKERS"),
			HistoryLimit: viper.GetInt("HISTORY_LIMIT"),
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// ParseStations parses a "name=id,name=id" list into a map.
//
// IDs must be exactly five digits; names are trimmed and must be unique
// ignoring case, since stations are looked up case-insensitively.
func ParseStations(s string) (map[string]string, error) {
	out := make(map[string]string)
	seen := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, id, ok := strings.Cut(pair, "=")
		name, id = strings.TrimSpace(name), strings.TrimSpace(id)
		if !ok || name == "" {
			return nil, fmt.Errorf("malformed entry %q, expected name=id", pair)
		}
		if !isStationID(id) {
			return nil, fmt.Errorf("station %q: id %q is not a 5-digit DWD id", name, id)
		}
		key := strings.ToLower(name)
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate station %q (already defined as %q)", name, prev)
		}
		seen[key] = name
		out[name] = id
	}
	return out, nil
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

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
func validateConfig() {
	missing := missingKeys(AppConfig)
	if len(missing) > 0 {
		log.Fatalf("❌ Missing required environment variables: %v\n", missing)
	}
}

func missingKeys(cfg Config) []string {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if cfg.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if cfg.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if cfg.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if cfg.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if cfg.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if cfg.DWD.BaseURL == "" {
		missing = append(missing, "DWD_BASE_URL")
	}
	if cfg.DWD.Timeout <= 0 {
		missing = append(missing, "DWD_TIMEOUT")
	}
	if len(cfg.DWD.Stations) == 0 {
		missing = append(missing, "STATIONS")
	}

	sort.Strings(missing)
	return missing
}
