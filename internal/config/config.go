package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// DataFile is the Airly CSV export to load at startup.
	DataFile string

	// SensorFile optionally overrides the built-in sensor table with a JSON file.
	SensorFile string

	// Password is the shared secret gating the dashboard API.
	Password string

	// RefreshInterval re-reads the export on a schedule; 0 disables the job
	// and keeps the load-once model.
	RefreshInterval time.Duration

	// Marker sizing for the map view.
	MarkerBaseSize  float64
	MarkerSizeRange float64

	// AllowedOrigins for CORS, comma separated.
	AllowedOrigins string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.DataFile = getenvDefault("DATA_FILE", "data/airly_export.csv")
	cfg.SensorFile = os.Getenv("SENSOR_FILE")

	cfg.Password = os.Getenv("APP_PASSWORD")
	if cfg.Password == "" {
		return nil, fmt.Errorf("APP_PASSWORD must be set")
	}

	refreshStr := getenvDefault("REFRESH_INTERVAL", "0")
	refresh, err := time.ParseDuration(refreshStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = refresh

	cfg.MarkerBaseSize = getenvFloat("MARKER_BASE_SIZE", 25)
	cfg.MarkerSizeRange = getenvFloat("MARKER_SIZE_RANGE", 40)

	cfg.AllowedOrigins = getenvDefault("ALLOWED_ORIGINS", "*")

	readTimeout, err := time.ParseDuration(getenvDefault("READ_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid READ_TIMEOUT: %w", err)
	}
	cfg.ReadTimeout = readTimeout

	writeTimeout, err := time.ParseDuration(getenvDefault("WRITE_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid WRITE_TIMEOUT: %w", err)
	}
	cfg.WriteTimeout = writeTimeout

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
