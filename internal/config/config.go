package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type AppConfig struct {
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string `validate:"omitempty,url"`
	Lang               string `validate:"required"`

	// HTTPTimeout bounds outbound weather requests (0 = no timeout).
	HTTPTimeout time.Duration `validate:"gte=0"`

	// Local request budget (0 = unlimited).
	RequestsPerMinute int `validate:"gte=0"`
	RequestBurst      int `validate:"gte=0"`

	// History persistence.
	HistoryBackend string `validate:"oneof=sqlite memory"`
	HistoryDBPath  string

	// Location capability: fixed coordinates, or an address to geocode.
	LocationLat     *float64 `validate:"omitempty,gte=-90,lte=90"`
	LocationLon     *float64 `validate:"omitempty,gte=-180,lte=180"`
	LocationAddress string
	GeocoderAPIKey  string

	Port string `validate:"required,numeric"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = strings.TrimSpace(os.Getenv("OPENWEATHER_API_KEY"))
	cfg.OpenWeatherBaseURL = os.Getenv("OPENWEATHER_BASE_URL")
	cfg.Lang = getenvDefault("WEATHER_LANG", "ja")

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.RequestsPerMinute = getenvInt("REQUEST_RATE_PER_MINUTE", 60)
	cfg.RequestBurst = getenvInt("REQUEST_BURST", 5)

	cfg.HistoryBackend = strings.ToLower(getenvDefault("HISTORY_BACKEND", "sqlite"))
	cfg.HistoryDBPath = getenvDefault("HISTORY_DB_PATH", "history.db")

	if cfg.LocationLat, err = getenvFloat("LOCATION_LAT"); err != nil {
		return nil, err
	}
	if cfg.LocationLon, err = getenvFloat("LOCATION_LON"); err != nil {
		return nil, err
	}
	if (cfg.LocationLat == nil) != (cfg.LocationLon == nil) {
		return nil, fmt.Errorf("LOCATION_LAT and LOCATION_LON must be set together")
	}
	cfg.LocationAddress = os.Getenv("LOCATION_ADDRESS")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
		log.Printf("WARN: ignoring invalid %s=%q, using %d", key, v, def)
	}
	return def
}

func getenvFloat(key string) (*float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &f, nil
}
