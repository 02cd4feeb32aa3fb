package app

import (
	"fmt"
	"log"
	"net/http"

	"github.com/i474232898/weather-lookup/internal/config"
	"github.com/i474232898/weather-lookup/internal/location"
	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/ui"
	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/weather/providers"
)

// App holds the wired components shared by the server and the CLI.
type App struct {
	Service    *weather.Service
	Resolver   *location.Resolver
	Controller *ui.Controller

	kv store.KV
}

// New wires the lookup pipeline from configuration.
func New(cfg *config.AppConfig) (*App, error) {
	kv, err := openKV(cfg)
	if err != nil {
		return nil, err
	}

	// Shared HTTP client for outbound weather calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := providers.NewOpenWeatherProvider(
		providers.HTTPClientConfig{
			Client:  httpClient,
			Limiter: providers.NewRequestBudget(cfg.RequestsPerMinute, cfg.RequestBurst),
		},
		cfg.OpenWeatherAPIKey,
		providers.OpenWeatherOptions{
			BaseURL: cfg.OpenWeatherBaseURL,
			Lang:    cfg.Lang,
		},
	)

	service := weather.NewService(provider, store.NewHistoryStore(kv))
	resolver := location.NewResolver(newLocator(cfg), service, location.DefaultOptions())

	initial := ui.Idle()
	if !provider.Configured() {
		log.Printf("ERROR: OPENWEATHER_API_KEY is not set; lookups will fail until it is configured")
		initial = ui.Failure(weather.MsgMissingKey)
	}

	return &App{
		Service:    service,
		Resolver:   resolver,
		Controller: ui.NewController(service, resolver, initial),
		kv:         kv,
	}, nil
}

// Close releases the history store.
func (a *App) Close() error {
	return a.kv.Close()
}

func openKV(cfg *config.AppConfig) (store.KV, error) {
	if cfg.HistoryBackend == "memory" {
		return store.NewMemoryKV(), nil
	}

	kv, err := store.NewSQLiteKV(cfg.HistoryDBPath)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	log.Printf("INFO: search history stored in %s", cfg.HistoryDBPath)
	return kv, nil
}

// newLocator picks the position capability. A nil result means current
// location lookups are reported as unsupported.
func newLocator(cfg *config.AppConfig) location.Locator {
	switch {
	case cfg.LocationLat != nil && cfg.LocationLon != nil:
		log.Printf("INFO: using fixed location %s,%s", weather.FormatCoord(*cfg.LocationLat), weather.FormatCoord(*cfg.LocationLon))
		return location.StaticLocator{Lat: *cfg.LocationLat, Lon: *cfg.LocationLon}
	case cfg.LocationAddress != "" && cfg.GeocoderAPIKey != "":
		log.Printf("INFO: geocoding location from LOCATION_ADDRESS")
		return location.NewGeocodingLocator(cfg.GeocoderAPIKey, cfg.LocationAddress)
	default:
		log.Printf("INFO: no location source configured; current location is unsupported")
		return nil
	}
}
