package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/i474232898/weather-lookup/internal/config"
	"github.com/i474232898/weather-lookup/internal/ui"
	"github.com/i474232898/weather-lookup/internal/weather"
)

func TestNewWithoutAPIKeyStartsInError(t *testing.T) {
	a, err := New(&config.AppConfig{OpenWeatherAPIKey: "YOUR_API_KEY_HERE", HistoryBackend: "memory", Lang: "ja"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer a.Close()

	v := a.Controller.View()
	if v.State != ui.StatusError || v.Fields.Condition != weather.MsgMissingKey {
		t.Fatalf("unexpected initial view %+v", v)
	}
	if a.Resolver.Supported() {
		t.Fatalf("expected no location capability without configuration")
	}
}

func TestNewSQLiteEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Kyoto","main":{"temp":18.2}}`))
	}))
	defer srv.Close()

	lat, lon := 35.0, 135.7
	cfg := &config.AppConfig{
		OpenWeatherAPIKey:  "key",
		OpenWeatherBaseURL: srv.URL,
		Lang:               "ja",
		HistoryBackend:     "sqlite",
		HistoryDBPath:      filepath.Join(t.TempDir(), "history.db"),
		LocationLat:        &lat,
		LocationLon:        &lon,
	}

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res := a.Controller.Search(context.Background(), "京都"); res.Fields.Temperature != "18℃" {
		t.Fatalf("unexpected result %+v", res)
	}
	if res := a.Controller.UseCurrentLocation(context.Background()); res.State != ui.StatusSuccess {
		t.Fatalf("unexpected result %+v", res)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	a, err = New(cfg)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer a.Close()
	if got := a.Service.History(); len(got) != 1 || got[0] != "京都" {
		t.Fatalf("expected persisted history [京都], got %v", got)
	}
}
