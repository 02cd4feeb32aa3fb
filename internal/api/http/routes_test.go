package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-lookup/internal/location"
	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/ui"
	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/weather/providers"
)

// newTestApp wires the full stack against a fake weather API.
func newTestApp(t *testing.T, upstream http.HandlerFunc, locator location.Locator) (*fiber.App, *weather.Service) {
	t.Helper()

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	prov := providers.NewOpenWeatherProvider(
		providers.HTTPClientConfig{Client: srv.Client()},
		"test-key",
		providers.OpenWeatherOptions{BaseURL: srv.URL},
	)
	svc := weather.NewService(prov, store.NewHistoryStore(store.NewMemoryKV()))
	resolver := location.NewResolver(locator, svc, location.DefaultOptions())
	controller := ui.NewController(svc, resolver, ui.Idle())

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, controller, svc)
	return app, svc
}

func tokyoHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("q") == "Atlantis" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"name":"Tokyo","weather":[{"description":"clear sky"}],"main":{"temp":21.6,"humidity":55},"wind":{"speed":3.2}}`))
}

func doJSON(t *testing.T, app *fiber.App, method, target string, out interface{}) int {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func TestSearchRoute(t *testing.T) {
	app, _ := newTestApp(t, tokyoHandler, nil)

	var res ui.Result
	status := doJSON(t, app, http.MethodGet, "/api/v1/weather/search?q="+"%E3%81%A8%E3%81%86%E3%81%8D%E3%82%87%E3%81%86", &res)
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	want := ui.Fields{Location: "Tokyo", Condition: "clear sky", Temperature: "22℃", Humidity: "55%", Wind: "3.2m/s"}
	if res.State != ui.StatusSuccess || res.Fields != want {
		t.Fatalf("unexpected result %+v", res)
	}

	var hist struct {
		History []string `json:"history"`
	}
	doJSON(t, app, http.MethodGet, "/api/v1/history", &hist)
	if len(hist.History) != 1 || hist.History[0] != "とうきょう" {
		t.Fatalf("expected original input in history, got %v", hist.History)
	}
}

func TestSearchRouteErrorsAreDisplayStates(t *testing.T) {
	app, _ := newTestApp(t, tokyoHandler, nil)

	var res ui.Result
	if status := doJSON(t, app, http.MethodGet, "/api/v1/weather/search?q=a", &res); status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	if res.State != ui.StatusError || res.Fields.Condition != weather.MsgTooShort {
		t.Fatalf("unexpected result %+v", res)
	}

	doJSON(t, app, http.MethodGet, "/api/v1/weather/search?q=Atlantis", &res)
	if res.Fields.Condition != weather.NotFoundMessage("Atlantis") {
		t.Fatalf("unexpected not-found message %q", res.Fields.Condition)
	}

	var view ui.Result
	doJSON(t, app, http.MethodGet, "/api/v1/display", &view)
	if view.State != ui.StatusError {
		t.Fatalf("expected display to show the error, got %+v", view)
	}

	doJSON(t, app, http.MethodPost, "/api/v1/display/focus", &view)
	if view.State != ui.StatusIdle || view.Fields.Location != ui.Unavailable {
		t.Fatalf("expected focus to reset the display, got %+v", view)
	}
}

func TestCoordsValidation(t *testing.T) {
	app, _ := newTestApp(t, tokyoHandler, nil)

	bad := []string{
		"/api/v1/weather/coords",
		"/api/v1/weather/coords?lat=10",
		"/api/v1/weather/coords?lat=91&lon=0",
		"/api/v1/weather/coords?lat=0&lon=-181",
		"/api/v1/weather/coords?lat=abc&lon=0",
	}
	for _, target := range bad {
		if status := doJSON(t, app, http.MethodGet, target, nil); status != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", target, http.StatusBadRequest, status)
		}
	}

	var res ui.Result
	if status := doJSON(t, app, http.MethodGet, "/api/v1/weather/coords?lat=35.68&lon=139.76", &res); status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	if res.State != ui.StatusSuccess {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestCurrentLocationRoute(t *testing.T) {
	app, svc := newTestApp(t, tokyoHandler, location.StaticLocator{Lat: 35.68, Lon: 139.76})

	var res ui.Result
	if status := doJSON(t, app, http.MethodPost, "/api/v1/weather/current-location", &res); status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	if res.State != ui.StatusSuccess || res.Fields.Location != "Tokyo" {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(svc.History()) != 0 {
		t.Fatalf("coordinate lookups must not be recorded, got %v", svc.History())
	}

	app, _ = newTestApp(t, tokyoHandler, nil)
	doJSON(t, app, http.MethodPost, "/api/v1/weather/current-location", &res)
	if res.State != ui.StatusError || res.Fields.Condition != location.MsgUnsupported {
		t.Fatalf("unexpected result %+v", res)
	}
}
