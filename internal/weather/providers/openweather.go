package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultOpenWeatherURL is the current-weather endpoint.
const DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// APIKeyPlaceholder is the value shipped in sample configuration.
const APIKeyPlaceholder = "YOUR_API_KEY_HERE"

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	lang    string
	httpCfg HTTPClientConfig
}

// OpenWeatherOptions configures NewOpenWeatherProvider. Zero values select the defaults.
type OpenWeatherOptions struct {
	BaseURL string
	Lang    string
}

func NewOpenWeatherProvider(httpCfg HTTPClientConfig, apiKey string, opts OpenWeatherOptions) *OpenWeatherProvider {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	lang := opts.Lang
	if lang == "" {
		lang = "ja"
	}

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		lang:    lang,
		httpCfg: httpCfg,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Configured reports whether the provider has a usable API key.
func (p *OpenWeatherProvider) Configured() bool {
	return APIKeyConfigured(p.apiKey)
}

// APIKeyConfigured reports whether key is set and is not the sample placeholder.
func APIKeyConfigured(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && key != APIKeyPlaceholder
}

// RequestURL builds the query URL for loc: by coordinates when both are set,
// by name otherwise.
func (p *OpenWeatherProvider) RequestURL(loc weather.Location) string {
	values := url.Values{}
	if loc.HasCoords() {
		values.Set("lat", weather.FormatCoord(*loc.Lat))
		values.Set("lon", weather.FormatCoord(*loc.Lon))
	} else {
		values.Set("q", loc.City)
	}
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	values.Set("lang", p.lang)

	return fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
}

type openWeatherPayload struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, loc weather.Location) (weather.Reading, error) {
	if !p.Configured() {
		return weather.Reading{}, weather.ErrMissingAPIKey
	}

	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, p.RequestURL(loc), nil)
	}

	resp, err := doRequest(ctx, p.httpCfg, buildRequest)
	if err != nil {
		return weather.Reading{}, err
	}
	defer resp.Body.Close()

	var payload openWeatherPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, fmt.Errorf("%w: %v", weather.ErrInvalidPayload, err)
	}
	if payload.Name == "" {
		return weather.Reading{}, fmt.Errorf("%w: missing name", weather.ErrInvalidPayload)
	}

	return payload.toReading(), nil
}

func (p openWeatherPayload) toReading() weather.Reading {
	r := weather.Reading{LocationLabel: p.Name}
	if len(p.Weather) > 0 {
		r.ConditionText = p.Weather[0].Description
	}
	if p.Main != nil {
		r.TemperatureC = p.Main.Temp
		r.HumidityPct = p.Main.Humidity
	}
	if p.Wind != nil {
		r.WindSpeedMS = p.Wind.Speed
	}
	return r
}
