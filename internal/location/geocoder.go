package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-lookup/internal/common"
)

// GeocodingLocator resolves a configured street address to coordinates through
// the Google Geocoding API. Calls go through a circuit breaker so a failing
// upstream is not hammered.
type GeocodingLocator struct {
	address geocoder.Address
	circuit *gobreaker.CircuitBreaker
	geocode func(geocoder.Address) (geocoder.Location, error)
}

// NewGeocodingLocator configures the geocoder API key and returns a locator for address.
func NewGeocodingLocator(apiKey, address string) *GeocodingLocator {
	geocoder.ApiKey = apiKey
	return newGeocodingLocator(address, geocoder.Geocoding)
}

func newGeocodingLocator(address string, geocode func(geocoder.Address) (geocoder.Location, error)) *GeocodingLocator {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "geocoder",
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &GeocodingLocator{
		address: geocoder.Address{Street: address},
		circuit: cb,
		geocode: geocode,
	}
}

func (g *GeocodingLocator) CurrentPosition(ctx context.Context, _ Options) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}

	result, err := g.circuit.Execute(func() (interface{}, error) {
		return g.geocode(g.address)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return Position{}, &PositionError{Code: PositionUnavailable, Err: err}
		}
		if common.ContainsAnyFold(err.Error(), "REQUEST_DENIED", "OVER_DAILY_LIMIT", "denied") {
			return Position{}, &PositionError{Code: PermissionDenied, Err: err}
		}
		return Position{}, &PositionError{Code: PositionUnavailable, Err: err}
	}

	loc, ok := result.(geocoder.Location)
	if !ok {
		return Position{}, &PositionError{Code: Unknown, Err: fmt.Errorf("unexpected result type from circuit breaker")}
	}
	return Position{Lat: loc.Latitude, Lon: loc.Longitude, Timestamp: time.Now()}, nil
}
