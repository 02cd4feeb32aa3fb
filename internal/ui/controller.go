package ui

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/i474232898/weather-lookup/internal/location"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// Lookup is the weather service as seen by the controller.
type Lookup interface {
	FetchByCity(ctx context.Context, raw string) (weather.Reading, error)
	FetchByCoords(ctx context.Context, lat, lon float64) (weather.Reading, error)
}

// CurrentLocation resolves the weather at the host's position.
type CurrentLocation interface {
	Supported() bool
	ResolveCurrentLocation(ctx context.Context) (weather.Reading, error)
}

// Result is what an action left on the display.
type Result struct {
	ActionID string `json:"actionId"`
	State    Status `json:"state"`
	Fields   Fields `json:"fields"`
}

// Controller owns the single display state and runs user actions against it.
// Each transition replaces the whole state under the lock; lookups run
// outside it, so when actions overlap the last one to finish wins.
type Controller struct {
	lookup   Lookup
	location CurrentLocation

	mu    sync.Mutex
	state State
}

// NewController creates a Controller showing initial.
func NewController(lookup Lookup, loc CurrentLocation, initial State) *Controller {
	return &Controller{
		lookup:   lookup,
		location: loc,
		state:    initial,
	}
}

// Search looks up the weather for a typed place name. Rejected input goes
// straight to the error display without passing through Loading.
func (c *Controller) Search(ctx context.Context, raw string) Result {
	id := uuid.NewString()
	log.Printf("INFO: [%s] search %q", id, raw)

	if _, err := weather.ValidateCityInput(raw); err != nil {
		log.Printf("INFO: [%s] rejected: %v", id, err)
		return result(id, c.set(Failure(err.Error())))
	}

	c.set(Loading())
	reading, err := c.lookup.FetchByCity(ctx, raw)
	return c.finish(id, reading, err)
}

// UseCurrentLocation looks up the weather at the current position.
func (c *Controller) UseCurrentLocation(ctx context.Context) Result {
	id := uuid.NewString()
	log.Printf("INFO: [%s] use current location", id)

	if c.location == nil || !c.location.Supported() {
		s := c.set(Failure(location.MsgUnsupported))
		return result(id, s)
	}

	c.set(Loading())
	reading, err := c.location.ResolveCurrentLocation(ctx)
	return c.finish(id, reading, err)
}

// ShowCoordinates looks up the weather for coordinates supplied by the client.
func (c *Controller) ShowCoordinates(ctx context.Context, lat, lon float64) Result {
	id := uuid.NewString()
	log.Printf("INFO: [%s] coordinates %s,%s", id, weather.FormatCoord(lat), weather.FormatCoord(lon))

	c.set(Loading())
	reading, err := c.lookup.FetchByCoords(ctx, lat, lon)
	return c.finish(id, reading, err)
}

// FocusInput clears an error display back to idle and leaves any other state alone.
func (c *Controller) FocusInput() Result {
	c.mu.Lock()
	if c.state.Status == StatusError {
		c.state = Idle()
	}
	s := c.state
	c.mu.Unlock()

	return result(uuid.NewString(), s)
}

// View returns the current display.
func (c *Controller) View() Result {
	c.mu.Lock()
	s := c.state
	c.mu.Unlock()

	return result("", s)
}

func (c *Controller) finish(id string, reading weather.Reading, err error) Result {
	if err != nil {
		log.Printf("INFO: [%s] failed: %v", id, err)
		return result(id, c.set(Failure(err.Error())))
	}
	log.Printf("INFO: [%s] showing %q", id, reading.LocationLabel)
	return result(id, c.set(Success(reading)))
}

func (c *Controller) set(s State) State {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	return s
}

func result(id string, s State) Result {
	return Result{ActionID: id, State: s.Status, Fields: Render(s)}
}
