package location

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// Code is the reason a position could not be acquired.
type Code int

const (
	Unknown Code = iota
	PermissionDenied
	PositionUnavailable
	Timeout
)

func (c Code) String() string {
	switch c {
	case PermissionDenied:
		return "permission denied"
	case PositionUnavailable:
		return "position unavailable"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Display messages for location failures.
const (
	MsgPermissionDenied    = "location permission denied, check settings"
	MsgPositionUnavailable = "location unavailable"
	MsgTimeout             = "location request timed out"
	MsgUnsupported         = "geolocation is not supported"
	MsgUnknown             = "failed to get location"
)

// PositionError is returned by a Locator that could not produce a position.
type PositionError struct {
	Code Code
	Err  error
}

func (e *PositionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("position error (%s): %v", e.Code, e.Err)
	}
	return fmt.Sprintf("position error (%s)", e.Code)
}

func (e *PositionError) Unwrap() error {
	return e.Err
}

// Position is an acquired geographic position.
type Position struct {
	Lat       float64
	Lon       float64
	Timestamp time.Time
}

// Options tune a position acquisition.
type Options struct {
	HighAccuracy bool
	// Timeout bounds one acquisition.
	Timeout time.Duration
	// MaximumAge is how old a previously acquired position may be and still be reused.
	MaximumAge time.Duration
}

// DefaultOptions are the acquisition settings used for "use current location".
func DefaultOptions() Options {
	return Options{
		HighAccuracy: true,
		Timeout:      10 * time.Second,
		MaximumAge:   5 * time.Minute,
	}
}

// Locator is the position capability of the host.
type Locator interface {
	CurrentPosition(ctx context.Context, opts Options) (Position, error)
}

// CoordsFetcher looks up weather for a coordinate pair.
type CoordsFetcher interface {
	FetchByCoords(ctx context.Context, lat, lon float64) (weather.Reading, error)
}

// Resolver acquires the current position and fetches its weather.
type Resolver struct {
	locator Locator
	fetcher CoordsFetcher
	opts    Options
	now     func() time.Time

	mu   sync.Mutex
	last *Position
}

// NewResolver creates a Resolver. A nil locator means the capability is not
// available on this host.
func NewResolver(locator Locator, fetcher CoordsFetcher, opts Options) *Resolver {
	return &Resolver{
		locator: locator,
		fetcher: fetcher,
		opts:    opts,
		now:     time.Now,
	}
}

// Supported reports whether a position capability is present.
func (r *Resolver) Supported() bool {
	return r.locator != nil
}

// ResolveCurrentLocation acquires the current position and returns the
// weather there. Acquisition failures are returned as geolocation errors;
// lookup failures are returned as classified by the weather service.
func (r *Resolver) ResolveCurrentLocation(ctx context.Context) (weather.Reading, error) {
	pos, err := r.CurrentPosition(ctx)
	if err != nil {
		return weather.Reading{}, err
	}
	return r.fetcher.FetchByCoords(ctx, pos.Lat, pos.Lon)
}

// CurrentPosition returns a cached position younger than MaximumAge, or
// acquires a new one within Timeout.
func (r *Resolver) CurrentPosition(ctx context.Context) (Position, error) {
	if !r.Supported() {
		return Position{}, geolocationError(MsgUnsupported, nil)
	}

	if pos, ok := r.cached(); ok {
		log.Printf("DEBUG: reusing position acquired at %s", pos.Timestamp.Format(time.RFC3339))
		return pos, nil
	}

	pos, err := r.acquire(ctx)
	if err != nil {
		werr := classifyPositionError(err)
		log.Printf("ERROR: position acquisition failed: %v", err)
		return Position{}, werr
	}

	if pos.Timestamp.IsZero() {
		pos.Timestamp = r.now()
	}
	r.mu.Lock()
	r.last = &pos
	r.mu.Unlock()
	return pos, nil
}

func (r *Resolver) cached() (Position, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.last == nil || r.opts.MaximumAge <= 0 {
		return Position{}, false
	}
	if r.now().Sub(r.last.Timestamp) > r.opts.MaximumAge {
		return Position{}, false
	}
	return *r.last, true
}

type acquisition struct {
	pos Position
	err error
}

// acquire enforces the timeout even for locators that ignore ctx.
func (r *Resolver) acquire(ctx context.Context) (Position, error) {
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	done := make(chan acquisition, 1)
	go func() {
		pos, err := r.locator.CurrentPosition(ctx, r.opts)
		done <- acquisition{pos: pos, err: err}
	}()

	select {
	case res := <-done:
		if errors.Is(res.err, context.DeadlineExceeded) {
			return Position{}, &PositionError{Code: Timeout, Err: res.err}
		}
		return res.pos, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Position{}, &PositionError{Code: Timeout, Err: ctx.Err()}
		}
		return Position{}, ctx.Err()
	}
}

func classifyPositionError(err error) *weather.Error {
	var pe *PositionError
	if !errors.As(err, &pe) {
		return geolocationError(MsgUnknown, err)
	}
	switch pe.Code {
	case PermissionDenied:
		return geolocationError(MsgPermissionDenied, err)
	case PositionUnavailable:
		return geolocationError(MsgPositionUnavailable, err)
	case Timeout:
		return geolocationError(MsgTimeout, err)
	default:
		return geolocationError(MsgUnknown, err)
	}
}

func geolocationError(msg string, err error) *weather.Error {
	return &weather.Error{Kind: weather.KindGeolocation, Message: msg, Err: err}
}
