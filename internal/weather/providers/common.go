package providers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// HTTPClientConfig bundles the outbound HTTP client and the local request budget.
type HTTPClientConfig struct {
	Client *http.Client
	// Limiter caps how many requests may be sent; nil means unlimited.
	Limiter *rate.Limiter
}

var errNoHTTPClient = errors.New("http client not configured")

// NewRequestBudget returns a limiter allowing perMinute requests with the given
// burst, or nil when perMinute is not positive.
func NewRequestBudget(perMinute, burst int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
}

// doRequest sends exactly one request. It never retries and never waits for
// budget: a spent budget fails immediately without contacting the server.
// Any non-2xx answer is returned as *weather.StatusError with the body drained.
func doRequest(
	ctx context.Context,
	cfg HTTPClientConfig,
	buildRequest func() (*http.Request, error),
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}
	if cfg.Limiter != nil && !cfg.Limiter.Allow() {
		return nil, weather.ErrRequestBudget
	}

	req, err := buildRequest()
	if err != nil {
		return nil, err
	}

	// Ensure the request obeys context cancellation.
	req = req.WithContext(ctx)

	resp, err := cfg.Client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &weather.StatusError{Code: resp.StatusCode}
	}
	return resp, nil
}
