package weather

import "context"

// Provider abstracts the current-conditions source (OpenWeatherMap in production,
// fakes in tests).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (Reading, error)
}

// History is the recency list the service records successful searches into.
// Implementations never fail; persistence problems are logged and swallowed.
type History interface {
	Add(name string)
	List() []string
}
