package weather

import (
	"context"
	"log"
)

// Service runs the lookup pipeline: validation, normalization, the provider
// request, failure classification and history recording.
type Service struct {
	provider Provider
	history  History
}

// NewService creates a new Service. history may be nil, in which case
// successful searches are not recorded.
func NewService(provider Provider, history History) *Service {
	return &Service{
		provider: provider,
		history:  history,
	}
}

// FetchByCity looks up current conditions for a user-typed place name.
// Invalid input fails before any request is sent. On success the trimmed input,
// as typed and before normalization, is recorded in the history.
func (s *Service) FetchByCity(ctx context.Context, raw string) (Reading, error) {
	value, err := ValidateCityInput(raw)
	if err != nil {
		log.Printf("DEBUG: rejected city input %q: %v", raw, err)
		return Reading{}, err
	}

	name := NormalizeCityName(value)
	log.Printf("DEBUG: FetchByCity %q (query %q) via %s", value, name, s.provider.Name())

	reading, err := s.provider.Fetch(ctx, Location{City: name})
	if err != nil {
		werr := Classify(err, value)
		logFailure(value, werr)
		return Reading{}, werr
	}

	if s.history != nil {
		s.history.Add(value)
	}
	return reading, nil
}

// FetchByCoords looks up current conditions for a coordinate pair. Coordinates
// come from the location capability, so they are neither validated nor
// recorded in the history.
func (s *Service) FetchByCoords(ctx context.Context, lat, lon float64) (Reading, error) {
	loc := Location{Lat: &lat, Lon: &lon}
	log.Printf("DEBUG: FetchByCoords %s via %s", loc.Key(), s.provider.Name())

	reading, err := s.provider.Fetch(ctx, loc)
	if err != nil {
		werr := Classify(err, loc.Key())
		logFailure(loc.Key(), werr)
		return Reading{}, werr
	}
	return reading, nil
}

// History returns the recency list, most recent first.
func (s *Service) History() []string {
	if s.history == nil {
		return []string{}
	}
	return s.history.List()
}

func logFailure(label string, err *Error) {
	if err.Err != nil {
		log.Printf("ERROR: weather lookup for %s failed (%s): %v", label, err.Kind, err.Err)
		return
	}
	log.Printf("ERROR: weather lookup for %s failed (%s): %s", label, err.Kind, err.Message)
}
