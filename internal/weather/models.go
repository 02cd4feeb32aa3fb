package weather

import "strconv"

// Location is what a lookup is for: either a place name or a coordinate pair.
type Location struct {
	City string   `json:"city,omitempty"`
	Lat  *float64 `json:"lat,omitempty"`
	Lon  *float64 `json:"lon,omitempty"`
}

// HasCoords reports whether the location should be queried by coordinates.
func (l Location) HasCoords() bool {
	return l.Lat != nil && l.Lon != nil
}

// Key returns a human-readable identifier, used in logs and error messages.
func (l Location) Key() string {
	if l.HasCoords() {
		return FormatCoord(*l.Lat) + "," + FormatCoord(*l.Lon)
	}
	return l.City
}

// FormatCoord prints a coordinate with the shortest exact representation.
func FormatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Reading is the current conditions for one location.
// Optional values are nil when the upstream payload omitted them.
type Reading struct {
	LocationLabel string   `json:"location"`
	ConditionText string   `json:"condition"`
	TemperatureC  *float64 `json:"temperatureC,omitempty"`
	HumidityPct   *float64 `json:"humidityPercent,omitempty"`
	WindSpeedMS   *float64 `json:"windSpeed,omitempty"`
}
