package ui

import (
	"math"
	"strconv"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// Status is the phase the display is in.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Placeholders shown in the display fields.
const (
	Unavailable     = "---"
	LoadingLocation = "fetching…"
	LoadingDetail   = "please wait"
	UnknownLocation = "unknown location"
	NoCondition     = "no information"
	ErrorLocation   = "error"
)

// State is the display state. Reading is set only for StatusSuccess and
// Message only for StatusError.
type State struct {
	Status  Status
	Reading weather.Reading
	Message string
}

func Idle() State { return State{Status: StatusIdle} }
func Loading() State { return State{Status: StatusLoading} }
func Success(r weather.Reading) State { return State{Status: StatusSuccess, Reading: r} }
func Failure(message string) State { return State{Status: StatusError, Message: message} }

// Fields are the five values shown to the user.
type Fields struct {
	Location    string `json:"location"`
	Condition   string `json:"condition"`
	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`
	Wind        string `json:"wind"`
}

// Render maps a display state to its five fields. Every state sets all five.
func Render(s State) Fields {
	switch s.Status {
	case StatusLoading:
		return Fields{
			Location:    LoadingLocation,
			Condition:   LoadingDetail,
			Temperature: Unavailable,
			Humidity:    Unavailable,
			Wind:        Unavailable,
		}
	case StatusSuccess:
		return renderReading(s.Reading)
	case StatusError:
		return Fields{
			Location:    ErrorLocation,
			Condition:   s.Message,
			Temperature: Unavailable,
			Humidity:    Unavailable,
			Wind:        Unavailable,
		}
	default:
		return Fields{
			Location:    Unavailable,
			Condition:   Unavailable,
			Temperature: Unavailable,
			Humidity:    Unavailable,
			Wind:        Unavailable,
		}
	}
}

func renderReading(r weather.Reading) Fields {
	f := Fields{
		Location:    r.LocationLabel,
		Condition:   r.ConditionText,
		Temperature: Unavailable,
		Humidity:    Unavailable,
		Wind:        Unavailable,
	}
	if f.Location == "" {
		f.Location = UnknownLocation
	}
	if f.Condition == "" {
		f.Condition = NoCondition
	}
	if r.TemperatureC != nil {
		f.Temperature = formatNumber(roundHalfUp(*r.TemperatureC)) + "℃"
	}
	if r.HumidityPct != nil {
		f.Humidity = formatNumber(*r.HumidityPct) + "%"
	}
	if r.WindSpeedMS != nil {
		f.Wind = formatNumber(*r.WindSpeedMS) + "m/s"
	}
	return f
}

// roundHalfUp rounds halves toward positive infinity, so -2.5 becomes -2.
func roundHalfUp(v float64) float64 {
	r := math.Floor(v + 0.5)
	if r == 0 {
		return 0 // drop the sign of -0
	}
	return r
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
