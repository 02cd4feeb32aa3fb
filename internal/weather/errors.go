package weather

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind groups failures by how they are reported to the user.
type Kind int

const (
	KindInput Kind = iota + 1
	KindNetwork
	KindHTTP
	KindData
	KindGeolocation
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindData:
		return "data"
	case KindGeolocation:
		return "geolocation"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// User-facing messages.
const (
	MsgEmptyInput        = "enter a place name"
	MsgTooLong           = "name too long, max 100 chars"
	MsgTooShort          = "name must be at least 2 characters"
	MsgDisallowedChars   = "contains disallowed characters"
	MsgConsecutiveSpaces = "no consecutive spaces"

	MsgNetwork      = "cannot reach network, check connection"
	MsgBadRequest   = "malformed request"
	MsgUnauthorized = "invalid API key, check configuration"
	MsgRateLimited  = "API rate limit reached, wait and retry"
	MsgServerError  = "weather server error, wait and retry"
	MsgInvalidData  = "received invalid weather data"
	MsgMissingKey   = "set the API key"
)

// Error is a terminal, user-reportable failure. Error() is the display message;
// the underlying cause, if any, is available through Unwrap for logging.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	// ErrMissingAPIKey is returned by providers that have no usable credentials.
	ErrMissingAPIKey = errors.New("openweather api key is not configured")
	// ErrInvalidPayload wraps decode failures and payloads without a place name.
	ErrInvalidPayload = errors.New("invalid weather payload")
	// ErrRequestBudget is returned when the local request budget is spent and
	// no request was sent.
	ErrRequestBudget = errors.New("local request budget exhausted")
)

// StatusError reports a non-2xx answer from the weather API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

func inputError(msg string) *Error {
	return &Error{Kind: KindInput, Message: msg}
}

// NotFoundMessage echoes the name exactly as the user typed it.
func NotFoundMessage(name string) string {
	return fmt.Sprintf("%q was not found, check the place name", name)
}

// StatusMessage maps a weather API status code to its display message.
func StatusMessage(code int, label string) string {
	switch code {
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusUnauthorized:
		return MsgUnauthorized
	case http.StatusNotFound:
		return NotFoundMessage(label)
	case http.StatusTooManyRequests:
		return MsgRateLimited
	case http.StatusInternalServerError:
		return MsgServerError
	default:
		return fmt.Sprintf("failed to fetch weather data (status %d)", code)
	}
}

// Classify turns a provider error into an *Error. label is the text used in
// the not-found message.
func Classify(err error, label string) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	var se *StatusError
	switch {
	case errors.As(err, &se):
		return &Error{Kind: KindHTTP, Status: se.Code, Message: StatusMessage(se.Code, label), Err: err}
	case errors.Is(err, ErrRequestBudget):
		return &Error{Kind: KindHTTP, Status: http.StatusTooManyRequests, Message: MsgRateLimited, Err: err}
	case errors.Is(err, ErrInvalidPayload):
		return &Error{Kind: KindData, Message: MsgInvalidData, Err: err}
	case errors.Is(err, ErrMissingAPIKey):
		return &Error{Kind: KindConfig, Message: MsgMissingKey, Err: err}
	default:
		return &Error{Kind: KindNetwork, Message: MsgNetwork, Err: err}
	}
}
