package weather

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	netErr := errors.New("dial tcp: connection refused")

	cases := []struct {
		name       string
		err        error
		wantKind   Kind
		wantStatus int
		wantMsg    string
	}{
		{name: "400", err: &StatusError{Code: http.StatusBadRequest}, wantKind: KindHTTP, wantStatus: 400, wantMsg: MsgBadRequest},
		{name: "401", err: &StatusError{Code: http.StatusUnauthorized}, wantKind: KindHTTP, wantStatus: 401, wantMsg: MsgUnauthorized},
		{name: "404", err: &StatusError{Code: http.StatusNotFound}, wantKind: KindHTTP, wantStatus: 404, wantMsg: NotFoundMessage("とうきょう")},
		{name: "429", err: &StatusError{Code: http.StatusTooManyRequests}, wantKind: KindHTTP, wantStatus: 429, wantMsg: MsgRateLimited},
		{name: "500", err: &StatusError{Code: http.StatusInternalServerError}, wantKind: KindHTTP, wantStatus: 500, wantMsg: MsgServerError},
		{name: "503", err: &StatusError{Code: http.StatusServiceUnavailable}, wantKind: KindHTTP, wantStatus: 503, wantMsg: "failed to fetch weather data (status 503)"},
		{name: "budget", err: ErrRequestBudget, wantKind: KindHTTP, wantStatus: 429, wantMsg: MsgRateLimited},
		{name: "payload", err: fmt.Errorf("%w: missing name", ErrInvalidPayload), wantKind: KindData, wantMsg: MsgInvalidData},
		{name: "api key", err: ErrMissingAPIKey, wantKind: KindConfig, wantMsg: MsgMissingKey},
		{name: "transport", err: netErr, wantKind: KindNetwork, wantMsg: MsgNetwork},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.err, "とうきょう")
			if got.Kind != tc.wantKind {
				t.Fatalf("expected kind %s, got %s", tc.wantKind, got.Kind)
			}
			if got.Status != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, got.Status)
			}
			if got.Message != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, got.Message)
			}
			if !errors.Is(got, tc.err) {
				t.Fatalf("expected cause to be preserved")
			}
		})
	}
}

func TestClassifyKeepsExistingError(t *testing.T) {
	orig := &Error{Kind: KindGeolocation, Message: "location unavailable"}
	if got := Classify(fmt.Errorf("wrapped: %w", orig), "x"); got != orig {
		t.Fatalf("expected the original *Error, got %#v", got)
	}
	if Classify(nil, "x") != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestNotFoundMessageEchoesInput(t *testing.T) {
	msg := StatusMessage(http.StatusNotFound, "Atlantis")
	if !strings.Contains(msg, `"Atlantis"`) {
		t.Fatalf("expected message to contain the entered name, got %q", msg)
	}
}
