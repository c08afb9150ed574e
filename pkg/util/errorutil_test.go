package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromStatusClassification(t *testing.T) {
	cases := []struct {
		status int
		code   string
	}{
		{http.StatusNotFound, CodeNotFound},
		{http.StatusBadRequest, CodeValidation},
		{http.StatusUnprocessableEntity, CodeValidation},
		{http.StatusInternalServerError, CodeTransport},
		{http.StatusBadGateway, CodeTransport},
		{http.StatusTeapot, CodeTransport},
	}
	for _, tc := range cases {
		err := FromStatus(tc.status, "ticket", "")
		clientErr := ToClientError(err)
		if clientErr.Code != tc.code {
			t.Errorf("status %d: got code %s, want %s", tc.status, clientErr.Code, tc.code)
		}
		if tc.status != http.StatusNotFound && clientErr.HTTPStatus != tc.status {
			t.Errorf("status %d: HTTPStatus not carried, got %d", tc.status, clientErr.HTTPStatus)
		}
	}
}

func TestFromStatusCarriesBodyOpaquely(t *testing.T) {
	err := FromStatus(http.StatusUnprocessableEntity, "ticket", `{"detail":"subject required"}`)
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	clientErr := ToClientError(err)
	want := `ticket rejected: {"detail":"subject required"}`
	if clientErr.Message != want {
		t.Errorf("got message %q, want %q", clientErr.Message, want)
	}
}

func TestToClientErrorWrapsGenericErrors(t *testing.T) {
	cause := errors.New("connection refused")
	clientErr := ToClientError(fmt.Errorf("dial: %w", cause))
	if clientErr.Code != CodeTransport {
		t.Errorf("got code %s, want %s", clientErr.Code, CodeTransport)
	}
	if !errors.Is(clientErr, cause) {
		t.Error("cause lost through conversion")
	}
}

func TestToClientErrorNil(t *testing.T) {
	if got := ToClientError(nil); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestPredicatesUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("fetching: %w", NewNotFound("ticket"))
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should see through wrapping")
	}
	if IsValidation(wrapped) || IsTransport(wrapped) {
		t.Error("wrong predicate matched")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("plain error misclassified")
	}
}

func TestTransportErrorUnwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := NewTransportError("tickets request failed", 0, cause)
	if !errors.Is(err, cause) {
		t.Error("Unwrap should expose the cause")
	}
	if !IsTransport(err) {
		t.Error("expected transport code")
	}
}
