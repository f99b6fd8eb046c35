package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrap_PreservesExistingAppErrorCode(t *testing.T) {
	orig := New(CodeRateLimit, WithContext("trade-place-order"))

	wrapped := Wrap(fmt.Errorf("call failed: %w", orig), CodeInternalError, "outer")
	if wrapped.Code != CodeRateLimit {
		t.Fatalf("Wrap changed code: got %s, want %s", wrapped.Code, CodeRateLimit)
	}
}

func TestWrap_PlainErrorBecomesAppError(t *testing.T) {
	wrapped := Wrap(errors.New("boom"), CodeTransport, "http")
	if wrapped.Code != CodeTransport {
		t.Fatalf("got code %s, want %s", wrapped.Code, CodeTransport)
	}
	if wrapped.Context != "http" {
		t.Fatalf("got context %q, want %q", wrapped.Context, "http")
	}
	if !errors.Is(wrapped, wrapped) {
		t.Fatal("wrapped error does not match itself via errors.Is")
	}
}

func TestWrap_NilReturnsNil(t *testing.T) {
	if got := Wrap(nil, CodeInternalError, "x"); got != nil {
		t.Fatalf("Wrap(nil) = %v, want nil", got)
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(CodeNotConnected)); got != CodeNotConnected {
		t.Fatalf("got %s, want %s", got, CodeNotConnected)
	}
	if got := GetCode(errors.New("plain")); got != CodeUnknownError {
		t.Fatalf("plain error: got %s, want %s", got, CodeUnknownError)
	}
}

func TestUnwrap_ReachesCause(t *testing.T) {
	cause := errors.New("socket reset")
	err := New(CodeTransport, WithCause(cause), WithContext("rest"))
	if !errors.Is(err, cause) {
		t.Fatal("errors.Is did not reach the wrapped cause")
	}
}

func TestIs_MatchesByCode(t *testing.T) {
	a := New(CodeRemoteError, WithMessage("code 50000"))
	b := New(CodeRemoteError)
	if !errors.Is(a, b) {
		t.Fatal("two AppErrors with the same code should match via errors.Is")
	}
	c := New(CodeDecode)
	if errors.Is(a, c) {
		t.Fatal("AppErrors with different codes must not match")
	}
}
