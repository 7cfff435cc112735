package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestHTTPCodeMapping(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeTransport, http.StatusBadGateway},
		{ErrCodeSchemaViolation, http.StatusBadGateway},
		{ErrCodeAPITimeout, http.StatusGatewayTimeout},
		{ErrCodeAPIRateLimit, http.StatusTooManyRequests},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := New(tt.code, "x").GetHTTPCode(); got != tt.want {
			t.Errorf("GetHTTPCode(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	appErr := TransportError("/search", cause)

	if !errors.Is(appErr, cause) {
		t.Error("expected wrapped error to match its cause via errors.Is")
	}
	if appErr.Code != ErrCodeTransport {
		t.Errorf("Code = %s, want %s", appErr.Code, ErrCodeTransport)
	}
}

func TestWithDetail(t *testing.T) {
	appErr := SchemaViolationError("/search", "request_info.success", nil)

	if appErr.Details["path"] != "request_info.success" {
		t.Errorf("Details[path] = %v, want request_info.success", appErr.Details["path"])
	}
}
