package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      New(CodeConflict, "slot already reserved", http.StatusConflict),
			expected: "CONFLICT: slot already reserved",
		},
		{
			name:     "with cause",
			err:      Wrap(fmt.Errorf("connection refused"), CodeInternal, "failed to load reservations", http.StatusInternalServerError),
			expected: "INTERNAL_ERROR: failed to load reservations (caused by: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("no documents in result")
	err := Internal("failed to find equipment", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the wrapped cause")
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("expected errors.As to match *AppError")
	}
	if appErr.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, appErr.Code)
	}
}

func TestConstructors_StatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NotFound("Reservation"), CodeNotFound, http.StatusNotFound},
		{"not found with id", NotFoundWithID("Reservation", "abc123"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("invalid reservation", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("id cannot be empty"), CodeInvalidInput, http.StatusBadRequest},
		{"conflict", Conflict("slot already reserved"), CodeConflict, http.StatusConflict},
		{"unauthorized", Unauthorized("missing principal"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("stage requires prior approval"), CodeForbidden, http.StatusForbidden},
		{"internal", Internal("write failed", fmt.Errorf("x")), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("store timed out"), CodeTimeout, http.StatusGatewayTimeout},
		{"unavailable", Unavailable("marketing service"), CodeUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.StatusCode() != tt.status {
				t.Errorf("status = %d, want %d", tt.err.StatusCode(), tt.status)
			}
		})
	}
}

func TestNotFoundWithID_Details(t *testing.T) {
	err := NotFoundWithID("MarketingRequest", "507f1f77bcf86cd799439011")

	if err.Details["resource"] != "MarketingRequest" {
		t.Errorf("details resource = %v", err.Details["resource"])
	}
	if err.Details["id"] != "507f1f77bcf86cd799439011" {
		t.Errorf("details id = %v", err.Details["id"])
	}
}

func TestAppError_ToJSON(t *testing.T) {
	err := Validation("time outside declared period", map[string]any{
		"period": "matutino",
		"time":   "14:00",
	})

	var decoded ErrorResponse
	if jsonErr := json.Unmarshal(err.ToJSON(), &decoded); jsonErr != nil {
		t.Fatalf("ToJSON produced invalid JSON: %v", jsonErr)
	}
	if decoded.Code != CodeValidation {
		t.Errorf("decoded code = %s", decoded.Code)
	}
	if decoded.Details["time"] != "14:00" {
		t.Errorf("decoded details time = %v", decoded.Details["time"])
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Conflict("slot already reserved")
	if got := AsAppError(appErr); got != appErr {
		t.Error("expected the same *AppError back")
	}

	plain := fmt.Errorf("some mongo failure")
	wrapped := AsAppError(plain)
	if wrapped.Code != CodeInternal {
		t.Errorf("expected plain errors to become internal, got %s", wrapped.Code)
	}
	if !errors.Is(wrapped, plain) {
		t.Error("expected the plain error to be preserved as cause")
	}
}
