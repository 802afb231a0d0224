package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/zafiri/staff-portal/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/portal/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return rec.Code, resp
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"session not found", domain.ErrSessionNotFound, http.StatusUnauthorized, "session expired, please log in again"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"row busy", domain.ErrRowBusy, http.StatusConflict, domain.ErrRowBusy.Error()},
		{"no active edit", domain.ErrNoActiveEdit, http.StatusConflict, domain.ErrNoActiveEdit.Error()},
		{"confirm required", domain.ErrConfirmRequired, http.StatusBadRequest, domain.ErrConfirmRequired.Error()},
		{"backend down", domain.ErrDirectoryUnavailable, http.StatusBadGateway, "Network error. Please check your connection and try again."},
		{"wrapped backend down", fmt.Errorf("list_users: %w", domain.ErrDirectoryUnavailable), http.StatusBadGateway, "Network error. Please check your connection and try again."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := renderError(t, tc.err)
			if status != tc.wantStatus {
				t.Fatalf("status = %d, want %d", status, tc.wantStatus)
			}
			if resp.Error != tc.wantError {
				t.Fatalf("error = %q, want %q", resp.Error, tc.wantError)
			}
		})
	}
}

func TestErrorHandler_DirectoryError(t *testing.T) {
	status, resp := renderError(t, &domain.DirectoryError{StatusCode: 500, Message: "Server Error: Gateway Timeout"})
	if status != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", status)
	}
	if resp.Error != "Server Error: Gateway Timeout" {
		t.Fatalf("error = %q", resp.Error)
	}
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	status, resp := renderError(t, domain.ValidationErrorSet{
		"username": "Username is required",
		"email":    "Valid company email is required (@zafiri.go.tz)",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if resp.Error != "validation failed" {
		t.Fatalf("error = %q", resp.Error)
	}
	if resp.Fields["username"] != "Username is required" {
		t.Fatalf("field messages lost: %v", resp.Fields)
	}
}

func TestErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	status, resp := renderError(t, fmt.Errorf("redis: broken pipe"))
	if status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", status)
	}
	if resp.Error != "internal server error" {
		t.Fatalf("internal details must not leak: %q", resp.Error)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	status, resp := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if status != http.StatusBadRequest || resp.Error != "invalid payload" {
		t.Fatalf("got %d %q", status, resp.Error)
	}
}
