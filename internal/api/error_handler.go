package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/zafiri/staff-portal/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
// Fields is only populated for form validation failures.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Relays normalized directory backend errors with their message.
//   - Logs unexpected errors internally without leaking details.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Form validation failures keep the per-field messages.
	if fields, ok := domain.AsValidation(err); ok {
		return http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields}
	}

	// Directory backend rejections surface their normalized message.
	var derr *domain.DirectoryError
	if errors.As(err, &derr) {
		return http.StatusBadGateway, errorResponse{Error: derr.Message}
	}

	switch {
	case errors.Is(err, domain.ErrDirectoryUnavailable):
		return http.StatusBadGateway, errorResponse{Error: domain.ErrDirectoryUnavailable.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, errorResponse{Error: "session expired, please log in again"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "user not found"}
	case errors.Is(err, domain.ErrRowBusy):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrNoActiveEdit):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrConfirmRequired):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
