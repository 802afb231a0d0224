package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxSession extracts the identity injected by the Session middleware and
// fast-fails before any service call: a populated session_id proves the
// middleware ran.
func ctxSession(c echo.Context) (sessionID, username string, err error) {
	sessionID, _ = c.Get("session_id").(string)
	if sessionID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	username, _ = c.Get("username").(string)
	return sessionID, username, nil
}
