package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zafiri/staff-portal/internal/api/middleware"
	"github.com/zafiri/staff-portal/internal/core/domain"
	"github.com/zafiri/staff-portal/internal/core/ports"
)

// AuthHandler exposes the portal login/logout endpoints.
type AuthHandler struct {
	authService ports.AuthService
	cookieTTL   time.Duration
}

func NewAuthHandler(authService ports.AuthService, cookieTTL time.Duration) *AuthHandler {
	if cookieTTL <= 0 {
		cookieTTL = 12 * time.Hour
	}
	return &AuthHandler{authService: authService, cookieTTL: cookieTTL}
}

// Login authenticates against the directory backend and opens a portal
// session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /portal/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    result.Token,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, loginResponse{
		Token:          result.Token,
		Role:           string(result.Role),
		Username:       result.Record.Username(),
		WelcomeMessage: result.WelcomeMessage,
		Dashboard:      domain.DashboardFor(result.Role),
	})
}

// Logout closes the portal session. The backend logout is best-effort;
// the local session is cleared regardless.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  errorResponse
// @Router       /portal/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sessionID, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), sessionID); err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}
