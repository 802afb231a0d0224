package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zafiri/staff-portal/internal/core/domain"
)

// DashboardHandler resolves the landing dashboard for the session role.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Get returns the dashboard for the caller's role.
//
// @Summary      Landing dashboard for the current role
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Router       /portal/dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	_, username, err := ctxSession(c)
	if err != nil {
		return err
	}
	role, _ := c.Get("role").(string)

	return c.JSON(http.StatusOK, dashboardResponse{
		Role:      role,
		Username:  username,
		Dashboard: domain.DashboardFor(domain.Role(role)),
	})
}
