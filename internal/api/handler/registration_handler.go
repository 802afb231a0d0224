package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zafiri/staff-portal/internal/core/ports"
)

// RegistrationHandler exposes the create/edit user form endpoints.
type RegistrationHandler struct {
	service ports.RegistrationService
}

func NewRegistrationHandler(service ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

// Register validates a registration form and creates the user in the
// directory backend.
//
// @Summary      Register a new employee
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      ports.RegistrationForm  true  "Registration form"
// @Success      201   {object}  domain.UserRecord
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /portal/register [post]
func (h *RegistrationHandler) Register(c echo.Context) error {
	var form ports.RegistrationForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	created, err := h.service.Register(c.Request().Context(), form)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update validates the form in edit mode and PATCHes the target user.
//
// @Summary      Update an employee via the edit form
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "User id (id, pk, or username)"
// @Param        body  body      ports.RegistrationForm  true  "Edit form"
// @Success      200   {object}  domain.UserRecord
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /portal/users/{id} [patch]
func (h *RegistrationHandler) Update(c echo.Context) error {
	var form ports.RegistrationForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.service.Update(c.Request().Context(), c.Param("id"), form)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}
