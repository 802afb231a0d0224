package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zafiri/staff-portal/internal/core/ports"
)

// RosterHandler exposes the user list/stats view and its inline edit and
// delete actions.
type RosterHandler struct {
	service ports.RosterService
}

func NewRosterHandler(service ports.RosterService) *RosterHandler {
	return &RosterHandler{service: service}
}

// List returns the session's user collection.
//
// @Summary      List directory users
// @Tags         roster
// @Produce      json
// @Param        refresh  query     bool  false  "Force a re-fetch from the backend"
// @Success      200      {object}  usersResponse
// @Failure      502      {object}  errorResponse
// @Router       /portal/users [get]
func (h *RosterHandler) List(c echo.Context) error {
	sessionID, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	if c.QueryParam("refresh") == "true" {
		fetched, err := h.service.Refresh(c.Request().Context(), sessionID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, usersResponse{Users: fetched, Total: len(fetched)})
	}

	fetched, err := h.service.Users(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResponse{Users: fetched, Total: len(fetched)})
}

// Stats returns the per-department user counts.
//
// @Summary      User counts per department
// @Tags         roster
// @Produce      json
// @Success      200  {object}  statsResponse
// @Failure      502  {object}  errorResponse
// @Router       /portal/users/stats [get]
func (h *RosterHandler) Stats(c echo.Context) error {
	sessionID, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	counts, err := h.service.Stats(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	return c.JSON(http.StatusOK, statsResponse{Departments: counts, Total: total})
}

// StartEdit opens the inline edit form for one row, cancelling any other
// edit in progress.
//
// @Summary      Start inline edit of a user row
// @Tags         roster
// @Produce      json
// @Param        id  path      string  true  "User id"
// @Success      200 {object}  editFormResponse
// @Failure      404 {object}  errorResponse
// @Failure      409 {object}  errorResponse
// @Router       /portal/users/{id}/edit [post]
func (h *RosterHandler) StartEdit(c echo.Context) error {
	sessionID, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	form, err := h.service.StartEdit(c.Request().Context(), sessionID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, editFormResponse{
		ID: c.Param("id"),
		Form: editFormFields{
			Username:   form.Username,
			FirstName:  form.FirstName,
			LastName:   form.LastName,
			Email:      form.Email,
			Department: form.Department,
		},
	})
}

// CancelEdit drops the current edit cursor.
//
// @Summary      Cancel the in-progress inline edit
// @Tags         roster
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  errorResponse
// @Router       /portal/users/edit/cancel [post]
func (h *RosterHandler) CancelEdit(c echo.Context) error {
	sessionID, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.service.CancelEdit(c.Request().Context(), sessionID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "cancelled"})
}

// SaveEdit persists the row under edit, sending only changed fields.
//
// @Summary      Save the in-progress inline edit
// @Tags         roster
// @Accept       json
// @Produce      json
// @Param        body  body      saveEditRequest  true  "Edited fields"
// @Success      200   {object}  domain.UserRecord
// @Failure      409   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /portal/users/edit/save [post]
func (h *RosterHandler) SaveEdit(c echo.Context) error {
	sessionID, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req saveEditRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.service.SaveEdit(c.Request().Context(), sessionID, ports.EditForm{
		Username:   req.Username,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Department: req.Department,
		Password:   req.Password,
	}, req.ChangePassword)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a user after explicit confirmation (?confirm=true).
//
// @Summary      Delete a user
// @Tags         roster
// @Produce      json
// @Param        id       path      string  true  "User id"
// @Param        confirm  query     bool    true  "Must be true"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      502      {object}  errorResponse
// @Router       /portal/users/{id} [delete]
func (h *RosterHandler) Delete(c echo.Context) error {
	sessionID, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	confirmed := c.QueryParam("confirm") == "true"
	if err := h.service.Delete(c.Request().Context(), sessionID, c.Param("id"), confirmed); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
