package handler

import (
	"github.com/zafiri/staff-portal/internal/core/domain"
)

// errorResponse documents the error envelope in the swagger annotations;
// the actual rendering happens in the central error handler.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token          string           `json:"token"`
	Role           string           `json:"role"`
	Username       string           `json:"username,omitempty"`
	WelcomeMessage string           `json:"welcome_message,omitempty"`
	Dashboard      domain.Dashboard `json:"dashboard"`
}

// --- Dashboard ---

type dashboardResponse struct {
	Role      string           `json:"role"`
	Username  string           `json:"username,omitempty"`
	Dashboard domain.Dashboard `json:"dashboard"`
}

// --- Roster ---

type usersResponse struct {
	Users []domain.UserRecord `json:"users"`
	Total int                 `json:"total"`
}

type statsResponse struct {
	Departments map[string]int `json:"departments"`
	Total       int            `json:"total"`
}

type editFormResponse struct {
	ID   string         `json:"id"`
	Form editFormFields `json:"form"`
}

type editFormFields struct {
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type saveEditRequest struct {
	Username       string `json:"username"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Department     string `json:"department"`
	Password       string `json:"password,omitempty"`
	ChangePassword bool   `json:"change_password"`
}
