package ports

import (
	"context"

	"github.com/zafiri/staff-portal/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	// SessionID keys the stored auth record.
	SessionID string
	// Token is the signed portal session token handed to the client.
	Token string
	Role  domain.Role
	// WelcomeMessage is shown once after a fresh login, when the
	// backend supplied one.
	WelcomeMessage string
	Record         *domain.AuthRecord
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Logout clears the session even when the backend call fails.
	Logout(ctx context.Context, sessionID string) error
	// Session loads the stored record and its derived role.
	// Returns domain.ErrSessionNotFound for absent or corrupt sessions.
	Session(ctx context.Context, sessionID string) (*domain.AuthRecord, domain.Role, error)
}
