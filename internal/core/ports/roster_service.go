package ports

import (
	"context"

	"github.com/zafiri/staff-portal/internal/core/domain"
)

// EditForm is the inline-edit subset of a user row. Password is never
// prefilled from the server; it only travels client → backend.
type EditForm struct {
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Password   string `json:"password,omitempty"`
}

// RosterService manages the per-session user collection: fetch,
// department aggregation, the single inline-edit cursor, and row-level
// save/delete against the directory backend.
type RosterService interface {
	// Users returns the session's collection, fetching it from the
	// backend on first use.
	Users(ctx context.Context, sessionID string) ([]domain.UserRecord, error)
	// Refresh re-fetches the collection, dropping local state.
	Refresh(ctx context.Context, sessionID string) ([]domain.UserRecord, error)
	// Stats counts users per trimmed department; blank → "Unknown".
	Stats(ctx context.Context, sessionID string) (map[string]int, error)

	// StartEdit opens the edit form for one row, implicitly cancelling
	// any other in-progress edit.
	StartEdit(ctx context.Context, sessionID, userID string) (*EditForm, error)
	CancelEdit(ctx context.Context, sessionID string) error
	// SaveEdit diffs the form against the row under edit and PATCHes
	// only the changed fields, plus the password when changePassword is
	// set and the form carries one. The backend response is merged into
	// the local collection.
	SaveEdit(ctx context.Context, sessionID string, form EditForm, changePassword bool) (*domain.UserRecord, error)
	// Delete removes a row. confirmed must be true; on success the row
	// leaves the local collection and a dangling edit cursor is cleared.
	Delete(ctx context.Context, sessionID, userID string, confirmed bool) error
}
