package ports

import (
	"context"

	"github.com/zafiri/staff-portal/internal/core/domain"
)

// CreateUserPayload is the body of a directory create-user call. Field
// names follow the backend's create contract: camelCase names, the full
// gender word, and an ISO yyyy-mm-dd date assembled from the split
// day/month/year inputs.
type CreateUserPayload struct {
	Username         string `json:"username"`
	FirstName        string `json:"firstName"`
	SecondName       string `json:"secondName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Department       string `json:"department"`
	Position         string `json:"position"`
	Phone            string `json:"phone"`
	Gender           string `json:"gender"`
	DateOfBirth      string `json:"dateOfBirth"`
	SecurityQuestion string `json:"securityQuestion"`
	SecurityAnswer   string `json:"securityAnswer"`
	EmployeeNo       string `json:"employeeNo"`
	Password         string `json:"password"`
}

// DirectoryClient wraps all outbound calls to the directory backend.
// Implementations must attach the CSRF token header to every mutating
// request and normalize error bodies per the portal error taxonomy.
type DirectoryClient interface {
	// PrimeCSRF requests the CSRF cookie. Called once before any
	// mutating call; safe to call again at any time.
	PrimeCSRF(ctx context.Context) error

	Login(ctx context.Context, username, password string) (*domain.AuthRecord, error)
	// Logout is best-effort: callers treat a returned error as advisory.
	Logout(ctx context.Context) error

	// ListUsers flattens the backend's array / {results} / {users}
	// response shapes into a single slice.
	ListUsers(ctx context.Context) ([]domain.UserRecord, error)
	CreateUser(ctx context.Context, payload CreateUserPayload) (*domain.UserRecord, error)
	// UpdateUser PATCHes only the supplied fields.
	UpdateUser(ctx context.Context, id string, fields map[string]any) (*domain.UserRecord, error)
	DeleteUser(ctx context.Context, id string) error
}
