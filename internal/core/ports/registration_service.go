package ports

import (
	"context"

	"github.com/zafiri/staff-portal/internal/core/domain"
)

// RegistrationForm carries one submission of the registration/edit form.
// Date of birth arrives as the three raw inputs; the phone is normalized
// against CountryCode before validation.
type RegistrationForm struct {
	Username         string `json:"username"`
	FirstName        string `json:"first_name"`
	SecondName       string `json:"second_name"`
	LastName         string `json:"last_name"`
	DOBDay           string `json:"dob_day"`
	DOBMonth         string `json:"dob_month"`
	DOBYear          string `json:"dob_year"`
	Gender           string `json:"gender"`
	Department       string `json:"department"`
	EmployeeNo       string `json:"employee_no"`
	Position         string `json:"position"`
	Email            string `json:"email"`
	CountryCode      string `json:"country_code"`
	Phone            string `json:"phone"`
	Password         string `json:"password"`
	ConfirmPassword  string `json:"confirm_password"`
	SecurityQuestion string `json:"security_question"`
	SecurityAnswer   string `json:"security_answer"`
	Terms            bool   `json:"terms"`
	Confirm          bool   `json:"confirm"`
}

// RegistrationService validates form submissions and relays them to the
// directory backend. Validation failures come back as a
// domain.ValidationErrorSet.
type RegistrationService interface {
	// Register creates a new user (create payload shape).
	Register(ctx context.Context, form RegistrationForm) (*domain.UserRecord, error)
	// Update edits an existing user (update payload shape: single-letter
	// gender code, ISO date, password only when set). The target id is
	// resolved upstream as id ?? pk ?? username.
	Update(ctx context.Context, id string, form RegistrationForm) (*domain.UserRecord, error)
}
