package domain

// AuthUser is the nested user object of a directory login response.
type AuthUser struct {
	Username    string `json:"username,omitempty"`
	Role        string `json:"role,omitempty"`
	UserType    string `json:"user_type,omitempty"`
	IsSuperuser bool   `json:"is_superuser,omitempty"`
	IsStaff     bool   `json:"is_staff,omitempty"`
}

// AuthRecord is the portal-side representation of a logged-in session,
// built from the directory backend's login response. It is owned by the
// session repository for the lifetime of the session and destroyed on
// logout or on failed deserialization.
type AuthRecord struct {
	Token          string    `json:"token,omitempty"`
	User           *AuthUser `json:"user,omitempty"`
	Role           string    `json:"role,omitempty"`
	UserType       string    `json:"user_type,omitempty"`
	IsAdmin        bool      `json:"is_admin,omitempty"`
	WelcomeMessage string    `json:"welcome_message,omitempty"`
}

// Username returns the nested username, or "" when absent.
func (r *AuthRecord) Username() string {
	if r == nil || r.User == nil {
		return ""
	}
	return r.User.Username
}

// UserRecord is a normalized directory user. The backend emits several
// key spellings (first_name vs firstName, id vs pk); the directory client
// collapses them into this single shape. ID falls back to pk and then
// username when the backend omits a numeric id.
type UserRecord struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	FirstName        string `json:"first_name"`
	SecondName       string `json:"second_name,omitempty"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Department       string `json:"department"`
	Position         string `json:"position"`
	EmployeeNo       string `json:"employee_no,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Gender           string `json:"gender,omitempty"`
	DateOfBirth      string `json:"date_of_birth,omitempty"`
	SecurityQuestion string `json:"security_question,omitempty"`
	SecurityAnswer   string `json:"security_answer,omitempty"`
	RoleHint         string `json:"role,omitempty"`
}

// FullName joins the name parts, falling back to the username when both
// are blank.
func (u UserRecord) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}
