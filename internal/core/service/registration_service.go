package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/zafiri/staff-portal/internal/core/domain"
	"github.com/zafiri/staff-portal/internal/core/ports"
)

const (
	defaultEmailSuffix = "@zafiri.go.tz"
	defaultCountryCode = "+255"
	passwordSymbols    = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`
)

// RegistrationService validates registration/edit form submissions and
// relays the resulting payload to the directory backend. All rules run on
// every submit; the first failing rule per field wins.
type RegistrationService struct {
	client      ports.DirectoryClient
	audit       ports.AuditSink
	validate    *validator.Validate
	emailSuffix string
	logger      zerolog.Logger
}

func NewRegistrationService(client ports.DirectoryClient, audit ports.AuditSink, emailSuffix string, logger zerolog.Logger) *RegistrationService {
	if emailSuffix == "" {
		emailSuffix = defaultEmailSuffix
	}

	v := validator.New()
	_ = v.RegisterValidation("strongpwd", strongPassword)
	// Report fields under their json names so validation errors line up
	// with the form field keys.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &RegistrationService{
		client:      client,
		audit:       audit,
		validate:    v,
		emailSuffix: emailSuffix,
		logger:      logger,
	}
}

// formRules mirrors ports.RegistrationForm with the declarative subset of
// the rules. Date of birth, email suffix, and the create-mode password
// requirement are checked by hand in checkForm.
type formRules struct {
	Username         string `json:"username"          validate:"required"`
	FirstName        string `json:"first_name"        validate:"required"`
	SecondName       string `json:"second_name"       validate:"required"`
	LastName         string `json:"last_name"         validate:"required"`
	Gender           string `json:"gender"            validate:"required"`
	Department       string `json:"department"        validate:"required"`
	Position         string `json:"position"          validate:"required"`
	EmployeeNo       string `json:"employee_no"       validate:"required"`
	Phone            string `json:"phone"             validate:"required,min=7"`
	Password         string `json:"password"          validate:"omitempty,strongpwd"`
	ConfirmPassword  string `json:"confirm_password"  validate:"eqfield=Password"`
	SecurityQuestion string `json:"security_question" validate:"required"`
	SecurityAnswer   string `json:"security_answer"   validate:"required"`
	Terms            bool   `json:"terms"             validate:"eq=true"`
	Confirm          bool   `json:"confirm"           validate:"eq=true"`
}

func (s *RegistrationService) Register(ctx context.Context, form ports.RegistrationForm) (*domain.UserRecord, error) {
	normalizeForm(&form)
	if errs := s.checkForm(form, true); len(errs) > 0 {
		return nil, errs
	}

	payload := ports.CreateUserPayload{
		Username:         form.Username,
		FirstName:        form.FirstName,
		SecondName:       form.SecondName,
		LastName:         form.LastName,
		Email:            form.Email,
		Department:       form.Department,
		Position:         form.Position,
		Phone:            form.Phone,
		Gender:           form.Gender,
		DateOfBirth:      isoDate(form.DOBYear, form.DOBMonth, form.DOBDay),
		SecurityQuestion: form.SecurityQuestion,
		SecurityAnswer:   form.SecurityAnswer,
		EmployeeNo:       form.EmployeeNo,
		Password:         form.Password,
	}

	created, err := s.client.CreateUser(ctx, payload)
	if err != nil {
		s.submitAudit(form.Username, "create_user", form.Username, ports.AuditOutcomeFailed, err.Error())
		return nil, err
	}

	s.submitAudit(form.Username, "create_user", form.Username, ports.AuditOutcomeOK, "")
	s.logger.Info().Str("username", form.Username).Str("department", form.Department).Msg("user registered")
	return created, nil
}

func (s *RegistrationService) Update(ctx context.Context, id string, form ports.RegistrationForm) (*domain.UserRecord, error) {
	if id == "" {
		return nil, domain.ErrUserNotFound
	}
	normalizeForm(&form)
	if errs := s.checkForm(form, false); len(errs) > 0 {
		return nil, errs
	}

	// Update contract: snake_case names, single-letter gender code, ISO
	// date, password only when one was entered.
	fields := map[string]any{
		"username":         form.Username,
		"first_name":       form.FirstName,
		"second_name":      form.SecondName,
		"last_name":        form.LastName,
		"email":            form.Email,
		"department":       form.Department,
		"position":         form.Position,
		"phone":            form.Phone,
		"gender":           genderCode(form.Gender),
		"dateOfBirth":      isoDate(form.DOBYear, form.DOBMonth, form.DOBDay),
		"securityQuestion": form.SecurityQuestion,
		"securityAnswer":   form.SecurityAnswer,
		"employeeNo":       form.EmployeeNo,
	}
	if form.Password != "" {
		fields["password"] = form.Password
	}

	updated, err := s.client.UpdateUser(ctx, id, fields)
	if err != nil {
		s.submitAudit(form.Username, "update_user", id, ports.AuditOutcomeFailed, err.Error())
		return nil, err
	}

	s.submitAudit(form.Username, "update_user", id, ports.AuditOutcomeOK, "")
	return updated, nil
}

// checkForm runs every rule and collects the first failure per field.
func (s *RegistrationService) checkForm(form ports.RegistrationForm, requirePassword bool) domain.ValidationErrorSet {
	errs := domain.ValidationErrorSet{}

	rules := formRules{
		Username:         form.Username,
		FirstName:        form.FirstName,
		SecondName:       form.SecondName,
		LastName:         form.LastName,
		Gender:           form.Gender,
		Department:       form.Department,
		Position:         form.Position,
		EmployeeNo:       form.EmployeeNo,
		Phone:            form.Phone,
		Password:         form.Password,
		ConfirmPassword:  form.ConfirmPassword,
		SecurityQuestion: form.SecurityQuestion,
		SecurityAnswer:   form.SecurityAnswer,
		Terms:            form.Terms,
		Confirm:          form.Confirm,
	}

	if err := s.validate.Struct(rules); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			for _, fe := range ve {
				field := fe.Field()
				if _, seen := errs[field]; !seen {
					errs[field] = fieldMessage(fe)
				}
			}
		}
	}

	if requirePassword && form.Password == "" {
		errs["password"] = "Password is required"
	}

	if msg := dobMessage(form.DOBDay, form.DOBMonth, form.DOBYear); msg != "" {
		errs["dob"] = msg
	}

	if _, seen := errs["email"]; !seen {
		if form.Email == "" || !strings.HasSuffix(strings.ToLower(form.Email), s.emailSuffix) {
			errs["email"] = fmt.Sprintf("Valid company email is required (%s)", s.emailSuffix)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "username":
		return "Username is required"
	case "first_name":
		return "First name is required"
	case "second_name":
		return "Second name is required"
	case "last_name":
		return "Last name is required"
	case "gender":
		return "Gender is required"
	case "department":
		return "Department is required"
	case "position":
		return "Job position is required"
	case "employee_no":
		return "Employee number is required"
	case "phone":
		return "Phone is required"
	case "password":
		return "Password must be 8+ chars, include upper, lower, number, symbol"
	case "confirm_password":
		return "Passwords do not match"
	case "security_question":
		return "Security question required"
	case "security_answer":
		return "Security answer required"
	case "terms":
		return "You must accept terms and conditions"
	case "confirm":
		return "You must confirm information is correct"
	default:
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
}

func dobMessage(day, month, year string) string {
	if day == "" || month == "" || year == "" {
		return "Date of birth is required"
	}
	d, errD := strconv.Atoi(day)
	m, errM := strconv.Atoi(month)
	y, errY := strconv.Atoi(year)
	switch {
	case errD != nil || d < 1 || d > 31:
		return "Day must be between 1 and 31"
	case errM != nil || m < 1 || m > 12:
		return "Month must be between 1 and 12"
	case errY != nil || y < 1900 || y > 2090:
		return "Year must be between 1900 and 2090"
	}
	return ""
}

// strongPassword requires length >= 8 with lower, upper, digit, symbol.
func strongPassword(fl validator.FieldLevel) bool {
	pwd := fl.Field().String()
	if len(pwd) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range pwd {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// normalizeForm trims whitespace-only fields and re-applies the country
// code prefix when the user stripped it from the phone.
func normalizeForm(form *ports.RegistrationForm) {
	form.Username = strings.TrimSpace(form.Username)
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.SecondName = strings.TrimSpace(form.SecondName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Department = strings.TrimSpace(form.Department)
	form.Position = strings.TrimSpace(form.Position)
	form.EmployeeNo = strings.TrimSpace(form.EmployeeNo)
	form.Email = strings.TrimSpace(form.Email)
	form.SecurityQuestion = strings.TrimSpace(form.SecurityQuestion)
	form.SecurityAnswer = strings.TrimSpace(form.SecurityAnswer)
	if form.CountryCode == "" {
		form.CountryCode = defaultCountryCode
	}
	form.Phone = NormalizePhone(form.CountryCode, form.Phone)
}

// NormalizePhone prefixes number with code unless it already carries it.
// A leading "+" or single leading zero on the local part is dropped.
func NormalizePhone(code, number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return ""
	}
	if strings.HasPrefix(number, code) {
		return number
	}
	number = strings.TrimPrefix(number, "+")
	number = strings.TrimPrefix(number, "0")
	return code + number
}

func genderCode(gender string) string {
	if gender == "" {
		return ""
	}
	return strings.ToUpper(gender[:1])
}

func isoDate(year, month, day string) string {
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	return fmt.Sprintf("%s-%02d-%02d", year, m, d)
}

func (s *RegistrationService) submitAudit(actor, action, target, outcome, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Submit(ports.AuditEntry{
		Actor:   actor,
		Action:  action,
		Target:  target,
		Outcome: outcome,
		Detail:  detail,
		At:      time.Now().UTC(),
	})
}
