package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/zafiri/staff-portal/internal/core/domain"
	"github.com/zafiri/staff-portal/internal/core/ports"
)

func validForm() ports.RegistrationForm {
	return ports.RegistrationForm{
		Username:         "juma.hassan",
		FirstName:        "Juma",
		SecondName:       "Ali",
		LastName:         "Hassan",
		DOBDay:           "14",
		DOBMonth:         "6",
		DOBYear:          "1990",
		Gender:           "Male",
		Department:       "ICT",
		EmployeeNo:       "ZF-0042",
		Position:         "Engineer",
		Email:            "juma.hassan@zafiri.go.tz",
		CountryCode:      "+255",
		Phone:            "0712345678",
		Password:         "Abcdef1!",
		ConfirmPassword:  "Abcdef1!",
		SecurityQuestion: "First school?",
		SecurityAnswer:   "Mnazi Mmoja",
		Terms:            true,
		Confirm:          true,
	}
}

func newRegistrationService(client ports.DirectoryClient) *RegistrationService {
	return NewRegistrationService(client, nil, "", zerolog.Nop())
}

func fieldError(t *testing.T, err error, field, want string) {
	t.Helper()
	var ve domain.ValidationErrorSet
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if got := ve[field]; got != want {
		t.Fatalf("field %q: got %q, want %q", field, got, want)
	}
}

func TestRegister_CreatePayloadShape(t *testing.T) {
	var captured ports.CreateUserPayload
	dir := &stubDirectory{
		createFn: func(payload ports.CreateUserPayload) (*domain.UserRecord, error) {
			captured = payload
			return &domain.UserRecord{ID: "7", Username: payload.Username}, nil
		},
	}
	svc := newRegistrationService(dir)

	created, err := svc.Register(context.Background(), validForm())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if created.ID != "7" {
		t.Fatalf("unexpected created record: %+v", created)
	}

	// Create contract: full gender word, ISO date, normalized phone.
	if captured.Gender != "Male" {
		t.Fatalf("gender should stay the full word, got %q", captured.Gender)
	}
	if captured.DateOfBirth != "1990-06-14" {
		t.Fatalf("date of birth not ISO: %q", captured.DateOfBirth)
	}
	if captured.Phone != "+255712345678" {
		t.Fatalf("phone not normalized: %q", captured.Phone)
	}
	if captured.Password != "Abcdef1!" {
		t.Fatalf("password missing from create payload")
	}
}

func TestRegister_Idempotent(t *testing.T) {
	var payloads []ports.CreateUserPayload
	dir := &stubDirectory{
		createFn: func(payload ports.CreateUserPayload) (*domain.UserRecord, error) {
			payloads = append(payloads, payload)
			return &domain.UserRecord{ID: "7"}, nil
		},
	}
	svc := newRegistrationService(dir)

	form := validForm()
	if _, err := svc.Register(context.Background(), form); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), form); err != nil {
		t.Fatalf("second submit failed: %v", err)
	}
	if len(payloads) != 2 || !reflect.DeepEqual(payloads[0], payloads[1]) {
		t.Fatalf("re-submitting the same form must produce the identical payload")
	}
}

func TestRegister_PasswordRules(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"all classes present", "Abcdef1!", true},
		{"lowercase only", "abcdefgh", false},
		{"too short", "Abc1!", false},
		{"missing symbol", "Abcdefg1", false},
		{"missing digit", "Abcdefg!", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newRegistrationService(&stubDirectory{})
			form := validForm()
			form.Password = tc.password
			form.ConfirmPassword = tc.password

			_, err := svc.Register(context.Background(), form)
			if tc.wantOK && err != nil {
				t.Fatalf("expected %q to pass, got %v", tc.password, err)
			}
			if !tc.wantOK {
				fieldError(t, err, "password", "Password must be 8+ chars, include upper, lower, number, symbol")
			}
		})
	}
}

func TestRegister_RequiredFields(t *testing.T) {
	svc := newRegistrationService(&stubDirectory{})

	form := validForm()
	form.Username = "   "
	form.Department = ""
	_, err := svc.Register(context.Background(), form)
	fieldError(t, err, "username", "Username is required")
	fieldError(t, err, "department", "Department is required")
}

func TestRegister_PasswordRequiredOnCreate(t *testing.T) {
	svc := newRegistrationService(&stubDirectory{})

	form := validForm()
	form.Password = ""
	form.ConfirmPassword = ""
	_, err := svc.Register(context.Background(), form)
	fieldError(t, err, "password", "Password is required")
}

func TestRegister_PasswordMismatch(t *testing.T) {
	svc := newRegistrationService(&stubDirectory{})

	form := validForm()
	form.ConfirmPassword = "Different1!"
	_, err := svc.Register(context.Background(), form)
	fieldError(t, err, "confirm_password", "Passwords do not match")
}

func TestRegister_EmailSuffix(t *testing.T) {
	svc := newRegistrationService(&stubDirectory{})

	form := validForm()
	form.Email = "juma@gmail.com"
	_, err := svc.Register(context.Background(), form)
	fieldError(t, err, "email", "Valid company email is required (@zafiri.go.tz)")
}

func TestRegister_DateOfBirthRanges(t *testing.T) {
	cases := []struct {
		name             string
		day, month, year string
		want             string
	}{
		{"missing", "", "6", "1990", "Date of birth is required"},
		{"day out of range", "32", "6", "1990", "Day must be between 1 and 31"},
		{"month out of range", "14", "13", "1990", "Month must be between 1 and 12"},
		{"year too early", "14", "6", "1899", "Year must be between 1900 and 2090"},
		{"year too late", "14", "6", "2091", "Year must be between 1900 and 2090"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newRegistrationService(&stubDirectory{})
			form := validForm()
			form.DOBDay, form.DOBMonth, form.DOBYear = tc.day, tc.month, tc.year
			_, err := svc.Register(context.Background(), form)
			fieldError(t, err, "dob", tc.want)
		})
	}
}

func TestRegister_TermsAndConfirm(t *testing.T) {
	svc := newRegistrationService(&stubDirectory{})

	form := validForm()
	form.Terms = false
	form.Confirm = false
	_, err := svc.Register(context.Background(), form)
	fieldError(t, err, "terms", "You must accept terms and conditions")
	fieldError(t, err, "confirm", "You must confirm information is correct")
}

func TestUpdate_PayloadShape(t *testing.T) {
	dir := &stubDirectory{}
	svc := newRegistrationService(dir)

	form := validForm()
	form.Password = ""
	form.ConfirmPassword = ""
	if _, err := svc.Update(context.Background(), "7", form); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	fields := dir.lastUpdate
	// Update contract: single-letter gender code and no password key when
	// none was entered.
	if fields["gender"] != "M" {
		t.Fatalf("gender should be the code, got %v", fields["gender"])
	}
	if fields["dateOfBirth"] != "1990-06-14" {
		t.Fatalf("date of birth not ISO: %v", fields["dateOfBirth"])
	}
	if _, ok := fields["password"]; ok {
		t.Fatalf("empty password must not be sent")
	}
	if fields["first_name"] != "Juma" || fields["last_name"] != "Hassan" {
		t.Fatalf("name fields missing: %v", fields)
	}
}

func TestUpdate_PasswordIncludedWhenSet(t *testing.T) {
	dir := &stubDirectory{}
	svc := newRegistrationService(dir)

	form := validForm()
	if _, err := svc.Update(context.Background(), "7", form); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if dir.lastUpdate["password"] != "Abcdef1!" {
		t.Fatalf("entered password must be sent, got %v", dir.lastUpdate["password"])
	}
}

func TestUpdate_WeakPasswordRejected(t *testing.T) {
	svc := newRegistrationService(&stubDirectory{})

	form := validForm()
	form.Password = "abcdefgh"
	form.ConfirmPassword = "abcdefgh"
	_, err := svc.Update(context.Background(), "7", form)
	fieldError(t, err, "password", "Password must be 8+ chars, include upper, lower, number, symbol")
}

func TestUpdate_MissingID(t *testing.T) {
	svc := newRegistrationService(&stubDirectory{})
	if _, err := svc.Update(context.Background(), "", validForm()); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		code, number, want string
	}{
		{"+255", "0712345678", "+255712345678"},
		{"+255", "+255712345678", "+255712345678"},
		{"+255", "712345678", "+255712345678"},
		{"+255", "+712345678", "+255712345678"},
		{"+44", "07700900123", "+447700900123"},
		{"+255", "", ""},
	}
	for _, tc := range cases {
		if got := NormalizePhone(tc.code, tc.number); got != tc.want {
			t.Fatalf("NormalizePhone(%q, %q) = %q, want %q", tc.code, tc.number, got, tc.want)
		}
	}
}
