package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationErrorSet_SortedMessage(t *testing.T) {
	ves := ValidationErrorSet{
		"username": "Username is required",
		"email":    "Valid company email is required (@zafiri.go.tz)",
	}
	want := "email: Valid company email is required (@zafiri.go.tz); username: Username is required"
	if got := ves.Error(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAsValidation(t *testing.T) {
	ves := ValidationErrorSet{"username": "Username is required"}

	got, ok := AsValidation(fmt.Errorf("register: %w", error(ves)))
	if !ok || got["username"] != "Username is required" {
		t.Fatalf("wrapped set not recovered: %v %v", got, ok)
	}
	if _, ok := AsValidation(errors.New("plain")); ok {
		t.Fatalf("plain error must not match")
	}
}

func TestDirectoryError_MessageIsError(t *testing.T) {
	err := &DirectoryError{StatusCode: 502, Message: "Server Error: Gateway Timeout"}
	if err.Error() != "Server Error: Gateway Timeout" {
		t.Fatalf("got %q", err.Error())
	}
}

func TestAuthRecord_UsernameNilSafe(t *testing.T) {
	var rec *AuthRecord
	if rec.Username() != "" {
		t.Fatalf("nil record must yield empty username")
	}
	if (&AuthRecord{}).Username() != "" {
		t.Fatalf("record without user must yield empty username")
	}
	rec = &AuthRecord{User: &AuthUser{Username: "amina"}}
	if rec.Username() != "amina" {
		t.Fatalf("got %q", rec.Username())
	}
}

func TestUserRecord_FullName(t *testing.T) {
	cases := []struct {
		first, last, username, want string
	}{
		{"Amina", "Said", "amina", "Amina Said"},
		{"Amina", "", "amina", "Amina"},
		{"", "Said", "amina", "Said"},
		{"", "", "amina", "amina"},
	}
	for _, tc := range cases {
		u := UserRecord{FirstName: tc.first, LastName: tc.last, Username: tc.username}
		if got := u.FullName(); got != tc.want {
			t.Fatalf("FullName(%q,%q,%q) = %q, want %q", tc.first, tc.last, tc.username, got, tc.want)
		}
	}
}
