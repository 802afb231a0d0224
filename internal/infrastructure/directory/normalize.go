package directory

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/zafiri/staff-portal/internal/core/domain"
)

var titleRe = regexp.MustCompile(`(?is)<title>(.*?)</title>`)

// normalizeError collapses the backend's error body variants into one
// DirectoryError:
//
//	JSON body → detail / error / message field, else "server error (<code>)"
//	HTML body → "Server Error: <page title>", else "Server Error"
func normalizeError(status int, contentType string, body []byte) *domain.DirectoryError {
	if isHTML(contentType, body) {
		msg := "Server Error"
		if m := titleRe.FindSubmatch(body); m != nil {
			if title := strings.TrimSpace(string(m[1])); title != "" {
				msg = "Server Error: " + title
			}
		}
		return &domain.DirectoryError{StatusCode: status, Message: msg}
	}

	var payload struct {
		Detail  string `json:"detail"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, msg := range []string{payload.Detail, payload.Error, payload.Message} {
			if msg != "" {
				return &domain.DirectoryError{StatusCode: status, Message: msg}
			}
		}
	}
	return &domain.DirectoryError{StatusCode: status, Message: fmt.Sprintf("server error (%d)", status)}
}

func isHTML(contentType string, body []byte) bool {
	if strings.Contains(contentType, "text/html") {
		return true
	}
	trimmed := strings.TrimSpace(string(body))
	return strings.HasPrefix(strings.ToLower(trimmed), "<!doctype html")
}

func asDirectoryError(err error, target **domain.DirectoryError) bool {
	return errors.As(err, target)
}

// normalizeUserList flattens the three historical list response shapes
// (bare array, {"results": [...]}, {"users": [...]}) into one slice.
func normalizeUserList(body []byte) ([]domain.UserRecord, error) {
	var items []map[string]any
	if err := json.Unmarshal(body, &items); err == nil {
		return normalizeUsers(items), nil
	}

	var wrapped struct {
		Results []map[string]any `json:"results"`
		Users   []map[string]any `json:"users"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decode user list: %w", err)
	}
	if wrapped.Results != nil {
		return normalizeUsers(wrapped.Results), nil
	}
	return normalizeUsers(wrapped.Users), nil
}

func normalizeUsers(items []map[string]any) []domain.UserRecord {
	users := make([]domain.UserRecord, 0, len(items))
	for _, item := range items {
		users = append(users, normalizeUser(item))
	}
	return users
}

// normalizeUserBody decodes a single-user response, returning nil when
// the body is empty or not an object.
func normalizeUserBody(body []byte) *domain.UserRecord {
	var item map[string]any
	if err := json.Unmarshal(body, &item); err != nil || len(item) == 0 {
		return nil
	}
	rec := normalizeUser(item)
	return &rec
}

// normalizeUser resolves the backend's alternate key spellings into a
// UserRecord. The row identity is id ?? pk ?? username, in that order.
func normalizeUser(item map[string]any) domain.UserRecord {
	rec := domain.UserRecord{
		Username:         stringField(item, "username"),
		FirstName:        stringField(item, "first_name", "firstName"),
		SecondName:       stringField(item, "second_name", "secondName"),
		LastName:         stringField(item, "last_name", "lastName"),
		Email:            stringField(item, "email"),
		Department:       stringField(item, "department"),
		Position:         stringField(item, "position"),
		EmployeeNo:       stringField(item, "employee_no", "employeeNo"),
		Phone:            stringField(item, "phone"),
		Gender:           stringField(item, "gender"),
		DateOfBirth:      stringField(item, "date_of_birth", "dateOfBirth"),
		SecurityQuestion: stringField(item, "security_question", "securityQuestion"),
		SecurityAnswer:   stringField(item, "security_answer", "securityAnswer"),
		RoleHint:         stringField(item, "role", "user_type"),
	}

	rec.ID = stringField(item, "id", "pk")
	if rec.ID == "" {
		rec.ID = rec.Username
	}
	return rec
}

// stringField returns the first present key, stringifying JSON numbers.
func stringField(item map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := item[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}
