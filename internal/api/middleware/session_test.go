package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/zafiri/staff-portal/internal/core/domain"
	"github.com/zafiri/staff-portal/internal/core/ports"
)

const testSecret = "test-secret"

type stubAuth struct {
	record *domain.AuthRecord
	role   domain.Role
}

func (s *stubAuth) Login(context.Context, string, string) (*ports.LoginResult, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAuth) Logout(context.Context, string) error { return nil }

func (s *stubAuth) Session(_ context.Context, sessionID string) (*domain.AuthRecord, domain.Role, error) {
	if s.record == nil || sessionID == "" {
		return nil, domain.RoleUser, domain.ErrSessionNotFound
	}
	return s.record, s.role, nil
}

func signedToken(t *testing.T, secret, sid string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sid":      sid,
		"username": "amina",
		"role":     "admin",
		"exp":      exp.Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func runSession(t *testing.T, auth ports.AuthService, decorate func(*http.Request)) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/portal/dashboard", nil)
	decorate(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(testSecret, auth)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, c, handler(c)
}

func TestSession_ValidCookie(t *testing.T) {
	auth := &stubAuth{
		record: &domain.AuthRecord{User: &domain.AuthUser{Username: "amina", IsStaff: true}},
		role:   domain.RoleAdmin,
	}
	token := signedToken(t, testSecret, "sid-1", time.Now().Add(time.Hour))

	_, c, err := runSession(t, auth, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	})
	if err != nil {
		t.Fatalf("expected pass-through, got %v", err)
	}
	if c.Get("session_id") != "sid-1" || c.Get("username") != "amina" || c.Get("role") != "admin" {
		t.Fatalf("context not populated: sid=%v user=%v role=%v", c.Get("session_id"), c.Get("username"), c.Get("role"))
	}
}

func TestSession_BearerHeader(t *testing.T) {
	auth := &stubAuth{
		record: &domain.AuthRecord{User: &domain.AuthUser{Username: "amina"}},
		role:   domain.RoleUser,
	}
	token := signedToken(t, testSecret, "sid-1", time.Now().Add(time.Hour))

	_, _, err := runSession(t, auth, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	if err != nil {
		t.Fatalf("expected pass-through, got %v", err)
	}
}

func TestSession_MissingToken(t *testing.T) {
	_, _, err := runSession(t, &stubAuth{}, func(*http.Request) {})
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestSession_WrongSecret(t *testing.T) {
	token := signedToken(t, "other-secret", "sid-1", time.Now().Add(time.Hour))
	_, _, err := runSession(t, &stubAuth{}, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	})
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestSession_ExpiredToken(t *testing.T) {
	token := signedToken(t, testSecret, "sid-1", time.Now().Add(-time.Minute))
	_, _, err := runSession(t, &stubAuth{}, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	})
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestSession_StoreEntryGone(t *testing.T) {
	// Token is valid but the Redis record expired: treated as logged out.
	token := signedToken(t, testSecret, "sid-1", time.Now().Add(time.Hour))
	_, _, err := runSession(t, &stubAuth{record: nil}, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	})
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func assertHTTPError(t *testing.T, err error, wantStatus int) {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != wantStatus {
		t.Fatalf("status = %d, want %d", httpErr.Code, wantStatus)
	}
}
