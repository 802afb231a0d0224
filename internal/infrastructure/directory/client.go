// Package directory wraps all outbound HTTP calls to the institutional
// directory backend. The backend is treated as an opaque HTTP/JSON
// service: this package owns the CSRF cookie/header dance, normalizes its
// assorted error bodies into one error shape, and flattens its user list
// response variants into a single slice.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/zafiri/staff-portal/internal/api/metrics"
	"github.com/zafiri/staff-portal/internal/core/domain"
	"github.com/zafiri/staff-portal/internal/core/ports"
)

const (
	csrfCookieName  = "csrftoken"
	csrfHeaderName  = "X-CSRFToken"
	defaultTimeout  = 15 * time.Second
	loginFallback   = "Login failed"
	genericFallback = "Request failed"
)

// Config captures the settings for the directory backend connection.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the HTTP adapter for the directory backend. The cookie jar is
// shared across calls so the CSRF cookie primed at startup is replayed on
// every mutating request.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger zerolog.Logger
}

var _ ports.DirectoryClient = (*Client)(nil)

func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse directory base url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		base:   base,
		http:   &http.Client{Jar: jar, Timeout: timeout},
		logger: logger,
	}, nil
}

// PrimeCSRF asks the backend to set the csrftoken cookie. Called once at
// startup before any mutating call; safe to repeat.
func (c *Client) PrimeCSRF(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/get-csrf-token/", nil, "csrf")
	return err
}

func (c *Client) Login(ctx context.Context, username, password string) (*domain.AuthRecord, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/login/", map[string]string{
		"username": username,
		"password": password,
	}, "login")
	if err != nil {
		return nil, loginError(err)
	}

	var rec domain.AuthRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, &domain.DirectoryError{StatusCode: http.StatusOK, Message: loginFallback}
	}
	return &rec, nil
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/api/logout/", nil, "logout")
	return err
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.UserRecord, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/users/", nil, "list_users")
	if err != nil {
		return nil, err
	}
	return normalizeUserList(body)
}

func (c *Client) CreateUser(ctx context.Context, payload ports.CreateUserPayload) (*domain.UserRecord, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/create-user/", payload, "create_user")
	if err != nil {
		return nil, err
	}
	if rec := normalizeUserBody(body); rec != nil {
		return rec, nil
	}
	// Some backend versions return an empty body on create.
	rec := domain.UserRecord{
		ID:         payload.Username,
		Username:   payload.Username,
		FirstName:  payload.FirstName,
		SecondName: payload.SecondName,
		LastName:   payload.LastName,
		Email:      payload.Email,
		Department: payload.Department,
		Position:   payload.Position,
		EmployeeNo: payload.EmployeeNo,
		Phone:      payload.Phone,
		Gender:     payload.Gender,
	}
	return &rec, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, fields map[string]any) (*domain.UserRecord, error) {
	body, err := c.do(ctx, http.MethodPatch, "/api/users/"+url.PathEscape(id)+"/", fields, "update_user")
	if err != nil {
		return nil, err
	}
	return normalizeUserBody(body), nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id)+"/", nil, "delete_user")
	return err
}

// do performs one backend call. Mutating methods carry the CSRF header;
// non-2xx responses come back as a normalized *domain.DirectoryError and
// transport failures wrap domain.ErrDirectoryUnavailable.
func (c *Client) do(ctx context.Context, method, path string, payload any, operation string) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", operation, err)
		}
		reqBody = bytes.NewReader(raw)
	}

	target := c.base.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", operation, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet && method != http.MethodHead {
		if token := c.csrfToken(); token != "" {
			req.Header.Set(csrfHeaderName, token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.DirectoryRequestDuration.WithLabelValues(operation, "network_error").Observe(time.Since(start).Seconds())
		c.logger.Warn().Err(err).Str("operation", operation).Msg("directory request failed")
		return nil, fmt.Errorf("%s: %w", operation, domain.ErrDirectoryUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.DirectoryRequestDuration.WithLabelValues(operation, "network_error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%s: %w", operation, domain.ErrDirectoryUnavailable)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.DirectoryRequestDuration.WithLabelValues(operation, "http_error").Observe(time.Since(start).Seconds())
		derr := normalizeError(resp.StatusCode, resp.Header.Get("Content-Type"), body)
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("operation", operation).
			Str("message", derr.Message).
			Msg("directory request rejected")
		return nil, derr
	}

	metrics.DirectoryRequestDuration.WithLabelValues(operation, "ok").Observe(time.Since(start).Seconds())
	return body, nil
}

// csrfToken reads the csrftoken cookie currently held for the backend.
func (c *Client) csrfToken() string {
	for _, cookie := range c.http.Jar.Cookies(c.base) {
		if cookie.Name == csrfCookieName {
			return cookie.Value
		}
	}
	return ""
}

// loginError swaps the generic fallback for the login-specific one.
func loginError(err error) error {
	var derr *domain.DirectoryError
	if asDirectoryError(err, &derr) && derr.Message == fmt.Sprintf("server error (%d)", derr.StatusCode) {
		return &domain.DirectoryError{StatusCode: derr.StatusCode, Message: loginFallback}
	}
	return err
}
