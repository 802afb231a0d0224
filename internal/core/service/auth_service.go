package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/zafiri/staff-portal/internal/api/metrics"
	"github.com/zafiri/staff-portal/internal/core/domain"
	"github.com/zafiri/staff-portal/internal/core/ports"
)

// AuthService implements the portal login/logout flow: it relays
// credentials to the directory backend, owns the stored auth record, and
// issues the signed portal session token.
type AuthService struct {
	client    ports.DirectoryClient
	sessions  ports.SessionRepository
	audit     ports.AuditSink
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(client ports.DirectoryClient, sessions ports.SessionRepository, audit ports.AuditSink, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &AuthService{
		client:    client,
		sessions:  sessions,
		audit:     audit,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	rec, err := s.client.Login(ctx, username, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failed").Inc()
		s.submitAudit(username, "login", "", ports.AuditOutcomeFailed, err.Error())
		return nil, err
	}

	sessionID := newSessionID()
	if err := s.sessions.Save(ctx, sessionID, rec); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	role := domain.ResolveRole(rec)
	token, err := s.signToken(sessionID, username, role)
	if err != nil {
		_ = s.sessions.Clear(ctx, sessionID)
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	s.submitAudit(username, "login", "", ports.AuditOutcomeOK, "")
	s.logger.Info().Str("username", username).Str("role", string(role)).Msg("login succeeded")

	return &ports.LoginResult{
		SessionID:      sessionID,
		Token:          token,
		Role:           role,
		WelcomeMessage: rec.WelcomeMessage,
		Record:         rec,
	}, nil
}

// Logout clears the stored session. The backend logout call is
// best-effort: a failure is logged and the local clear still happens.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	rec, _ := s.sessions.Load(ctx, sessionID)

	if err := s.client.Logout(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("backend logout failed, clearing session anyway")
	}

	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.submitAudit(rec.Username(), "logout", "", ports.AuditOutcomeOK, "")
	return nil
}

func (s *AuthService) Session(ctx context.Context, sessionID string) (*domain.AuthRecord, domain.Role, error) {
	if sessionID == "" {
		return nil, domain.RoleUser, domain.ErrSessionNotFound
	}
	rec, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, domain.RoleUser, fmt.Errorf("load session: %w", err)
	}
	if rec == nil {
		return nil, domain.RoleUser, domain.ErrSessionNotFound
	}
	return rec, domain.ResolveRole(rec), nil
}

func (s *AuthService) signToken(sessionID, username string, role domain.Role) (string, error) {
	claims := jwt.MapClaims{
		"sid":      sessionID,
		"username": username,
		"role":     string(role),
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) submitAudit(actor, action, target, outcome, detail string) {
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

// newSessionID returns a 128-bit random hex ID.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// fallback: time-based, still unique enough for a single node
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
