package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/zafiri/staff-portal/internal/core/domain"
)

const (
	sessionKeyPrefix  = "portal:session:"
	defaultSessionTTL = 12 * time.Hour
)

// SessionRepository stores serialized auth records in Redis, one key per
// portal session. A value that no longer parses as JSON is treated as an
// absent session and deleted, forcing a fresh login.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewSessionRepository(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *SessionRepository {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionRepository{client: client, ttl: ttl, logger: logger}
}

func (r *SessionRepository) Save(ctx context.Context, sessionID string, rec *domain.AuthRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, r.key(sessionID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Load returns (nil, nil) for a missing session. A stored value that
// fails to deserialize is cleared and likewise reported as missing.
func (r *SessionRepository) Load(ctx context.Context, sessionID string) (*domain.AuthRecord, error) {
	raw, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var rec domain.AuthRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		r.logger.Warn().Str("session_id", sessionID).Msg("discarding corrupt session record")
		_ = r.client.Del(ctx, r.key(sessionID)).Err()
		return nil, nil
	}
	return &rec, nil
}

func (r *SessionRepository) Clear(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (r *SessionRepository) key(sessionID string) string {
	return sessionKeyPrefix + sessionID
}
