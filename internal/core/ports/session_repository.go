package ports

import (
	"context"

	"github.com/zafiri/staff-portal/internal/core/domain"
)

// SessionRepository persists serialized auth records keyed by portal
// session ID. Implementations must treat an unreadable stored value as an
// absent session: Load returns (nil, nil) and removes the key, so a
// corrupt record forces a fresh login instead of an error loop.
type SessionRepository interface {
	Save(ctx context.Context, sessionID string, rec *domain.AuthRecord) error
	Load(ctx context.Context, sessionID string) (*domain.AuthRecord, error)
	Clear(ctx context.Context, sessionID string) error
}
