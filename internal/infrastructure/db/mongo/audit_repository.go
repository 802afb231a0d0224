package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/zafiri/staff-portal/internal/core/ports"
)

const auditCollection = "portal_audit"

// AuditRepository persists portal audit entries in MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	Actor   string `bson:"actor"`
	Action  string `bson:"action"`
	Target  string `bson:"target,omitempty"`
	Outcome string `bson:"outcome"`
	Detail  string `bson:"detail,omitempty"`
	At      int64  `bson:"at"`
}

func (r *AuditRepository) Record(ctx context.Context, entry ports.AuditEntry) error {
	at := entry.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	doc := auditDoc{
		Actor:   entry.Actor,
		Action:  entry.Action,
		Target:  entry.Target,
		Outcome: entry.Outcome,
		Detail:  entry.Detail,
		At:      at.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
