package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-service/internal/storage"
)

// RequestMeta carries the request-scoped facts every audited mutation records:
// who acted and from where. ActorEmail is copied into the trail as-is so
// entries stay readable after the account changes.
type RequestMeta struct {
	ActorID    string
	ActorEmail string
	ClientIP   string
	UserAgent  string
}

// AuditService appends entries to the append-only trail. A failed append is
// logged and swallowed: audit completeness never outranks the availability of
// the operation that triggered it.
type AuditService struct {
	store  storage.Store
	logger *zap.Logger
}

func NewAudit(store storage.Store, logger *zap.Logger) *AuditService {
	return &AuditService{store: store, logger: logger}
}

func (a *AuditService) Append(ctx context.Context, action string, meta RequestMeta, details map[string]string) {
	entry := storage.AuditRecord{
		ID:         uuid.NewString(),
		Action:     action,
		ActorID:    meta.ActorID,
		ActorEmail: meta.ActorEmail,
		Details:    details,
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		Timestamp:  time.Now().UTC(),
	}

	if err := a.store.InsertAudit(ctx, entry); err != nil {
		a.logger.Error("audit append failed",
			zap.String("action", action),
			zap.String("actor_id", meta.ActorID),
			zap.Error(err),
		)
	}
}

func (a *AuditService) Query(ctx context.Context, actorID string, page, pageSize int) ([]storage.AuditRecord, int64, error) {
	limit, offset := pageBounds(page, pageSize)
	return a.store.FindAudit(ctx, actorID, limit, offset)
}

// pageBounds normalizes 1-based page arguments into limit/offset.
func pageBounds(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return pageSize, (page - 1) * pageSize
}
