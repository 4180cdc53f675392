package services

import (
	"context"
	"log/slog"

	"github.com/digibank/backend/internal/models"
	repo "github.com/digibank/backend/internal/repository"
)

// auditor appends audit rows best-effort: a failed write is logged and
// swallowed so it never blocks the primary operation.
type auditor struct {
	logs repo.AuditLogs
}

func (a auditor) record(ctx context.Context, entityType, entityID, actorID, action string, details map[string]any) {
	if a.logs == nil {
		return
	}
	l := models.AuditLog{
		EntityType: entityType,
		Action:     action,
		Details:    details,
	}
	if entityID != "" {
		l.EntityID = &entityID
	}
	if actorID != "" {
		l.ActorID = &actorID
	}
	if err := a.logs.Create(ctx, l); err != nil {
		slog.Warn("audit write failed", "entity", entityType, "action", action, "err", err)
	}
}
