package repository

import (
	"context"

	"github.com/jhoicas/axion-crm/internal/domain/entity"
)

// AuditLogRepository escritura append-only de audit_log.
type AuditLogRepository interface {
	Insert(ctx context.Context, entry *entity.AuditLog) error
}
