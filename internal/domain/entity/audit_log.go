package entity

import (
	"encoding/json"
	"time"
)

// Acciones de auditoría.
const (
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"
	AuditUpsert = "upsert"
	AuditLogin  = "login"
)

// AuditLog entrada de solo escritura en audit_log. Nunca se lee ni se modifica desde la aplicación.
// Before, After y Meta se guardan como jsonb.
type AuditLog struct {
	ID        string
	UserID    string
	Module    string
	Entity    string
	EntityID  string // opcional
	Action    string
	Before    json.RawMessage
	After     json.RawMessage
	Meta      json.RawMessage
	CreatedAt time.Time
}
