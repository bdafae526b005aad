package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CollaboratorResponse fila del listado de colaboradores. Role va con la etiqueta
// de la tabla ("vendedor", "producao", "admin").
type CollaboratorResponse struct {
	ID                string           `json:"id"`
	UserID            string           `json:"user_id,omitempty"`
	Name              string           `json:"name"`
	Username          string           `json:"username,omitempty"`
	Role              string           `json:"role"`
	CommissionPercent *decimal.Decimal `json:"commission_percent"`
	CommissionFixed   *decimal.Decimal `json:"commission_fixed"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// UpsertCollaboratorRequest alta o edición de un colaborador y su comisión.
// ID vacío crea uno nuevo.
type UpsertCollaboratorRequest struct {
	ID                string           `json:"id"`
	UserID            string           `json:"user_id"`
	Name              string           `json:"name"`
	Username          string           `json:"username"`
	Role              string           `json:"role"`
	CommissionPercent *decimal.Decimal `json:"commission_percent"`
	CommissionFixed   *decimal.Decimal `json:"commission_fixed"`
}
