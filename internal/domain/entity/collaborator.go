package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Collaborator ficha de colaborador (vendedor, producción o admin) con su configuración de comisión.
// Las comisiones son opcionales: nil significa "sin definir".
type Collaborator struct {
	ID                string
	UserID            string // user_profiles.id, vacío si el colaborador no inicia sesión
	Name              string
	Username          string
	Role              Role
	CommissionPercent *decimal.Decimal // 0..100
	CommissionFixed   *decimal.Decimal // >= 0
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
