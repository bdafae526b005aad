package repository

import (
	"context"

	"github.com/jhoicas/axion-crm/internal/domain/entity"
)

// FlowCardRepository lectura de flow cards. La aplicación solo las consume.
type FlowCardRepository interface {
	// List devuelve todas las tarjetas, más recientes primero. El alcance por rol se aplica después.
	List(ctx context.Context) ([]*entity.FlowCard, error)
	GetByID(ctx context.Context, id string) (*entity.FlowCard, error)
}
