package repository

import (
	"context"

	"github.com/jhoicas/axion-crm/internal/domain/entity"
)

// CollaboratorRepository define el puerto de persistencia para colaboradores.
type CollaboratorRepository interface {
	List(ctx context.Context) ([]*entity.Collaborator, error)
	GetByID(ctx context.Context, id string) (*entity.Collaborator, error)
	// Upsert inserta o actualiza por ID (nombre, usuario, rol y comisiones).
	Upsert(ctx context.Context, c *entity.Collaborator) error
	Count(ctx context.Context) (int, error)
}
