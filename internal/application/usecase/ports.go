package usecase

import (
	"context"

	"github.com/jhoicas/axion-crm/internal/domain/repository"
)

// AdminTxRunner ejecuta fn dentro de una transacción, con repositorios atados a ella.
// Garantiza que un usuario y su ficha de colaborador se crean juntos o no se crean.
type AdminTxRunner interface {
	RunAdmin(ctx context.Context, fn func(
		users repository.UserProfileRepository,
		collabs repository.CollaboratorRepository,
	) error) error
}
