package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/axion-crm/internal/application/usecase"
	"github.com/jhoicas/axion-crm/internal/domain/repository"
)

var _ usecase.AdminTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunAdmin inicia una transacción, ejecuta fn con repos de usuarios y colaboradores atados
// a la tx y hace Commit o Rollback.
func (r *TxRunner) RunAdmin(ctx context.Context, fn func(
	users repository.UserProfileRepository,
	collabs repository.CollaboratorRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserProfileRepository(tx), NewCollaboratorRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
