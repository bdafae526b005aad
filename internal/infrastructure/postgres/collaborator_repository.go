package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/axion-crm/internal/domain/entity"
	"github.com/jhoicas/axion-crm/internal/domain/repository"
)

var _ repository.CollaboratorRepository = (*CollaboratorRepo)(nil)

const collaboratorColumns = `id, COALESCE(user_id::text, ''), name, COALESCE(username, ''), role,
	commission_percent, commission_fixed, created_at, updated_at`

// CollaboratorRepo implementación de CollaboratorRepository.
// La columna role guarda la etiqueta ("vendedor", "producao", "admin"); aquí se traduce al rol canónico.
type CollaboratorRepo struct {
	q Querier
}

// NewCollaboratorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCollaboratorRepository(q Querier) *CollaboratorRepo {
	return &CollaboratorRepo{q: q}
}

// List devuelve todos los colaboradores.
func (r *CollaboratorRepo) List(ctx context.Context) ([]*entity.Collaborator, error) {
	rows, err := r.q.Query(ctx, `SELECT `+collaboratorColumns+` FROM collaborators`)
	if err != nil {
		return nil, fmt.Errorf("list collaborators: %w", err)
	}
	defer rows.Close()
	var list []*entity.Collaborator
	for rows.Next() {
		c, err := scanCollaborator(rows)
		if err != nil {
			return nil, fmt.Errorf("scan collaborator: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetByID obtiene un colaborador; (nil, nil) si no existe.
func (r *CollaboratorRepo) GetByID(ctx context.Context, id string) (*entity.Collaborator, error) {
	c, err := scanCollaborator(r.q.QueryRow(ctx,
		`SELECT `+collaboratorColumns+` FROM collaborators WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get collaborator: %w", err)
	}
	return c, nil
}

// Upsert inserta o actualiza el colaborador por ID.
func (r *CollaboratorRepo) Upsert(ctx context.Context, c *entity.Collaborator) error {
	query := `
		INSERT INTO collaborators (id, user_id, name, username, role, commission_percent, commission_fixed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE
		   SET user_id = EXCLUDED.user_id,
		       name = EXCLUDED.name,
		       username = EXCLUDED.username,
		       role = EXCLUDED.role,
		       commission_percent = EXCLUDED.commission_percent,
		       commission_fixed = EXCLUDED.commission_fixed,
		       updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		c.ID, nullString(c.UserID), c.Name, nullString(c.Username), c.Role.Label(),
		c.CommissionPercent, c.CommissionFixed, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert collaborator: %w", err)
	}
	return nil
}

// Count total de colaboradores.
func (r *CollaboratorRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM collaborators`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count collaborators: %w", err)
	}
	return n, nil
}

func scanCollaborator(row rowScanner) (*entity.Collaborator, error) {
	var (
		c     entity.Collaborator
		label string
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Username, &label,
		&c.CommissionPercent, &c.CommissionFixed, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Role = entity.ParseRole(label)
	return &c, nil
}
