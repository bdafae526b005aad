package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/axion-crm/internal/domain"
	"github.com/jhoicas/axion-crm/internal/domain/entity"
	"github.com/jhoicas/axion-crm/internal/domain/repository"
)

var _ repository.UserProfileRepository = (*UserProfileRepo)(nil)

const userProfileColumns = `id, email, password_hash, name, COALESCE(username, ''), role, status, created_at, updated_at`

// UserProfileRepo implementación del puerto UserProfileRepository sobre PostgreSQL.
type UserProfileRepo struct {
	q Querier
}

// NewUserProfileRepository construye el adaptador de persistencia para user_profiles. Pasar pool o tx.
func NewUserProfileRepository(q Querier) *UserProfileRepo {
	return &UserProfileRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserProfileRepo) Create(ctx context.Context, u *entity.UserProfile) error {
	query := `
		INSERT INTO user_profiles (id, email, password_hash, name, username, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Name, nullString(u.Username), string(u.Role), u.Status,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user_profile: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserProfileRepo) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	u, err := scanUserProfile(r.q.QueryRow(ctx,
		`SELECT `+userProfileColumns+` FROM user_profiles WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user_profile by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email (sin distinguir mayúsculas).
func (r *UserProfileRepo) GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error) {
	u, err := scanUserProfile(r.q.QueryRow(ctx,
		`SELECT `+userProfileColumns+` FROM user_profiles WHERE lower(email) = lower($1) LIMIT 1`, email))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user_profile by email: %w", err)
	}
	return u, nil
}

// Update actualiza un usuario. Devuelve ErrNotFound si no existe.
func (r *UserProfileRepo) Update(ctx context.Context, u *entity.UserProfile) error {
	query := `
		UPDATE user_profiles
		   SET email = $2, password_hash = $3, name = $4, username = $5, role = $6, status = $7, updated_at = $8
		 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Name, nullString(u.Username), string(u.Role), u.Status, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user_profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista usuarios con paginación, ordenados por nombre.
func (r *UserProfileRepo) List(ctx context.Context, limit, offset int) ([]*entity.UserProfile, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+userProfileColumns+` FROM user_profiles ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list user_profiles: %w", err)
	}
	defer rows.Close()
	var list []*entity.UserProfile
	for rows.Next() {
		u, err := scanUserProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user_profile: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Delete elimina un usuario por ID. Devuelve ErrNotFound si no existe.
func (r *UserProfileRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM user_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user_profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count total de usuarios (dashboard admin).
func (r *UserProfileRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM user_profiles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count user_profiles: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUserProfile(row rowScanner) (*entity.UserProfile, error) {
	var (
		u    entity.UserProfile
		role string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Username, &role, &u.Status,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = entity.ParseRole(role)
	return &u, nil
}
