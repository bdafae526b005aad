package repository

import (
	"context"

	"github.com/jhoicas/axion-crm/internal/domain/entity"
)

// UserProfileRepository define el puerto de persistencia para user_profiles (DIP).
// Las búsquedas devuelven (nil, nil) cuando el registro no existe.
type UserProfileRepository interface {
	Create(ctx context.Context, user *entity.UserProfile) error
	GetByID(ctx context.Context, id string) (*entity.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error)
	Update(ctx context.Context, user *entity.UserProfile) error
	List(ctx context.Context, limit, offset int) ([]*entity.UserProfile, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
