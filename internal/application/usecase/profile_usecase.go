package usecase

import (
	"context"

	"github.com/jhoicas/axion-crm/internal/application/dto"
	"github.com/jhoicas/axion-crm/internal/domain"
	"github.com/jhoicas/axion-crm/internal/domain/access"
	"github.com/jhoicas/axion-crm/internal/domain/entity"
	"github.com/jhoicas/axion-crm/internal/domain/repository"
)

// ProfileUseCase resuelve la identidad de la sesión contra user_profiles.
type ProfileUseCase struct {
	repo repository.UserProfileRepository
}

// NewProfileUseCase construye el caso de uso. repo nil = backend no configurado.
func NewProfileUseCase(repo repository.UserProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{repo: repo}
}

// Resolve devuelve el principal de userID.
// (nil, nil) cuando el usuario no existe o está inactivo: la sesión se trata como anónima.
func (uc *ProfileUseCase) Resolve(ctx context.Context, userID string) (*entity.Principal, error) {
	if uc.repo == nil {
		return nil, domain.ErrNotConfigured
	}
	if userID == "" {
		return nil, nil
	}
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Active() {
		return nil, nil
	}
	return user.Principal(), nil
}

// Me devuelve el perfil completo del principal y su ruta de inicio.
func (uc *ProfileUseCase) Me(ctx context.Context, p *entity.Principal) (*dto.MeResponse, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}
	if uc.repo == nil {
		return nil, domain.ErrNotConfigured
	}
	user, err := uc.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return &dto.MeResponse{User: *toUserResponse(user), Home: access.HomeFor(user.Role)}, nil
}
