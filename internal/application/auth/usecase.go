package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/axion-crm/internal/application/audit"
	"github.com/jhoicas/axion-crm/internal/application/dto"
	"github.com/jhoicas/axion-crm/internal/domain"
	"github.com/jhoicas/axion-crm/internal/domain/access"
	"github.com/jhoicas/axion-crm/internal/domain/entity"
	"github.com/jhoicas/axion-crm/internal/domain/repository"
	"github.com/jhoicas/axion-crm/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login contra user_profiles y emisión de JWT.
type AuthUseCase struct {
	userRepo repository.UserProfileRepository
	jwtCfg   JWTConfig
	audit    *audit.Recorder
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserProfileRepository, jwtCfg JWTConfig, rec *audit.Recorder) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, audit: rec}
}

// Login verifica email/password, genera JWT y retorna token + usuario + ruta de inicio del rol.
// Email inexistente y password incorrecta devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if uc.userRepo == nil {
		return nil, domain.ErrNotConfigured
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active() {
		return nil, domain.ErrForbidden
	}
	if !user.Role.Valid() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	uc.audit.Record(audit.NewEntry(user.ID, "auth", "user", user.ID, entity.AuditLogin, nil, nil))

	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
		Home:  access.HomeFor(user.Role),
	}, nil
}

// ParseToken valida el token y devuelve el ID de usuario que contiene.
func (uc *AuthUseCase) ParseToken(token string) (string, error) {
	userID, _, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	return userID, nil
}

func toUserResponse(u *entity.UserProfile) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Username:  u.Username,
		Role:      string(u.Role),
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
