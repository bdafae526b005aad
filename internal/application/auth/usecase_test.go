package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/axion-crm/internal/application/auth"
	"github.com/jhoicas/axion-crm/internal/application/dto"
	"github.com/jhoicas/axion-crm/internal/domain"
	"github.com/jhoicas/axion-crm/internal/domain/entity"
)

// MockUserRepo implementación mock mínima de repository.UserProfileRepository.
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *entity.UserProfile) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.UserProfile)
	return u, args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.UserProfile)
	return u, args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, u *entity.UserProfile) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.UserProfile, error) {
	args := m.Called(ctx, limit, offset)
	list, _ := args.Get(0).([]*entity.UserProfile)
	return list, args.Error(1)
}

func (m *MockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

var jwtCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "axion-crm"}

func userWithPassword(t *testing.T, pw string, role entity.Role, status string) *entity.UserProfile {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.UserProfile{ID: "u1", Email: "ana@axion.com", PasswordHash: string(hash), Role: role, Status: status}
}

func TestLogin_OK(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("GetByEmail", mock.Anything, "ana@axion.com").Return(userWithPassword(t, "segredo123", entity.RoleSeller, entity.StatusActive), nil)
	uc := auth.NewAuthUseCase(repo, jwtCfg, nil)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: " ANA@axion.com", Password: "segredo123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "/vendedor", out.Home)
	assert.Equal(t, "seller", out.User.Role)

	userID, err := uc.ParseToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("GetByEmail", mock.Anything, "ana@axion.com").Return(userWithPassword(t, "segredo123", entity.RoleSeller, entity.StatusActive), nil)
	repo.On("GetByEmail", mock.Anything, "ghost@axion.com").Return(nil, nil)
	uc := auth.NewAuthUseCase(repo, jwtCfg, nil)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@axion.com", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ghost@axion.com", Password: "segredo123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("GetByEmail", mock.Anything, "ana@axion.com").Return(userWithPassword(t, "segredo123", entity.RoleAdmin, entity.StatusInactive), nil)
	uc := auth.NewAuthUseCase(repo, jwtCfg, nil)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@axion.com", Password: "segredo123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestParseToken_Invalido(t *testing.T) {
	uc := auth.NewAuthUseCase(nil, jwtCfg, nil)
	_, err := uc.ParseToken("no-es-un-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
