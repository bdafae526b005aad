package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/axion-crm/internal/application/audit"
	"github.com/jhoicas/axion-crm/internal/application/dto"
	"github.com/jhoicas/axion-crm/internal/application/usecase"
	"github.com/jhoicas/axion-crm/internal/domain"
	"github.com/jhoicas/axion-crm/internal/domain/entity"
	"github.com/jhoicas/axion-crm/internal/domain/repository"
	"github.com/jhoicas/axion-crm/internal/infrastructure/querycache"
)

const adminID = "admin-1"

func newSharedCache() *querycache.Cache {
	return querycache.New(querycache.NewMemoryStore(), nil, querycache.Options{})
}

func primeUserList(repo *MockUserRepo, users []*entity.UserProfile) {
	repo.On("List", mock.Anything, 20, 0).Return(users, nil)
	repo.On("Count", mock.Anything).Return(len(users), nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// List
// ──────────────────────────────────────────────────────────────────────────────

func TestAdminUsers_List_SeLeeDeCache(t *testing.T) {
	repo := new(MockUserRepo)
	primeUserList(repo, []*entity.UserProfile{{ID: userU1, Email: "ana@axion.com", Role: entity.RoleSeller}})
	uc := usecase.NewAdminUserUseCase(repo, newSharedCache(), nil)
	ctx := context.Background()

	first, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	second, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)

	require.Len(t, first.Items, 1)
	assert.Equal(t, userU1, second.Items[0].ID)
	assert.Equal(t, "seller", second.Items[0].Role)
	assert.Equal(t, 1, second.Page.Total)
	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestAdminUsers_SinRepositorio(t *testing.T) {
	uc := usecase.NewAdminUserUseCase(nil, nil, nil)
	_, err := uc.List(context.Background(), dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	assert.ErrorIs(t, uc.Delete(context.Background(), adminID, userU1), domain.ErrNotConfigured)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestAdminUsers_Create_InvalidaYAudita(t *testing.T) {
	repo := new(MockUserRepo)
	primeUserList(repo, nil)
	repo.On("GetByEmail", mock.Anything, "nova@axion.com").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.UserProfile) bool {
		return u.Email == "nova@axion.com" && u.Role == entity.RoleProduction &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("segredo123")) == nil
	})).Return(nil).Once()

	auditRepo := new(MockAuditRepo)
	auditRepo.On("Insert", mock.Anything, mock.MatchedBy(func(e *entity.AuditLog) bool {
		return e.UserID == adminID && e.Action == entity.AuditCreate && e.Entity == "user"
	})).Return(nil).Once()
	rec := audit.NewRecorder(auditRepo, nil, 0)

	uc := usecase.NewAdminUserUseCase(repo, newSharedCache(), rec)
	ctx := context.Background()

	_, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)

	out, err := uc.Create(ctx, adminID, dto.CreateUserRequest{
		Email: "  Nova@Axion.com ", Password: "segredo123", Name: "Nova", Role: "producao",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "production", out.Role)
	assert.Equal(t, entity.StatusActive, out.Status)

	_, err = uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "List", 2)

	rec.Wait()
	auditRepo.AssertExpectations(t)
}

func TestAdminUsers_Create_FalloNoInvalida(t *testing.T) {
	repo := new(MockUserRepo)
	primeUserList(repo, nil)
	boom := errors.New("insert falló")
	repo.On("GetByEmail", mock.Anything, "x@axion.com").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(boom)

	auditRepo := new(MockAuditRepo)
	rec := audit.NewRecorder(auditRepo, nil, 0)
	uc := usecase.NewAdminUserUseCase(repo, newSharedCache(), rec)
	ctx := context.Background()

	_, _ = uc.List(ctx, dto.PageRequest{})
	_, err := uc.Create(ctx, adminID, dto.CreateUserRequest{Email: "x@axion.com", Password: "12345678", Role: "seller"})
	require.ErrorIs(t, err, boom)
	_, _ = uc.List(ctx, dto.PageRequest{})

	repo.AssertNumberOfCalls(t, "List", 1)
	rec.Wait()
	auditRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestAdminUsers_Create_Validaciones(t *testing.T) {
	repo := new(MockUserRepo)
	uc := usecase.NewAdminUserUseCase(repo, nil, nil)
	ctx := context.Background()

	cases := []dto.CreateUserRequest{
		{Email: "sem-arroba", Password: "12345678", Role: "seller"},
		{Email: "a@b.com", Password: "curta", Role: "seller"},
		{Email: "a@b.com", Password: "12345678", Role: "gerente"},
	}
	for _, in := range cases {
		_, err := uc.Create(ctx, adminID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminUsers_Create_EmailDuplicado(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("GetByEmail", mock.Anything, "ana@axion.com").Return(&entity.UserProfile{ID: userU1}, nil)
	uc := usecase.NewAdminUserUseCase(repo, nil, nil)

	_, err := uc.Create(context.Background(), adminID, dto.CreateUserRequest{Email: "ana@axion.com", Password: "12345678", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestAdminUsers_Update_CambiaRolYEstado(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("GetByID", mock.Anything, userU1).Return(&entity.UserProfile{
		ID: userU1, Email: "ana@axion.com", Name: "Ana", Role: entity.RoleSeller, Status: entity.StatusActive,
	}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.UserProfile) bool {
		return u.Role == entity.RoleProduction && u.Status == entity.StatusInactive && u.Name == "Ana"
	})).Return(nil).Once()
	uc := usecase.NewAdminUserUseCase(repo, nil, nil)

	role, status := "producao", entity.StatusInactive
	out, err := uc.Update(context.Background(), adminID, userU1, dto.UpdateUserRequest{Role: &role, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "production", out.Role)
	repo.AssertExpectations(t)
}

func TestAdminUsers_Update_NoExiste(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("GetByID", mock.Anything, missingID).Return(nil, nil)
	uc := usecase.NewAdminUserUseCase(repo, nil, nil)

	_, err := uc.Update(context.Background(), adminID, missingID, dto.UpdateUserRequest{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAdminUsers_Delete_PropioUsuario(t *testing.T) {
	repo := new(MockUserRepo)
	uc := usecase.NewAdminUserUseCase(repo, nil, nil)

	err := uc.Delete(context.Background(), adminID, adminID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAdminUsers_Delete_InvalidaAmbasEtiquetas(t *testing.T) {
	cache := newSharedCache()
	users := new(MockUserRepo)
	primeUserList(users, nil)
	users.On("GetByID", mock.Anything, userU2).Return(&entity.UserProfile{ID: userU2, Role: entity.RoleSeller}, nil)
	users.On("Delete", mock.Anything, userU2).Return(nil).Once()

	collabs := new(MockCollaboratorRepo)
	collabs.On("List", mock.Anything).Return([]*entity.Collaborator{}, nil)

	userUC := usecase.NewAdminUserUseCase(users, cache, nil)
	collabUC := usecase.NewCollaboratorUseCase(collabs, cache, nil)
	ctx := context.Background()

	_, _ = userUC.List(ctx, dto.PageRequest{})
	_, _ = collabUC.List(ctx)

	require.NoError(t, userUC.Delete(ctx, adminID, userU2))

	_, _ = userUC.List(ctx, dto.PageRequest{})
	_, _ = collabUC.List(ctx)
	users.AssertNumberOfCalls(t, "List", 2)
	collabs.AssertNumberOfCalls(t, "List", 2)
}

// fakeTx ejecuta fn sobre los mocks sin transacción real.
type fakeTx struct {
	users   *MockUserRepo
	collabs *MockCollaboratorRepo
	calls   int
}

func (f *fakeTx) RunAdmin(ctx context.Context, fn func(repository.UserProfileRepository, repository.CollaboratorRepository) error) error {
	f.calls++
	return fn(f.users, f.collabs)
}

func TestAdminUsers_Create_ConTx_CreaColaborador(t *testing.T) {
	users := new(MockUserRepo)
	users.On("GetByEmail", mock.Anything, "vend@axion.com").Return(nil, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	collabs := new(MockCollaboratorRepo)
	collabs.On("Upsert", mock.Anything, mock.MatchedBy(func(c *entity.Collaborator) bool {
		return c.UserID != "" && c.Role == entity.RoleSeller && c.CommissionPercent == nil
	})).Return(nil).Once()

	tx := &fakeTx{users: users, collabs: collabs}
	uc := usecase.NewAdminUserUseCase(users, nil, nil).WithTx(tx)

	_, err := uc.Create(context.Background(), adminID, dto.CreateUserRequest{Email: "vend@axion.com", Password: "12345678", Role: "vendedor"})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	collabs.AssertExpectations(t)
}

func TestAdminUsers_Create_ConTx_AdminSinColaborador(t *testing.T) {
	users := new(MockUserRepo)
	users.On("GetByEmail", mock.Anything, "boss@axion.com").Return(nil, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	collabs := new(MockCollaboratorRepo)

	uc := usecase.NewAdminUserUseCase(users, nil, nil).WithTx(&fakeTx{users: users, collabs: collabs})
	_, err := uc.Create(context.Background(), adminID, dto.CreateUserRequest{Email: "boss@axion.com", Password: "12345678", Role: "admin"})
	require.NoError(t, err)
	collabs.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestAdminUsers_IDMalformado_NoConsultaLaBase(t *testing.T) {
	repo := new(MockUserRepo)
	uc := usecase.NewAdminUserUseCase(repo, nil, nil)
	ctx := context.Background()

	_, err := uc.Update(ctx, adminID, "abc", dto.UpdateUserRequest{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	err = uc.Delete(ctx, adminID, "abc")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
