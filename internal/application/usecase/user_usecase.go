package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/axion-crm/internal/application/audit"
	"github.com/jhoicas/axion-crm/internal/application/dto"
	"github.com/jhoicas/axion-crm/internal/domain"
	"github.com/jhoicas/axion-crm/internal/domain/entity"
	"github.com/jhoicas/axion-crm/internal/domain/repository"
	"github.com/jhoicas/axion-crm/internal/infrastructure/querycache"
)

// Etiquetas de caché de los listados de administración.
const (
	TagAdminUsers         = "admin-users"
	TagAdminCollaborators = "admin-collaborators"
)

const (
	auditModuleAdmin  = "admin"
	minPasswordLength = 8
)

// AdminUserUseCase CRUD de usuarios para el panel de administración.
// Los listados se leen de la caché; toda mutación exitosa invalida usuarios y colaboradores.
type AdminUserUseCase struct {
	repo  repository.UserProfileRepository
	tx    AdminTxRunner
	cache *querycache.Cache
	audit *audit.Recorder
}

// NewAdminUserUseCase construye el caso de uso. cache nil usa una caché en memoria propia.
func NewAdminUserUseCase(repo repository.UserProfileRepository, cache *querycache.Cache, rec *audit.Recorder) *AdminUserUseCase {
	return &AdminUserUseCase{repo: repo, cache: orMemoryCache(cache), audit: rec}
}

// WithTx activa el alta transaccional: al crear un vendedor o un usuario de producción
// se crea también su ficha de colaborador en la misma transacción.
func (uc *AdminUserUseCase) WithTx(tx AdminTxRunner) *AdminUserUseCase {
	uc.tx = tx
	return uc
}

// List devuelve una página de usuarios.
func (uc *AdminUserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	if uc.repo == nil {
		return nil, domain.ErrNotConfigured
	}
	page.DefaultPage()
	key := fmt.Sprintf("users:list:%d:%d", page.Limit, page.Offset)

	out, err := querycache.Get(ctx, uc.cache, key, []string{TagAdminUsers}, func(ctx context.Context) (dto.UserListResponse, error) {
		users, err := uc.repo.List(ctx, page.Limit, page.Offset)
		if err != nil {
			return dto.UserListResponse{}, err
		}
		total, err := uc.repo.Count(ctx)
		if err != nil {
			return dto.UserListResponse{}, err
		}
		items := make([]dto.UserResponse, 0, len(users))
		for _, u := range users {
			items = append(items, *toUserResponse(u))
		}
		return dto.UserListResponse{
			Items: items,
			Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Create da de alta un usuario. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AdminUserUseCase) Create(ctx context.Context, actorID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if uc.repo == nil {
		return nil, domain.ErrNotConfigured
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLength)
	}
	role := entity.ParseRole(in.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}

	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	now := time.Now()
	user := &entity.UserProfile{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Username:     strings.TrimSpace(in.Username),
		Role:         role,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.create(ctx, user); err != nil {
		return nil, err
	}

	out := toUserResponse(user)
	uc.afterMutation(ctx, audit.NewEntry(actorID, auditModuleAdmin, "user", user.ID, entity.AuditCreate, nil, out))
	return out, nil
}

// Update aplica los cambios no nulos de in sobre el usuario id.
func (uc *AdminUserUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if uc.repo == nil {
		return nil, domain.ErrNotConfigured
	}
	if !validID(id) {
		return nil, domain.ErrUserNotFound
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	before := toUserResponse(user)

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
		}
		user.Name = name
	}
	if in.Username != nil {
		user.Username = strings.TrimSpace(*in.Username)
	}
	if in.Role != nil {
		role := entity.ParseRole(*in.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, *in.Role)
		}
		user.Role = role
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.StatusActive, entity.StatusInactive:
			user.Status = *in.Status
		default:
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, *in.Status)
		}
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLength {
			return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	out := toUserResponse(user)
	uc.afterMutation(ctx, audit.NewEntry(actorID, auditModuleAdmin, "user", user.ID, entity.AuditUpdate, before, out))
	return out, nil
}

// Delete elimina el usuario id. Un administrador no puede eliminarse a sí mismo.
func (uc *AdminUserUseCase) Delete(ctx context.Context, actorID, id string) error {
	if uc.repo == nil {
		return domain.ErrNotConfigured
	}
	if id == actorID {
		return fmt.Errorf("%w: no puede eliminar su propio usuario", domain.ErrForbidden)
	}
	if !validID(id) {
		return domain.ErrUserNotFound
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.afterMutation(ctx, audit.NewEntry(actorID, auditModuleAdmin, "user", id, entity.AuditDelete, toUserResponse(user), nil))
	return nil
}

func (uc *AdminUserUseCase) create(ctx context.Context, user *entity.UserProfile) error {
	if uc.tx == nil {
		return uc.repo.Create(ctx, user)
	}
	return uc.tx.RunAdmin(ctx, func(users repository.UserProfileRepository, collabs repository.CollaboratorRepository) error {
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		if !user.Role.HasCommission() {
			return nil
		}
		return collabs.Upsert(ctx, &entity.Collaborator{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			Name:      user.Name,
			Username:  user.Username,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		})
	})
}

// afterMutation invalida los listados de administración y registra la auditoría.
// Solo se llama cuando la mutación ya fue confirmada.
func (uc *AdminUserUseCase) afterMutation(ctx context.Context, entry entity.AuditLog) {
	uc.cache.Invalidate(context.WithoutCancel(ctx), TagAdminUsers, TagAdminCollaborators)
	uc.audit.Record(entry)
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	return email, nil
}

func orMemoryCache(c *querycache.Cache) *querycache.Cache {
	if c != nil {
		return c
	}
	return querycache.New(querycache.NewMemoryStore(), nil, querycache.Options{})
}

func toUserResponse(u *entity.UserProfile) *dto.UserResponse {
	if u == nil {
		return nil
	}
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
