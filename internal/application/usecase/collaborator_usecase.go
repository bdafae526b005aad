package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/axion-crm/internal/application/audit"
	"github.com/jhoicas/axion-crm/internal/application/dto"
	"github.com/jhoicas/axion-crm/internal/domain"
	"github.com/jhoicas/axion-crm/internal/domain/entity"
	"github.com/jhoicas/axion-crm/internal/domain/repository"
	"github.com/jhoicas/axion-crm/internal/infrastructure/querycache"
)

const collaboratorsListKey = "collaborators:list"

var maxCommissionPercent = decimal.NewFromInt(100)

// CollaboratorUseCase listado de colaboradores y configuración de comisiones.
type CollaboratorUseCase struct {
	repo  repository.CollaboratorRepository
	cache *querycache.Cache
	audit *audit.Recorder
}

// NewCollaboratorUseCase construye el caso de uso. cache nil usa una caché en memoria propia.
func NewCollaboratorUseCase(repo repository.CollaboratorRepository, cache *querycache.Cache, rec *audit.Recorder) *CollaboratorUseCase {
	return &CollaboratorUseCase{repo: repo, cache: orMemoryCache(cache), audit: rec}
}

// List devuelve los colaboradores ordenados por nombre (orden alfabético pt-BR).
func (uc *CollaboratorUseCase) List(ctx context.Context) ([]dto.CollaboratorResponse, error) {
	if uc.repo == nil {
		return nil, domain.ErrNotConfigured
	}
	return querycache.Get(ctx, uc.cache, collaboratorsListKey, []string{TagAdminCollaborators},
		func(ctx context.Context) ([]dto.CollaboratorResponse, error) {
			list, err := uc.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]dto.CollaboratorResponse, 0, len(list))
			for _, c := range list {
				out = append(out, toCollaboratorResponse(c))
			}
			sortByName(out)
			return out, nil
		})
}

// UpsertSettings crea o actualiza un colaborador con su comisión.
//
// Reglas: nombre obligatorio, rol reconocible, porcentaje entre 0 y 100, fijo >= 0.
// Un colaborador admin no lleva comisión.
func (uc *CollaboratorUseCase) UpsertSettings(ctx context.Context, actorID string, in dto.UpsertCollaboratorRequest) (*dto.CollaboratorResponse, error) {
	if uc.repo == nil {
		return nil, domain.ErrNotConfigured
	}
	c, err := collaboratorFromRequest(in)
	if err != nil {
		return nil, err
	}

	var before *dto.CollaboratorResponse
	now := time.Now()
	if c.ID == "" {
		c.ID = uuid.New().String()
		c.CreatedAt = now
	} else {
		existing, err := uc.repo.GetByID(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			b := toCollaboratorResponse(existing)
			before = &b
			c.CreatedAt = existing.CreatedAt
		} else {
			c.CreatedAt = now
		}
	}
	c.UpdatedAt = now

	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}

	out := toCollaboratorResponse(c)
	uc.cache.Invalidate(context.WithoutCancel(ctx), TagAdminUsers, TagAdminCollaborators)
	uc.audit.Record(audit.NewEntry(actorID, auditModuleAdmin, "collaborator", c.ID, entity.AuditUpsert, before, out))
	return &out, nil
}

func collaboratorFromRequest(in dto.UpsertCollaboratorRequest) (*entity.Collaborator, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre obligatorio", domain.ErrInvalidInput)
	}
	role := entity.ParseRole(in.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}
	if p := in.CommissionPercent; p != nil && (p.IsNegative() || p.GreaterThan(maxCommissionPercent)) {
		return nil, fmt.Errorf("%w: el porcentaje de comisión debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	if f := in.CommissionFixed; f != nil && f.IsNegative() {
		return nil, fmt.Errorf("%w: la comisión fija no puede ser negativa", domain.ErrInvalidInput)
	}
	if !role.HasCommission() && (in.CommissionPercent != nil || in.CommissionFixed != nil) {
		return nil, fmt.Errorf("%w: el rol %s no admite comisión", domain.ErrInvalidInput, role.Label())
	}
	id, userID := strings.TrimSpace(in.ID), strings.TrimSpace(in.UserID)
	if id != "" && !validID(id) {
		return nil, fmt.Errorf("%w: id %q no es un uuid", domain.ErrInvalidInput, id)
	}
	if userID != "" && !validID(userID) {
		return nil, fmt.Errorf("%w: user_id %q no es un uuid", domain.ErrInvalidInput, userID)
	}
	return &entity.Collaborator{
		ID:                id,
		UserID:            userID,
		Name:              name,
		Username:          strings.TrimSpace(in.Username),
		Role:              role,
		CommissionPercent: in.CommissionPercent,
		CommissionFixed:   in.CommissionFixed,
	}, nil
}

// sortByName ordena con el collator de portugués, sin distinguir mayúsculas.
// collate.Collator no es seguro para uso concurrente: se crea uno por llamada.
func sortByName(list []dto.CollaboratorResponse) {
	col := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
	sort.SliceStable(list, func(i, j int) bool {
		return col.CompareString(list[i].Name, list[j].Name) < 0
	})
}

func toCollaboratorResponse(c *entity.Collaborator) dto.CollaboratorResponse {
	return dto.CollaboratorResponse{
		ID:                c.ID,
		UserID:            c.UserID,
		Name:              c.Name,
		Username:          c.Username,
		Role:              c.Role.Label(),
		CommissionPercent: c.CommissionPercent,
		CommissionFixed:   c.CommissionFixed,
		UpdatedAt:         c.UpdatedAt,
	}
}
