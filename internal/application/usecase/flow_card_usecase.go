package usecase

import (
	"context"

	"github.com/jhoicas/axion-crm/internal/application/dto"
	"github.com/jhoicas/axion-crm/internal/domain"
	"github.com/jhoicas/axion-crm/internal/domain/access"
	"github.com/jhoicas/axion-crm/internal/domain/entity"
	"github.com/jhoicas/axion-crm/internal/domain/repository"
	"github.com/jhoicas/axion-crm/pkg/phone"
)

// FlowCardUseCase lectura de flow cards con alcance por rol.
// Admin ve todas; seller y production solo las que les corresponden.
type FlowCardUseCase struct {
	repo   repository.FlowCardRepository
	linker phone.Linker
	memo   access.ScopeMemo
}

// NewFlowCardUseCase construye el caso de uso.
func NewFlowCardUseCase(repo repository.FlowCardRepository, linker phone.Linker) *FlowCardUseCase {
	return &FlowCardUseCase{repo: repo, linker: linker}
}

// ListVisible devuelve las tarjetas visibles para p, más recientes primero.
func (uc *FlowCardUseCase) ListVisible(ctx context.Context, p *entity.Principal) ([]dto.FlowCardResponse, error) {
	cards, err := uc.VisibleCards(ctx, p)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FlowCardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, uc.toResponse(c))
	}
	return out, nil
}

// GetVisible devuelve la tarjeta id. Una tarjeta fuera del alcance de p se reporta como inexistente.
func (uc *FlowCardUseCase) GetVisible(ctx context.Context, p *entity.Principal, id string) (*dto.FlowCardResponse, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}
	if uc.repo == nil {
		return nil, domain.ErrNotConfigured
	}
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	card, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, domain.ErrNotFound
	}
	if access.Scoped(p.Role) && !uc.memo.For(p.Role, p.ID)(card) {
		return nil, domain.ErrNotFound
	}
	out := uc.toResponse(card)
	return &out, nil
}

// VisibleCards devuelve las entidades visibles para p (base de listados y dashboards).
func (uc *FlowCardUseCase) VisibleCards(ctx context.Context, p *entity.Principal) ([]*entity.FlowCard, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}
	if uc.repo == nil {
		return nil, domain.ErrNotConfigured
	}
	cards, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if !access.Scoped(p.Role) {
		return cards, nil
	}
	return access.FilterCards(cards, uc.memo.For(p.Role, p.ID)), nil
}

func (uc *FlowCardUseCase) toResponse(c *entity.FlowCard) dto.FlowCardResponse {
	out := dto.FlowCardResponse{
		ID:                      c.ID,
		Title:                   c.Title,
		ClientName:              c.ClientName,
		ClientPhone:             c.ClientPhone,
		Stage:                   c.Stage,
		Value:                   c.Value,
		CreatedByID:             c.CreatedByID,
		AttendantID:             c.AttendantID,
		ProductionResponsibleID: c.ProductionResponsibleID,
		CreatedAt:               c.CreatedAt,
		UpdatedAt:               c.UpdatedAt,
	}
	if digits, ok := phone.NormalizeBR(c.ClientPhone); ok {
		out.MessagingLink = uc.linker.Link(digits, "")
	}
	return out
}
