// Package analytics contiene los casos de uso de los dashboards por rol.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/axion-crm/internal/application/dto"
	"github.com/jhoicas/axion-crm/internal/domain"
	"github.com/jhoicas/axion-crm/internal/domain/entity"
	"github.com/jhoicas/axion-crm/internal/domain/repository"
)

// CardSource entrega las tarjetas visibles para un principal (FlowCardUseCase).
type CardSource interface {
	VisibleCards(ctx context.Context, p *entity.Principal) ([]*entity.FlowCard, error)
}

// DashboardUseCase arma el resumen del dashboard del principal.
//
// Fuentes: tarjetas visibles (siempre) y conteos de usuarios/colaboradores (solo admin).
// Los repositorios de conteo pueden ser nil; en ese caso el campo se omite.
type DashboardUseCase struct {
	cards   CardSource
	users   repository.UserProfileRepository
	collabs repository.CollaboratorRepository
	now     func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(cards CardSource, users repository.UserProfileRepository, collabs repository.CollaboratorRepository) *DashboardUseCase {
	return &DashboardUseCase{cards: cards, users: users, collabs: collabs, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO para p.
//
// Consultas en paralelo (errgroup): la primera que falla cancela el resto.
//  1. tarjetas visibles      → TotalCards, TotalValue, Stages
//  2. Count(user_profiles)   → Users         (admin)
//  3. Count(collaborators)   → Collaborators (admin)
func (uc *DashboardUseCase) GetSummary(ctx context.Context, p *entity.Principal) (*dto.DashboardSummaryDTO, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}

	var (
		cards        []*entity.FlowCard
		users, colls int
	)
	isAdmin := p.Role == entity.RoleAdmin

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cards, err = uc.cards.VisibleCards(gctx, p)
		if err != nil {
			return fmt.Errorf("dashboard: tarjetas: %w", err)
		}
		return nil
	})
	if isAdmin && uc.users != nil {
		g.Go(func() error {
			var err error
			users, err = uc.users.Count(gctx)
			if err != nil {
				return fmt.Errorf("dashboard: usuarios: %w", err)
			}
			return nil
		})
	}
	if isAdmin && uc.collabs != nil {
		g.Go(func() error {
			var err error
			colls, err = uc.collabs.Count(gctx)
			if err != nil {
				return fmt.Errorf("dashboard: colaboradores: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := summarize(cards)
	out.Role = string(p.Role)
	out.DateLabel = monthLabel(uc.now())
	if isAdmin && uc.users != nil {
		out.Users = &users
	}
	if isAdmin && uc.collabs != nil {
		out.Collaborators = &colls
	}
	return out, nil
}

// summarize agrupa por etapa; etapas vacías se reportan como "sem etapa".
func summarize(cards []*entity.FlowCard) *dto.DashboardSummaryDTO {
	byStage := make(map[string]*dto.StageCountDTO)
	total := decimal.Zero
	for _, c := range cards {
		stage := c.Stage
		if stage == "" {
			stage = "sem etapa"
		}
		s, ok := byStage[stage]
		if !ok {
			s = &dto.StageCountDTO{Stage: stage, Value: decimal.Zero}
			byStage[stage] = s
		}
		s.Count++
		s.Value = s.Value.Add(c.Value)
		total = total.Add(c.Value)
	}

	stages := make([]dto.StageCountDTO, 0, len(byStage))
	for _, s := range byStage {
		s.Value = s.Value.Round(2)
		stages = append(stages, *s)
	}
	sort.Slice(stages, func(i, j int) bool { return stages[i].Stage < stages[j].Stage })

	return &dto.DashboardSummaryDTO{
		TotalCards: len(cards),
		TotalValue: total.Round(2),
		Stages:     stages,
	}
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Outubro 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
