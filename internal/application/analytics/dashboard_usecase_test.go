package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/axion-crm/internal/application/analytics"
	"github.com/jhoicas/axion-crm/internal/domain"
	"github.com/jhoicas/axion-crm/internal/domain/entity"
	"github.com/jhoicas/axion-crm/internal/domain/repository"
)

type stubCards struct {
	cards []*entity.FlowCard
	err   error
}

func (s stubCards) VisibleCards(context.Context, *entity.Principal) ([]*entity.FlowCard, error) {
	return s.cards, s.err
}

// stubUsers y stubCollabs solo implementan Count; el resto de métodos no se usa en el dashboard.
type stubUsers struct {
	repository.UserProfileRepository
	n   int
	err error
}

func (s stubUsers) Count(context.Context) (int, error) { return s.n, s.err }

type stubCollabs struct {
	repository.CollaboratorRepository
	n   int
	err error
}

func (s stubCollabs) Count(context.Context) (int, error) { return s.n, s.err }

func cards() []*entity.FlowCard {
	return []*entity.FlowCard{
		{ID: "1", Stage: "negociacao", Value: decimal.RequireFromString("100.10")},
		{ID: "2", Stage: "lead", Value: decimal.RequireFromString("50")},
		{ID: "3", Stage: "negociacao", Value: decimal.RequireFromString("19.90")},
		{ID: "4", Value: decimal.Zero},
	}
}

func TestGetSummary_Admin(t *testing.T) {
	uc := analytics.NewDashboardUseCase(
		stubCards{cards: cards()},
		stubUsers{n: 7},
		stubCollabs{n: 4},
	)
	out, err := uc.GetSummary(context.Background(), &entity.Principal{ID: "a", Role: entity.RoleAdmin})
	require.NoError(t, err)

	assert.Equal(t, 4, out.TotalCards)
	assert.True(t, out.TotalValue.Equal(decimal.RequireFromString("170")))
	require.Len(t, out.Stages, 3)
	assert.Equal(t, "lead", out.Stages[0].Stage)
	assert.Equal(t, "negociacao", out.Stages[1].Stage)
	assert.Equal(t, 2, out.Stages[1].Count)
	assert.True(t, out.Stages[1].Value.Equal(decimal.RequireFromString("120")))
	assert.Equal(t, "sem etapa", out.Stages[2].Stage)
	require.NotNil(t, out.Users)
	assert.Equal(t, 7, *out.Users)
	require.NotNil(t, out.Collaborators)
	assert.Equal(t, 4, *out.Collaborators)
	assert.NotEmpty(t, out.DateLabel)
}

func TestGetSummary_SellerSinConteos(t *testing.T) {
	uc := analytics.NewDashboardUseCase(
		stubCards{cards: cards()[:1]},
		stubUsers{err: errors.New("no debería llamarse")},
		nil,
	)
	out, err := uc.GetSummary(context.Background(), &entity.Principal{ID: "s", Role: entity.RoleSeller})
	require.NoError(t, err)
	assert.Equal(t, 1, out.TotalCards)
	assert.Nil(t, out.Users)
	assert.Nil(t, out.Collaborators)
}

func TestGetSummary_PropagaError(t *testing.T) {
	boom := errors.New("timeout")
	uc := analytics.NewDashboardUseCase(stubCards{cards: cards()}, stubUsers{err: boom}, nil)
	_, err := uc.GetSummary(context.Background(), &entity.Principal{ID: "a", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, boom)

	_, err = uc.GetSummary(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
