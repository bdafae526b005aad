package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/axion-crm/internal/application/dto"
)

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 0,00", formatBRL(decimal.Zero))
	assert.Equal(t, "R$ 999,90", formatBRL(decimal.RequireFromString("999.9")))
	assert.Equal(t, "R$ 1.234.567,50", formatBRL(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-R$ 25.000,00", formatBRL(decimal.NewFromInt(-25000)))
}

func TestGenerateDashboardPDF(t *testing.T) {
	users := 3
	g := NewMarotoPDFGenerator("")
	out, err := g.GenerateDashboardPDF(context.Background(), &dto.DashboardSummaryDTO{
		Role:       "admin",
		TotalCards: 2,
		TotalValue: decimal.RequireFromString("150"),
		Stages:     []dto.StageCountDTO{{Stage: "lead", Count: 2, Value: decimal.RequireFromString("150")}},
		DateLabel:  "Outubro 2026",
		Users:      &users,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = g.GenerateDashboardPDF(context.Background(), nil)
	assert.Error(t, err)
}
