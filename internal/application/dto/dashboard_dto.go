package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Los conteos por etapa y el valor total se calculan sobre las tarjetas visibles del principal.
type DashboardSummaryDTO struct {
	Role       string          `json:"role"`
	TotalCards int             `json:"total_cards"`
	TotalValue decimal.Decimal `json:"total_value"`
	Stages     []StageCountDTO `json:"stages"` // orden alfabético por etapa
	DateLabel  string          `json:"date_label"` // ej: "Outubro 2026"

	// Solo admin
	Users         *int `json:"users,omitempty"`
	Collaborators *int `json:"collaborators,omitempty"`
}

// StageCountDTO agregado de una etapa del flujo.
type StageCountDTO struct {
	Stage string          `json:"stage"`
	Count int             `json:"count"`
	Value decimal.Decimal `json:"value"`
}
