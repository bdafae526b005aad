package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlowCard oportunidad de venta que recorre el flujo comercial.
// Los IDs de responsables son opcionales: cadena vacía = sin asignar.
type FlowCard struct {
	ID                      string
	Title                   string
	ClientName              string
	ClientPhone             string
	Stage                   string
	Value                   decimal.Decimal
	CreatedByID             string
	AttendantID             string
	ProductionResponsibleID string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
