package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlowCardResponse tarjeta visible para el principal.
type FlowCardResponse struct {
	ID                      string          `json:"id"`
	Title                   string          `json:"title"`
	ClientName              string          `json:"client_name"`
	ClientPhone             string          `json:"client_phone,omitempty"`
	Stage                   string          `json:"stage"`
	Value                   decimal.Decimal `json:"value"`
	CreatedByID             string          `json:"created_by_id,omitempty"`
	AttendantID             string          `json:"attendant_id,omitempty"`
	ProductionResponsibleID string          `json:"production_responsible_id,omitempty"`
	MessagingLink           string          `json:"messaging_link,omitempty"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}
