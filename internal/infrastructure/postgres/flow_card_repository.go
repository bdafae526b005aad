package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/axion-crm/internal/domain/entity"
	"github.com/jhoicas/axion-crm/internal/domain/repository"
)

var _ repository.FlowCardRepository = (*FlowCardRepo)(nil)

const flowCardColumns = `id, title, COALESCE(client_name, ''), COALESCE(client_phone, ''), stage, value,
	COALESCE(created_by_id::text, ''), COALESCE(attendant_id::text, ''), COALESCE(production_responsible_id::text, ''),
	created_at, updated_at`

// FlowCardRepo lectura de flow_cards sobre PostgreSQL.
type FlowCardRepo struct {
	q Querier
}

// NewFlowCardRepository construye el adaptador.
func NewFlowCardRepository(q Querier) *FlowCardRepo {
	return &FlowCardRepo{q: q}
}

// List devuelve todas las tarjetas, más recientes primero.
func (r *FlowCardRepo) List(ctx context.Context) ([]*entity.FlowCard, error) {
	rows, err := r.q.Query(ctx, `SELECT `+flowCardColumns+` FROM flow_cards ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list flow_cards: %w", err)
	}
	defer rows.Close()
	var list []*entity.FlowCard
	for rows.Next() {
		c, err := scanFlowCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan flow_card: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetByID obtiene una tarjeta; (nil, nil) si no existe.
func (r *FlowCardRepo) GetByID(ctx context.Context, id string) (*entity.FlowCard, error) {
	c, err := scanFlowCard(r.q.QueryRow(ctx, `SELECT `+flowCardColumns+` FROM flow_cards WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get flow_card: %w", err)
	}
	return c, nil
}

func scanFlowCard(row rowScanner) (*entity.FlowCard, error) {
	var c entity.FlowCard
	if err := row.Scan(&c.ID, &c.Title, &c.ClientName, &c.ClientPhone, &c.Stage, &c.Value,
		&c.CreatedByID, &c.AttendantID, &c.ProductionResponsibleID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
