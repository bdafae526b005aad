package access

import (
	"sync"

	"github.com/jhoicas/axion-crm/internal/domain/entity"
)

// CardPredicate indica si el principal puede ver la tarjeta.
type CardPredicate func(card *entity.FlowCard) bool

func denyAll(*entity.FlowCard) bool { return false }

// ScopeFilter construye el predicado de visibilidad para role y principalID.
//
//   - sin principalID: nada es visible (fail-closed)
//   - seller: tarjetas creadas o atendidas por él
//   - production: tarjetas de las que es responsable de producción
//
// Admin no se filtra aquí: su listado va por el camino sin alcance, así que
// para admin y roles desconocidos el predicado también niega todo.
func ScopeFilter(role entity.Role, principalID string) CardPredicate {
	if principalID == "" {
		return denyAll
	}
	switch role {
	case entity.RoleSeller:
		return func(card *entity.FlowCard) bool {
			if card == nil {
				return false
			}
			return card.CreatedByID == principalID || card.AttendantID == principalID
		}
	case entity.RoleProduction:
		return func(card *entity.FlowCard) bool {
			if card == nil {
				return false
			}
			return card.ProductionResponsibleID == principalID
		}
	default:
		return denyAll
	}
}

// Scoped informa si el rol tiene visibilidad restringida.
func Scoped(role entity.Role) bool {
	return role != entity.RoleAdmin
}

// scopeMemoCap tope de principales memorizados; al alcanzarlo la memoria se vacía.
const scopeMemoCap = 256

type scopeKey struct {
	role entity.Role
	id   string
}

// ScopeMemo memoriza un predicado por (role, principalID). Peticiones concurrentes de
// principales distintos no se pisan: cada uno reutiliza el suyo mientras siga en memoria.
type ScopeMemo struct {
	mu     sync.Mutex
	preds  map[scopeKey]CardPredicate
	builds int
}

// For devuelve el predicado para (role, principalID), construyéndolo solo la primera vez.
func (m *ScopeMemo) For(role entity.Role, principalID string) CardPredicate {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := scopeKey{role: role, id: principalID}
	if pred, ok := m.preds[k]; ok {
		return pred
	}
	if m.preds == nil || len(m.preds) >= scopeMemoCap {
		m.preds = make(map[scopeKey]CardPredicate)
	}
	pred := ScopeFilter(role, principalID)
	m.preds[k] = pred
	m.builds++
	return pred
}

// Builds cuántas veces se ha reconstruido el predicado.
func (m *ScopeMemo) Builds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.builds
}

// FilterCards aplica pred sobre cards conservando el orden.
func FilterCards(cards []*entity.FlowCard, pred CardPredicate) []*entity.FlowCard {
	out := make([]*entity.FlowCard, 0, len(cards))
	for _, c := range cards {
		if pred(c) {
			out = append(out, c)
		}
	}
	return out
}
