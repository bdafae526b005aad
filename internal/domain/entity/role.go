package entity

import "strings"

// Role enumeración canónica de roles. La autorización y el etiquetado de
// colaboradores usan este tipo; el vocabulario en portugués solo existe en los bordes.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSeller     Role = "seller"
	RoleProduction Role = "production"
)

// Etiquetas usadas por la tabla de colaboradores.
const (
	LabelAdmin      = "admin" // igual al nombre canónico
	LabelSeller     = "vendedor"
	LabelProduction = "producao"
)

// ParseRole acepta tanto el nombre canónico como la etiqueta de colaborador.
// Devuelve "" (rol desconocido) si no reconoce el valor.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleSeller), LabelSeller:
		return RoleSeller
	case string(RoleProduction), LabelProduction, "produção":
		return RoleProduction
	default:
		return ""
	}
}

// Valid informa si r es uno de los tres roles conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSeller, RoleProduction:
		return true
	}
	return false
}

// Label devuelve la etiqueta de colaborador ("vendedor", "producao", "admin").
func (r Role) Label() string {
	switch r {
	case RoleSeller:
		return LabelSeller
	case RoleProduction:
		return LabelProduction
	case RoleAdmin:
		return LabelAdmin
	default:
		return ""
	}
}

// HasCommission informa si el rol admite comisión (perfiles de venta y producción).
func (r Role) HasCommission() bool {
	return r == RoleSeller || r == RoleProduction
}
