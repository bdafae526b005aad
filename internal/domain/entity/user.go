package entity

import "time"

// Estados de UserProfile.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// UserProfile representa una fila de user_profiles (usuario que inicia sesión).
type UserProfile struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Username     string
	Role         Role
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active informa si el usuario puede iniciar sesión.
func (u *UserProfile) Active() bool {
	return u != nil && u.Status == StatusActive
}

// Principal devuelve la identidad mínima usada por el gate y el filtro de alcance.
func (u *UserProfile) Principal() *Principal {
	if u == nil {
		return nil
	}
	return &Principal{ID: u.ID, Role: u.Role}
}

// Principal usuario autenticado en curso.
type Principal struct {
	ID   string
	Role Role
}
