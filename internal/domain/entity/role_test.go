package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/axion-crm/internal/domain/entity"
)

func TestParseRole_AmbosVocabularios(t *testing.T) {
	cases := map[string]entity.Role{
		"admin":      entity.RoleAdmin,
		" ADMIN ":    entity.RoleAdmin,
		"seller":     entity.RoleSeller,
		"vendedor":   entity.RoleSeller,
		" Vendedor ": entity.RoleSeller,
		"production": entity.RoleProduction,
		"producao":   entity.RoleProduction,
		"produção":   entity.RoleProduction,
		"":           "",
		"gerente":    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, entity.ParseRole(in), "entrada %q", in)
	}
}

func TestRole_LabelYValid(t *testing.T) {
	assert.Equal(t, "vendedor", entity.RoleSeller.Label())
	assert.Equal(t, "producao", entity.RoleProduction.Label())
	assert.Equal(t, "admin", entity.RoleAdmin.Label())
	assert.Equal(t, "", entity.Role("x").Label())

	assert.True(t, entity.RoleSeller.Valid())
	assert.False(t, entity.Role("vendedor").Valid(), "la etiqueta no es un rol canónico")

	assert.True(t, entity.RoleSeller.HasCommission())
	assert.True(t, entity.RoleProduction.HasCommission())
	assert.False(t, entity.RoleAdmin.HasCommission())
}

func TestParseRole_EtiquetaIdaYVuelta(t *testing.T) {
	for _, r := range []entity.Role{entity.RoleAdmin, entity.RoleSeller, entity.RoleProduction} {
		assert.Equal(t, r, entity.ParseRole(r.Label()), "etiqueta %q", r.Label())
		assert.Equal(t, r, entity.ParseRole(string(r)))
	}
}
