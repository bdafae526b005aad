package authstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/axion-crm/pkg/authstate"
)

func TestEncodeDecode_IdaYVuelta(t *testing.T) {
	raw := authstate.Encode(authstate.State{IsAuthenticated: true})
	assert.True(t, authstate.Decode(raw).IsAuthenticated)

	raw = authstate.Encode(authstate.State{IsAuthenticated: false})
	assert.False(t, authstate.Decode(raw).IsAuthenticated)
}

func TestDecode_JSONPlano(t *testing.T) {
	assert.True(t, authstate.Decode(`{"isAuthenticated":true}`).IsAuthenticated)
}

func TestDecode_Corrupto_EsNoAutenticado(t *testing.T) {
	for _, raw := range []string{"", "{", "true", "%zz", `{"isAuthenticated":"yes"}`, "null"} {
		assert.False(t, authstate.Decode(raw).IsAuthenticated, "valor %q", raw)
	}
}
