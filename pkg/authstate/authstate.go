// Package authstate codifica la bandera local "axion_auth_v1".
//
// La bandera es solo una copia derivada de la identidad resuelta en el servidor: se escribe
// después de resolver la sesión y nunca se consulta para autorizar.
package authstate

import (
	"encoding/json"
	"net/url"
)

// Key nombre fijo bajo el que se persiste la bandera.
const Key = "axion_auth_v1"

// State contenido persistido.
type State struct {
	IsAuthenticated bool `json:"isAuthenticated"`
}

// Encode serializa el estado como JSON escapado para poder viajar en una cookie.
func Encode(s State) string {
	b, _ := json.Marshal(s) // un struct con un bool no falla
	return url.QueryEscape(string(b))
}

// Decode interpreta el valor persistido. Cualquier valor corrupto equivale a no autenticado.
func Decode(raw string) State {
	if raw == "" {
		return State{}
	}
	if unescaped, err := url.QueryUnescape(raw); err == nil {
		raw = unescaped
	}
	var s State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return State{}
	}
	return s
}
