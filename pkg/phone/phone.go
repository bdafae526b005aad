// Package phone normaliza teléfonos brasileños y construye enlaces de mensajería (wa.me).
package phone

import (
	"net/url"
	"strings"
)

// CountryCode código de país de Brasil.
const CountryCode = "55"

// DefaultBaseURL base del deep link de mensajería.
const DefaultBaseURL = "https://wa.me"

// NormalizeBR devuelve el teléfono en formato país+DDD+número, solo dígitos.
// ok es false cuando la entrada no contiene ningún dígito.
//
// Reglas, en orden:
//  1. ya empieza por 55 y tiene 12 o más dígitos -> se devuelve tal cual
//  2. 10 u 11 dígitos (DDD + 8/9 dígitos) -> se antepone 55
//  3. cualquier otro caso -> los dígitos sin cambios (puede no ser canónico)
func NormalizeBR(raw string) (normalized string, ok bool) {
	digits := ExtractDigits(raw)
	if digits == "" {
		return "", false
	}
	if strings.HasPrefix(digits, CountryCode) && len(digits) >= 12 {
		return digits, true
	}
	if len(digits) == 10 || len(digits) == 11 {
		return CountryCode + digits, true
	}
	return digits, true
}

// ExtractDigits elimina todo lo que no sea un dígito ASCII.
func ExtractDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Linker construye enlaces de mensajería sobre una base configurable.
type Linker struct {
	BaseURL string
}

// NewLinker crea un Linker; base vacía usa DefaultBaseURL.
func NewLinker(baseURL string) Linker {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Linker{BaseURL: baseURL}
}

// Link devuelve base/<digits> y, si el mensaje no está en blanco, ?text=<mensaje codificado>.
func (l Linker) Link(phoneDigits, message string) string {
	base := l.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	link := base + "/" + phoneDigits
	if strings.TrimSpace(message) == "" {
		return link
	}
	return link + "?text=" + encodeComponent(message)
}

// BuildMessagingLink construye el enlace con la base por defecto.
func BuildMessagingLink(phoneDigits, message string) string {
	return NewLinker(DefaultBaseURL).Link(phoneDigits, message)
}

// componentUnescape deshace lo que QueryEscape escapa de más respecto a encodeURIComponent:
// espacios como %20 (no '+') y los caracteres ! ' ( ) * sin escapar.
var componentUnescape = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent codifica s como un componente de URL, igual que encodeURIComponent.
func encodeComponent(s string) string {
	return componentUnescape.Replace(url.QueryEscape(s))
}
